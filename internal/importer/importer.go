// Package importer reads batches of farm transactions dropped into the
// import/ directory and turns them into two-line journal postings.
package importer

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenacre-dev/farmdesk/internal/model"
)

// Row is one transaction to post: debit one account, credit another.
type Row struct {
	Date        time.Time
	DebitCode   string
	CreditCode  string
	Amount      decimal.Decimal
	Description string
	Reference   string
}

// Parser converts an import CSV file into Rows.
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&EntriesParser{})
	r.Register(&MilkParser{})
	return r
}

const (
	importDir    = "import"
	processedDir = "import/processed"
)

// Scan returns CSV files in <root>/import/.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, importDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	dstDir := filepath.Join(root, processedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	src := filepath.Join(root, importDir, fileName)
	if err := os.Rename(src, filepath.Join(dstDir, fileName)); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// Deduplicate drops rows whose reference is already on a posted line, or
// repeats an earlier row in the batch. Rows without a reference are
// always kept.
func Deduplicate(rows []Row, posted []model.Line) (keep []Row, skipped int) {
	seen := make(map[string]bool, len(posted))
	for _, l := range posted {
		if l.Reference != "" {
			seen[l.Reference] = true
		}
	}
	for _, r := range rows {
		if r.Reference != "" && seen[r.Reference] {
			skipped++
			continue
		}
		if r.Reference != "" {
			seen[r.Reference] = true
		}
		keep = append(keep, r)
	}
	return keep, skipped
}

func readRecords(r io.Reader, numFields int, format string) ([][]string, error) {
	cr := newCSVReader(r, numFields)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV: %w", format, err)
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}

// maxRefTag bounds the readable part of a reference tag.
const maxRefTag = 16

// makeRef creates a reference like milk_20250103_KCC. Tags longer than
// maxRefTag are cut and suffixed with a hash of the whole tag, so names
// sharing a prefix still get distinct references.
func makeRef(prefix string, date time.Time, desc string) string {
	tag := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(tag) > maxRefTag {
		h := fnv.New32a()
		h.Write([]byte(tag))
		tag = fmt.Sprintf("%s%08x", tag[:maxRefTag], h.Sum32())
	}
	return fmt.Sprintf("%s_%s_%s", prefix, date.Format("20060102"), tag)
}
