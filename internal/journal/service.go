package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenacre-dev/farmdesk/internal/id"
	"github.com/greenacre-dev/farmdesk/internal/model"
)

// Service reads and appends journal lines under a books root, one
// journal.csv per month at <root>/YYYY/MM/journal.csv.
type Service struct {
	root     string
	accounts AccountChecker
}

// NewService creates a journal Service.
func NewService(root string, accounts AccountChecker) *Service {
	return &Service{root: root, accounts: accounts}
}

// LineParams is one posting of a new entry. Exactly one of Debit and
// Credit should be non-zero.
type LineParams struct {
	AccountID   int
	Description string // defaults to the entry description
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// EntryParams holds a compound journal entry.
type EntryParams struct {
	Date        time.Time
	Description string
	Reference   string
	Lines       []LineParams
}

// AddDoubleParams holds parameters for a two-line entry.
type AddDoubleParams struct {
	Date          time.Time
	Description   string
	DebitAccount  int
	CreditAccount int
	Amount        decimal.Decimal
	Reference     string
}

// AddDouble posts a balanced debit + credit pair. Returns the entry ID.
func (s *Service) AddDouble(params AddDoubleParams) (string, error) {
	return s.Post(EntryParams{
		Date:        params.Date,
		Description: params.Description,
		Reference:   params.Reference,
		Lines: []LineParams{
			{AccountID: params.DebitAccount, Debit: params.Amount},
			{AccountID: params.CreditAccount, Credit: params.Amount},
		},
	})
}

// Post validates an entry together with the rest of its month and
// appends it to the month's journal.csv. Returns the entry ID.
func (s *Service) Post(params EntryParams) (string, error) {
	if len(params.Lines) < 2 {
		return "", errors.New("an entry needs at least two lines")
	}
	if len(params.Lines) > 26 {
		return "", fmt.Errorf("an entry has at most 26 lines, got %d", len(params.Lines))
	}

	year := params.Date.Year()
	month := int(params.Date.Month())

	existing, err := s.ReadMonth(year, month)
	if err != nil {
		return "", err
	}

	entryID := id.FormatEntryID(year, month, nextSeq(existing))
	newLines := make([]model.Line, len(params.Lines))
	fresh := make(map[string]bool, len(params.Lines))
	for i, lp := range params.Lines {
		desc := lp.Description
		if desc == "" {
			desc = params.Description
		}
		newLines[i] = model.Line{
			EntryID:     id.FormatLineID(entryID, i),
			Date:        params.Date,
			AccountID:   lp.AccountID,
			Description: desc,
			Debit:       lp.Debit,
			Credit:      lp.Credit,
			Reference:   params.Reference,
		}
		fresh[newLines[i].EntryID] = true
	}

	all := append(existing, newLines...)
	if verrs := ValidateLines(all, s.accounts, year, month, fresh); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return "", fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	journalPath := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(journalPath), 0o755); err != nil {
		return "", fmt.Errorf("creating journal dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(journalPath); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(journalPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}
	if err := AppendLines(f, newLines); err != nil {
		return "", fmt.Errorf("appending lines: %w", err)
	}
	return entryID, nil
}

// ReadMonth reads all lines for a given year/month. A month with no
// journal yields no lines and no error.
func (s *Service) ReadMonth(year, month int) ([]model.Line, error) {
	return readFile(s.monthPath(year, month))
}

// ReadAll reads every month's journal in chronological order. Row order
// within a month is preserved.
func (s *Service) ReadAll() ([]model.Line, error) {
	paths, err := filepath.Glob(filepath.Join(s.root, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]", "journal.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing journals: %w", err)
	}
	sort.Strings(paths)

	var all []model.Line
	for _, p := range paths {
		lines, err := readFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, lines...)
	}
	return all, nil
}

// Months lists the (year, month) pairs that have a journal, oldest first.
func (s *Service) Months() ([][2]int, error) {
	paths, err := filepath.Glob(filepath.Join(s.root, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]", "journal.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing journals: %w", err)
	}
	sort.Strings(paths)

	months := make([][2]int, 0, len(paths))
	for _, p := range paths {
		monthDir := filepath.Dir(p)
		var year, month int
		if _, err := fmt.Sscanf(filepath.Base(filepath.Dir(monthDir))+"-"+filepath.Base(monthDir), "%d-%d", &year, &month); err != nil {
			return nil, fmt.Errorf("parsing journal path %s: %w", p, err)
		}
		months = append(months, [2]int{year, month})
	}
	return months, nil
}

// NextEntrySeq returns the next available sequence number for a month.
func (s *Service) NextEntrySeq(year, month int) (int, error) {
	lines, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}
	return nextSeq(lines), nil
}

// Validate re-checks every stored month and returns all violations.
func (s *Service) Validate() ([]ValidationError, error) {
	months, err := s.Months()
	if err != nil {
		return nil, err
	}
	var all []ValidationError
	for _, ym := range months {
		lines, err := s.ReadMonth(ym[0], ym[1])
		if err != nil {
			return nil, err
		}
		all = append(all, ValidateLines(lines, s.accounts, ym[0], ym[1], nil)...)
	}
	return all, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.root, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}

func nextSeq(lines []model.Line) int {
	maxSeq := 0
	for _, line := range lines {
		_, _, seq, err := id.ParseEntryID(line.EntryID)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}

func readFile(path string) ([]model.Line, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return lines, nil
}
