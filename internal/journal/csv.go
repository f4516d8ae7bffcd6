package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenacre-dev/farmdesk/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "entry_id,date,account_id,description,debit,credit,reference"

// DateFormat is the layout of the date column.
const DateFormat = "2006-01-02"

const (
	numFields  = 7
	colEntryID = 0
	colDate    = 1
	colAcctID  = 2
	colDesc    = 3
	colDebit   = 4
	colCredit  = 5
	colRef     = 6
)

// ReadLines reads all lines from a journal.csv reader, preserving row order.
func ReadLines(r io.Reader) ([]model.Line, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var lines []model.Line
	for i, rec := range records[1:] {
		line, err := UnmarshalLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// WriteLines writes lines to a journal.csv writer (including header).
func WriteLines(w io.Writer, lines []model.Line) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, line := range lines {
		if err := cw.Write(MarshalLine(line)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendLines appends lines to an existing journal.csv writer (no header).
func AppendLines(w io.Writer, lines []model.Line) error {
	cw := csv.NewWriter(w)

	for i, line := range lines {
		if err := cw.Write(MarshalLine(line)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLine converts a Line to a CSV row.
func MarshalLine(line model.Line) []string {
	row := make([]string, numFields)
	row[colEntryID] = line.EntryID
	row[colDate] = line.Date.Format(DateFormat)
	row[colAcctID] = strconv.Itoa(line.AccountID)
	row[colDesc] = line.Description
	if !line.Debit.IsZero() {
		row[colDebit] = line.Debit.StringFixed(2)
	}
	if !line.Credit.IsZero() {
		row[colCredit] = line.Credit.StringFixed(2)
	}
	row[colRef] = line.Reference
	return row
}

// UnmarshalLine converts a CSV row to a Line.
func UnmarshalLine(record []string) (model.Line, error) {
	if len(record) != numFields {
		return model.Line{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(DateFormat, record[colDate])
	if err != nil {
		return model.Line{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	accountID, err := strconv.Atoi(record[colAcctID])
	if err != nil {
		return model.Line{}, fmt.Errorf("parsing account_id %q: %w", record[colAcctID], err)
	}

	debit, err := parseAmount(record[colDebit])
	if err != nil {
		return model.Line{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
	}
	credit, err := parseAmount(record[colCredit])
	if err != nil {
		return model.Line{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
	}

	return model.Line{
		EntryID:     record[colEntryID],
		Date:        date,
		AccountID:   accountID,
		Description: record[colDesc],
		Debit:       debit,
		Credit:      credit,
		Reference:   record[colRef],
	}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
