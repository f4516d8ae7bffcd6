package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const importDateFormat = "2006-01-02"

func newCSVReader(r io.Reader, numFields int) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true
	return cr
}

// EntriesParser reads generic two-account postings:
//
//	date,debit,credit,amount,description,reference
type EntriesParser struct{}

const (
	entriesNumFields = 6
	entriesColDate   = 0
	entriesColDebit  = 1
	entriesColCredit = 2
	entriesColAmount = 3
	entriesColDesc   = 4
	entriesColRef    = 5
)

// Format returns the parser name.
func (p *EntriesParser) Format() string { return "entries" }

// Parse reads an entries CSV.
func (p *EntriesParser) Parse(r io.Reader) ([]Row, error) {
	records, err := readRecords(r, entriesNumFields, p.Format())
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i, rec := range records {
		date, err := time.Parse(importDateFormat, rec[entriesColDate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[entriesColDate], err)
		}
		amount, err := decimal.NewFromString(rec[entriesColAmount])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[entriesColAmount], err)
		}
		rows = append(rows, Row{
			Date:        date,
			DebitCode:   rec[entriesColDebit],
			CreditCode:  rec[entriesColCredit],
			Amount:      amount,
			Description: rec[entriesColDesc],
			Reference:   rec[entriesColRef],
		})
	}
	return rows, nil
}

// MilkParser reads daily milk collection sheets from a dairy buyer and
// books each delivery as a receivable:
//
//	date,buyer,litres,price_per_litre
type MilkParser struct{}

const (
	milkNumFields = 4
	milkColDate   = 0
	milkColBuyer  = 1
	milkColLitres = 2
	milkColPrice  = 3

	milkDebitCode  = "1100" // Accounts Receivable
	milkCreditCode = "4010" // Milk Sales
)

// Format returns the parser name.
func (p *MilkParser) Format() string { return "milk" }

// Parse reads a milk collection CSV. Amounts are rounded to the cent.
func (p *MilkParser) Parse(r io.Reader) ([]Row, error) {
	records, err := readRecords(r, milkNumFields, p.Format())
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i, rec := range records {
		date, err := time.Parse(importDateFormat, rec[milkColDate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[milkColDate], err)
		}
		litres, err := decimal.NewFromString(rec[milkColLitres])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing litres %q: %w", i+2, rec[milkColLitres], err)
		}
		price, err := decimal.NewFromString(rec[milkColPrice])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing price %q: %w", i+2, rec[milkColPrice], err)
		}
		buyer := strings.TrimSpace(rec[milkColBuyer])
		rows = append(rows, Row{
			Date:        date,
			DebitCode:   milkDebitCode,
			CreditCode:  milkCreditCode,
			Amount:      litres.Mul(price).Round(2),
			Description: fmt.Sprintf("Milk to %s, %s L", buyer, litres.String()),
			Reference:   makeRef("milk", date, buyer),
		})
	}
	return rows, nil
}
