package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/greenacre-dev/farmdesk/internal/id"
	"github.com/greenacre-dev/farmdesk/internal/model"
)

// Check names the rule a ValidationError violates.
type Check string

const (
	CheckBalanced   Check = "balanced"
	CheckOneSided   Check = "one-sided"
	CheckNegative   Check = "non-negative"
	CheckAccount    Check = "account"
	CheckInactive   Check = "active-account"
	CheckMonth      Check = "month"
	CheckPrecision  Check = "precision"
	CheckSequential Check = "sequence"
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Check       Check
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Check, e.EntryID, e.Description)
}

// AccountChecker tests account IDs against the chart of accounts.
type AccountChecker interface {
	Exists(id int) bool
	Active(id int) bool
}

var hundred = decimal.NewFromInt(100)

// ValidateLines checks a month of journal lines. Inactive accounts are
// only rejected for lines in newLines; history posted before an account
// was closed stays valid.
func ValidateLines(lines []model.Line, accounts AccountChecker, year, month int, newLines map[string]bool) []ValidationError {
	var errs []ValidationError

	groups := make(map[string][]model.Line)
	var groupOrder []string
	for _, line := range lines {
		g := line.EntryGroup()
		if _, seen := groups[g]; !seen {
			groupOrder = append(groupOrder, g)
		}
		groups[g] = append(groups[g], line)
	}

	for _, g := range groupOrder {
		totalDebit := decimal.Zero
		totalCredit := decimal.Zero
		for _, line := range groups[g] {
			totalDebit = totalDebit.Add(line.Debit)
			totalCredit = totalCredit.Add(line.Credit)
		}
		if !totalDebit.Equal(totalCredit) {
			errs = append(errs, ValidationError{
				Check:       CheckBalanced,
				EntryID:     g,
				Description: fmt.Sprintf("debits (%s) != credits (%s)", totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
			})
		}
	}

	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			errs = append(errs, ValidationError{
				Check:       CheckNegative,
				EntryID:     line.EntryID,
				Description: "amounts must not be negative",
			})
		}

		if line.Debit.IsZero() == line.Credit.IsZero() {
			errs = append(errs, ValidationError{
				Check:       CheckOneSided,
				EntryID:     line.EntryID,
				Description: "line must have exactly one of debit or credit",
			})
		}

		switch {
		case !accounts.Exists(line.AccountID):
			errs = append(errs, ValidationError{
				Check:       CheckAccount,
				EntryID:     line.EntryID,
				Description: fmt.Sprintf("unknown account %d", line.AccountID),
			})
		case newLines[line.EntryID] && !accounts.Active(line.AccountID):
			errs = append(errs, ValidationError{
				Check:       CheckInactive,
				EntryID:     line.EntryID,
				Description: fmt.Sprintf("account %d is inactive", line.AccountID),
			})
		}

		if line.Date.Year() != year || int(line.Date.Month()) != month {
			errs = append(errs, ValidationError{
				Check:       CheckMonth,
				EntryID:     line.EntryID,
				Description: fmt.Sprintf("date %s not in %04d-%02d", line.Date.Format(DateFormat), year, month),
			})
		}

		for _, amt := range []decimal.Decimal{line.Debit, line.Credit} {
			if scaled := amt.Mul(hundred); !scaled.Equal(scaled.Floor()) {
				errs = append(errs, ValidationError{
					Check:       CheckPrecision,
					EntryID:     line.EntryID,
					Description: fmt.Sprintf("amount %s has more than 2 decimal places", amt),
				})
			}
		}
	}

	// Entry sequence numbers must be contiguous from 1.
	seqSeen := make(map[int]bool)
	for _, g := range groupOrder {
		_, _, seq, err := id.ParseEntryID(g)
		if err != nil {
			errs = append(errs, ValidationError{
				Check:       CheckSequential,
				EntryID:     g,
				Description: fmt.Sprintf("invalid entry ID: %v", err),
			})
			continue
		}
		seqSeen[seq] = true
	}
	for i := 1; i <= len(seqSeen); i++ {
		if !seqSeen[i] {
			errs = append(errs, ValidationError{
				Check:       CheckSequential,
				EntryID:     fmt.Sprintf("seq %d", i),
				Description: fmt.Sprintf("missing sequence %d in 1..%d", i, len(seqSeen)),
			})
		}
	}

	return errs
}
