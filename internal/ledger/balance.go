// Package ledger computes account balances, running-balance ledgers and
// financial statements from journal lines using double-entry sign
// conventions. Every function is pure: inputs are never mutated.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenacre-dev/farmdesk/internal/model"
)

// SignedAmount is a line's contribution to the balance of an account of
// type t: debit minus credit for debit-normal accounts, credit minus
// debit otherwise.
func SignedAmount(line model.Line, t model.AccountType) decimal.Decimal {
	if t.DebitNormal() {
		return line.Debit.Sub(line.Credit)
	}
	return line.Credit.Sub(line.Debit)
}

// AccountBalance sums the signed amounts of lines. Callers pass lines of
// a single account; an empty slice yields zero.
func AccountBalance(lines []model.Line, t model.AccountType) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(SignedAmount(line, t))
	}
	return total
}

// OpeningBalance is AccountBalance restricted to lines dated strictly
// before cutoff.
func OpeningBalance(lines []model.Line, t model.AccountType, cutoff time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if line.Date.Before(cutoff) {
			total = total.Add(SignedAmount(line, t))
		}
	}
	return total
}

// byAccount groups lines by account ID, preserving input order.
func byAccount(lines []model.Line) map[int][]model.Line {
	out := make(map[int][]model.Line)
	for _, line := range lines {
		out[line.AccountID] = append(out[line.AccountID], line)
	}
	return out
}
