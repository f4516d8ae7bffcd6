package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is a single row in journal.csv: one posting of a double-entry
// journal entry. Lines are immutable once posted.
type Line struct {
	EntryID     string          // "YYYY-MM-NNNx" where x = a,b,c...
	Date        time.Time       //nolint:revive // plain field name is clearest
	AccountID   int             //nolint:revive
	Description string          //nolint:revive
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
	Reference   string
}

// EntryGroup returns the base entry ID (without line suffix).
// "2025-01-001a" -> "2025-01-001"
func (l Line) EntryGroup() string {
	i := len(l.EntryID)
	for i > 0 && l.EntryID[i-1] >= 'a' && l.EntryID[i-1] <= 'z' {
		i--
	}
	return l.EntryID[:i]
}
