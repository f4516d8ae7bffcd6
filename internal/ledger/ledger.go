package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenacre-dev/farmdesk/internal/model"
)

// Row is one line of a running-balance ledger.
type Row struct {
	Date        time.Time       `json:"date"`
	EntryID     string          `json:"entry_id"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// Ledger is an account's running balance over a sequence of lines.
type Ledger struct {
	Opening decimal.Decimal `json:"opening_balance"`
	Rows    []Row           `json:"entries"`
	Closing decimal.Decimal `json:"closing_balance"`
}

// Build walks lines in the order given, starting from opening, and emits
// one row per line. Closing is the last row's balance, or opening when
// there are no lines.
func Build(lines []model.Line, t model.AccountType, opening decimal.Decimal) Ledger {
	l := Ledger{Opening: opening, Rows: make([]Row, 0, len(lines))}
	balance := opening
	for _, line := range lines {
		balance = balance.Add(SignedAmount(line, t))
		l.Rows = append(l.Rows, Row{
			Date:        line.Date,
			EntryID:     line.EntryID,
			Description: line.Description,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Balance:     balance,
		})
	}
	l.Closing = balance
	return l
}

// AccountLedger selects the lines posted to acct, seeds the opening
// balance with everything before period.From and builds the ledger for
// the lines inside the period. Lines are ordered by date; lines on the
// same day keep their input order.
func AccountLedger(acct model.Account, lines []model.Line, period Period) Ledger {
	var own []model.Line
	for _, line := range lines {
		if line.AccountID == acct.ID {
			own = append(own, line)
		}
	}

	opening := decimal.Zero
	if !period.From.IsZero() {
		opening = OpeningBalance(own, acct.Type, truncateDay(period.From))
	}

	window := period.Filter(own)
	sort.SliceStable(window, func(i, j int) bool {
		return truncateDay(window[i].Date).Before(truncateDay(window[j].Date))
	})
	return Build(window, acct.Type, opening)
}
