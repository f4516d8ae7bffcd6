package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/greenacre-dev/farmdesk/internal/model"
)

// TrialBalanceLine holds an account's gross debits and credits.
type TrialBalanceLine struct {
	Account model.Account   `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Balance decimal.Decimal `json:"balance"`
}

// TrialBalance lists gross debits and credits per account for a period.
type TrialBalance struct {
	Period      Period             `json:"period"`
	Lines       []TrialBalanceLine `json:"lines"`
	TotalDebit  decimal.Decimal    `json:"total_debit"`
	TotalCredit decimal.Decimal    `json:"total_credit"`
}

// Balanced reports whether total debits equal total credits.
func (tb TrialBalance) Balanced() bool {
	return tb.TotalDebit.Sub(tb.TotalCredit).Abs().LessThan(Tolerance)
}

// GenerateTrialBalance totals debits and credits per account in chart
// order, skipping accounts with no activity in the period.
func GenerateTrialBalance(accounts []model.Account, lines []model.Line, period Period) TrialBalance {
	grouped := byAccount(period.Filter(lines))

	tb := TrialBalance{Period: period, Lines: []TrialBalanceLine{}}
	for _, acct := range accounts {
		own := grouped[acct.ID]
		if len(own) == 0 {
			continue
		}
		tl := TrialBalanceLine{Account: acct, Debit: decimal.Zero, Credit: decimal.Zero}
		for _, line := range own {
			tl.Debit = tl.Debit.Add(line.Debit)
			tl.Credit = tl.Credit.Add(line.Credit)
		}
		tl.Balance = AccountBalance(own, acct.Type)
		tb.TotalDebit = tb.TotalDebit.Add(tl.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(tl.Credit)
		tb.Lines = append(tb.Lines, tl)
	}
	return tb
}
