package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/greenacre-dev/farmdesk/internal/model"
)

// Tolerance is the largest absolute discrepancy at which a balance sheet
// still counts as balanced.
var Tolerance = decimal.New(1, -2)

// StatementLine is one account's amount on a financial statement.
type StatementLine struct {
	Account model.Account   `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

// IncomeStatement summarises revenue and expense activity for a period.
type IncomeStatement struct {
	Period        Period          `json:"period"`
	Revenues      []StatementLine `json:"revenues"`
	Expenses      []StatementLine `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetIncome     decimal.Decimal `json:"net_income"`
}

// BalanceSheet reports asset, liability and equity balances for a period
// with that period's net income folded into equity.
type BalanceSheet struct {
	Period           Period          `json:"period"`
	Assets           []StatementLine `json:"assets"`
	Liabilities      []StatementLine `json:"liabilities"`
	Equity           []StatementLine `json:"equity"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	NetIncome        decimal.Decimal `json:"net_income"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
	Balance          decimal.Decimal `json:"balance"`
}

// Balanced reports whether assets equal liabilities plus equity within
// Tolerance.
func (b BalanceSheet) Balanced() bool {
	return b.Balance.Abs().LessThan(Tolerance)
}

// GenerateIncomeStatement computes each revenue and expense account's
// balance over the period. Zero-balance accounts are left off the line
// items after summation.
func GenerateIncomeStatement(accounts []model.Account, lines []model.Line, period Period) IncomeStatement {
	grouped := byAccount(period.Filter(lines))

	is := IncomeStatement{Period: period}
	is.Revenues, is.TotalRevenue = section(accounts, grouped, model.AccountTypeRevenue)
	is.Expenses, is.TotalExpenses = section(accounts, grouped, model.AccountTypeExpense)
	is.NetIncome = is.TotalRevenue.Sub(is.TotalExpenses)
	return is
}

// GenerateBalanceSheet computes asset, liability and equity balances over
// the period. TotalEquity includes netIncome, which callers take from the
// income statement for the same period.
func GenerateBalanceSheet(accounts []model.Account, lines []model.Line, period Period, netIncome decimal.Decimal) BalanceSheet {
	grouped := byAccount(period.Filter(lines))

	bs := BalanceSheet{Period: period, NetIncome: netIncome}
	bs.Assets, bs.TotalAssets = section(accounts, grouped, model.AccountTypeAsset)
	bs.Liabilities, bs.TotalLiabilities = section(accounts, grouped, model.AccountTypeLiability)
	var equity decimal.Decimal
	bs.Equity, equity = section(accounts, grouped, model.AccountTypeEquity)
	bs.TotalEquity = equity.Add(netIncome)
	bs.Balance = bs.TotalAssets.Sub(bs.TotalLiabilities.Add(bs.TotalEquity))
	return bs
}

// section balances every account of type t. The total includes all
// accounts; only non-zero balances become line items.
func section(accounts []model.Account, grouped map[int][]model.Line, t model.AccountType) ([]StatementLine, decimal.Decimal) {
	items := []StatementLine{}
	total := decimal.Zero
	for _, acct := range accounts {
		if acct.Type != t {
			continue
		}
		amount := AccountBalance(grouped[acct.ID], t)
		total = total.Add(amount)
		if !amount.IsZero() {
			items = append(items, StatementLine{Account: acct, Amount: amount})
		}
	}
	return items, total
}
