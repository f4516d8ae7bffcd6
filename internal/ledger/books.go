package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/greenacre-dev/farmdesk/internal/accounts"
	"github.com/greenacre-dev/farmdesk/internal/journal"
	"github.com/greenacre-dev/farmdesk/internal/model"
)

// ErrUnknownAccount is returned when an account code is not in the chart.
var ErrUnknownAccount = errors.New("unknown account")

// Books answers ledger and statement queries over a chart of accounts and
// its journal. Journal files are re-read on every query.
type Books struct {
	Accounts *accounts.Service
	Journal  *journal.Service
}

// OpenBooks loads the chart of accounts under root and attaches its journal.
func OpenBooks(root string) (*Books, error) {
	acctSvc, err := accounts.Load(root)
	if err != nil {
		return nil, err
	}
	return &Books{Accounts: acctSvc, Journal: journal.NewService(root, acctSvc)}, nil
}

// Ledger builds the running-balance ledger of the account with this code.
func (b *Books) Ledger(code string, period Period) (model.Account, Ledger, error) {
	acct, ok := b.Accounts.ByCode(code)
	if !ok {
		return model.Account{}, Ledger{}, fmt.Errorf("%w: %s", ErrUnknownAccount, code)
	}
	lines, err := b.Journal.ReadAll()
	if err != nil {
		return model.Account{}, Ledger{}, err
	}
	return acct, AccountLedger(acct, lines, period), nil
}

// IncomeStatement generates the income statement for a period.
func (b *Books) IncomeStatement(period Period) (IncomeStatement, error) {
	lines, err := b.Journal.ReadAll()
	if err != nil {
		return IncomeStatement{}, err
	}
	return GenerateIncomeStatement(b.Accounts.All(), lines, period), nil
}

// BalanceSheet generates the balance sheet for a period, folding in the
// same period's net income.
func (b *Books) BalanceSheet(period Period) (BalanceSheet, error) {
	lines, err := b.Journal.ReadAll()
	if err != nil {
		return BalanceSheet{}, err
	}
	is := GenerateIncomeStatement(b.Accounts.All(), lines, period)
	return GenerateBalanceSheet(b.Accounts.All(), lines, period, is.NetIncome), nil
}

// TrialBalance generates the trial balance for a period.
func (b *Books) TrialBalance(period Period) (TrialBalance, error) {
	lines, err := b.Journal.ReadAll()
	if err != nil {
		return TrialBalance{}, err
	}
	return GenerateTrialBalance(b.Accounts.All(), lines, period), nil
}

// Rollups returns each account's period balance including all of its
// sub-accounts, keyed by account ID.
func (b *Books) Rollups(period Period) (map[int]decimal.Decimal, error) {
	lines, err := b.Journal.ReadAll()
	if err != nil {
		return nil, err
	}
	all := b.Accounts.All()
	return Rollup(all, Balances(all, lines, period)), nil
}
