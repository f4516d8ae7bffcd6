package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenacre-dev/farmdesk/internal/model"
)

var (
	cash      = model.Account{ID: 1, Code: "1010", Name: "Cash on Hand", Type: model.AccountTypeAsset, Active: true}
	livestock = model.Account{ID: 2, Code: "1500", Name: "Livestock", Type: model.AccountTypeAsset, Active: true}
	payables  = model.Account{ID: 3, Code: "2010", Name: "Accounts Payable", Type: model.AccountTypeLiability, Active: true}
	capital   = model.Account{ID: 4, Code: "3010", Name: "Owner's Capital", Type: model.AccountTypeEquity, Active: true}
	milk      = model.Account{ID: 5, Code: "4010", Name: "Milk Sales", Type: model.AccountTypeRevenue, Active: true}
	eggs      = model.Account{ID: 6, Code: "4020", Name: "Egg Sales", Type: model.AccountTypeRevenue, Active: true}
	feed      = model.Account{ID: 7, Code: "5010", Name: "Feed Expense", Type: model.AccountTypeExpense, Active: true}
	vet       = model.Account{ID: 8, Code: "5020", Name: "Veterinary Expense", Type: model.AccountTypeExpense, Active: true}

	chart = []model.Account{cash, livestock, payables, capital, milk, eggs, feed, vet}
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func debit(entryID string, d time.Time, acct model.Account, amount string) model.Line {
	return model.Line{EntryID: entryID, Date: d, AccountID: acct.ID, Description: entryID, Debit: dec(amount)}
}

func credit(entryID string, d time.Time, acct model.Account, amount string) model.Line {
	return model.Line{EntryID: entryID, Date: d, AccountID: acct.ID, Description: entryID, Credit: dec(amount)}
}

// entry returns a balanced two-line entry.
func entry(entryID string, d time.Time, dr, cr model.Account, amount string) []model.Line {
	return []model.Line{debit(entryID+"a", d, dr, amount), credit(entryID+"b", d, cr, amount)}
}

func concat(groups ...[]model.Line) []model.Line {
	var out []model.Line
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// farmBooks is a small but complete quarter of farm activity.
func farmBooks() []model.Line {
	return concat(
		entry("2025-01-001", date(2025, 1, 2), cash, capital, "10000.00"),
		entry("2025-01-002", date(2025, 1, 5), livestock, payables, "4500.00"),
		entry("2025-01-003", date(2025, 1, 20), cash, milk, "1000.00"),
		entry("2025-01-004", date(2025, 1, 25), feed, cash, "400.00"),
		entry("2025-02-001", date(2025, 2, 3), cash, eggs, "250.00"),
		entry("2025-02-002", date(2025, 2, 10), vet, payables, "120.00"),
		entry("2025-03-001", date(2025, 3, 1), payables, cash, "2000.00"),
		entry("2025-03-002", date(2025, 3, 15), cash, milk, "1100.00"),
	)
}
