package accounts

import "github.com/greenacre-dev/farmdesk/internal/model"

// Business profiles. Anything else gets the mixed chart.
const (
	ProfileDairy   = "dairy"
	ProfilePoultry = "poultry"
	ProfileMixed   = "mixed"
)

// DefaultChart returns the default chart of accounts for a business
// profile. Account IDs are the same in every profile.
func DefaultChart(profile string) []model.Account {
	chart := mixedFarmChart()
	var drop string
	switch profile {
	case ProfileDairy:
		drop = "4020"
	case ProfilePoultry:
		drop = "4010"
	default:
		return chart
	}
	out := chart[:0]
	for _, a := range chart {
		if a.Code != drop {
			out = append(out, a)
		}
	}
	return out
}

func mixedFarmChart() []model.Account {
	return []model.Account{
		{ID: 1, Code: "1000", Name: "Assets", Type: model.AccountTypeAsset, Active: true, Description: "Asset header account"},
		{ID: 2, Code: "1010", Name: "Cash on Hand", Type: model.AccountTypeAsset, ParentID: 1, Active: true},
		{ID: 3, Code: "1020", Name: "Bank Account", Type: model.AccountTypeAsset, ParentID: 1, Active: true, Description: "Main operating account"},
		{ID: 4, Code: "1100", Name: "Accounts Receivable", Type: model.AccountTypeAsset, ParentID: 1, Active: true},
		{ID: 5, Code: "1200", Name: "Feed Inventory", Type: model.AccountTypeAsset, ParentID: 1, Active: true},
		{ID: 6, Code: "1500", Name: "Livestock", Type: model.AccountTypeAsset, ParentID: 1, Active: true, Description: "Dairy herd and poultry flocks"},
		{ID: 7, Code: "1600", Name: "Farm Equipment", Type: model.AccountTypeAsset, ParentID: 1, Active: true},
		{ID: 8, Code: "2010", Name: "Accounts Payable", Type: model.AccountTypeLiability, Active: true},
		{ID: 9, Code: "2100", Name: "Loans Payable", Type: model.AccountTypeLiability, Active: true},
		{ID: 10, Code: "3010", Name: "Owner's Capital", Type: model.AccountTypeEquity, Active: true},
		{ID: 11, Code: "3100", Name: "Retained Earnings", Type: model.AccountTypeEquity, Active: true},
		{ID: 12, Code: "4010", Name: "Milk Sales", Type: model.AccountTypeRevenue, Active: true},
		{ID: 13, Code: "4020", Name: "Egg Sales", Type: model.AccountTypeRevenue, Active: true},
		{ID: 14, Code: "4030", Name: "Livestock Sales", Type: model.AccountTypeRevenue, Active: true},
		{ID: 15, Code: "4040", Name: "Online Store Sales", Type: model.AccountTypeRevenue, Active: true},
		{ID: 16, Code: "5010", Name: "Feed Expense", Type: model.AccountTypeExpense, Active: true},
		{ID: 17, Code: "5020", Name: "Veterinary Expense", Type: model.AccountTypeExpense, Active: true, Description: "Drugs, vaccines and vet visits"},
		{ID: 18, Code: "5030", Name: "Wages & Salaries", Type: model.AccountTypeExpense, Active: true},
		{ID: 19, Code: "5040", Name: "Utilities", Type: model.AccountTypeExpense, Active: true},
		{ID: 20, Code: "5050", Name: "Depreciation Expense", Type: model.AccountTypeExpense, Active: true},
	}
}
