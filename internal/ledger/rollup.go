package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/greenacre-dev/farmdesk/internal/model"
)

// Rollup adds every account's own balance into each of its ancestors, so
// a header account such as "Assets" carries the total of its subtree.
// Balances are summed as-is; callers keep a subtree to one account type.
// Cycles in the parent chain are cut at the first repeated account.
func Rollup(accounts []model.Account, own map[int]decimal.Decimal) map[int]decimal.Decimal {
	parent := make(map[int]int, len(accounts))
	for _, a := range accounts {
		parent[a.ID] = a.ParentID
	}

	out := make(map[int]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		amount := own[a.ID]
		seen := map[int]bool{}
		for id := a.ID; id != 0 && !seen[id]; id = parent[id] {
			seen[id] = true
			out[id] = out[id].Add(amount)
		}
	}
	return out
}

// Balances returns each account's own balance over the period.
func Balances(accounts []model.Account, lines []model.Line, period Period) map[int]decimal.Decimal {
	grouped := byAccount(period.Filter(lines))
	out := make(map[int]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		out[a.ID] = AccountBalance(grouped[a.ID], a.Type)
	}
	return out
}
