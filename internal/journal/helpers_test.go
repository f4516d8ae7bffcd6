package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// mockAccounts implements AccountChecker for testing.
type mockAccounts struct {
	active   map[int]bool
	inactive map[int]bool
}

func (m *mockAccounts) Exists(id int) bool {
	return m.active[id] || m.inactive[id]
}

func (m *mockAccounts) Active(id int) bool {
	return m.active[id]
}

func newMockAccounts(ids ...int) *mockAccounts {
	m := &mockAccounts{active: make(map[int]bool), inactive: make(map[int]bool)}
	for _, id := range ids {
		m.active[id] = true
	}
	return m
}

func (m *mockAccounts) close(id int) *mockAccounts {
	delete(m.active, id)
	m.inactive[id] = true
	return m
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
