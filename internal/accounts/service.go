package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/greenacre-dev/farmdesk/internal/model"
)

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byID     map[int]model.Account
	byCode   map[string]model.Account
	children map[int][]int
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	s := &Service{
		accounts: accounts,
		byID:     make(map[int]model.Account, len(accounts)),
		byCode:   make(map[string]model.Account, len(accounts)),
		children: make(map[int][]int),
	}
	for _, a := range accounts {
		s.byID[a.ID] = a
		s.byCode[a.Code] = a
		if a.ParentID != 0 {
			s.children[a.ParentID] = append(s.children[a.ParentID], a.ID)
		}
	}
	return s
}

// Load reads chart-of-accounts.csv from a books root and returns a Service.
func Load(root string) (*Service, error) {
	path := filepath.Join(root, "accounts", "chart-of-accounts.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	if err := Check(accts); err != nil {
		return nil, err
	}
	return NewService(accts), nil
}

// Check verifies that IDs and codes are unique and every parent exists.
func Check(accts []model.Account) error {
	ids := make(map[int]bool, len(accts))
	codes := make(map[string]bool, len(accts))
	for _, a := range accts {
		if ids[a.ID] {
			return fmt.Errorf("duplicate account_id %d", a.ID)
		}
		if codes[a.Code] {
			return fmt.Errorf("duplicate account_code %q", a.Code)
		}
		ids[a.ID] = true
		codes[a.Code] = true
	}
	for _, a := range accts {
		if a.ParentID != 0 && !ids[a.ParentID] {
			return fmt.Errorf("account %s: unknown parent %d", a.Code, a.ParentID)
		}
	}
	return nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id int) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// ByCode returns an account by its account code.
func (s *Service) ByCode(code string) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id int) bool {
	_, ok := s.byID[id]
	return ok
}

// Active reports whether an account ID exists and accepts postings.
func (s *Service) Active(id int) bool {
	a, ok := s.byID[id]
	return ok && a.Active
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Children returns the direct children of an account in chart order.
func (s *Service) Children(id int) []model.Account {
	var result []model.Account
	for _, cid := range s.children[id] {
		result = append(result, s.byID[cid])
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(root string) error {
	dir := filepath.Join(root, "accounts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	path := filepath.Join(dir, "chart-of-accounts.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
