package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDouble_NewMonth(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, newMockAccounts(3, 16))

	entryID, err := svc.AddDouble(AddDoubleParams{
		Date:          date(2025, 1, 15),
		Description:   "Layer mash, 20 bags",
		DebitAccount:  16,
		CreditAccount: 3,
		Amount:        dec("412.00"),
		Reference:     "INV-2231",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-001", entryID)

	_, err = os.Stat(filepath.Join(dir, "2025", "01", "journal.csv"))
	require.NoError(t, err)

	lines, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "2025-01-001a", lines[0].EntryID)
	assert.True(t, lines[0].Debit.Equal(dec("412.00")))
	assert.Equal(t, "2025-01-001b", lines[1].EntryID)
	assert.True(t, lines[1].Credit.Equal(dec("412.00")))
	assert.Equal(t, "INV-2231", lines[1].Reference)
}

func TestAddDouble_ExistingMonth(t *testing.T) {
	svc := NewService(t.TempDir(), newMockAccounts(3, 16))

	for i, want := range []string{"2025-01-001", "2025-01-002"} {
		entryID, err := svc.AddDouble(AddDoubleParams{
			Date:          date(2025, 1, 10+i),
			Description:   "Feed",
			DebitAccount:  16,
			CreditAccount: 3,
			Amount:        dec("10.00"),
		})
		require.NoError(t, err)
		assert.Equal(t, want, entryID)
	}

	lines, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	assert.Len(t, lines, 4, "two entries x 2 lines")

	seq, err := svc.NextEntrySeq(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, seq)
}

func TestPost_Compound(t *testing.T) {
	svc := NewService(t.TempDir(), newMockAccounts(3, 16, 17))

	entryID, err := svc.Post(EntryParams{
		Date:        date(2025, 2, 3),
		Description: "Co-op invoice",
		Lines: []LineParams{
			{AccountID: 16, Debit: dec("300.00")},
			{AccountID: 17, Debit: dec("45.50"), Description: "Newcastle vaccine"},
			{AccountID: 3, Credit: dec("345.50")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-02-001", entryID)

	lines, err := svc.ReadMonth(2025, 2)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "2025-02-001c", lines[2].EntryID)
	assert.Equal(t, "Co-op invoice", lines[0].Description)
	assert.Equal(t, "Newcastle vaccine", lines[1].Description)
}

func TestPost_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, newMockAccounts(3, 16))

	_, err := svc.Post(EntryParams{
		Date: date(2025, 1, 5),
		Lines: []LineParams{
			{AccountID: 16, Debit: dec("10.00")},
			{AccountID: 3, Credit: dec("9.00")},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	_, err = os.Stat(filepath.Join(dir, "2025", "01", "journal.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist, "nothing is written on failure")
}

func TestPost_InactiveAccount(t *testing.T) {
	svc := NewService(t.TempDir(), newMockAccounts(3, 16).close(16))

	_, err := svc.AddDouble(AddDoubleParams{Date: date(2025, 1, 5), DebitAccount: 16, CreditAccount: 3, Amount: dec("1.00")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactive")
}

func TestPost_TooFewLines(t *testing.T) {
	svc := NewService(t.TempDir(), newMockAccounts(3))
	_, err := svc.Post(EntryParams{Date: date(2025, 1, 5), Lines: []LineParams{{AccountID: 3, Debit: dec("1")}}})
	assert.Error(t, err)
}

func TestReadMonth_Missing(t *testing.T) {
	svc := NewService(t.TempDir(), newMockAccounts())
	lines, err := svc.ReadMonth(2030, 6)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReadAll_ChronologicalAcrossYears(t *testing.T) {
	svc := NewService(t.TempDir(), newMockAccounts(3, 16))
	for _, d := range [][3]int{{2025, 2, 1}, {2024, 12, 31}, {2025, 1, 9}} {
		_, err := svc.AddDouble(AddDoubleParams{Date: date(d[0], d[1], d[2]), DebitAccount: 16, CreditAccount: 3, Amount: dec("1.00")})
		require.NoError(t, err)
	}

	lines, err := svc.ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 6)
	assert.Equal(t, "2024-12-001a", lines[0].EntryID)
	assert.Equal(t, "2025-01-001a", lines[2].EntryID)
	assert.Equal(t, "2025-02-001a", lines[4].EntryID)

	months, err := svc.Months()
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{2024, 12}, {2025, 1}, {2025, 2}}, months)
}

func TestValidate_StoredBooks(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, newMockAccounts(3, 16))
	_, err := svc.AddDouble(AddDoubleParams{Date: date(2025, 1, 5), DebitAccount: 16, CreditAccount: 3, Amount: dec("1.00")})
	require.NoError(t, err)

	verrs, err := svc.Validate()
	require.NoError(t, err)
	assert.Empty(t, verrs)

	// Tamper with the file: drop the credit line.
	path := filepath.Join(dir, "2025", "01", "journal.csv")
	lines, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteLines(f, lines[:1]))
	require.NoError(t, f.Close())

	verrs, err = svc.Validate()
	require.NoError(t, err)
	assert.Contains(t, checks(verrs), CheckBalanced)
}
