package accounts

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenacre-dev/farmdesk/internal/model"
)

func TestRoundTrip(t *testing.T) {
	accounts := []model.Account{
		{ID: 3, Code: "1020", Name: "Bank Account", Type: model.AccountTypeAsset, Active: true, Description: "Main operating account"},
		{ID: 17, Code: "5020", Name: "Veterinary Expense", Type: model.AccountTypeExpense, ParentID: 3, Active: false},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, accounts))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, accounts, got)
}

func TestUnmarshalAccount_EmptyActiveMeansActive(t *testing.T) {
	acct, err := UnmarshalAccount([]string{"7", "4010", "Milk Sales", "Revenue", "", "", ""})
	require.NoError(t, err)
	assert.True(t, acct.Active)
	assert.Equal(t, model.AccountTypeRevenue, acct.Type)
	assert.Equal(t, 0, acct.ParentID)
}

func TestUnmarshalAccount_Errors(t *testing.T) {
	bad := [][]string{
		{"x", "4010", "Milk Sales", "revenue", "", "true", ""},
		{"7", "4010", "Milk Sales", "income", "", "true", ""},
		{"7", "4010", "Milk Sales", "revenue", "p", "true", ""},
		{"7", "4010", "Milk Sales", "revenue", "", "maybe", ""},
		{"7", "4010"},
	}
	for _, rec := range bad {
		_, err := UnmarshalAccount(rec)
		assert.Error(t, err, "record %v", rec)
	}
}

func TestReadAccounts_Empty(t *testing.T) {
	got, err := ReadAccounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadTestdata(t *testing.T) {
	f, err := os.Open("../../testdata/chart-of-accounts.csv")
	require.NoError(t, err)
	defer f.Close()

	accounts, err := ReadAccounts(f)
	require.NoError(t, err)
	require.Len(t, accounts, 11)

	types := make(map[model.AccountType]bool)
	for _, acct := range accounts {
		types[acct.Type] = true
	}
	for _, at := range model.AccountTypes {
		assert.True(t, types[at], "testdata should cover %s", at)
	}
	assert.False(t, accounts[10].Active, "5090 is closed")
}

func TestDefaultChartRoundTrip(t *testing.T) {
	chart := DefaultChart(ProfileMixed)

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, chart))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, chart, got)
}
