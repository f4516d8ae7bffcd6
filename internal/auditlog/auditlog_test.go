package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp: testTime,
		Actor:     "ama",
		Action:    ActionGrant,
		Subject:   "Milk Collector",
		Details:   "/dairy/milk-production can_view=true",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, testEntry()))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ActionGrant, entries[0].Action)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, testEntry()))

	e2 := testEntry()
	e2.Action = ActionPostEntry
	e2.Subject = "2025-01-001"
	require.NoError(t, Append(dir, e2))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionGrant, entries[0].Action)
	assert.Equal(t, "2025-01-001", entries[1].Subject)

	data, err := os.ReadFile(filepath.Join(dir, "logs", "audit-log.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header), "header written once")
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	original.Details = `comma, "quoted" details`
	require.NoError(t, Append(dir, original))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, original.Timestamp.Equal(entries[0].Timestamp))
	assert.Equal(t, original.Details, entries[0].Details)
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "audit-log.csv"), []byte(Header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_BadFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5 fields")
}

func TestTimestampFormat(t *testing.T) {
	e := testEntry()
	e.Timestamp = time.Date(2025, 1, 15, 12, 30, 0, 0, time.FixedZone("EAT", 3*60*60))
	assert.Equal(t, "2025-01-15T09:30:00Z", MarshalEntry(e)[0])
}
