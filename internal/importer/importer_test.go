package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenacre-dev/farmdesk/internal/model"
)

func parseFile(t *testing.T, p Parser, name string) []Row {
	t.Helper()
	f, err := os.Open(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	defer f.Close()

	rows, err := p.Parse(f)
	require.NoError(t, err)
	return rows
}

func TestEntriesParser_Parse(t *testing.T) {
	rows := parseFile(t, &EntriesParser{}, "entries.csv")
	require.Len(t, rows, 3)

	assert.Equal(t, "5010", rows[0].DebitCode)
	assert.Equal(t, "1020", rows[0].CreditCode)
	assert.Equal(t, "850.00", rows[0].Amount.StringFixed(2))
	assert.Equal(t, "INV-7781", rows[0].Reference)
	assert.Equal(t, 5, rows[0].Date.Day())

	assert.Empty(t, rows[1].Reference)
}

func TestMilkParser_Parse(t *testing.T) {
	rows := parseFile(t, &MilkParser{}, "milk-collection.csv")
	require.Len(t, rows, 3)

	assert.Equal(t, "1100", rows[0].DebitCode)
	assert.Equal(t, "4010", rows[0].CreditCode)
	assert.Equal(t, "198.00", rows[0].Amount.StringFixed(2))
	assert.Equal(t, "Milk to KCC Dairies, 412.5 L", rows[0].Description)
	assert.Equal(t, "milk_20250103_KCCDairies", rows[0].Reference)

	assert.Equal(t, "62.40", rows[1].Amount.StringFixed(2))
	assert.NotEqual(t, rows[0].Reference, rows[1].Reference)
	assert.NotEqual(t, rows[0].Reference, rows[2].Reference)
}

func TestMilkParser_BuyersSharingPrefix(t *testing.T) {
	sheet := "date,buyer,litres,price_per_litre\n" +
		"2025-01-03,Brookside Dairy North,100,0.50\n" +
		"2025-01-03,Brookside Dairy South,90,0.50\n" +
		"2025-01-03,Brookside Dairy North Depot 1,80,0.50\n" +
		"2025-01-03,Brookside Dairy North Depot 2,70,0.50\n" +
		"2025-01-03,Brookside East,60,0.50\n"
	rows, err := (&MilkParser{}).Parse(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "milk_20250103_BrooksideEast", rows[4].Reference)
	refs := map[string]bool{}
	for _, r := range rows {
		refs[r.Reference] = true
	}
	assert.Len(t, refs, 5, "every buyer gets its own reference")

	keep, skipped := Deduplicate(rows, nil)
	assert.Zero(t, skipped)
	assert.Len(t, keep, 5)

	again, err := (&MilkParser{}).Parse(strings.NewReader(sheet))
	require.NoError(t, err)
	assert.Equal(t, rows[2].Reference, again[2].Reference, "references are stable across runs")
}

func TestParsers_Errors(t *testing.T) {
	_, err := (&EntriesParser{}).Parse(strings.NewReader("date,debit,credit,amount,description,reference\n03/01/2025,5010,1020,1,x,\n"))
	assert.ErrorContains(t, err, "parsing date")

	_, err = (&MilkParser{}).Parse(strings.NewReader("date,buyer,litres,price_per_litre\n2025-01-03,KCC,lots,0.48\n"))
	assert.ErrorContains(t, err, "parsing litres")

	_, err = (&MilkParser{}).Parse(strings.NewReader("date,buyer\n2025-01-03,KCC\n"))
	assert.Error(t, err, "wrong field count")

	rows, err := (&EntriesParser{}).Parse(strings.NewReader("date,debit,credit,amount,description,reference\n"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("entries"))
	assert.NotNil(t, r.Get("MILK"))
	assert.Nil(t, r.Get("chase"))
	assert.Panics(t, func() { r.Register(&MilkParser{}) })
}

func TestDeduplicate(t *testing.T) {
	rows := []Row{
		{Reference: "INV-1"},
		{Reference: "INV-2"},
		{Reference: ""},
		{Reference: "INV-2"},
		{Reference: ""},
	}
	posted := []model.Line{{Reference: "INV-1"}, {Reference: ""}}

	keep, skipped := Deduplicate(rows, posted)
	assert.Equal(t, 2, skipped)
	require.Len(t, keep, 3)
	assert.Equal(t, "INV-2", keep[0].Reference)
}

func TestScanAndMarkProcessed(t *testing.T) {
	root := t.TempDir()
	files, err := Scan(root)
	require.NoError(t, err)
	assert.Nil(t, files, "missing import dir is not an error")

	require.NoError(t, os.MkdirAll(filepath.Join(root, "import", "old"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "import", "jan.CSV"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "import", "notes.txt"), []byte("x"), 0o644))

	files, err = Scan(root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "jan.CSV", files[0].Name)
	assert.Equal(t, int64(1), files[0].Size)

	require.NoError(t, MarkProcessed(root, "jan.CSV"))
	_, err = os.Stat(filepath.Join(root, "import", "processed", "jan.CSV"))
	require.NoError(t, err)

	files, err = Scan(root)
	require.NoError(t, err)
	assert.Empty(t, files)
}
