package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agrigest/internal/history"
)

func testActivities() []history.Activity {
	return []history.Activity{
		{ID: "recolte-2", Type: "recolte", Title: "Récolte: Maïs", Description: "Récolte de 300 kg",
			Date: "2025-09-10", Montant: 75000, Zone: "Thiès"},
		{ID: "depense-3", Type: "depense", Title: "Dépense: Engrais NPK", Description: "Catégorie: engrais",
			Date: "2025-05-02", Montant: -12000},
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, testActivities()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per activity")

	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{"10/09/2025", "recolte", "Récolte: Maïs", "Récolte de 300 kg", "75000", "Thiès"}, records[1])
	assert.Equal(t, "-12000", records[2][4], "outflows keep their sign")
}

func TestCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX(&buf, testActivities()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Historique")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "Récolte: Maïs", rows[1][2])

	assert.Equal(t, []string{"Historique"}, f.GetSheetList(), "the default Sheet1 must be gone")
}

func TestDefaultFileName(t *testing.T) {
	name := DefaultFileName("csv")
	assert.True(t, strings.HasPrefix(name, "historique_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}

func TestShortDatePassthrough(t *testing.T) {
	if got := shortDate("pas-une-date"); got != "pas-une-date" {
		t.Fatalf("unparseable dates must pass through, got %q", got)
	}
}
