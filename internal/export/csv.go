// Package export writes the activity history to CSV and XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"agrigest/internal/history"
	"agrigest/internal/types"
)

// Header is the fixed column order of every export.
var Header = []string{"Date", "Type", "Titre", "Description", "Montant", "Zone"}

// CSV writes one header row plus one row per activity. Dates are
// rendered dd/mm/yyyy; amounts keep their sign (negative for cultures
// and dépenses, positive for récoltes).
func CSV(w io.Writer, activities []history.Activity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, a := range activities {
		row := []string{
			shortDate(a.Date),
			a.Type,
			a.Title,
			a.Description,
			strconv.FormatFloat(a.Montant, 'f', -1, 64),
			a.Zone,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DefaultFileName returns "historique_YYYY-MM-DD" plus the extension.
func DefaultFileName(ext string) string {
	return fmt.Sprintf("historique_%s.%s", time.Now().Format(types.DateOnly), ext)
}

// shortDate renders a yyyy-mm-dd wire date as dd/mm/yyyy, passing
// through anything unparseable.
func shortDate(date string) string {
	d, err := time.Parse(types.DateOnly, date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}
