package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"agrigest/internal/history"
)

const xlsxSheet = "Historique"

// XLSX writes the activity table as a styled spreadsheet: same columns
// and sign convention as the CSV export.
func XLSX(w io.Writer, activities []history.Activity) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for col, h := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(xlsxSheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, a := range activities {
		row := i + 2
		values := []any{shortDate(a.Date), a.Type, a.Title, a.Description, a.Montant, a.Zone}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(xlsxSheet, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheet, "C", "D", 36); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
