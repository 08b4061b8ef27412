package analytics

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/chrisdamba/foodvenues/internal/output"
	"github.com/xuri/excelize/v2"
)

func formatCell(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// RenderText writes every table as an aligned text block.
func RenderText(w io.Writer, r *Report) error {
	if _, err := fmt.Fprintf(w, "venues: %d\n\n", r.Rows); err != nil {
		return err
	}
	for _, t := range r.Tables {
		if _, err := fmt.Fprintf(w, "%s\n\n", t.Title); err != nil {
			return err
		}
		rows := make([][]string, len(t.Rows))
		for i, row := range t.Rows {
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = formatCell(v)
			}
			rows[i] = cells
		}
		if err := output.WriteTable(w, t.Columns, rows); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func RenderJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// maxSheetName is the sheet name limit imposed by Excel.
const maxSheetName = 31

// WriteXLSX writes a workbook with one sheet per table.
func WriteXLSX(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range r.Tables {
		sheet := t.Name
		if len([]rune(sheet)) > maxSheetName {
			sheet = string([]rune(sheet)[:maxSheetName])
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}

		header := make([]any, len(t.Columns))
		for j, c := range t.Columns {
			header[j] = c
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
		for j, row := range t.Rows {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return err
			}
			values := row
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("sheet %s row %d: %w", sheet, j, err)
			}
		}
	}
	return f.Write(w)
}
