package output

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxFile  = "venues.xlsx"
	xlsxSheet = "venues"
)

type XLSXOutput struct {
	target fileTarget
}

func NewXLSXOutput(basePath, folder string) *XLSXOutput {
	return &XLSXOutput{target: localTarget(basePath, folder)}
}

func (x *XLSXOutput) Path() string {
	return x.target.path(xlsxFile)
}

func (x *XLSXOutput) WriteVenues(ctx context.Context, venues []models.EnrichedVenue) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}

	header := make([]any, len(models.OutputColumns))
	for i, c := range models.OutputColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return err
	}

	for i := range venues {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := xlsxRow(&venues[i])
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write venue %d: %w", i, err)
		}
	}

	w, err := x.target.create(ctx, xlsxFile)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// xlsxRow leaves nil values as empty cells.
func xlsxRow(v *models.EnrichedVenue) []any {
	return []any{
		v.Name,
		v.Address,
		v.Category,
		optionalCell(v.Hours),
		v.Lat,
		v.Lng,
		v.Rating,
		optionalCell(v.Price),
		optionalCell(v.AvgBill),
		v.Chain,
		v.District,
		optionalCell(v.Seats),
		optionalCell(v.Street),
		v.Is247,
		optionalCell(v.MiddleAvgBill),
		optionalCell(v.MiddleCoffeeCup),
	}
}

func optionalCell[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func (x *XLSXOutput) Close() error {
	return nil
}
