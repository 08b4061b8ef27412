package output

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/chrisdamba/foodvenues/internal/loader"
	"github.com/chrisdamba/foodvenues/internal/models"
)

var consoleColumns = []string{
	models.ColumnName,
	models.ColumnCategory,
	models.ColumnDistrict,
	models.ColumnStreet,
	models.ColumnIs247,
	models.ColumnMiddleAvgBill,
	models.ColumnMiddleCoffeeCup,
}

// ConsoleOutput prints the derived columns as an aligned table.
type ConsoleOutput struct {
	w io.Writer
}

func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteVenues(_ context.Context, venues []models.EnrichedVenue) error {
	rows := make([][]string, len(venues))
	for i := range venues {
		v := &venues[i]
		rows[i] = []string{
			v.Name,
			v.Category,
			v.District,
			derefString(v.Street),
			strconv.FormatBool(v.Is247),
			loader.FormatOptionalFloat(v.MiddleAvgBill),
			loader.FormatOptionalFloat(v.MiddleCoffeeCup),
		}
	}
	if err := WriteTable(c.w, consoleColumns, rows); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error {
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
