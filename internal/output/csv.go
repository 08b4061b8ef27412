package output

import (
	"context"
	"encoding/csv"
	"strconv"

	"github.com/chrisdamba/foodvenues/internal/loader"
	"github.com/chrisdamba/foodvenues/internal/models"
)

const csvFile = "venues.csv"

type CSVOutput struct {
	target fileTarget
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{target: localTarget(basePath, folder)}
}

// Path is where the table is written.
func (c *CSVOutput) Path() string {
	return c.target.path(csvFile)
}

func (c *CSVOutput) WriteVenues(ctx context.Context, venues []models.EnrichedVenue) error {
	f, err := c.target.create(ctx, csvFile)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(models.OutputColumns); err != nil {
		f.Close()
		return err
	}
	for i := range venues {
		if err := w.Write(csvRecord(&venues[i])); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func csvRecord(v *models.EnrichedVenue) []string {
	return append(loader.Record(&v.Venue),
		derefString(v.Street),
		strconv.FormatBool(v.Is247),
		loader.FormatOptionalFloat(v.MiddleAvgBill),
		loader.FormatOptionalFloat(v.MiddleCoffeeCup),
	)
}

func (c *CSVOutput) Close() error {
	return nil
}
