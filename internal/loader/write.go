package loader

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/chrisdamba/foodvenues/internal/models"
)

// WriteCSV writes venues in the shape Load reads, header first.
func WriteCSV(w io.Writer, venues []models.Venue) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.InputColumns); err != nil {
		return err
	}
	for i := range venues {
		if err := cw.Write(Record(&venues[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Record renders v as cells ordered like models.InputColumns. Nil values
// become empty cells.
func Record(v *models.Venue) []string {
	return []string{
		v.Name,
		v.Address,
		v.Category,
		deref(v.Hours),
		FormatFloat(v.Lat),
		FormatFloat(v.Lng),
		FormatFloat(v.Rating),
		deref(v.Price),
		deref(v.AvgBill),
		strconv.Itoa(v.Chain),
		v.District,
		FormatOptionalFloat(v.Seats),
	}
}

func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func FormatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return FormatFloat(*f)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
