// Package loader reads the raw venues table from CSV.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chrisdamba/foodvenues/internal/models"
)

var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrInvalidValue   = errors.New("invalid value")
)

const bom = "\ufeff"

// Load reads venues from r. The header row must carry every column in
// models.InputColumns; extra columns are ignored.
func Load(r io.Reader, delimiter rune) ([]models.Venue, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrMissingColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var venues []models.Venue
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}

		v, err := parseRecord(record, index, line)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		h = strings.ToLower(strings.TrimSpace(h))
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}

	var missing []string
	for _, col := range models.InputColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return index, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// row gives typed access to the cells of one record.
type row struct {
	record []string
	index  map[string]int
	line   int
}

func (r row) text(col string) string {
	i := r.index[col]
	if i >= len(r.record) {
		return ""
	}
	return r.record[i]
}

func (r row) optional(col string) *string {
	s := r.text(col)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func (r row) float(col string) (float64, error) {
	s := strings.TrimSpace(r.text(col))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, r.invalid(col, s)
	}
	return f, nil
}

func (r row) optionalFloat(col string) (*float64, error) {
	s := strings.TrimSpace(r.text(col))
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, r.invalid(col, s)
	}
	return &f, nil
}

func (r row) flag(col string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(r.text(col)))
	switch s {
	case "1", "1.0", "true":
		return 1, nil
	case "0", "0.0", "false":
		return 0, nil
	}
	return 0, r.invalid(col, s)
}

func (r row) invalid(col, value string) error {
	return fmt.Errorf("%w: line %d column %s: %q", ErrInvalidValue, r.line, col, value)
}

func parseRecord(record []string, index map[string]int, line int) (models.Venue, error) {
	r := row{record: record, index: index, line: line}

	v := models.Venue{
		Name:     r.text(models.ColumnName),
		Address:  r.text(models.ColumnAddress),
		Category: r.text(models.ColumnCategory),
		Hours:    r.optional(models.ColumnHours),
		Price:    r.optional(models.ColumnPrice),
		AvgBill:  r.optional(models.ColumnAvgBill),
		District: r.text(models.ColumnDistrict),
	}

	var err error
	if v.Lat, err = r.float(models.ColumnLat); err != nil {
		return v, err
	}
	if v.Lng, err = r.float(models.ColumnLng); err != nil {
		return v, err
	}
	if v.Rating, err = r.float(models.ColumnRating); err != nil {
		return v, err
	}
	if v.Chain, err = r.flag(models.ColumnChain); err != nil {
		return v, err
	}
	if v.Seats, err = r.optionalFloat(models.ColumnSeats); err != nil {
		return v, err
	}
	return v, nil
}
