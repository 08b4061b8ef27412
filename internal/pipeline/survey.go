package pipeline

import (
	"strconv"
	"strings"

	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/zeebo/xxh3"
)

// Quality summarizes the raw table before enrichment: missing values,
// exact duplicate rows, and how many distinct names collapse under
// normalization.
type Quality struct {
	Rows                    int            `json:"rows"`
	Missing                 map[string]int `json:"missing"`
	ExactDuplicates         int            `json:"exact_duplicates"`
	DistinctNamesRaw        int            `json:"distinct_names_raw"`
	DistinctNamesNormalized int            `json:"distinct_names_normalized"`
}

// LogArgs flattens the survey into slog key/value pairs.
func (q Quality) LogArgs() []any {
	args := []any{
		"rows", q.Rows,
		"exact_duplicates", q.ExactDuplicates,
		"distinct_names_raw", q.DistinctNamesRaw,
		"distinct_names_normalized", q.DistinctNamesNormalized,
	}
	for _, col := range models.InputColumns {
		if n := q.Missing[col]; n > 0 {
			args = append(args, "missing_"+col, n)
		}
	}
	return args
}

// Survey inspects venues without modifying them.
func Survey(venues []models.Venue) Quality {
	q := Quality{
		Rows:    len(venues),
		Missing: make(map[string]int),
	}

	normalizer := NewNameNormalizer()
	seenRows := make(map[uint64]struct{}, len(venues))
	rawNames := make(map[string]struct{})
	normNames := make(map[string]struct{})

	for i := range venues {
		v := &venues[i]

		countMissing(q.Missing, models.ColumnName, v.Name == "")
		countMissing(q.Missing, models.ColumnAddress, v.Address == "")
		countMissing(q.Missing, models.ColumnCategory, v.Category == "")
		countMissing(q.Missing, models.ColumnHours, v.Hours == nil)
		countMissing(q.Missing, models.ColumnPrice, v.Price == nil)
		countMissing(q.Missing, models.ColumnAvgBill, v.AvgBill == nil)
		countMissing(q.Missing, models.ColumnDistrict, v.District == "")
		countMissing(q.Missing, models.ColumnSeats, v.Seats == nil)

		h := rowHash(v)
		if _, dup := seenRows[h]; dup {
			q.ExactDuplicates++
		} else {
			seenRows[h] = struct{}{}
		}

		rawNames[v.Name] = struct{}{}
		normNames[normalizer.Normalize(v.Name)] = struct{}{}
	}

	q.DistinctNamesRaw = len(rawNames)
	q.DistinctNamesNormalized = len(normNames)
	return q
}

func countMissing(m map[string]int, column string, missing bool) {
	if missing {
		m[column]++
	}
}

// rowHash hashes every field of v; nil values hash differently from empty strings.
func rowHash(v *models.Venue) uint64 {
	var b strings.Builder
	field := func(s string) {
		b.WriteString(s)
		b.WriteByte('\x1f')
	}
	optional := func(s *string) {
		if s == nil {
			field("\x00")
			return
		}
		field(*s)
	}
	number := func(f float64) {
		field(strconv.FormatFloat(f, 'g', -1, 64))
	}

	field(v.Name)
	field(v.Address)
	field(v.Category)
	optional(v.Hours)
	number(v.Lat)
	number(v.Lng)
	number(v.Rating)
	optional(v.Price)
	optional(v.AvgBill)
	field(strconv.Itoa(v.Chain))
	field(v.District)
	if v.Seats == nil {
		field("\x00")
	} else {
		number(*v.Seats)
	}

	return xxh3.HashString(b.String())
}
