package analytics

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// newFrame loads the columns the aggregations use. Missing numeric values
// become NaN, which gota reports as NA; missing text becomes "".
func newFrame(rows []models.EnrichedVenue) dataframe.DataFrame {
	n := len(rows)
	var (
		name     = make([]string, n)
		category = make([]string, n)
		district = make([]string, n)
		street   = make([]string, n)
		price    = make([]string, n)
		chain    = make([]int, n)
		allDay   = make([]bool, n)
		rating   = make([]float64, n)
		seats    = make([]float64, n)
		avgBill  = make([]float64, n)
		cup      = make([]float64, n)
	)
	for i := range rows {
		v := &rows[i]
		name[i] = v.Name
		category[i] = v.Category
		district[i] = v.District
		street[i] = orEmpty(v.Street)
		price[i] = orEmpty(v.Price)
		chain[i] = v.Chain
		allDay[i] = v.Is247
		rating[i] = v.Rating
		seats[i] = orNaN(v.Seats)
		avgBill[i] = orNaN(v.MiddleAvgBill)
		cup[i] = orNaN(v.MiddleCoffeeCup)
	}

	return dataframe.New(
		series.New(name, series.String, models.ColumnName),
		series.New(category, series.String, models.ColumnCategory),
		series.New(district, series.String, models.ColumnDistrict),
		series.New(street, series.String, models.ColumnStreet),
		series.New(price, series.String, models.ColumnPrice),
		series.New(chain, series.Int, models.ColumnChain),
		series.New(allDay, series.Bool, models.ColumnIs247),
		series.New(rating, series.Float, models.ColumnRating),
		series.New(seats, series.Float, models.ColumnSeats),
		series.New(avgBill, series.Float, models.ColumnMiddleAvgBill),
		series.New(cup, series.Float, models.ColumnMiddleCoffeeCup),
	)
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orNaN(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}

func notNA(el series.Element) bool {
	return !el.IsNA()
}

func nonEmpty(el series.Element) bool {
	return !el.IsNA() && el.String() != ""
}

// where keeps the rows whose column satisfies keep.
func where(df dataframe.DataFrame, column string, keep func(series.Element) bool) dataframe.DataFrame {
	if df.Nrow() == 0 {
		return df
	}
	return df.Filter(dataframe.F{Colname: column, Comparator: series.CompFunc, Comparando: keep})
}

func equals(df dataframe.DataFrame, column string, value any) dataframe.DataFrame {
	if df.Nrow() == 0 {
		return df
	}
	return df.Filter(dataframe.F{Colname: column, Comparator: series.Eq, Comparando: value})
}

type agg struct {
	column string
	typ    dataframe.AggregationType
	header string
}

func count(column, header string) agg {
	return agg{column: column, typ: dataframe.Aggregation_COUNT, header: header}
}

func mean(column, header string) agg {
	return agg{column: column, typ: dataframe.Aggregation_MEAN, header: header}
}

func median(column, header string) agg {
	return agg{column: column, typ: dataframe.Aggregation_MEDIAN, header: header}
}

func (a agg) key() string {
	return fmt.Sprintf("%s_%s", a.column, a.typ)
}

// grouped aggregates df by the label columns. Rows are ordered by the first
// aggregate descending, ties broken by the labels ascending. Counts come out
// as ints and everything else is rounded to two decimals.
func grouped(name, title string, df dataframe.DataFrame, by []string, aggs ...agg) (Table, error) {
	t := Table{Name: name, Title: title, Rows: [][]any{}}
	t.Columns = append(t.Columns, by...)
	for _, a := range aggs {
		t.Columns = append(t.Columns, a.header)
	}

	needed := append([]string{}, by...)
	for _, a := range aggs {
		if !slices.Contains(needed, a.column) {
			needed = append(needed, a.column)
		}
	}
	sub := df.Select(needed)
	for _, a := range aggs {
		if a.typ != dataframe.Aggregation_COUNT {
			sub = where(sub, a.column, notNA)
		}
	}
	if sub.Err != nil {
		return t, fmt.Errorf("%s: %w", name, sub.Err)
	}
	if sub.Nrow() == 0 {
		return t, nil
	}

	typs := make([]dataframe.AggregationType, len(aggs))
	cols := make([]string, len(aggs))
	for i, a := range aggs {
		typs[i] = a.typ
		cols[i] = a.column
	}
	groups := sub.GroupBy(by...)
	if groups.Err != nil {
		return t, fmt.Errorf("%s: %w", name, groups.Err)
	}
	res := groups.Aggregation(typs, cols)
	if res.Err != nil {
		return t, fmt.Errorf("%s: %w", name, res.Err)
	}

	labels := make([][]string, len(by))
	for i, b := range by {
		labels[i] = res.Col(b).Records()
	}
	values := make([][]float64, len(aggs))
	for i, a := range aggs {
		values[i] = res.Col(a.key()).Float()
	}

	for r := 0; r < res.Nrow(); r++ {
		row := make([]any, 0, len(t.Columns))
		for i := range by {
			row = append(row, labels[i][r])
		}
		for i, a := range aggs {
			if a.typ == dataframe.Aggregation_COUNT {
				row = append(row, int(values[i][r]))
			} else {
				row = append(row, round2(values[i][r]))
			}
		}
		t.Rows = append(t.Rows, row)
	}
	sortRows(t.Rows, len(by))
	return t, nil
}

// sortRows orders rows by the column at index valueAt descending, then by the
// preceding label columns ascending.
func sortRows(rows [][]any, valueAt int) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := toFloat(rows[i][valueAt]), toFloat(rows[j][valueAt])
		if a != b {
			return a > b
		}
		for k := 0; k < valueAt; k++ {
			la, lb := fmt.Sprint(rows[i][k]), fmt.Sprint(rows[j][k])
			if la != lb {
				return la < lb
			}
		}
		return false
	})
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
