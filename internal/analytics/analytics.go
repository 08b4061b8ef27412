// Package analytics aggregates the enriched venues table into the summary
// tables of the market overview report.
package analytics

import (
	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table is one labelled summary. Rows hold strings for labels, ints for
// counts and float64 for everything else.
type Table struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

type Report struct {
	Rows   int     `json:"rows"`
	Tables []Table `json:"tables"`
}

// Table returns the table with the given name, or nil.
func (r *Report) Table(name string) *Table {
	for i := range r.Tables {
		if r.Tables[i].Name == name {
			return &r.Tables[i]
		}
	}
	return nil
}

type Options struct {
	TopN           int
	CoffeeCategory string
}

type builder struct {
	df     dataframe.DataFrame
	opts   Options
	tables []Table
	err    error
}

func (b *builder) add(t Table, err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = err
		return
	}
	b.tables = append(b.tables, t)
}

// addTop keeps only the first TopN rows of t.
func (b *builder) addTop(t Table, err error) {
	t.truncate(b.opts.TopN)
	b.add(t, err)
}

// Build computes every summary table over rows.
func Build(rows []models.EnrichedVenue, opts Options) (*Report, error) {
	if opts.TopN <= 0 {
		opts.TopN = 15
	}
	b := &builder{df: newFrame(rows), opts: opts}
	if b.df.Err != nil {
		return nil, b.df.Err
	}

	b.categories()
	b.chains()
	b.districts()
	b.ratings()
	b.streets(rows)
	b.bills()
	b.coffee()
	if b.err != nil {
		return nil, b.err
	}
	return &Report{Rows: len(rows), Tables: b.tables}, nil
}

const (
	colCount = "count"
	colRatio = "chain_share_pct"
)

func (b *builder) categories() {
	cat := []string{models.ColumnCategory}
	b.add(grouped("category_counts", "Venues by category", b.df, cat,
		count(models.ColumnName, colCount)))
	b.add(grouped("median_seats_by_category", "Median seats by category", b.df, cat,
		median(models.ColumnSeats, "median_seats")))
	b.add(grouped("all_day_by_category", "24/7 venues by category", b.df,
		[]string{models.ColumnCategory, models.ColumnIs247},
		count(models.ColumnName, colCount)))
	b.add(grouped("price_category_counts", "Venues by price category",
		where(b.df, models.ColumnPrice, nonEmpty), []string{models.ColumnPrice},
		count(models.ColumnName, colCount)))
}

func (b *builder) chains() {
	all, err := grouped("chain_counts", "Chain and independent venues", b.df,
		[]string{models.ColumnChain}, count(models.ColumnName, colCount))
	b.add(all, err)
	if err != nil {
		return
	}

	perCategory, err := grouped("", "", b.df, []string{models.ColumnCategory}, count(models.ColumnName, colCount))
	if err != nil {
		b.add(Table{}, err)
		return
	}
	chainOnly := equals(b.df, models.ColumnChain, 1)
	chainPerCategory, err := grouped("", "", chainOnly, []string{models.ColumnCategory}, count(models.ColumnName, colCount))
	if err != nil {
		b.add(Table{}, err)
		return
	}
	b.add(chainShare(perCategory, chainPerCategory), nil)

	b.addTop(grouped("top_chains", "Largest chains", chainOnly,
		[]string{models.ColumnName}, count(models.ColumnCategory, colCount)))
}

// chainShare joins per-category totals with per-category chain counts.
func chainShare(all, chain Table) Table {
	chainCount := make(map[string]int, len(chain.Rows))
	for _, r := range chain.Rows {
		chainCount[r[0].(string)] = r[1].(int)
	}

	t := Table{
		Name:    "chain_share_by_category",
		Title:   "Share of chain venues by category",
		Columns: []string{models.ColumnCategory, "count_chain", "count_all", colRatio},
		Rows:    [][]any{},
	}
	for _, r := range all.Rows {
		category, total := r[0].(string), r[1].(int)
		n := chainCount[category]
		t.Rows = append(t.Rows, []any{category, n, total, round2(float64(n) / float64(total) * 100)})
	}
	sortRows(t.Rows, 3)
	return t
}

func (b *builder) districts() {
	b.add(grouped("district_category_counts", "Venues by district and category", b.df,
		[]string{models.ColumnDistrict, models.ColumnCategory},
		count(models.ColumnName, colCount)))
}

func (b *builder) ratings() {
	b.add(grouped("rating_by_category", "Mean rating by category", b.df,
		[]string{models.ColumnCategory}, mean(models.ColumnRating, "mean_rating")))
	b.add(grouped("rating_by_district", "Mean rating by district", b.df,
		[]string{models.ColumnDistrict}, mean(models.ColumnRating, "mean_rating")))
}

func (b *builder) streets(rows []models.EnrichedVenue) {
	withStreet := where(b.df, models.ColumnStreet, nonEmpty)
	b.addTop(grouped("top_streets", "Streets with the most venues", withStreet,
		[]string{models.ColumnStreet}, count(models.ColumnName, colCount)))

	perStreet := make(map[string]int)
	for i := range rows {
		if rows[i].Street != nil {
			perStreet[*rows[i].Street]++
		}
	}
	lonely := where(withStreet, models.ColumnStreet, func(el series.Element) bool {
		return perStreet[el.String()] == 1
	})
	b.add(grouped("single_venue_streets_by_district", "Streets with a single venue by district", lonely,
		[]string{models.ColumnDistrict}, count(models.ColumnStreet, "streets")))
}

func (b *builder) bills() {
	b.add(grouped("avg_bill_by_district", "Median average bill by district", b.df,
		[]string{models.ColumnDistrict}, median(models.ColumnMiddleAvgBill, "median_avg_bill")))
}

func (b *builder) coffee() {
	shops := equals(b.df, models.ColumnCategory, b.opts.CoffeeCategory)
	b.add(grouped("coffee_by_district", "Coffee shops by district", shops,
		[]string{models.ColumnDistrict}, count(models.ColumnName, colCount)))
	b.add(grouped("coffee_all_day", "Coffee shops open 24/7", shops,
		[]string{models.ColumnIs247}, count(models.ColumnName, colCount)))
	b.add(grouped("coffee_rating_by_district", "Coffee shop mean rating by district", shops,
		[]string{models.ColumnDistrict}, mean(models.ColumnRating, "mean_rating")))
	b.add(grouped("coffee_cup_by_district", "Cappuccino price by district", shops,
		[]string{models.ColumnDistrict},
		median(models.ColumnMiddleCoffeeCup, "median_coffee_cup"),
		mean(models.ColumnMiddleCoffeeCup, "mean_coffee_cup")))
}

func (t *Table) truncate(n int) {
	if n > 0 && len(t.Rows) > n {
		t.Rows = t.Rows[:n]
	}
}
