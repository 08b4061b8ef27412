package analytics

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/xuri/excelize/v2"
)

func venue(name, category, district, street string, chain int, rating float64) models.EnrichedVenue {
	v := models.EnrichedVenue{Venue: models.Venue{
		Name: name, Category: category, District: district, Chain: chain, Rating: rating,
	}}
	if street != "" {
		v.Street = &street
	}
	return v
}

func fp(f float64) *float64 { return &f }
func sp(s string) *string   { return &s }

func sampleRows() []models.EnrichedVenue {
	rows := []models.EnrichedVenue{
		venue("КОФЕМАНИЯ", "кофейня", "ЦАО", "Тверская улица", 1, 4.6),
		venue("КОФЕМАНИЯ", "кофейня", "САО", "Ленинградское шоссе", 1, 4.4),
		venue("ДАБЛБИ", "кофейня", "ЦАО", "Тверская улица", 0, 4.8),
		venue("ШОКОЛАДНИЦА", "кафе", "ЦАО", "улица Арбат", 1, 4.1),
		venue("ТЕРЕМОК", "быстрое питание", "САО", "", 0, 3.9),
	}
	rows[0].Is247 = true
	rows[0].MiddleCoffeeCup = fp(175)
	rows[0].Seats = fp(40)
	rows[1].MiddleCoffeeCup = fp(200)
	rows[2].MiddleCoffeeCup = fp(150)
	rows[2].Seats = fp(20)
	rows[3].MiddleAvgBill = fp(1250)
	rows[3].Price = sp("средние")
	rows[4].MiddleAvgBill = fp(400)
	rows[4].Price = sp("низкие")
	return rows
}

func build(t *testing.T) *Report {
	t.Helper()
	r, err := Build(sampleRows(), Options{TopN: 2, CoffeeCategory: "кофейня"})
	if err != nil {
		t.Fatalf("Build returned unexpected error: %v", err)
	}
	return r
}

func mustTable(t *testing.T, r *Report, name string) *Table {
	t.Helper()
	tbl := r.Table(name)
	if tbl == nil {
		t.Fatalf("table %s missing", name)
	}
	return tbl
}

func TestBuild_Counts(t *testing.T) {
	r := build(t)

	if r.Rows != 5 {
		t.Errorf("Rows = %d, want 5", r.Rows)
	}

	cats := mustTable(t, r, "category_counts")
	want := [][]any{{"кофейня", 3}, {"быстрое питание", 1}, {"кафе", 1}}
	if !equalRows(cats.Rows, want) {
		t.Errorf("category_counts = %v, want %v", cats.Rows, want)
	}

	chains := mustTable(t, r, "top_chains")
	if len(chains.Rows) != 2 || chains.Rows[0][0] != "КОФЕМАНИЯ" || chains.Rows[0][1] != 2 {
		t.Errorf("top_chains = %v", chains.Rows)
	}

	streets := mustTable(t, r, "top_streets")
	if len(streets.Rows) != 2 || streets.Rows[0][0] != "Тверская улица" || streets.Rows[0][1] != 2 {
		t.Errorf("top_streets = %v", streets.Rows)
	}

	lonely := mustTable(t, r, "single_venue_streets_by_district")
	wantLonely := [][]any{{"САО", 1}, {"ЦАО", 1}}
	if !equalRows(lonely.Rows, wantLonely) {
		t.Errorf("single_venue_streets_by_district = %v, want %v", lonely.Rows, wantLonely)
	}

	prices := mustTable(t, r, "price_category_counts")
	if len(prices.Rows) != 2 {
		t.Errorf("price_category_counts = %v, want 2 rows", prices.Rows)
	}
}

func TestBuild_ChainShare(t *testing.T) {
	r := build(t)
	share := mustTable(t, r, "chain_share_by_category")
	want := [][]any{
		{"кафе", 1, 1, 100.0},
		{"кофейня", 2, 3, 66.67},
		{"быстрое питание", 0, 1, 0.0},
	}
	if !equalRows(share.Rows, want) {
		t.Errorf("chain_share_by_category = %v, want %v", share.Rows, want)
	}
}

func TestBuild_Aggregates(t *testing.T) {
	r := build(t)

	seats := mustTable(t, r, "median_seats_by_category")
	if !equalRows(seats.Rows, [][]any{{"кофейня", 30.0}}) {
		t.Errorf("median_seats_by_category = %v", seats.Rows)
	}

	bills := mustTable(t, r, "avg_bill_by_district")
	if !equalRows(bills.Rows, [][]any{{"ЦАО", 1250.0}, {"САО", 400.0}}) {
		t.Errorf("avg_bill_by_district = %v", bills.Rows)
	}

	ratings := mustTable(t, r, "rating_by_category")
	if ratings.Rows[0][0] != "кофейня" || ratings.Rows[0][1] != 4.6 {
		t.Errorf("rating_by_category = %v", ratings.Rows)
	}
}

func TestBuild_Coffee(t *testing.T) {
	r := build(t)

	cups := mustTable(t, r, "coffee_cup_by_district")
	want := [][]any{{"САО", 200.0, 200.0}, {"ЦАО", 162.5, 162.5}}
	if !equalRows(cups.Rows, want) {
		t.Errorf("coffee_cup_by_district = %v, want %v", cups.Rows, want)
	}

	allDay := mustTable(t, r, "coffee_all_day")
	if !equalRows(allDay.Rows, [][]any{{"false", 2}, {"true", 1}}) {
		t.Errorf("coffee_all_day = %v", allDay.Rows)
	}
}

func TestBuild_Empty(t *testing.T) {
	r, err := Build(nil, Options{CoffeeCategory: "кофейня"})
	if err != nil {
		t.Fatalf("Build returned unexpected error: %v", err)
	}
	for _, tbl := range r.Tables {
		if len(tbl.Rows) != 0 {
			t.Errorf("table %s has %d rows, want 0", tbl.Name, len(tbl.Rows))
		}
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderText(&buf, build(t)); err != nil {
		t.Fatalf("RenderText returned unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"venues: 5", "Venues by category", "кофейня", "66.67"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderText output missing %q", want)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderJSON(&buf, build(t)); err != nil {
		t.Fatalf("RenderJSON returned unexpected error: %v", err)
	}
	var got Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Rows != 5 || got.Table("category_counts") == nil {
		t.Errorf("decoded report = %+v", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	r := build(t)
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, r); err != nil {
		t.Fatalf("WriteXLSX returned unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if n := len(f.GetSheetList()); n != len(r.Tables) {
		t.Errorf("sheets = %d, want %d", n, len(r.Tables))
	}
	v, err := f.GetCellValue("category_counts", "A2")
	if err != nil || v != "кофейня" {
		t.Errorf("category_counts!A2 = %q, %v", v, err)
	}
}

func equalRows(got, want [][]any) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if len(got[i]) != len(want[i]) {
			return false
		}
		for j := range got[i] {
			if got[i][j] != want[i][j] {
				return false
			}
		}
	}
	return true
}
