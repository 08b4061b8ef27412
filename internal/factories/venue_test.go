package factories

import (
	"context"
	"reflect"
	"testing"

	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/chrisdamba/foodvenues/internal/pipeline"
)

func TestVenueFactory_Deterministic(t *testing.T) {
	a := NewVenueFactory(7).CreateVenues(50)
	b := NewVenueFactory(7).CreateVenues(50)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different venues")
	}

	c := NewVenueFactory(8).CreateVenues(50)
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds produced identical venues")
	}
}

func TestVenueFactory_Shape(t *testing.T) {
	venues := NewVenueFactory(42).CreateVenues(500)
	if len(venues) != 500 {
		t.Fatalf("len(venues) = %d, want 500", len(venues))
	}

	var chains, allDay, nilBill int
	for i, v := range venues {
		if v.Name == "" || v.Category == "" || v.District == "" {
			t.Errorf("venue %d has empty required field: %+v", i, v)
		}
		if v.Rating < 1 || v.Rating > 5 {
			t.Errorf("venue %d rating = %v, want within [1, 5]", i, v.Rating)
		}
		if v.Lat < 55.5 || v.Lat > 56 || v.Lng < 37.2 || v.Lng > 38 {
			t.Errorf("venue %d location = %+v, want within Moscow", i, v.Location)
		}
		if v.IsChain() {
			chains++
		}
		if v.Hours != nil && *v.Hours == models.AllDayHours {
			allDay++
		}
		if v.AvgBill == nil {
			nilBill++
		}
	}
	if chains == 0 || allDay == 0 || nilBill == 0 {
		t.Errorf("chains=%d allDay=%d nilBill=%d, want all > 0", chains, allDay, nilBill)
	}
}

func TestVenueFactory_CleansWithoutErrors(t *testing.T) {
	venues := NewVenueFactory(1).CreateVenues(1000)

	table, err := pipeline.New().Run(context.Background(), venues)
	if err != nil {
		t.Fatalf("Run returned unexpected error: %v", err)
	}
	s := table.Stats
	if s.Rows != 1000 {
		t.Errorf("Stats.Rows = %d, want 1000", s.Rows)
	}
	if s.AverageBill == 0 || s.CoffeeCup == 0 || s.UnrecognizedBill == 0 || s.PriceParseErrors == 0 {
		t.Errorf("Stats = %+v, want every bill outcome represented", s)
	}
	if s.MalformedAddress == 0 || s.MalformedAddress > 100 {
		t.Errorf("Stats.MalformedAddress = %d, want a few", s.MalformedAddress)
	}
}
