package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/chrisdamba/foodvenues/internal/repositories"
)

var _ repositories.VenueRepository = (*VenueRepository)(nil)

func openTest(t *testing.T) *VenueRepository {
	t.Helper()
	repo, err := Open(context.Background(), filepath.Join(t.TempDir(), "venues.db"))
	if err != nil {
		t.Fatalf("Open returned unexpected error: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema returned unexpected error: %v", err)
	}
	return repo
}

func sampleRows() []models.EnrichedVenue {
	hours := "ежедневно, круглосуточно"
	street := "Проспект Мира"
	cup := 175.0
	seats := 40.0
	return []models.EnrichedVenue{
		{
			Venue: models.Venue{
				Name: "КОФЕМАНИЯ", Address: "Москва, Проспект Мира, 10", Category: "кофейня", Hours: &hours,
				Location: models.Location{Lat: 55.78, Lng: 37.63}, Rating: 4.5, Chain: 1,
				District: "ЦАО", Seats: &seats,
			},
			Street: &street, Is247: true, MiddleCoffeeCup: &cup,
		},
		{Venue: models.Venue{Name: "БАР", Address: "Москва", Category: "бар,паб", Rating: 4.0, District: "САО"}},
	}
}

func TestVenueRepository_RoundTrip(t *testing.T) {
	repo := openTest(t)
	ctx := context.Background()
	rows := sampleRows()

	if err := repo.ReplaceAll(ctx, rows); err != nil {
		t.Fatalf("ReplaceAll returned unexpected error: %v", err)
	}

	got, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll returned unexpected error: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("len(GetAll) = %d, want %d", len(got), len(rows))
	}

	first := got[0]
	if first.Name != "КОФЕМАНИЯ" || first.Chain != 1 || !first.Is247 {
		t.Errorf("first = %+v", first)
	}
	if first.Lat != 55.78 || first.Lng != 37.63 {
		t.Errorf("first.Location = %+v", first.Location)
	}
	if first.Street == nil || *first.Street != "Проспект Мира" {
		t.Errorf("first.Street = %v", first.Street)
	}
	if first.MiddleCoffeeCup == nil || *first.MiddleCoffeeCup != 175 || first.MiddleAvgBill != nil {
		t.Errorf("first bill fields = %v %v", first.MiddleAvgBill, first.MiddleCoffeeCup)
	}
	if first.Seats == nil || *first.Seats != 40 {
		t.Errorf("first.Seats = %v", first.Seats)
	}

	second := got[1]
	if second.Hours != nil || second.Street != nil || second.Seats != nil || second.Is247 {
		t.Errorf("second = %+v, want nulls and false", second)
	}
}

func TestVenueRepository_ReplaceAll(t *testing.T) {
	repo := openTest(t)
	ctx := context.Background()
	rows := sampleRows()

	if err := repo.ReplaceAll(ctx, rows); err != nil {
		t.Fatal(err)
	}
	if err := repo.ReplaceAll(ctx, rows[1:]); err != nil {
		t.Fatalf("ReplaceAll returned unexpected error: %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}

	if err := repo.ReplaceAll(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Errorf("Count after empty ReplaceAll = %d, want 0", n)
	}
}

func TestVenueRepository_RejectsBothBillEstimates(t *testing.T) {
	repo := openTest(t)
	v := 1.0
	bad := []models.EnrichedVenue{{
		Venue:           models.Venue{Name: "X", Address: "Москва, a", Category: "кафе", District: "ЦАО"},
		MiddleAvgBill:   &v,
		MiddleCoffeeCup: &v,
	}}
	if err := repo.ReplaceAll(context.Background(), bad); err == nil {
		t.Error("ReplaceAll expected CHECK constraint error")
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(context.Background(), " "); err == nil {
		t.Error("Open expected error for empty path")
	}
}
