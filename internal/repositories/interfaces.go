package repositories

import (
	"context"

	"github.com/chrisdamba/foodvenues/internal/models"
)

// VenueRepository stores the enriched venues table. The clean command
// replaces it on every run; the report command can read it back. Rows come
// back in the order they were inserted.
type VenueRepository interface {
	EnsureSchema(ctx context.Context) error
	// ReplaceAll deletes existing rows and inserts venues in one transaction.
	ReplaceAll(ctx context.Context, venues []models.EnrichedVenue) error
	GetAll(ctx context.Context) ([]models.EnrichedVenue, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// VenueTable is the table both backends write to.
const VenueTable = "venues"

// VenueColumns are the stored columns, in the order VenueValues returns them.
var VenueColumns = models.OutputColumns

// VenueValues flattens v into driver values ordered like VenueColumns. Nil
// pointers stay nil so they are stored as NULL.
func VenueValues(v *models.EnrichedVenue) []any {
	return []any{
		v.Name,
		v.Address,
		v.Category,
		v.Hours,
		v.Lat,
		v.Lng,
		v.Rating,
		v.Price,
		v.AvgBill,
		v.Chain,
		v.District,
		v.Seats,
		v.Street,
		v.Is247,
		v.MiddleAvgBill,
		v.MiddleCoffeeCup,
	}
}
