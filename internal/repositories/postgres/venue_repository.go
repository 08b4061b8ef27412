package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/chrisdamba/foodvenues/internal/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createPostGIS = `CREATE EXTENSION IF NOT EXISTS postgis`

const createVenues = `
    CREATE TABLE IF NOT EXISTS venues (
        id bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
        name text NOT NULL,
        address text NOT NULL,
        category text NOT NULL,
        hours text,
        lat double precision NOT NULL,
        lng double precision NOT NULL,
        location geography(Point, 4326)
            GENERATED ALWAYS AS (ST_SetSRID(ST_MakePoint(lng, lat), 4326)::geography) STORED,
        rating double precision NOT NULL,
        price text,
        avg_bill text,
        chain smallint NOT NULL,
        district text NOT NULL,
        seats double precision,
        street text,
        is_24_7 boolean NOT NULL,
        middle_avg_bill double precision,
        middle_coffee_cup double precision,
        CHECK (middle_avg_bill IS NULL OR middle_coffee_cup IS NULL)
    )`

type VenueRepository struct {
	pool *pgxpool.Pool
}

func NewVenueRepository(pool *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{pool: pool}
}

// Connect opens a pool for url and pings it.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return pool, nil
}

func (r *VenueRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createPostGIS); err != nil {
		return fmt.Errorf("postgres: create postgis extension: %w", err)
	}
	if _, err := r.pool.Exec(ctx, createVenues); err != nil {
		return fmt.Errorf("postgres: create venues: %w", err)
	}
	return nil
}

func (r *VenueRepository) ReplaceAll(ctx context.Context, venues []models.EnrichedVenue) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE venues RESTART IDENTITY"); err != nil {
		return fmt.Errorf("postgres: truncate venues: %w", err)
	}
	if err := copyVenues(ctx, tx, venues); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func copyVenues(ctx context.Context, tx pgx.Tx, venues []models.EnrichedVenue) error {
	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{repositories.VenueTable},
		repositories.VenueColumns,
		pgx.CopyFromSlice(len(venues), func(i int) ([]any, error) {
			return repositories.VenueValues(&venues[i]), nil
		}),
	)
	if err != nil {
		return fmt.Errorf("postgres: copy venues: %w", err)
	}
	if int(n) != len(venues) {
		return fmt.Errorf("postgres: copied %d venues, want %d", n, len(venues))
	}
	return nil
}

func (r *VenueRepository) GetAll(ctx context.Context) ([]models.EnrichedVenue, error) {
	// location is read back through ST_AsText so the stored point, not the
	// raw lat/lng columns, is what callers see.
	cols := make([]string, 0, len(repositories.VenueColumns))
	for _, c := range repositories.VenueColumns {
		switch c {
		case models.ColumnLat:
			cols = append(cols, "ST_AsText(location)")
		case models.ColumnLng:
		default:
			cols = append(cols, c)
		}
	}
	query := fmt.Sprintf("SELECT %s FROM venues ORDER BY id", strings.Join(cols, ", "))

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []models.EnrichedVenue
	for rows.Next() {
		var v models.EnrichedVenue
		var chain int16
		err := rows.Scan(
			&v.Name,
			&v.Address,
			&v.Category,
			&v.Hours,
			&v.Location,
			&v.Rating,
			&v.Price,
			&v.AvgBill,
			&chain,
			&v.District,
			&v.Seats,
			&v.Street,
			&v.Is247,
			&v.MiddleAvgBill,
			&v.MiddleCoffeeCup,
		)
		if err != nil {
			return nil, err
		}
		v.Chain = int(chain)
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *VenueRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM venues").Scan(&count)
	return count, err
}

func (r *VenueRepository) Close() error {
	r.pool.Close()
	return nil
}
