// Package sqlite stores the enriched venues table in a SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/chrisdamba/foodvenues/internal/repositories"

	_ "modernc.org/sqlite"
)

const createVenues = `
    CREATE TABLE IF NOT EXISTS venues (
        id INTEGER PRIMARY KEY,
        name TEXT NOT NULL,
        address TEXT NOT NULL,
        category TEXT NOT NULL,
        hours TEXT,
        lat REAL NOT NULL,
        lng REAL NOT NULL,
        rating REAL NOT NULL,
        price TEXT,
        avg_bill TEXT,
        chain INTEGER NOT NULL,
        district TEXT NOT NULL,
        seats REAL,
        street TEXT,
        is_24_7 INTEGER NOT NULL,
        middle_avg_bill REAL,
        middle_coffee_cup REAL,
        CHECK (middle_avg_bill IS NULL OR middle_coffee_cup IS NULL)
    )`

type VenueRepository struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path.
func Open(ctx context.Context, path string) (*VenueRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite: path must not be empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// one writer; SQLite serializes writes anyway
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return &VenueRepository{db: db}, nil
}

func (r *VenueRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createVenues); err != nil {
		return fmt.Errorf("sqlite: create venues: %w", err)
	}
	return nil
}

func (r *VenueRepository) ReplaceAll(ctx context.Context, venues []models.EnrichedVenue) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM venues"); err != nil {
		return fmt.Errorf("sqlite: delete venues: %w", err)
	}
	if err := insertVenues(ctx, tx, venues); err != nil {
		return err
	}
	return tx.Commit()
}

func insertVenues(ctx context.Context, tx *sql.Tx, venues []models.EnrichedVenue) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(repositories.VenueColumns)), ", ")
	stmtSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		repositories.VenueTable,
		strings.Join(repositories.VenueColumns, ", "),
		placeholders,
	)

	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		return fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range venues {
		if _, err := stmt.ExecContext(ctx, repositories.VenueValues(&venues[i])...); err != nil {
			return fmt.Errorf("sqlite: insert row %d: %w", i, err)
		}
	}
	return nil
}

func (r *VenueRepository) GetAll(ctx context.Context) ([]models.EnrichedVenue, error) {
	query := fmt.Sprintf("SELECT %s FROM venues ORDER BY id", strings.Join(repositories.VenueColumns, ", "))
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []models.EnrichedVenue
	for rows.Next() {
		var v models.EnrichedVenue
		err := rows.Scan(
			&v.Name,
			&v.Address,
			&v.Category,
			&v.Hours,
			&v.Lat,
			&v.Lng,
			&v.Rating,
			&v.Price,
			&v.AvgBill,
			&v.Chain,
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
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *VenueRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM venues").Scan(&count)
	return count, err
}

func (r *VenueRepository) Close() error {
	return r.db.Close()
}
