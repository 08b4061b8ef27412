package output

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/chrisdamba/foodvenues/internal/repositories"
	"github.com/chrisdamba/foodvenues/internal/repositories/postgres"
	"github.com/chrisdamba/foodvenues/internal/repositories/sqlite"
)

// RepositoryOutput replaces the contents of a venues table on every run.
type RepositoryOutput struct {
	repo repositories.VenueRepository
}

func NewRepositoryOutput(repo repositories.VenueRepository) *RepositoryOutput {
	return &RepositoryOutput{repo: repo}
}

func (r *RepositoryOutput) WriteVenues(ctx context.Context, venues []models.EnrichedVenue) error {
	if err := r.repo.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := r.repo.ReplaceAll(ctx, venues); err != nil {
		return fmt.Errorf("failed to store venues: %w", err)
	}
	n, err := r.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count stored venues: %w", err)
	}
	if n != len(venues) {
		return fmt.Errorf("stored %d venues, want %d", n, len(venues))
	}
	return nil
}

// OpenRepository connects to the store selected by kind, which is
// models.OutputFormatSQLite or models.OutputFormatPostgres.
func OpenRepository(ctx context.Context, kind string, db models.DatabaseConfig) (repositories.VenueRepository, error) {
	switch kind {
	case models.OutputFormatSQLite:
		repo, err := sqlite.Open(ctx, db.SQLitePath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case models.OutputFormatPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, db.ConnectTimeout)
		defer cancel()
		pool, err := postgres.Connect(connectCtx, db.URL)
		if err != nil {
			return nil, err
		}
		return postgres.NewVenueRepository(pool), nil
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidOutputFormat, kind)
	}
}

func (r *RepositoryOutput) Close() error {
	return r.repo.Close()
}
