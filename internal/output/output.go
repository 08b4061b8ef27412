// Package output writes the enriched venues table to its configured
// destination.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chrisdamba/foodvenues/internal/cloudwriter"
	"github.com/chrisdamba/foodvenues/internal/models"
)

type OutputDestination interface {
	WriteVenues(ctx context.Context, venues []models.EnrichedVenue) error
	Close() error
}

// Location of a file written by a file-based output: either a local
// directory or a bucket prefix.
type fileTarget struct {
	dir string

	factory cloudwriter.CloudWriterFactory
	bucket  string
	folder  string
	runID   string
}

func localTarget(basePath, folder string) fileTarget {
	return fileTarget{dir: filepath.Join(basePath, folder)}
}

func cloudTarget(factory cloudwriter.CloudWriterFactory, bucket, folder, runID string) fileTarget {
	return fileTarget{factory: factory, bucket: bucket, folder: folder, runID: runID}
}

func (t fileTarget) isCloud() bool {
	return t.factory != nil
}

// path returns where name ends up, for logging.
func (t fileTarget) path(name string) string {
	if t.isCloud() {
		return fmt.Sprintf("s3://%s/%s", t.bucket, cloudwriter.ObjectKey(t.folder, t.runID, name))
	}
	return filepath.Join(t.dir, name)
}

func (t fileTarget) create(ctx context.Context, name string) (io.WriteCloser, error) {
	if t.isCloud() {
		return t.factory.NewWriter(ctx, t.bucket, cloudwriter.ObjectKey(t.folder, t.runID, name))
	}
	if err := os.MkdirAll(t.dir, os.ModePerm); err != nil {
		return nil, err
	}
	return os.Create(filepath.Join(t.dir, name))
}

// NewOutput builds the destination selected by cfg.Output.Format. runID
// scopes S3 object keys and tags kafka messages.
func NewOutput(ctx context.Context, cfg *models.Config, runID string) (OutputDestination, error) {
	target := localTarget(cfg.Output.Path, cfg.Output.Folder)
	if cfg.Output.Destination == models.DestinationS3 {
		if cfg.CloudStorage.Provider != "s3" {
			return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedCloud, cfg.CloudStorage.Provider)
		}
		factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		target = cloudTarget(factory, cfg.CloudStorage.BucketName, cfg.Output.Folder, runID)
	}

	switch cfg.Output.Format {
	case models.OutputFormatConsole:
		return NewConsoleOutput(os.Stdout), nil
	case models.OutputFormatCSV:
		return &CSVOutput{target: target}, nil
	case models.OutputFormatJSON:
		return &JSONOutput{target: target}, nil
	case models.OutputFormatParquet:
		return &ParquetOutput{target: target}, nil
	case models.OutputFormatXLSX:
		return &XLSXOutput{target: target}, nil
	case models.OutputFormatSQLite, models.OutputFormatPostgres:
		repo, err := OpenRepository(ctx, cfg.Output.Format, cfg.Database)
		if err != nil {
			return nil, err
		}
		return NewRepositoryOutput(repo), nil
	case models.OutputFormatKafka:
		return NewKafkaOutput(cfg.Kafka, runID)
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidOutputFormat, cfg.Output.Format)
	}
}
