package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chrisdamba/foodvenues/internal/analytics"
	"github.com/chrisdamba/foodvenues/internal/cloudwriter"
	"github.com/chrisdamba/foodvenues/internal/logger"
	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/chrisdamba/foodvenues/internal/output"
	"github.com/chrisdamba/foodvenues/internal/pipeline"
	"github.com/lucsky/cuid"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Clean the venues table and print the market overview",
	RunE:  runReport,
}

var reportKeys = map[string]string{
	"report.top_n":              "top",
	"report.coffee_category":    "coffee-category",
	"report.format":             "format",
	"report.output_path":        "output",
	"report.source":             "source",
	"database.sqlite_path":      "sqlite-path",
	"database.url":              "database-url",
	"output.destination":        "destination",
	"output.folder":             "output-folder",
	"cloud_storage.bucket_name": "bucket",
	"metrics.pushgateway_url":   "pushgateway-url",
}

func init() {
	flags := reportCmd.Flags()
	flags.Int("top", 15, "Rows kept in ranked tables")
	flags.String("coffee-category", "кофейня", "Category treated as coffee shops")
	flags.String("format", "text", "Report format: text, json, xlsx")
	flags.String("output", "", "Report file, or object name for s3 (default stdout)")
	flags.String("source", "input", "Where venues come from: input (clean the CSV), sqlite or postgres (a stored clean run)")
	flags.String("sqlite-path", "", "SQLite database file for the sqlite source")
	flags.String("database-url", "", "Postgres connection URL for the postgres source")
	flags.String("destination", "local", "Where the report goes: local or s3")
	flags.String("output-folder", "cleaned", "Folder in the bucket for s3 reports")
	flags.String("bucket", "", "S3 bucket for the s3 destination")
	flags.String("pushgateway-url", "", "Prometheus Pushgateway URL")
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, reportKeys)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := cfg.ValidateReport(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	runID := cuid.New()
	log := logger.New(cfg.LogLevel).With("run_id", runID, "command", "report")
	ctx := cmd.Context()

	flush, err := setupMetrics(cfg, log)
	if err != nil {
		return err
	}
	defer flush()

	rows, err := reportRows(ctx, cfg, log)
	if err != nil {
		return err
	}

	report, err := analytics.Build(rows, analytics.Options{
		TopN:           cfg.Report.TopN,
		CoffeeCategory: cfg.Report.CoffeeCategory,
	})
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	w, where, err := reportWriter(ctx, cfg, runID)
	if err != nil {
		return err
	}
	if err := renderReport(w, cfg.Report.Format, report); err != nil {
		w.Close()
		return fmt.Errorf("render %s report: %w", cfg.Report.Format, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close report %s: %w", where, err)
	}
	log.Info("report written", "format", cfg.Report.Format, "tables", len(report.Tables), "to", where)
	return nil
}

// reportRows returns the enriched table, either by cleaning the input CSV
// or by reading what an earlier clean run stored.
func reportRows(ctx context.Context, cfg *models.Config, log *logger.Logger) ([]models.EnrichedVenue, error) {
	if cfg.Report.Source == models.ReportSourceInput {
		venues, err := readVenues(cfg, log)
		if err != nil {
			return nil, err
		}
		table, err := pipeline.New(pipeline.WithLogger(log), pipeline.WithJob(cfg.Metrics.Job)).Run(ctx, venues)
		if err != nil {
			return nil, fmt.Errorf("clean venues: %w", err)
		}
		return table.Rows, nil
	}

	repo, err := output.OpenRepository(ctx, cfg.Report.Source, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Report.Source, err)
	}
	defer repo.Close()

	n, err := repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count stored venues: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%s store has no venues; run clean with --format %s first", cfg.Report.Source, cfg.Report.Source)
	}
	rows, err := repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read stored venues: %w", err)
	}
	log.Info("venues read from store", "source", cfg.Report.Source, "rows", len(rows))
	return rows, nil
}

func renderReport(w io.Writer, format string, r *analytics.Report) error {
	switch format {
	case models.ReportFormatJSON:
		return analytics.RenderJSON(w, r)
	case models.ReportFormatXLSX:
		return analytics.WriteXLSX(w, r)
	default:
		return analytics.RenderText(w, r)
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// reportWriter opens the report target: an S3 object, a local file, or stdout.
func reportWriter(ctx context.Context, cfg *models.Config, runID string) (io.WriteCloser, string, error) {
	name := cfg.Report.OutputPath
	if cfg.Output.Destination == models.DestinationS3 {
		if name == "" {
			name = "report." + reportExt(cfg.Report.Format)
		}
		factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region)
		if err != nil {
			return nil, "", fmt.Errorf("create s3 client: %w", err)
		}
		key := cloudwriter.ObjectKey(cfg.Output.Folder, runID, filepath.Base(name))
		w, err := factory.NewWriter(ctx, cfg.CloudStorage.BucketName, key)
		if err != nil {
			return nil, "", err
		}
		return w, fmt.Sprintf("s3://%s/%s", cfg.CloudStorage.BucketName, key), nil
	}

	if name == "" {
		if cfg.Report.Format == models.ReportFormatXLSX {
			name = "report.xlsx"
		} else {
			return nopCloser{os.Stdout}, "stdout", nil
		}
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, "", fmt.Errorf("create report directory: %w", err)
		}
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, "", fmt.Errorf("create report file: %w", err)
	}
	return f, name, nil
}

func reportExt(format string) string {
	if format == models.ReportFormatText {
		return "txt"
	}
	return format
}
