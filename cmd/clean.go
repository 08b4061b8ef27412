package cmd

import (
	"fmt"
	"time"

	"github.com/chrisdamba/foodvenues/internal/logger"
	"github.com/chrisdamba/foodvenues/internal/metrics"
	"github.com/chrisdamba/foodvenues/internal/output"
	"github.com/chrisdamba/foodvenues/internal/pipeline"
	"github.com/lucsky/cuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the venues table and write the enriched result",
	RunE:  runClean,
}

var cleanKeys = map[string]string{
	"output.format":             "format",
	"output.path":               "output-path",
	"output.folder":             "output-folder",
	"output.destination":        "destination",
	"cloud_storage.bucket_name": "bucket",
	"kafka.broker_list":         "kafka-broker-list",
	"kafka.topic":               "kafka-topic",
	"database.url":              "database-url",
	"database.sqlite_path":      "sqlite-path",
	"metrics.pushgateway_url":   "pushgateway-url",
}

func init() {
	flags := cleanCmd.Flags()
	flags.String("format", "csv", "Output format: console, csv, json, parquet, xlsx, sqlite, postgres, kafka")
	flags.String("output-path", "out", "Base directory for file outputs")
	flags.String("output-folder", "cleaned", "Folder under the output path or bucket")
	flags.String("destination", "local", "Where file outputs go: local or s3")
	flags.String("bucket", "", "S3 bucket for the s3 destination")
	flags.String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	flags.String("kafka-topic", "venues.cleaned", "Kafka topic")
	flags.String("database-url", "", "Postgres connection URL")
	flags.String("sqlite-path", "", "SQLite database file")
	flags.String("pushgateway-url", "", "Prometheus Pushgateway URL")
}

func runClean(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, cleanKeys)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	runID := cuid.New()
	log := logger.New(cfg.LogLevel).With("run_id", runID, "command", "clean")
	ctx := cmd.Context()

	flush, err := setupMetrics(cfg, log)
	if err != nil {
		return err
	}
	defer flush()

	venues, err := readVenues(cfg, log)
	if err != nil {
		return err
	}
	log.Info("input surveyed", pipeline.Survey(venues).LogArgs()...)

	var bar *progressbar.ProgressBar
	p := pipeline.New(
		pipeline.WithLogger(log),
		pipeline.WithJob(cfg.Metrics.Job),
		pipeline.WithProgress(func(n int) { _ = bar.Add(n) }),
	)
	bar = newProgressBar(cfg.Progress, len(venues)*p.Stages(), "cleaning")

	table, err := p.Run(ctx, venues)
	if err != nil {
		return fmt.Errorf("clean venues: %w", err)
	}
	_ = bar.Finish()

	out, err := output.NewOutput(ctx, cfg, runID)
	if err != nil {
		return fmt.Errorf("create %s output: %w", cfg.Output.Format, err)
	}

	start := time.Now()
	err = out.WriteVenues(ctx, table.Rows)
	metrics.RecordStep(cfg.Metrics.Job, "write", err, time.Since(start))
	if err != nil {
		out.Close()
		return fmt.Errorf("write %s output: %w", cfg.Output.Format, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s output: %w", cfg.Output.Format, err)
	}

	args := []any{"format", cfg.Output.Format, "rows", len(table.Rows), "took", time.Since(start)}
	if named, ok := out.(interface{ Path() string }); ok {
		args = append(args, "path", named.Path())
	}
	log.Info("venues written", args...)
	return nil
}
