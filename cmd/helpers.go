package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/chrisdamba/foodvenues/internal/loader"
	"github.com/chrisdamba/foodvenues/internal/logger"
	"github.com/chrisdamba/foodvenues/internal/metrics"
	"github.com/chrisdamba/foodvenues/internal/metrics/prompush"
	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/schollz/progressbar/v3"
)

func readVenues(cfg *models.Config, log *logger.Logger) ([]models.Venue, error) {
	start := time.Now()
	f, err := os.Open(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	venues, err := loader.Load(f, cfg.Delimiter())
	metrics.RecordStep(cfg.Metrics.Job, "load", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.InputPath, err)
	}
	log.Info("venues loaded", "path", cfg.InputPath, "rows", len(venues), "took", time.Since(start))
	return venues, nil
}

// setupMetrics installs the Pushgateway backend when one is configured and
// returns the function that pushes and resets it.
func setupMetrics(cfg *models.Config, log *logger.Logger) (func(), error) {
	if cfg.Metrics.PushgatewayURL == "" {
		return func() {}, nil
	}
	b, err := prompush.NewBackend(cfg.Metrics.Job, cfg.Metrics.PushgatewayURL)
	if err != nil {
		return nil, err
	}
	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Warn("metrics push failed", "url", cfg.Metrics.PushgatewayURL, "error", err)
		}
		metrics.SetBackend(nil)
	}, nil
}

func newProgressBar(enabled bool, max int, description string) *progressbar.ProgressBar {
	if !enabled {
		return progressbar.DefaultSilent(int64(max), description)
	}
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
