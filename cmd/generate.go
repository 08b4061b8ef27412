package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrisdamba/foodvenues/internal/factories"
	"github.com/chrisdamba/foodvenues/internal/loader"
	"github.com/chrisdamba/foodvenues/internal/logger"
	"github.com/chrisdamba/foodvenues/internal/models"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic raw venues table for testing the pipeline",
	RunE:  runGenerate,
}

var generateKeys = map[string]string{
	"generate.seed":        "seed",
	"generate.count":       "count",
	"generate.output_path": "output",
}

func init() {
	flags := generateCmd.Flags()
	flags.Int64("seed", 42, "Random seed")
	flags.Int("count", 1000, "Number of venues to generate")
	flags.String("output", "venues.csv", "Output CSV file")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, generateKeys)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := cfg.ValidateGenerate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	log := logger.New(cfg.LogLevel).With("command", "generate")

	factory := factories.NewVenueFactory(cfg.Generate.Seed)
	bar := newProgressBar(cfg.Progress, cfg.Generate.Count, "generating")
	venues := make([]models.Venue, 0, cfg.Generate.Count)
	for i := 0; i < cfg.Generate.Count; i++ {
		venues = append(venues, factory.CreateVenue())
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	path := cfg.Generate.OutputPath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := loader.WriteCSV(f, venues); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("venues generated", "path", path, "rows", len(venues), "seed", cfg.Generate.Seed)
	return nil
}
