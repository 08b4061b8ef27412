package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/chrisdamba/foodvenues/internal/factories"
	"github.com/chrisdamba/foodvenues/internal/loader"
	"github.com/chrisdamba/foodvenues/internal/models"
)

const testRows = 200

// execute runs the root command with args. Cobra keeps flag values between
// runs in one process, so callers pass every flag their assertions depend on.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

// testEnv writes an empty config file and a generated input CSV.
func testEnv(t *testing.T) (dir, cfg, input string) {
	t.Helper()
	dir = t.TempDir()
	cfg = filepath.Join(dir, "foodvenues.yaml")
	if err := os.WriteFile(cfg, []byte("log_level: error\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	input = filepath.Join(dir, "moscow_places.csv")
	f, err := os.Create(input)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := loader.WriteCSV(f, factories.NewVenueFactory(7).CreateVenues(testRows)); err != nil {
		t.Fatal(err)
	}
	return dir, cfg, input
}

func readReport(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var report map[string]any
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	return report
}

func TestCleanCommand_CSV(t *testing.T) {
	dir, cfg, input := testEnv(t)
	outDir := filepath.Join(dir, "out")

	err := execute(t, "clean",
		"--config", cfg, "--input", input, "--progress=false",
		"--format", "csv", "--output-path", outDir, "--output-folder", "cleaned", "--destination", "local",
	)
	if err != nil {
		t.Fatalf("clean returned unexpected error: %v", err)
	}

	f, err := os.Open(filepath.Join(outDir, "cleaned", "venues.csv"))
	if err != nil {
		t.Fatalf("clean did not write venues.csv: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != testRows+1 {
		t.Errorf("venues.csv has %d records, want header + %d", len(records), testRows)
	}
	if len(records[0]) != len(models.OutputColumns) {
		t.Errorf("header = %v, want %d columns", records[0], len(models.OutputColumns))
	}
}

func TestReportCommand_JSON(t *testing.T) {
	dir, cfg, input := testEnv(t)
	out := filepath.Join(dir, "report", "report.json")

	err := execute(t, "report",
		"--config", cfg, "--input", input, "--progress=false",
		"--source", "input", "--format", "json", "--output", out, "--destination", "local", "--top", "5",
	)
	if err != nil {
		t.Fatalf("report returned unexpected error: %v", err)
	}

	report := readReport(t, out)
	if rows, _ := report["rows"].(float64); int(rows) != testRows {
		t.Errorf("report rows = %v, want %d", report["rows"], testRows)
	}
	tables, _ := report["tables"].([]any)
	if len(tables) == 0 {
		t.Fatal("report has no tables")
	}
}

func TestReportCommand_FromSQLiteStore(t *testing.T) {
	dir, cfg, input := testEnv(t)
	db := filepath.Join(dir, "venues.db")

	err := execute(t, "clean",
		"--config", cfg, "--input", input, "--progress=false",
		"--format", "sqlite", "--sqlite-path", db, "--destination", "local",
	)
	if err != nil {
		t.Fatalf("clean returned unexpected error: %v", err)
	}

	out := filepath.Join(dir, "stored.json")
	err = execute(t, "report",
		"--config", cfg, "--input", "", "--progress=false",
		"--source", "sqlite", "--sqlite-path", db, "--format", "json", "--output", out, "--destination", "local",
	)
	if err != nil {
		t.Fatalf("report returned unexpected error: %v", err)
	}
	if rows, _ := readReport(t, out)["rows"].(float64); int(rows) != testRows {
		t.Errorf("stored report rows = %v, want %d", rows, testRows)
	}
}

func TestReportCommand_EmptyStore(t *testing.T) {
	dir, cfg, _ := testEnv(t)

	err := execute(t, "report",
		"--config", cfg, "--progress=false",
		"--source", "sqlite", "--sqlite-path", filepath.Join(dir, "empty.db"),
		"--format", "json", "--output", filepath.Join(dir, "r.json"), "--destination", "local",
	)
	if err == nil {
		t.Fatal("report expected error for a store with no venues table")
	}
}

func TestReportCommand_InvalidFormat(t *testing.T) {
	_, cfg, input := testEnv(t)

	err := execute(t, "report",
		"--config", cfg, "--input", input, "--progress=false",
		"--source", "input", "--format", "html", "--output", "", "--destination", "local",
	)
	if err == nil {
		t.Fatal("report expected error for unknown format")
	}
}

func TestGenerateCommand(t *testing.T) {
	dir, cfg, _ := testEnv(t)
	out := filepath.Join(dir, "gen", "venues.csv")

	err := execute(t, "generate", "--config", cfg, "--progress=false", "--seed", "3", "--count", "25", "--output", out)
	if err != nil {
		t.Fatalf("generate returned unexpected error: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	venues, err := loader.Load(f, ',')
	if err != nil {
		t.Fatalf("generated CSV does not load: %v", err)
	}
	if len(venues) != 25 {
		t.Errorf("len(venues) = %d, want 25", len(venues))
	}
}
