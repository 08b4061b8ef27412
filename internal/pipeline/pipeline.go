// Package pipeline cleans the venues table and derives the street, 24/7 and
// bill estimate columns.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/foodvenues/internal/logger"
	"github.com/chrisdamba/foodvenues/internal/metrics"
	"github.com/chrisdamba/foodvenues/internal/models"
)

// Table is the enriched output: one row per input venue, in input order.
type Table struct {
	Rows  []models.EnrichedVenue
	Stats Stats
}

// Pipeline runs a fixed chain of stages over an in-memory table.
type Pipeline struct {
	stages   []Stage
	log      *logger.Logger
	job      string
	progress func(n int)
}

type Option func(*Pipeline)

// WithLogger sets the logger used for per-row diagnostics and the run summary.
func WithLogger(log *logger.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

// WithStages replaces the default stage chain.
func WithStages(stages ...Stage) Option {
	return func(p *Pipeline) { p.stages = stages }
}

// WithJob sets the job label used for metrics.
func WithJob(job string) Option {
	return func(p *Pipeline) { p.job = job }
}

// WithProgress registers a callback invoked with the number of rows each
// stage has finished.
func WithProgress(fn func(n int)) Option {
	return func(p *Pipeline) { p.progress = fn }
}

func New(opts ...Option) *Pipeline {
	p := &Pipeline{log: logger.Discard(), job: "foodvenues"}
	for _, opt := range opts {
		opt(p)
	}
	if p.stages == nil {
		p.stages = DefaultStages(p.log)
	}
	return p
}

// Stages returns the number of stages, for progress sizing.
func (p *Pipeline) Stages() int {
	return len(p.stages)
}

// Run enriches venues. Per-row problems are counted in Table.Stats and never
// returned; Run fails only when ctx is done or the output breaks a table
// invariant.
func (p *Pipeline) Run(ctx context.Context, venues []models.Venue) (*Table, error) {
	rows := make([]models.EnrichedVenue, len(venues))
	for i, v := range venues {
		rows[i] = models.EnrichedVenue{Venue: v}
	}
	table := &Table{Rows: rows, Stats: Stats{Rows: len(rows)}}

	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		stage.Apply(table.Rows, &table.Stats)
		metrics.RecordStep(p.job, stage.Name(), nil, time.Since(start))
		p.log.Debug("stage done", "stage", stage.Name(), "rows", len(table.Rows), "took", time.Since(start))
		if p.progress != nil {
			p.progress(len(table.Rows))
		}
	}

	if len(table.Rows) != len(venues) {
		return nil, fmt.Errorf("pipeline changed row count: %d in, %d out", len(venues), len(table.Rows))
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	for kind, n := range table.Stats.Kinds() {
		metrics.RecordRows(p.job, kind, n)
	}
	p.log.Info("venues enriched", table.Stats.LogArgs()...)
	return table, nil
}

// Validate checks the per-row invariants of the enriched table.
func (t *Table) Validate() error {
	for i, r := range t.Rows {
		if r.MiddleAvgBill != nil && r.MiddleCoffeeCup != nil {
			return fmt.Errorf("row %d: both middle_avg_bill and middle_coffee_cup are set", i)
		}
	}
	return nil
}
