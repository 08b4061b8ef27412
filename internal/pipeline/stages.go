package pipeline

import (
	"errors"

	"github.com/chrisdamba/foodvenues/internal/logger"
	"github.com/chrisdamba/foodvenues/internal/models"
)

// Stage is one enrichment step applied to every row of the table. Stages
// must not add or remove rows, and a failure on one row must not affect the
// others.
type Stage interface {
	Name() string
	Apply(rows []models.EnrichedVenue, stats *Stats)
}

type nameStage struct {
	normalizer *NameNormalizer
}

func (nameStage) Name() string { return "normalize_name" }

func (s nameStage) Apply(rows []models.EnrichedVenue, _ *Stats) {
	for i := range rows {
		rows[i].Name = s.normalizer.Normalize(rows[i].Name)
	}
}

type streetStage struct {
	log *logger.Logger
}

func (streetStage) Name() string { return "parse_street" }

func (s streetStage) Apply(rows []models.EnrichedVenue, stats *Stats) {
	for i := range rows {
		street, err := ParseStreet(rows[i].Address)
		if err != nil {
			rows[i].Street = nil
			stats.MalformedAddress++
			s.log.Debug("street not derived", "row", i, "address", rows[i].Address, "error", err)
			continue
		}
		rows[i].Street = &street
	}
}

type scheduleStage struct{}

func (scheduleStage) Name() string { return "classify_schedule" }

func (scheduleStage) Apply(rows []models.EnrichedVenue, stats *Stats) {
	for i := range rows {
		rows[i].Is247 = IsAllDay(rows[i].Hours)
		if rows[i].Is247 {
			stats.AllDay++
		}
	}
}

type billStage struct {
	extractor *PriceExtractor
	log       *logger.Logger
}

func (billStage) Name() string { return "extract_bill" }

func (s billStage) Apply(rows []models.EnrichedVenue, stats *Stats) {
	for i := range rows {
		rows[i].MiddleAvgBill = nil
		rows[i].MiddleCoffeeCup = nil

		if rows[i].AvgBill == nil {
			stats.MissingBill++
			continue
		}

		est, err := s.extractor.Extract(rows[i].AvgBill)
		if err != nil {
			if errors.Is(err, ErrPriceParse) {
				stats.PriceParseErrors++
			}
			s.log.Debug("bill not parsed", "row", i, "avg_bill", *rows[i].AvgBill, "error", err)
			continue
		}

		value := est.Value
		switch est.Kind {
		case BillAverage:
			rows[i].MiddleAvgBill = &value
			stats.AverageBill++
		case BillCappuccino:
			rows[i].MiddleCoffeeCup = &value
			stats.CoffeeCup++
		default:
			stats.UnrecognizedBill++
		}
	}
}

// DefaultStages returns the enrichment chain in its fixed order: name
// normalization, street, 24/7 flag, bill estimate.
func DefaultStages(log *logger.Logger) []Stage {
	return []Stage{
		nameStage{normalizer: NewNameNormalizer()},
		streetStage{log: log},
		scheduleStage{},
		billStage{extractor: NewPriceExtractor(), log: log},
	}
}
