package normalizer

import (
	"jepdash/internal/dataset"
	"jepdash/internal/models"
	"jepdash/internal/parsers"
)

// Stats summarizes one enrichment pass. MultiSlot counts schedules listing
// more than two times, of which only the first and the last are kept.
type Stats struct {
	Rows         int
	WithHours    int
	PointInTime  int
	MultiSlot    int
	WithWeekday  int
	UnmappedDays int
	Exhibitions  int
}

// Transformer derives structured fields from the raw text of each row.
type Transformer struct {
	parser *parsers.Parser
}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{
		parser: parsers.NewParser(),
	}
}

// Transform fills the derived fields of every event and marks the dataset
// as enriched. Fields whose source column is absent stay empty.
func (t *Transformer) Transform(ds *dataset.Dataset) Stats {
	hasSchedule := ds.Schema.Has(models.FieldSchedule)
	hasDuration := ds.Schema.Has(models.FieldDuration)
	hasTitle := ds.Schema.Has(models.FieldTitle)
	hasPricing := ds.Schema.Has(models.FieldPricing)

	stats := Stats{Rows: ds.Len()}

	for i := range ds.Events {
		e := &ds.Events[i]

		if hasSchedule {
			e.OpeningTime, e.ClosingTime = t.parser.ParseSchedule(e.Schedule)
			if len(t.parser.TimeTokens(e.Schedule)) > 2 {
				stats.MultiSlot++
			}

			e.Weekday = t.parser.NormalizeDay(e.Schedule)
		}

		if hasDuration {
			e.Duration = t.parser.ExtractDuration(e.DurationText)
		}

		if hasTitle {
			e.EventType = parsers.ClassifyEventType(e.Title)
		}

		if hasPricing {
			e.Pricing = parsers.PricingLabel(e.PricingCondition)
		}

		t.count(&stats, e)
	}

	ds.MarkEnriched()

	return stats
}

func (t *Transformer) count(stats *Stats, e *models.Event) {
	if e.OpeningTime != "" {
		stats.WithHours++

		if e.OpeningTime == e.ClosingTime {
			stats.PointInTime++
		}
	}

	switch e.Weekday {
	case "":
	case parsers.WeekdayFriday, parsers.WeekdaySaturday:
		stats.WithWeekday++
	default:
		stats.UnmappedDays++
	}

	if e.EventType == models.EventTypeExhibition {
		stats.Exhibitions++
	}
}
