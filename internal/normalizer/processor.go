// Package normalizer enriches a loaded dataset with the fields derived from its free text.
package normalizer

import (
	"fmt"

	"jepdash/internal/dataset"
	"jepdash/internal/logger"
)

// Processor validates a dataset and then enriches it in place.
type Processor struct {
	validator   *Validator
	transformer *Transformer
	log         *logger.Logger
}

// NewProcessor creates a new processor instance.
func NewProcessor(log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Nop()
	}

	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
		log:         log.With("component", "normalizer"),
	}
}

// Process computes the derived fields of every row exactly once.
func (p *Processor) Process(ds *dataset.Dataset) (*dataset.Dataset, error) {
	// 1. Validate the input data
	if err := p.validator.Validate(ds); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 2. Transform the data
	stats := p.transformer.Transform(ds)

	p.log.Debug("dataset enriched",
		"rows", stats.Rows,
		"with_hours", stats.WithHours,
		"point_in_time", stats.PointInTime,
		"multi_slot", stats.MultiSlot,
		"with_weekday", stats.WithWeekday,
		"unmapped_days", stats.UnmappedDays,
		"exhibitions", stats.Exhibitions,
	)

	return ds, nil
}
