package aggregate

import (
	"slices"

	"jepdash/internal/dataset"
	"jepdash/internal/models"
)

// Aggregator computes frequency tables over dataset columns.
type Aggregator struct {
	tagDelimiter string
}

// NewAggregator creates an aggregator splitting tag lists on tagDelimiter.
func NewAggregator(tagDelimiter string) *Aggregator {
	if tagDelimiter == "" {
		tagDelimiter = "|"
	}

	return &Aggregator{tagDelimiter: tagDelimiter}
}

// Column counts the values of field. ok is false when the dataset does
// not provide the field, in which case the aggregate is unavailable.
func (a *Aggregator) Column(ds *dataset.Dataset, field models.Field, opts ...Option) (counts []Count, ok bool) {
	values, ok := ds.Values(field)
	if !ok {
		return nil, false
	}

	return ValueCounts(values, opts...), true
}

// Known counts the values of field with the Unknown sentinel removed.
func (a *Aggregator) Known(ds *dataset.Dataset, field models.Field, opts ...Option) ([]Count, bool) {
	return a.Column(ds, field, append(slices.Clip(opts), ExcludeUnknown())...)
}

// Tags counts individual tags across all rows.
func (a *Aggregator) Tags(ds *dataset.Dataset, opts ...Option) ([]Count, bool) {
	values, ok := ds.Values(models.FieldTags)
	if !ok {
		return nil, false
	}

	return Exploded(values, a.tagDelimiter, opts...), true
}
