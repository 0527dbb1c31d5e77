// Package dataset loads the event table and answers capability queries about its columns.
package dataset

import (
	"slices"

	"jepdash/internal/models"
)

// Dataset is the in-memory event table. It is enriched once and read-only
// afterwards.
type Dataset struct {
	Source   string
	Schema   Schema
	Events   []models.Event
	enriched bool
}

// New wraps already loaded events.
func New(source string, schema Schema, events []models.Event) *Dataset {
	return &Dataset{
		Source: source,
		Schema: schema,
		Events: events,
	}
}

// FromEvents builds a dataset over events that provides the given fields,
// or every raw field when none are given. Row indexes are reassigned on a
// copy, the caller's slice is left untouched.
func FromEvents(events []models.Event, fields ...models.Field) *Dataset {
	if len(fields) == 0 {
		fields = models.RawFields
	}

	events = slices.Clone(events)
	for i := range events {
		events[i].Row = i
	}

	return New("memory", SchemaOf(fields...), events)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Events)
}

// MarkEnriched records that derived fields have been computed.
func (d *Dataset) MarkEnriched() {
	d.enriched = true
}

// Enriched reports whether derived fields have been computed.
func (d *Dataset) Enriched() bool {
	return d.enriched
}

// Has reports whether field can be read from the dataset. Derived fields
// are available once the dataset is enriched and their source column is
// present.
func (d *Dataset) Has(field models.Field) bool {
	switch field {
	case models.FieldOpeningTime, models.FieldClosingTime, models.FieldWeekday:
		return d.enriched && d.Schema.Has(models.FieldSchedule)
	case models.FieldEventType:
		return d.enriched && d.Schema.Has(models.FieldTitle)
	case models.FieldDuration:
		return d.enriched && d.Schema.Has(models.FieldDuration)
	case models.FieldPricing:
		return d.enriched && d.Schema.Has(models.FieldPricing)
	default:
		return d.Schema.Has(field)
	}
}

// Values returns the column for field, one value per row. The second
// result is false when the dataset does not provide the field.
func (d *Dataset) Values(field models.Field) ([]string, bool) {
	if !d.Has(field) {
		return nil, false
	}

	values := make([]string, len(d.Events))
	for i := range d.Events {
		values[i] = d.Events[i].Value(field)
	}

	return values, true
}
