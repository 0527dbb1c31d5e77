// Package filter selects the events matching a set of optional criteria.
package filter

import (
	"strings"

	"jepdash/internal/dataset"
	"jepdash/internal/models"
)

// Wildcard is the criterion value that matches every event. The empty
// string behaves the same way.
const Wildcard = "All"

// Criteria holds one optional value per filterable field.
type Criteria struct {
	Region    string `json:"region,omitempty"`
	City      string `json:"city,omitempty"`
	Theme     string `json:"theme,omitempty"`
	EventType string `json:"eventType,omitempty"`
	Pricing   string `json:"pricing,omitempty"`
}

// IsWildcard reports whether value imposes no constraint.
func IsWildcard(value string) bool {
	return value == "" || value == Wildcard
}

type predicate func(e *models.Event) bool

// Engine applies criteria to an enriched dataset.
type Engine struct{}

// NewEngine creates a filter engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Apply returns the events matching every active criterion, in dataset
// order. A criterion whose field the dataset does not provide is ignored.
func (f *Engine) Apply(ds *dataset.Dataset, c Criteria) []models.Event {
	preds := f.predicates(ds, c)

	matched := make([]models.Event, 0, ds.Len())

	for i := range ds.Events {
		if matchAll(&ds.Events[i], preds) {
			matched = append(matched, ds.Events[i])
		}
	}

	return matched
}

// Active returns the criteria that constrain ds after wildcard and
// capability checks.
func (f *Engine) Active(ds *dataset.Dataset, c Criteria) Criteria {
	active := Criteria{}

	if use(ds, models.FieldRegion, c.Region) {
		active.Region = c.Region
	}

	if use(ds, models.FieldCity, c.City) {
		active.City = c.City
	}

	if use(ds, models.FieldTags, c.Theme) {
		active.Theme = c.Theme
	}

	if use(ds, models.FieldEventType, c.EventType) {
		active.EventType = c.EventType
	}

	if use(ds, models.FieldPricing, c.Pricing) {
		active.Pricing = c.Pricing
	}

	return active
}

func (f *Engine) predicates(ds *dataset.Dataset, c Criteria) []predicate {
	active := f.Active(ds, c)

	var preds []predicate

	if active.Region != "" {
		preds = append(preds, equals(models.FieldRegion, active.Region))
	}

	if active.City != "" {
		preds = append(preds, equals(models.FieldCity, active.City))
	}

	if active.Theme != "" {
		preds = append(preds, containsTheme(active.Theme))
	}

	if active.EventType != "" {
		preds = append(preds, equals(models.FieldEventType, active.EventType))
	}

	if active.Pricing != "" {
		preds = append(preds, equals(models.FieldPricing, active.Pricing))
	}

	return preds
}

func use(ds *dataset.Dataset, field models.Field, value string) bool {
	return !IsWildcard(value) && ds.Has(field)
}

func equals(field models.Field, want string) predicate {
	return func(e *models.Event) bool {
		return e.Value(field) == want
	}
}

// containsTheme matches on the raw tags text, so a theme also matches
// longer tags containing it.
func containsTheme(theme string) predicate {
	return func(e *models.Event) bool {
		return e.HasTags() && strings.Contains(e.Tags, theme)
	}
}

func matchAll(e *models.Event, preds []predicate) bool {
	for _, p := range preds {
		if !p(e) {
			return false
		}
	}

	return true
}
