package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jepdash/internal/dataset"
	"jepdash/internal/models"
)

func sampleDataset() *dataset.Dataset {
	ds := dataset.FromEvents([]models.Event{
		{Title: "Visite du Louvre", Region: "Île-de-France", City: "Paris", Tags: "Art|Musée", EventType: models.EventTypeVisit, Pricing: models.PricingFree},
		{Title: "Exposition", Region: models.Unknown, City: models.Unknown, EventType: models.EventTypeExhibition, Pricing: "Payant"},
		{Title: "Balade", Region: "Auvergne-Rhône-Alpes", City: "Lyon", Tags: "Art", EventType: models.EventTypeVisit, Pricing: models.PricingFree},
		{Title: "Atelier", Region: "Île-de-France", City: "Versailles", Tags: "Jardins|Art contemporain", EventType: models.EventTypeVisit, Pricing: "Payant"},
	})
	ds.MarkEnriched()

	return ds
}

func titles(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}

	return out
}

func TestEngine_Apply_Wildcards(t *testing.T) {
	ds := sampleDataset()
	engine := NewEngine()

	all := Criteria{Region: Wildcard, City: Wildcard, Theme: Wildcard, EventType: Wildcard, Pricing: Wildcard}

	assert.Equal(t, ds.Events, engine.Apply(ds, all))
	assert.Equal(t, ds.Events, engine.Apply(ds, Criteria{}))
}

func TestEngine_Apply(t *testing.T) {
	ds := sampleDataset()
	engine := NewEngine()

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"Region", Criteria{Region: "Île-de-France"}, []string{"Visite du Louvre", "Atelier"}},
		{"City", Criteria{City: "Lyon"}, []string{"Balade"}},
		{"Theme is a substring match", Criteria{Theme: "Art"}, []string{"Visite du Louvre", "Balade", "Atelier"}},
		{"Theme excludes absent tags", Criteria{Theme: "Musée"}, []string{"Visite du Louvre"}},
		{"Event type", Criteria{EventType: models.EventTypeExhibition}, []string{"Exposition"}},
		{"Pricing", Criteria{Pricing: "Payant"}, []string{"Exposition", "Atelier"}},
		{"Conjunction", Criteria{Region: "Île-de-France", Theme: "Art", Pricing: models.PricingFree}, []string{"Visite du Louvre"}},
		{"Unknown is a regular value here", Criteria{City: models.Unknown}, []string{"Exposition"}},
		{"No match", Criteria{City: "Marseille"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(engine.Apply(ds, tt.criteria)))
		})
	}
}

func TestEngine_Apply_Idempotent(t *testing.T) {
	engine := NewEngine()
	c := Criteria{Region: "Île-de-France", Theme: "Art"}

	once := engine.Apply(sampleDataset(), c)
	twice := engine.Apply(dataset.FromEvents(once), c)

	require.Len(t, once, 2)
	assert.Equal(t, titles(once), titles(twice))
	assert.Equal(t, []int{0, 3}, []int{once[0].Row, once[1].Row}, "source row indexes survive a second pass")
}

func TestEngine_Apply_DoesNotModifyDataset(t *testing.T) {
	ds := sampleDataset()
	before := append([]models.Event(nil), ds.Events...)

	NewEngine().Apply(ds, Criteria{City: "Paris"})

	assert.Equal(t, before, ds.Events)
}

func TestEngine_Apply_MissingColumnDisablesCriterion(t *testing.T) {
	ds := dataset.FromEvents([]models.Event{
		{City: "Paris", Tags: "Art"},
		{City: "Lyon"},
	}, models.FieldCity)
	ds.MarkEnriched()

	engine := NewEngine()

	got := engine.Apply(ds, Criteria{Theme: "Art", Pricing: "Payant", EventType: models.EventTypeVisit})
	assert.Len(t, got, 2)

	assert.Equal(t, Criteria{City: "Lyon"}, engine.Active(ds, Criteria{City: "Lyon", Theme: "Art"}))
}

func TestEngine_Apply_Empty(t *testing.T) {
	got := NewEngine().Apply(dataset.FromEvents(nil), Criteria{City: "Paris"})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
