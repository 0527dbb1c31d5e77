// Package report assembles the aggregates shown on each tab of the explorer.
package report

import (
	"math"
	"strconv"
	"strings"

	"jepdash/internal/aggregate"
	"jepdash/internal/config"
	"jepdash/internal/dataset"
	"jepdash/internal/filter"
	"jepdash/internal/models"
)

// Tab names.
const (
	TabFrequency     = "frequency"
	TabAccessibility = "accessibility"
	TabVisitTypes    = "visit-types"
	TabMap           = "map"
)

// Tabs lists the tab names in display order.
var Tabs = []string{TabFrequency, TabAccessibility, TabVisitTypes, TabMap}

// Series is a titled frequency table. Available is false when the
// dataset lacks the column the series is computed from.
type Series struct {
	Title     string            `json:"title"`
	Counts    []aggregate.Count `json:"counts"`
	Available bool              `json:"available"`
}

// Frequency is the when-and-where tab.
type Frequency struct {
	ByWeekday    Series `json:"byWeekday"`
	TopLocations Series `json:"topLocations"`
}

// Accessibility is the hours-and-pricing tab.
type Accessibility struct {
	Opening  Series `json:"opening"`
	Closing  Series `json:"closing"`
	Duration Series `json:"duration"`
	Pricing  Series `json:"pricing"`
}

// VisitTypes is the themes-and-places tab.
type VisitTypes struct {
	Themes     Series `json:"themes"`
	Regions    Series `json:"regions"`
	EventTypes Series `json:"eventTypes"`
	Cities     Series `json:"cities"`
}

// Point is an event located on the map.
type Point struct {
	Title     string  `json:"title"`
	Region    string  `json:"region,omitempty"`
	City      string  `json:"city,omitempty"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// MapView is the filtered-selection tab.
type MapView struct {
	Criteria filter.Criteria `json:"criteria"`
	Options  filter.Options  `json:"options"`
	Matched  int             `json:"matched"`
	Points   []Point         `json:"points"`
	Preview  []models.Event  `json:"preview"`
}

// Dashboard holds every tab computed from one dataset.
type Dashboard struct {
	Source        string        `json:"source"`
	Rows          int           `json:"rows"`
	Frequency     Frequency     `json:"frequency"`
	Accessibility Accessibility `json:"accessibility"`
	VisitTypes    VisitTypes    `json:"visitTypes"`
	Map           MapView       `json:"map"`
}

// Builder computes dashboards from an enriched dataset.
type Builder struct {
	cfg    config.AnalysisConfig
	agg    *aggregate.Aggregator
	filter *filter.Engine
}

// NewBuilder creates a builder using the analysis settings.
func NewBuilder(cfg config.AnalysisConfig) *Builder {
	return &Builder{
		cfg:    cfg,
		agg:    aggregate.NewAggregator(cfg.TagDelimiter),
		filter: filter.NewEngine(),
	}
}

// Build computes every tab. The map tab uses criteria.
func (b *Builder) Build(ds *dataset.Dataset, criteria filter.Criteria) *Dashboard {
	return &Dashboard{
		Source:        ds.Source,
		Rows:          ds.Len(),
		Frequency:     b.Frequency(ds),
		Accessibility: b.Accessibility(ds),
		VisitTypes:    b.VisitTypes(ds),
		Map:           b.Map(ds, criteria),
	}
}

// Frequency computes events per weekday and the most mentioned cities.
func (b *Builder) Frequency(ds *dataset.Dataset) Frequency {
	return Frequency{
		ByWeekday: series("Events by weekday")(b.agg.Column(ds, models.FieldWeekday)),
		TopLocations: series("Top " + strconv.Itoa(b.cfg.TopLocations) + " locations")(
			b.agg.Known(ds, models.FieldCity, aggregate.TopN(b.cfg.TopLocations))),
	}
}

// Accessibility computes opening and closing hours, durations and pricing.
// Hour histograms keep the top N hours and list them chronologically.
func (b *Builder) Accessibility(ds *dataset.Dataset) Accessibility {
	top := aggregate.TopN(b.cfg.TopN)
	n := strconv.Itoa(b.cfg.TopN)

	opening := series("Top " + n + " opening hours")(b.agg.Column(ds, models.FieldOpeningTime, top))
	opening.Counts = aggregate.SortByCategory(opening.Counts)

	closing := series("Top " + n + " closing hours")(b.agg.Column(ds, models.FieldClosingTime, top))
	closing.Counts = aggregate.SortByCategory(closing.Counts)

	return Accessibility{
		Opening:  opening,
		Closing:  closing,
		Duration: series("Top " + n + " opening durations")(b.agg.Column(ds, models.FieldDuration, top)),
		Pricing:  series("Pricing conditions")(b.agg.Known(ds, models.FieldPricing)),
	}
}

// VisitTypes computes themes, regions, event types and cities.
func (b *Builder) VisitTypes(ds *dataset.Dataset) VisitTypes {
	top := aggregate.TopN(b.cfg.TopN)
	n := strconv.Itoa(b.cfg.TopN)

	return VisitTypes{
		Themes:     series("Top " + n + " heritage themes")(b.agg.Tags(ds, top)),
		Regions:    series("Events by region")(b.agg.Known(ds, models.FieldRegion, top)),
		EventTypes: series("Events by type")(b.agg.Column(ds, models.FieldEventType)),
		Cities:     series("Events by city")(b.agg.Known(ds, models.FieldCity, top)),
	}
}

// Map filters the dataset and locates the matching events.
func (b *Builder) Map(ds *dataset.Dataset, criteria filter.Criteria) MapView {
	matched := b.filter.Apply(ds, criteria)

	preview := matched
	if len(preview) > b.cfg.PreviewRows {
		preview = preview[:b.cfg.PreviewRows]
	}

	var points []Point
	if ds.Has(models.FieldLatitude) && ds.Has(models.FieldLongitude) {
		points = Points(matched)
	}

	return MapView{
		Criteria: b.filter.Active(ds, criteria),
		Options:  filter.BuildOptions(ds, b.cfg.TagDelimiter),
		Matched:  len(matched),
		Points:   points,
		Preview:  preview,
	}
}

// Points returns the events with parseable coordinates.
func Points(events []models.Event) []Point {
	points := make([]Point, 0, len(events))

	for _, e := range events {
		lat, ok := coordinate(e.Latitude)
		if !ok {
			continue
		}

		lon, ok := coordinate(e.Longitude)
		if !ok {
			continue
		}

		points = append(points, Point{
			Title:     e.Title,
			Region:    e.Region,
			City:      e.City,
			Latitude:  lat,
			Longitude: lon,
		})
	}

	return points
}

// coordinate parses a decimal degree, accepting a comma separator.
func coordinate(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

func series(title string) func([]aggregate.Count, bool) Series {
	return func(counts []aggregate.Count, ok bool) Series {
		return Series{Title: title, Counts: counts, Available: ok}
	}
}
