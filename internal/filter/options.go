package filter

import (
	"jepdash/internal/dataset"
	"jepdash/internal/models"
)

// Options lists the selectable values of each criterion. Every list starts
// with the wildcard. A nil list means the criterion is unavailable for
// the dataset.
type Options struct {
	Regions    []string `json:"regions"`
	Cities     []string `json:"cities"`
	Themes     []string `json:"themes"`
	EventTypes []string `json:"eventTypes"`
	Pricing    []string `json:"pricing"`
}

// BuildOptions collects distinct values in first-seen order. Themes come
// from the individual tags split on tagDelimiter.
func BuildOptions(ds *dataset.Dataset, tagDelimiter string) Options {
	return Options{
		Regions:    distinct(ds, models.FieldRegion),
		Cities:     distinct(ds, models.FieldCity),
		Themes:     themes(ds, tagDelimiter),
		EventTypes: distinct(ds, models.FieldEventType),
		Pricing:    distinct(ds, models.FieldPricing),
	}
}

func distinct(ds *dataset.Dataset, field models.Field) []string {
	values, ok := ds.Values(field)
	if !ok {
		return nil
	}

	return unique(values)
}

func themes(ds *dataset.Dataset, delim string) []string {
	if !ds.Has(models.FieldTags) {
		return nil
	}

	if delim == "" {
		delim = "|"
	}

	var tags []string
	for i := range ds.Events {
		tags = append(tags, ds.Events[i].TagList(delim)...)
	}

	return unique(tags)
}

func unique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := []string{Wildcard}

	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}

		seen[v] = true
		out = append(out, v)
	}

	return out
}
