// Package models defines data structures shared by the loader, the normalizer and the aggregators.
package models

import "strings"

// Sentinel and default labels found in, or derived from, the dataset.
const (
	// Unknown marks a city or region the dataset could not resolve.
	Unknown = "Unknown"
	// PricingFree is used when an event has no pricing condition.
	PricingFree = "Free"
)

// Event types derived from the title.
const (
	EventTypeExhibition = "Exhibition"
	EventTypeVisit      = "Visit"
)

// Event represents one row of the open-house dataset.
//
// Raw fields hold the cell text as loaded. An empty string means the cell
// was missing. Derived fields are filled once by the normalizer and are
// empty when no value could be extracted.
type Event struct {
	Title            string `json:"title"`
	Schedule         string `json:"schedule,omitempty"`
	City             string `json:"city,omitempty"`
	Region           string `json:"region,omitempty"`
	Tags             string `json:"tags,omitempty"`
	PricingCondition string `json:"pricingCondition,omitempty"`
	Latitude         string `json:"latitude,omitempty"`
	Longitude        string `json:"longitude,omitempty"`
	DurationText     string `json:"-"`

	OpeningTime string `json:"openingTime,omitempty"`
	ClosingTime string `json:"closingTime,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Weekday     string `json:"weekday,omitempty"`
	EventType   string `json:"eventType,omitempty"`
	Pricing     string `json:"pricing,omitempty"`

	Row int `json:"row"`
}

// HasTags reports whether the event carries a tags value.
func (e *Event) HasTags() bool {
	return strings.TrimSpace(e.Tags) != ""
}

// TagList splits the raw tags on delim. Empty items are dropped; repeated
// items are kept.
func (e *Event) TagList(delim string) []string {
	if !e.HasTags() {
		return nil
	}

	var tags []string

	for tag := range strings.SplitSeq(e.Tags, delim) {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	return tags
}
