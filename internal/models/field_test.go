package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_Value(t *testing.T) {
	e := Event{
		Title:            "Visite",
		Schedule:         "16 septembre 10h00 - 18h00",
		DurationText:     "Durée 01h30 environ",
		PricingCondition: "",
		Duration:         "01h30",
		Pricing:          PricingFree,
		Weekday:          "Friday",
	}

	tests := []struct {
		field Field
		want  string
	}{
		{FieldTitle, "Visite"},
		{FieldSchedule, "16 septembre 10h00 - 18h00"},
		{FieldDuration, "01h30"},
		{FieldPricing, PricingFree},
		{FieldWeekday, "Friday"},
		{Field("unknown"), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			assert.Equal(t, tt.want, e.Value(tt.field))
		})
	}
}

func TestEvent_TagList(t *testing.T) {
	e := Event{Tags: " Art | |Musée|Art"}

	assert.Equal(t, []string{"Art", "Musée", "Art"}, e.TagList("|"))
	assert.Nil(t, (&Event{}).TagList("|"))
}
