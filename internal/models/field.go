package models

// Field identifies a logical dataset column independently of its header text.
type Field string

// Logical columns understood by the pipeline.
const (
	FieldTitle     Field = "title"
	FieldSchedule  Field = "schedule"
	FieldDuration  Field = "duration"
	FieldCity      Field = "city"
	FieldRegion    Field = "region"
	FieldTags      Field = "tags"
	FieldPricing   Field = "pricing"
	FieldLatitude  Field = "latitude"
	FieldLongitude Field = "longitude"
)

// Derived columns produced by enrichment. Each is available once a dataset
// has been processed and the column it is derived from is present.
const (
	FieldOpeningTime Field = "opening_time"
	FieldClosingTime Field = "closing_time"
	FieldWeekday     Field = "weekday"
	FieldEventType   Field = "event_type"
)

// RawFields lists the columns a loader may map, in display order. Duration
// and pricing are mapped from source columns but read back through Value as
// derived values.
var RawFields = []Field{
	FieldTitle,
	FieldSchedule,
	FieldDuration,
	FieldCity,
	FieldRegion,
	FieldTags,
	FieldPricing,
	FieldLatitude,
	FieldLongitude,
}

// Value returns the analysis value of field for the event. Two fields
// differ from their source cell: FieldDuration returns the derived Duration
// (the first time token of DurationText), and FieldPricing returns the
// derived Pricing label, so absent conditions read as Free. The source text
// stays in DurationText and PricingCondition.
func (e *Event) Value(field Field) string {
	switch field {
	case FieldTitle:
		return e.Title
	case FieldSchedule:
		return e.Schedule
	case FieldDuration:
		return e.Duration
	case FieldCity:
		return e.City
	case FieldRegion:
		return e.Region
	case FieldTags:
		return e.Tags
	case FieldPricing:
		return e.Pricing
	case FieldLatitude:
		return e.Latitude
	case FieldLongitude:
		return e.Longitude
	case FieldOpeningTime:
		return e.OpeningTime
	case FieldClosingTime:
		return e.ClosingTime
	case FieldWeekday:
		return e.Weekday
	case FieldEventType:
		return e.EventType
	default:
		return ""
	}
}
