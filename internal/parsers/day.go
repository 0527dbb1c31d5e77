package parsers

// Weekday labels of the event weekend.
const (
	WeekdayFriday   = "Friday"
	WeekdaySaturday = "Saturday"
)

// dayLabels is closed: the 2016 edition ran on these two dates only.
// A dataset from another edition needs a new table.
var dayLabels = map[string]string{
	"16 septembre": WeekdayFriday,
	"17 septembre": WeekdaySaturday,
}

// NormalizeDay finds the first "DD septembre" fragment in v and maps it to
// a weekday label. A fragment outside the table is returned as found.
func (p *Parser) NormalizeDay(v any) string {
	s, ok := text(v)
	if !ok {
		return ""
	}

	fragment := p.dayPattern.FindString(s)
	if fragment == "" {
		return ""
	}

	if label, ok := dayLabels[fragment]; ok {
		return label
	}

	return fragment
}
