package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"jepdash/internal/aggregate"
	"jepdash/internal/filter"
	"jepdash/internal/models"
	"jepdash/internal/report"
	"jepdash/pkg/utils"
)

const (
	titleWidth = 60

	notAvailable = "_Not available: the dataset has no matching column._"
	noData       = "_No data._"
)

// RenderDashboard renders every tab of d as one markdown document.
func RenderDashboard(d *report.Dashboard) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Heritage open-house events\n\nSource: `%s`, %d events.\n", d.Source, d.Rows)

	for _, tab := range report.Tabs {
		sb.WriteString("\n")
		sb.WriteString(RenderTab(d, tab))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// RenderTab renders one tab of d. Unknown tab names render nothing.
func RenderTab(d *report.Dashboard, tab string) string {
	var sections []string

	switch tab {
	case report.TabFrequency:
		sections = []string{
			"## Frequency",
			RenderSeries(d.Frequency.ByWeekday, "Weekday"),
			RenderSeries(d.Frequency.TopLocations, "City"),
		}
	case report.TabAccessibility:
		sections = []string{
			"## Accessibility",
			RenderSeries(d.Accessibility.Opening, "Opening"),
			RenderSeries(d.Accessibility.Closing, "Closing"),
			RenderSeries(d.Accessibility.Duration, "Duration"),
			RenderSeries(d.Accessibility.Pricing, "Pricing"),
		}
	case report.TabVisitTypes:
		sections = []string{
			"## Visit types",
			RenderSeries(d.VisitTypes.Themes, "Theme"),
			RenderSeries(d.VisitTypes.Regions, "Region"),
			RenderSeries(d.VisitTypes.EventTypes, "Type"),
			RenderSeries(d.VisitTypes.Cities, "City"),
		}
	case report.TabMap:
		sections = []string{"## Map", renderMap(d.Map)}
	default:
		return ""
	}

	return strings.Join(sections, "\n\n") + "\n"
}

// RenderSeries renders a titled count table with a share column.
func RenderSeries(s report.Series, label string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "### %s\n\n", s.Title)

	switch {
	case !s.Available:
		sb.WriteString(notAvailable)
	case len(s.Counts) == 0:
		sb.WriteString(noData)
	default:
		sb.WriteString(strings.Join(CountTable(s.Counts, label), "\n"))
	}

	return sb.String()
}

// CountTable renders counts with the share of each category in the
// listed total.
func CountTable(counts []aggregate.Count, label string) []string {
	total := aggregate.Total(counts)
	rows := make([][]string, len(counts))

	for i, c := range counts {
		share := 0.0
		if total > 0 {
			share = float64(c.Count) * 100 / float64(total)
		}

		rows[i] = []string{c.Category, strconv.Itoa(c.Count), strconv.FormatFloat(share, 'f', 1, 64) + "%"}
	}

	return Table([]string{label, "Events", "Share"}, rows)
}

// EventTable renders the derived view of events.
func EventTable(events []models.Event) []string {
	helper := utils.NewStringHelper()
	rows := make([][]string, len(events))

	for i, e := range events {
		rows[i] = []string{
			helper.TruncateString(e.Title, titleWidth),
			e.City,
			e.Region,
			e.Weekday,
			e.OpeningTime,
			e.ClosingTime,
			e.EventType,
			e.Pricing,
		}
	}

	return Table([]string{"Title", "City", "Region", "Weekday", "Opening", "Closing", "Type", "Pricing"}, rows)
}

func renderMap(m report.MapView) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Filters: %s\n\n", describeCriteria(m.Criteria))
	fmt.Fprintf(&sb, "%d matching events, %d located.\n\n", m.Matched, len(m.Points))
	sb.WriteString("### Preview\n\n")

	if len(m.Preview) == 0 {
		sb.WriteString(noData)
	} else {
		sb.WriteString(strings.Join(EventTable(m.Preview), "\n"))
	}

	return sb.String()
}

func describeCriteria(c filter.Criteria) string {
	var parts []string

	add := func(name, value string) {
		if !filter.IsWildcard(value) {
			parts = append(parts, name+"="+value)
		}
	}

	add("region", c.Region)
	add("city", c.City)
	add("theme", c.Theme)
	add("type", c.EventType)
	add("pricing", c.Pricing)

	if len(parts) == 0 {
		return filter.Wildcard
	}

	return strings.Join(parts, ", ")
}
