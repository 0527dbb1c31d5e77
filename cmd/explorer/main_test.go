package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jepdash/internal/aggregate"
	"jepdash/internal/config"
	"jepdash/internal/dataset"
	"jepdash/internal/models"
	"jepdash/internal/report"
	"jepdash/pkg/metadata"
)

const fixture = "../../test/fixtures/events.csv"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv(config.EnvDatasetPath, "")
	t.Setenv(config.EnvDatasetFormat, "")
	t.Setenv(config.EnvLogLevel, "")

	cmd := newRootCmd()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestEnrichCmd(t *testing.T) {
	out, err := run(t, "enrich", "--dataset", fixture)
	require.NoError(t, err)

	var events []models.Event
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 3)

	assert.Equal(t, "09h00", events[0].OpeningTime)
	assert.Equal(t, "19h00", events[0].ClosingTime)
	assert.Equal(t, "Friday", events[0].Weekday)
	assert.Equal(t, models.PricingFree, events[0].Pricing)

	assert.Equal(t, "14h30", events[1].OpeningTime)
	assert.Equal(t, "14h30", events[1].ClosingTime)
	assert.Equal(t, models.EventTypeExhibition, events[1].EventType)

	assert.Empty(t, events[2].OpeningTime)
	assert.Equal(t, models.EventTypeVisit, events[2].EventType)
}

func TestEnrichCmd_Limit(t *testing.T) {
	out, err := run(t, "enrich", "--dataset", fixture, "-n", "1")
	require.NoError(t, err)

	var events []models.Event
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	assert.Len(t, events, 1)
}

func TestStatsCmd_FrequencyJSON(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "explorer.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("analysis:\n  top_locations: 2\n"), 0644))

	out, err := run(t, "stats", "--config", cfgPath, "--dataset", fixture, "--tab", report.TabFrequency, "--json")
	require.NoError(t, err)

	var f report.Frequency
	require.NoError(t, json.Unmarshal([]byte(out), &f))

	assert.Equal(t, []aggregate.Count{{Category: "Paris", Count: 1}, {Category: "Lyon", Count: 1}}, f.TopLocations.Counts)
	assert.Equal(t, []aggregate.Count{{Category: "Friday", Count: 1}}, f.ByWeekday.Counts)
}

func TestStatsCmd_Markdown(t *testing.T) {
	out, err := run(t, "stats", "--dataset", fixture)
	require.NoError(t, err)

	assert.Contains(t, out, "## Visit types")
	assert.Contains(t, out, "| Art ")
}

func TestStatsCmd_UnknownTab(t *testing.T) {
	_, err := run(t, "stats", "--dataset", fixture, "--tab", "timeline")
	assert.ErrorContains(t, err, "unknown tab")
}

func TestFilterCmd(t *testing.T) {
	out, err := run(t, "filter", "--dataset", fixture, "--city", "Paris", "--json")
	require.NoError(t, err)

	var view report.MapView
	require.NoError(t, json.Unmarshal([]byte(out), &view))

	assert.Equal(t, 1, view.Matched)
	require.Len(t, view.Points, 1)
	assert.InDelta(t, 48.8606, view.Points[0].Latitude, 1e-9)

	out, err = run(t, "filter", "--dataset", fixture, "--theme", "Art")
	require.NoError(t, err)
	assert.Contains(t, out, "Filters: theme=Art")
	assert.Contains(t, out, "2 matching events, 2 located.")
}

func TestOptionsCmd(t *testing.T) {
	out, err := run(t, "options", "--dataset", fixture)
	require.NoError(t, err)

	assert.Contains(t, out, "--city: All, Paris, Unknown, Lyon\n")
	assert.Contains(t, out, "--theme: All, Art, Musée\n")
	assert.Contains(t, out, "--type: All, Visit, Exhibition\n")
}

func TestReportAndVerifyCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")

	_, err := run(t, "report", "--dataset", fixture, "-o", path)
	require.NoError(t, err)

	out, err := run(t, "verify", path)
	require.NoError(t, err)
	assert.Contains(t, out, "OK (dataset "+fixture+", 3 rows")

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	tampered := strings.Replace(string(content), "Paris", "Lille", 1)
	require.NoError(t, os.WriteFile(path, []byte(tampered), 0644))

	_, err = run(t, "verify", path)
	assert.ErrorIs(t, err, metadata.ErrHashMismatch)
}

func TestConfigCmd_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")

	out, err := run(t, "config", "--dataset", fixture, "--log-level", "debug", "--save", path)
	require.NoError(t, err)
	assert.Contains(t, out, fixture)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, fixture, cfg.Dataset.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestRootCmd_Errors(t *testing.T) {
	_, err := run(t, "enrich", "--dataset", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, dataset.ErrDatasetNotFound)

	_, err = run(t, "enrich", "--dataset", fixture, "--log-level", "loud")
	assert.ErrorIs(t, err, config.ErrInvalidLogLevel)
}

func TestFormatCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.md")

	signed := metadata.Sign("# Report\n\n| City | Events |\n| --- | --- |\n| Paris | 1 |", &metadata.Metadata{Rows: 1})
	require.NoError(t, os.WriteFile(path, []byte(signed), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("| a | b |"), 0644))

	out, err := run(t, "format", dir)
	require.Error(t, err, "dry run reports pending changes")
	assert.Contains(t, out, "1 scanned, 1 changed")

	_, err = run(t, "format", dir, "--write")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "| Paris | 1      |")

	meta, err := metadata.Verify(string(content))
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Rows)

	out, err = run(t, "format", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 scanned, 0 changed")
}

func TestStatsAndFilterCmd_HeaderOnlyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("Titre - FR,Horaires détaillés - FR,Ville,Région,Tags du lieu\n"), 0644))

	out, err := run(t, "stats", "--dataset", path, "--tab", report.TabFrequency)
	require.NoError(t, err)
	assert.Contains(t, out, "### Events by weekday\n\n_No data._")
	assert.Contains(t, out, "locations\n\n_No data._")

	out, err = run(t, "filter", "--dataset", path, "--city", "Paris")
	require.NoError(t, err)
	assert.Contains(t, out, "0 matching events, 0 located.")
	assert.Contains(t, out, "### Preview\n\n_No data._")
}
