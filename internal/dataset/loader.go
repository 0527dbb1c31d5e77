package dataset

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	_ "modernc.org/sqlite"

	"jepdash/internal/config"
	"jepdash/internal/logger"
	"jepdash/internal/models"
	"jepdash/pkg/utils"
)

// Loader errors.
var (
	ErrDatasetNotFound = errors.New("dataset file not found")
	ErrNotTabular      = errors.New("dataset is not a table")
	ErrInvalidTable    = errors.New("invalid table name")
	ErrUnknownFormat   = errors.New("unknown dataset format")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// naValues are read as missing cells.
var naValues = []string{"", "NA", "N/A", "n/a", "NaN", "nan", "NULL", "null", "<NA>", "#N/A"}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Loader reads the event table from a CSV file or a SQLite database.
type Loader struct {
	cfg     config.DatasetConfig
	mapping map[models.Field]string
	log     *logger.Logger
	strings *utils.StringHelper
}

// NewLoader creates a loader for the given dataset configuration.
func NewLoader(cfg config.DatasetConfig, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}

	return &Loader{
		cfg:     cfg,
		mapping: cfg.Columns.ColumnMap(),
		log:     log.With("component", "loader"),
		strings: utils.NewStringHelper(),
	}
}

// Load reads the configured source. Columns missing from the source are
// logged and left out of the schema; they never fail the load.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	if _, err := os.Stat(l.cfg.Path); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDatasetNotFound, l.cfg.Path, err)
	}

	var (
		headers []string
		rows    [][]string
		err     error
	)

	switch l.cfg.Format {
	case config.FormatCSV, "":
		headers, rows, err = l.readCSV()
	case config.FormatSQLite:
		headers, rows, err = l.readSQLite(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, l.cfg.Format)
	}

	if err != nil {
		return nil, err
	}

	ds := l.build(headers, rows)

	for _, f := range ds.Schema.Missing(l.mapping) {
		l.log.Warn("column not found, dependent features disabled", "field", f, "header", l.mapping[f])
	}

	l.log.Info("dataset loaded", "source", l.cfg.Path, "rows", ds.Len(), "columns", len(headers))

	return ds, nil
}

// readCSV parses the file with every column typed as string. Short rows
// are padded with missing cells and extra trailing cells are dropped, so
// one ragged row never fails the load. A header without data rows yields
// an empty table.
func (l *Loader) readCSV() ([]string, [][]string, error) {
	raw, err := os.ReadFile(l.cfg.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	raw = bytes.TrimPrefix(raw, utf8BOM)

	delimiter := l.cfg.DelimiterRune()
	if l.cfg.Delimiter == "" {
		delimiter = ','
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNotTabular, err)
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: no header row", ErrNotTabular)
	}

	width := len(records[0])

	for i := 1; i < len(records); i++ {
		switch n := len(records[i]); {
		case n < width:
			l.log.Debug("short row padded", "line", i+1, "fields", n, "want", width)
			records[i] = append(records[i], make([]string, width-n)...)
		case n > width:
			l.log.Debug("long row truncated", "line", i+1, "fields", n, "want", width)
			records[i] = records[i][:width]
		}
	}

	if len(records) == 1 {
		return records[0], nil, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNotTabular, df.Err)
	}

	headers := df.Names()
	cols := make([]series.Series, len(headers))

	for i, h := range headers {
		cols[i] = df.Col(h)
	}

	rows := make([][]string, df.Nrow())
	for r := range rows {
		row := make([]string, len(cols))

		for c, col := range cols {
			if e := col.Elem(r); !e.IsNA() {
				row[c] = e.String()
			}
		}

		rows[r] = row
	}

	return headers, rows, nil
}

// readSQLite reads every row of the configured table in read-only mode.
func (l *Loader) readSQLite(ctx context.Context) ([]string, [][]string, error) {
	if !tableNamePattern.MatchString(l.cfg.Table) {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidTable, l.cfg.Table)
	}

	db, err := sql.Open("sqlite", "file:"+l.cfg.Path+"?mode=ro")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rs, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s"`, l.cfg.Table))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNotTabular, err)
	}
	defer rs.Close()

	headers, err := rs.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var rows [][]string

	for rs.Next() {
		cells := make([]sql.NullString, len(headers))
		dest := make([]any, len(headers))

		for i := range cells {
			dest[i] = &cells[i]
		}

		if err := rs.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row %d: %w", len(rows), err)
		}

		row := make([]string, len(headers))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}

		rows = append(rows, row)
	}

	if err := rs.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return headers, rows, nil
}

// build maps raw rows onto events through the schema.
func (l *Loader) build(headers []string, rows [][]string) *Dataset {
	schema := NewSchema(headers, l.mapping)

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}

	cell := func(row []string, field models.Field) string {
		h, ok := schema.Column(field)
		if !ok {
			return ""
		}

		i := index[h]
		if i >= len(row) {
			return ""
		}

		return l.strings.TrimWhitespace(row[i])
	}

	events := make([]models.Event, len(rows))
	for r, row := range rows {
		events[r] = models.Event{
			Row:              r,
			Title:            cell(row, models.FieldTitle),
			Schedule:         cell(row, models.FieldSchedule),
			DurationText:     cell(row, models.FieldDuration),
			City:             cell(row, models.FieldCity),
			Region:           cell(row, models.FieldRegion),
			Tags:             cell(row, models.FieldTags),
			PricingCondition: cell(row, models.FieldPricing),
			Latitude:         cell(row, models.FieldLatitude),
			Longitude:        cell(row, models.FieldLongitude),
		}
	}

	return New(l.cfg.Path, schema, events)
}
