// Package config provides configuration management for the dataset explorer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"jepdash/internal/models"
)

// Configuration validation errors.
var (
	ErrMissingDatasetPath  = errors.New("dataset.path is required")
	ErrInvalidFormat       = errors.New("dataset.format must be 'csv' or 'sqlite'")
	ErrInvalidDelimiter    = errors.New("dataset.delimiter must be a single character")
	ErrMissingTable        = errors.New("dataset.table is required for sqlite datasets")
	ErrMissingScheduleCol  = errors.New("dataset.columns.schedule is required")
	ErrInvalidTopN         = errors.New("analysis.top_n must be at least 1")
	ErrInvalidTopLocations = errors.New("analysis.top_locations must be at least 1")
	ErrInvalidPreviewRows  = errors.New("analysis.preview_rows must be non-negative")
	ErrEmptyTagDelimiter   = errors.New("analysis.tag_delimiter is required")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat    = errors.New("logging.format must be 'text' or 'json'")
	ErrUnsupportedFile     = errors.New("config file must be .yaml, .yml or .toml")
)

// Dataset formats.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Environment variables applied on top of the file.
const (
	EnvDatasetPath   = "JEP_DATASET_PATH"
	EnvDatasetFormat = "JEP_DATASET_FORMAT"
	EnvLogLevel      = "JEP_LOG_LEVEL"
)

// Config represents the complete explorer configuration.
type Config struct {
	Dataset  DatasetConfig  `yaml:"dataset" toml:"dataset"`
	Analysis AnalysisConfig `yaml:"analysis" toml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// DatasetConfig describes where the events come from.
type DatasetConfig struct {
	Path      string        `yaml:"path" toml:"path"`
	Format    string        `yaml:"format" toml:"format"`
	Delimiter string        `yaml:"delimiter" toml:"delimiter"`
	Table     string        `yaml:"table" toml:"table"`
	Columns   ColumnsConfig `yaml:"columns" toml:"columns"`
}

// ColumnsConfig maps logical fields to header names in the source.
// Duration defaults to the schedule column.
type ColumnsConfig struct {
	Title     string `yaml:"title" toml:"title"`
	Schedule  string `yaml:"schedule" toml:"schedule"`
	Duration  string `yaml:"duration" toml:"duration"`
	City      string `yaml:"city" toml:"city"`
	Region    string `yaml:"region" toml:"region"`
	Tags      string `yaml:"tags" toml:"tags"`
	Pricing   string `yaml:"pricing" toml:"pricing"`
	Latitude  string `yaml:"latitude" toml:"latitude"`
	Longitude string `yaml:"longitude" toml:"longitude"`
}

// AnalysisConfig controls the aggregates.
type AnalysisConfig struct {
	TopN         int    `yaml:"top_n" toml:"top_n"`
	TopLocations int    `yaml:"top_locations" toml:"top_locations"`
	PreviewRows  int    `yaml:"preview_rows" toml:"preview_rows"`
	TagDelimiter string `yaml:"tag_delimiter" toml:"tag_delimiter"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the configuration matching the published dataset layout.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:      "data/jep_sample.csv",
			Format:    FormatCSV,
			Delimiter: ",",
			Table:     "events",
			Columns: ColumnsConfig{
				Title:     "Titre - FR",
				Schedule:  "Horaires détaillés - FR",
				City:      "Ville",
				Region:    "Région",
				Tags:      "Tags du lieu",
				Pricing:   "Conditions tarifaires",
				Latitude:  "Latitude",
				Longitude: "Longitude",
			},
		},
		Analysis: AnalysisConfig{
			TopN:         10,
			TopLocations: 5,
			PreviewRows:  20,
			TagDelimiter: "|",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML or TOML file. Keys missing
// from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from the environment when the variables are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDatasetPath); v != "" {
		c.Dataset.Path = v
	}

	if v := os.Getenv(EnvDatasetFormat); v != "" {
		c.Dataset.Format = strings.ToLower(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Dataset.Path == "" {
		return ErrMissingDatasetPath
	}

	switch c.Dataset.Format {
	case FormatCSV:
		if utf8.RuneCountInString(c.Dataset.Delimiter) != 1 {
			return ErrInvalidDelimiter
		}
	case FormatSQLite:
		if c.Dataset.Table == "" {
			return ErrMissingTable
		}
	default:
		return ErrInvalidFormat
	}

	if c.Dataset.Columns.Schedule == "" {
		return ErrMissingScheduleCol
	}

	if c.Analysis.TopN < 1 {
		return ErrInvalidTopN
	}

	if c.Analysis.TopLocations < 1 {
		return ErrInvalidTopLocations
	}

	if c.Analysis.PreviewRows < 0 {
		return ErrInvalidPreviewRows
	}

	if c.Analysis.TagDelimiter == "" {
		return ErrEmptyTagDelimiter
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// DelimiterRune returns the CSV delimiter as a rune.
func (d *DatasetConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(d.Delimiter)
	return r
}

// ColumnMap returns the header name for every configured field. Fields
// with an empty header are left out.
func (cc *ColumnsConfig) ColumnMap() map[models.Field]string {
	m := map[models.Field]string{
		models.FieldTitle:     cc.Title,
		models.FieldSchedule:  cc.Schedule,
		models.FieldDuration:  cc.Duration,
		models.FieldCity:      cc.City,
		models.FieldRegion:    cc.Region,
		models.FieldTags:      cc.Tags,
		models.FieldPricing:   cc.Pricing,
		models.FieldLatitude:  cc.Latitude,
		models.FieldLongitude: cc.Longitude,
	}

	if m[models.FieldDuration] == "" {
		m[models.FieldDuration] = cc.Schedule
	}

	for field, header := range m {
		if header == "" {
			delete(m, field)
		}
	}

	return m
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Dataset: %s (%s), TopN: %d, LogLevel: %s}",
		c.Dataset.Path,
		c.Dataset.Format,
		c.Analysis.TopN,
		c.Logging.Level,
	)
}
