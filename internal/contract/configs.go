// Package contract holds the validated runtime configuration and the small
// shared helpers the CLI boundary depends on.
package contract

import (
	"fmt"
	"strings"

	"github.com/foredeck/foredeck/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 50
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	DefaultChartWidth  = 1100
	DefaultChartHeight = 500
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Config holds the runtime configuration for all commands.
// This struct is the final, validated config.
type Config struct {
	DatasetDir string
	View       schema.ViewKind
	Window     schema.ViewWindow
	Fields     []string
	DriverKeys []string
	ClampZero  bool

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	FeedURLs []string
	Offline  bool

	CacheBackend   schema.CacheBackend
	CacheDBConnect string // Please use env var as this is plaintext

	ChartDir    string
	ChartWidth  int
	ChartHeight int
}

// Clone returns a copy of the config safe for per-request overrides.
// Slice fields are copied so callers can replace them independently.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Fields = append([]string(nil), c.Fields...)
	clone.DriverKeys = append([]string(nil), c.DriverKeys...)
	clone.FeedURLs = append([]string(nil), c.FeedURLs...)
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct; validation produces a Config.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DatasetDirStr string

	View           string `mapstructure:"view"`
	Start          string `mapstructure:"start"`
	End            string `mapstructure:"end"`
	Fields         string `mapstructure:"fields"`
	Drivers        string `mapstructure:"drivers"`
	ClampZero      bool   `mapstructure:"clamp-zero"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	FeedURL        string `mapstructure:"feed-url"`
	Offline        bool   `mapstructure:"offline"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	ChartDir       string `mapstructure:"chart-dir"`
	ChartWidth     int    `mapstructure:"chart-width"`
	ChartHeight    int    `mapstructure:"chart-height"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processWindow(cfg, input); err != nil {
		return err
	}
	return nil
}

func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.DatasetDir = input.DatasetDirStr

	switch schema.ViewKind(input.View) {
	case schema.EvaluationView, schema.ProjectionView:
		cfg.View = schema.ViewKind(input.View)
	default:
		return fmt.Errorf("invalid view %q: must be %s or %s", input.View, schema.EvaluationView, schema.ProjectionView)
	}

	switch schema.OutputMode(input.Output) {
	case schema.TextOut, schema.CSVOut, schema.JSONOut, schema.ParquetOut:
		cfg.Output = schema.OutputMode(input.Output)
	default:
		return fmt.Errorf("invalid output %q: must be text, csv, json or parquet", input.Output)
	}

	switch schema.CacheBackend(input.CacheBackend) {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend, schema.NoneBackend:
		cfg.CacheBackend = schema.CacheBackend(input.CacheBackend)
	default:
		return fmt.Errorf("invalid cache backend %q: must be sqlite, mysql, postgresql or none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect

	if input.Limit < 1 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 1 and %d, got %d", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 0 || input.Precision > 10 {
		return fmt.Errorf("precision must be between 0 and 10, got %d", input.Precision)
	}
	cfg.Precision = input.Precision

	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color flag: %w", err)
	}
	cfg.UseColors = useColors

	cfg.Fields = SplitCSVList(input.Fields)
	cfg.DriverKeys = SplitCSVList(input.Drivers)
	cfg.ClampZero = input.ClampZero
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.FeedURLs = SplitCSVList(input.FeedURL)
	cfg.Offline = input.Offline

	cfg.ChartDir = input.ChartDir
	if cfg.ChartDir == "" {
		cfg.ChartDir = "."
	}
	cfg.ChartWidth = input.ChartWidth
	if cfg.ChartWidth <= 0 {
		cfg.ChartWidth = DefaultChartWidth
	}
	cfg.ChartHeight = input.ChartHeight
	if cfg.ChartHeight <= 0 {
		cfg.ChartHeight = DefaultChartHeight
	}

	return nil
}

// processWindow parses the optional --start/--end bounds into a ViewWindow.
// An unset bound stays nil, meaning "default to the series extreme".
func processWindow(cfg *Config, input *ConfigRawInput) error {
	cfg.Window = schema.ViewWindow{}

	if input.Start != "" {
		ts, ok := schema.ParseInstant(input.Start)
		if !ok {
			return fmt.Errorf("invalid start date: %q", input.Start)
		}
		cfg.Window.StartTs = &ts
	}
	if input.End != "" {
		ts, ok := schema.ParseInstant(input.End)
		if !ok {
			return fmt.Errorf("invalid end date: %q", input.End)
		}
		cfg.Window.EndTs = &ts
	}
	return nil
}

// SplitCSVList splits a comma-separated flag value into its trimmed,
// non-empty elements. An empty or blank input yields nil.
func SplitCSVList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
