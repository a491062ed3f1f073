// Package parquet provides data structures and functions for exporting
// prepared series and story data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/foredeck/foredeck/schema"
)

// SeriesRow represents one reconciled point of a prepared view. Optional
// columns stay null where the source field was absent, so downstream tools
// can tell "no forecast here" apart from a zero.
type SeriesRow struct {
	// Ts is the point's instant in Unix milliseconds
	Ts int64 `parquet:"ts,snappy"`

	// View is the view kind this row belongs to (evaluation or projection)
	View string `parquet:"view,snappy"`

	// Actual is the observed historical value (nullable)
	Actual *float64 `parquet:"actual,optional,snappy"`

	// ActualTest is the held-out observed value (nullable)
	ActualTest *float64 `parquet:"actual_test,optional,snappy"`

	// Baseline is the baseline model prediction (nullable)
	Baseline *float64 `parquet:"baseline,optional,snappy"`

	// Multivariate is the multivariate model prediction (nullable)
	Multivariate *float64 `parquet:"multivariate,optional,snappy"`

	// BaselineForecast is the baseline future forecast (nullable)
	BaselineForecast *float64 `parquet:"baseline_forecast,optional,snappy"`

	// MultivariateForecast is the multivariate future forecast (nullable)
	MultivariateForecast *float64 `parquet:"multivariate_forecast,optional,snappy"`

	// HandoffBaseline is the baseline bridge value at the handoff (nullable)
	HandoffBaseline *float64 `parquet:"handoff_baseline,optional,snappy"`

	// HandoffMultivariate is the multivariate bridge value at the handoff (nullable)
	HandoffMultivariate *float64 `parquet:"handoff_multivariate,optional,snappy"`
}

// StoryRow represents one reconciled story for export.
type StoryRow struct {
	// StoryID is the source-assigned identifier (may be empty)
	StoryID string `parquet:"story_id,snappy"`

	// Title is the story headline
	Title string `parquet:"title,snappy"`

	// Author is the story byline (may be empty)
	Author string `parquet:"author,snappy"`

	// Description is the plain-text summary
	Description string `parquet:"description,snappy"`

	// Categories is the comma-joined category list
	Categories string `parquet:"categories,snappy"`

	// PublishedAt is the RFC3339 publish instant (may be empty)
	PublishedAt string `parquet:"published_at,snappy"`

	// CreatedAt is the RFC3339 creation instant (may be empty)
	CreatedAt string `parquet:"created_at,snappy"`

	// Source names the winning source (live, debug or local)
	Source string `parquet:"source,snappy"`

	// IsDebug marks bundled fixture stories
	IsDebug bool `parquet:"is_debug,snappy"`
}

// WriteSeriesParquet writes a slice of SeriesRow structs to a Parquet file.
func WriteSeriesParquet(data []SeriesRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the SeriesRow struct tags
	writer := parquet.NewGenericWriter[SeriesRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteStoriesParquet writes a slice of StoryRow structs to a Parquet file.
func WriteStoriesParquet(data []StoryRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[StoryRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertCombinedRows converts schema.CombinedRow to SeriesRow for Parquet export.
func ConvertCombinedRows(rows []schema.CombinedRow, view schema.ViewKind) []SeriesRow {
	result := make([]SeriesRow, len(rows))
	for i, row := range rows {
		result[i] = SeriesRow{
			Ts:                   row.Ts,
			View:                 string(view),
			Actual:               row.Actual,
			ActualTest:           row.ActualTest,
			Baseline:             row.Baseline,
			Multivariate:         row.Multivariate,
			BaselineForecast:     row.BaselineForecast,
			MultivariateForecast: row.MultivariateForecast,
			HandoffBaseline:      row.HandoffBaseline,
			HandoffMultivariate:  row.HandoffMultivariate,
		}
	}
	return result
}

// ConvertStoryRecords converts schema.StoryRecord to StoryRow for Parquet export.
func ConvertStoryRecords(records []schema.StoryRecord) []StoryRow {
	result := make([]StoryRow, len(records))
	for i, record := range records {
		result[i] = StoryRow{
			StoryID:     record.StoryID,
			Title:       record.Title,
			Author:      record.Author,
			Description: record.Description,
			Categories:  schema.FormatCategories(record.Categories),
			PublishedAt: record.PublishedAt,
			CreatedAt:   record.CreatedAt,
			Source:      string(record.Source),
			IsDebug:     record.IsDebug,
		}
	}
	return result
}
