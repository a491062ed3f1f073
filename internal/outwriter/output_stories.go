package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/foredeck/foredeck/internal/contract"
	"github.com/foredeck/foredeck/internal/parquet"
	"github.com/foredeck/foredeck/schema"
)

// PrintStoryResults outputs the reconciled story listing, dispatching based on
// the output format configured.
func PrintStoryResults(stories []schema.StoryRecord, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForStories(stories, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForStories(stories, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForStories(stories, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printStoriesTable(stories, cfg, duration); err != nil {
			return fmt.Errorf("error writing stories table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForStories handles opening the file and calling the JSON writer.
func printJSONResultsForStories(stories []schema.StoryRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, stories)
	}, "JSON story results")
}

// printCSVResultsForStories handles opening the file and calling the CSV writer.
func printCSVResultsForStories(stories []schema.StoryRecord, cfg *contract.Config) error {
	header := []string{"title", "author", "source", "published_at", "categories", "pinned"}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, s := range stories {
				record := []string{
					s.Title,
					s.Author,
					contract.GetPlainSourceLabel(s.Source),
					s.PublishedAt,
					schema.FormatCategories(s.Categories),
					fmt.Sprintf("%t", s.Pinned()),
				}
				if err := csvWriter.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "CSV story results")
}

// printParquetResultsForStories exports the listing to a Parquet file.
func printParquetResultsForStories(stories []schema.StoryRecord, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("parquet output requires --output-file")
	}
	rows := parquet.ConvertStoryRecords(stories)
	if err := parquet.WriteStoriesParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote Parquet story results to %s\n", cfg.OutputFile)
	return nil
}

// printStoriesTable prints the story listing with colored source labels.
func printStoriesTable(stories []schema.StoryRecord, cfg *contract.Config, duration time.Duration) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"Title", "Author", "Source", "Published", "Categories"}
	table.Header(headers)

	titleWidth := GetMaxTableTitleWidth(cfg)

	// --- 2. Prepare Data Rows ---
	var data [][]string
	for i, s := range stories {
		if i >= cfg.ResultLimit {
			break
		}

		title := contract.TruncateText(s.Title, titleWidth)
		if s.Pinned() {
			if cfg.UseColors {
				title = contract.PinnedColor.Sprintf("* %s", title)
			} else {
				title = "* " + title
			}
		}

		sourceLabel := contract.GetPlainSourceLabel(s.Source)
		if cfg.UseColors {
			sourceLabel = contract.GetColorSourceLabel(s.Source)
		}

		published := s.SortTimestamp()
		if published == "" {
			published = "-"
		}

		row := []string{
			title,
			s.Author,
			sourceLabel,
			published,
			schema.FormatCategories(s.Categories),
		}
		data = append(data, row)
	}

	// --- 3. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Reconciled %d stories in %v. Cache backend: %s\n", len(stories), duration, cfg.CacheBackend)
	return nil
}
