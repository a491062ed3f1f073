package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/foredeck/foredeck/internal/contract"
	"github.com/foredeck/foredeck/internal/parquet"
	"github.com/foredeck/foredeck/schema"
)

// seriesFields returns the canonical value columns shown for a view kind.
func seriesFields(kind schema.ViewKind) []string {
	if kind == schema.ProjectionView {
		return []string{
			schema.FieldActual,
			schema.FieldBaselineForecast,
			schema.FieldMultivariateForecast,
			schema.FieldHandoffBaseline,
			schema.FieldHandoffMultivariate,
		}
	}
	return []string{
		schema.FieldActual,
		schema.FieldActualTest,
		schema.FieldBaseline,
		schema.FieldMultivariate,
	}
}

// seriesHeaders maps canonical field names to table column titles.
var seriesHeaders = map[string]string{
	schema.FieldActual:               "Actual",
	schema.FieldActualTest:           "Actual Test",
	schema.FieldBaseline:             "Baseline",
	schema.FieldMultivariate:         "Multivariate",
	schema.FieldBaselineForecast:     "Baseline Fcst",
	schema.FieldMultivariateForecast: "Multivar Fcst",
	schema.FieldHandoffBaseline:      "Handoff B",
	schema.FieldHandoffMultivariate:  "Handoff M",
}

// PrintSeriesResults outputs a prepared view bundle, dispatching based on the
// output format configured.
func PrintSeriesResults(bundle schema.ViewBundle, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	_, fmtOptional := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForSeries(bundle, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForSeries(bundle, cfg, fmtOptional); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForSeries(bundle, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printSeriesTable(bundle, cfg, fmtOptional, duration); err != nil {
			return fmt.Errorf("error writing series table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForSeries handles opening the file and calling the JSON writer.
func printJSONResultsForSeries(bundle schema.ViewBundle, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, bundle)
	}, "JSON series results")
}

// printCSVResultsForSeries handles opening the file and calling the CSV writer.
func printCSVResultsForSeries(bundle schema.ViewBundle, cfg *contract.Config, fmtOptional func(*float64) string) error {
	fields := seriesFields(bundle.Kind)
	header := append([]string{"ts", "date"}, fields...)

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, row := range bundle.Rows {
				record := []string{
					fmt.Sprintf("%d", row.Ts),
					formatInstant(row.Ts),
				}
				for _, field := range fields {
					record = append(record, optionalField(row, field, fmtOptional))
				}
				if err := csvWriter.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "CSV series results")
}

// printParquetResultsForSeries exports the bundle's rows to a Parquet file.
// Parquet needs a seekable file, so stdout is not an option here.
func printParquetResultsForSeries(bundle schema.ViewBundle, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("parquet output requires --output-file")
	}
	rows := parquet.ConvertCombinedRows(bundle.Rows, bundle.Kind)
	if err := parquet.WriteSeriesParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote Parquet series results to %s\n", cfg.OutputFile)
	return nil
}

// printSeriesTable prints the prepared view in a date-by-field table.
func printSeriesTable(bundle schema.ViewBundle, cfg *contract.Config, fmtOptional func(*float64) string, duration time.Duration) error {
	fields := seriesFields(bundle.Kind)

	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"Date"}
	for _, field := range fields {
		headers = append(headers, seriesHeaders[field])
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	var data [][]string
	for i, row := range bundle.Rows {
		if i >= cfg.ResultLimit {
			break
		}
		record := []string{formatInstant(row.Ts)}
		for _, field := range fields {
			record = append(record, optionalField(row, field, fmtOptional))
		}
		data = append(data, record)
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Prepared %d points (%s view) in %v. Window: %s to %s. Domain: [%.*f, %.*f]\n",
		len(bundle.Rows), bundle.Kind, duration,
		formatOptionalInstant(bundle.Window.StartTs), formatOptionalInstant(bundle.Window.EndTs),
		cfg.Precision, bundle.Domain.Min, cfg.Precision, bundle.Domain.Max)
	return nil
}

// optionalField renders a canonical combined-row field, empty when unset.
func optionalField(row schema.CombinedRow, field string, fmtOptional func(*float64) string) string {
	v, ok := row.Field(field)
	if !ok {
		return fmtOptional(nil)
	}
	return fmtOptional(&v)
}
