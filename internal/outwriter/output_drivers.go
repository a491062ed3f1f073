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
	"github.com/foredeck/foredeck/schema"
)

// PrintDriverResults outputs classified driver signals, dispatching based on
// the output format configured.
func PrintDriverResults(drivers []schema.DriverSeries, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForDrivers(drivers, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForDrivers(drivers, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errors.New("parquet output is not supported for drivers")
	default:
		// Default to human-readable table
		if err := printDriversTable(drivers, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing drivers table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForDrivers handles opening the file and calling the JSON writer.
func printJSONResultsForDrivers(drivers []schema.DriverSeries, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, drivers)
	}, "JSON driver results")
}

// printCSVResultsForDrivers handles opening the file and calling the CSV writer.
func printCSVResultsForDrivers(drivers []schema.DriverSeries, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"key", "kind", "points", "domain_min", "domain_max"}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, d := range drivers {
				record := []string{
					d.Key,
					string(d.Kind),
					fmt.Sprintf("%d", len(d.Points)),
					fmtFloat(d.Domain.Min),
					fmtFloat(d.Domain.Max),
				}
				if err := csvWriter.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "CSV driver results")
}

// printDriversTable prints the driver classification in a five-column table.
func printDriversTable(drivers []schema.DriverSeries, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"Driver", "Kind", "Points", "Domain Min", "Domain Max"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	var data [][]string
	for _, d := range drivers {
		row := []string{
			d.Key,
			string(d.Kind),
			fmt.Sprintf("%d", len(d.Points)),
			fmtFloat(d.Domain.Min),
			fmtFloat(d.Domain.Max),
		}
		data = append(data, row)
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Classified %d drivers in %v\n", len(drivers), duration)
	return nil
}
