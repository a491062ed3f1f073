// Package chartpng renders prepared view bundles to PNG charts using
// github.com/wcharczuk/go-chart/v2.
package chartpng

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/foredeck/foredeck/internal/contract"
	"github.com/foredeck/foredeck/schema"
)

// seriesColors keeps line colors stable across renders so evaluation and
// projection charts stay visually comparable.
var seriesColors = map[string]drawing.Color{
	schema.FieldActual:               chart.ColorBlue,
	schema.FieldActualTest:           chart.ColorAlternateBlue,
	schema.FieldBaseline:             chart.ColorOrange,
	schema.FieldMultivariate:         chart.ColorGreen,
	schema.FieldBaselineForecast:     chart.ColorOrange,
	schema.FieldMultivariateForecast: chart.ColorGreen,
	schema.FieldHandoffBaseline:      chart.ColorOrange,
	schema.FieldHandoffMultivariate:  chart.ColorGreen,
}

// seriesNames maps canonical field names to legend labels.
var seriesNames = map[string]string{
	schema.FieldActual:               "Actual",
	schema.FieldActualTest:           "Actual (test)",
	schema.FieldBaseline:             "Baseline",
	schema.FieldMultivariate:         "Multivariate",
	schema.FieldBaselineForecast:     "Baseline forecast",
	schema.FieldMultivariateForecast: "Multivariate forecast",
	schema.FieldHandoffBaseline:      "Baseline handoff",
	schema.FieldHandoffMultivariate:  "Multivariate handoff",
}

// viewFields lists the fields drawn for each view kind, in legend order.
func viewFields(kind schema.ViewKind) []string {
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

// handoffFields draw dashed so the bridge between history and forecast reads
// as a join, not as data.
var handoffFields = map[string]bool{
	schema.FieldHandoffBaseline:     true,
	schema.FieldHandoffMultivariate: true,
}

// RenderView renders the main view chart plus one chart per driver into
// cfg.ChartDir and returns the written file paths.
func RenderView(bundle schema.ViewBundle, cfg *contract.Config) ([]string, error) {
	if err := os.MkdirAll(cfg.ChartDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}

	var paths []string

	mainPath := filepath.Join(cfg.ChartDir, fmt.Sprintf("foredeck_%s.png", bundle.Kind))
	if err := renderMainChart(bundle, cfg, mainPath); err != nil {
		return nil, err
	}
	paths = append(paths, mainPath)

	for _, driver := range bundle.Drivers {
		driverPath := filepath.Join(cfg.ChartDir, fmt.Sprintf("foredeck_driver_%s.png", driver.Key))
		if err := renderDriverChart(driver, cfg, driverPath); err != nil {
			return nil, err
		}
		paths = append(paths, driverPath)
	}

	return paths, nil
}

// renderMainChart draws the combined rows as time series, one line per
// populated field, with the precomputed axis domain.
func renderMainChart(bundle schema.ViewBundle, cfg *contract.Config, outputPath string) error {
	var series []chart.Series
	for _, field := range viewFields(bundle.Kind) {
		times, values := fieldSeries(bundle.Rows, field)
		if len(times) == 0 {
			continue
		}
		style := chart.Style{StrokeColor: seriesColors[field], StrokeWidth: 2}
		if handoffFields[field] {
			style.StrokeDashArray = []float64{4, 4}
		}
		series = append(series, chart.TimeSeries{
			Name:    seriesNames[field],
			XValues: times,
			YValues: values,
			Style:   style,
		})
	}
	if len(series) == 0 {
		return fmt.Errorf("no drawable series for %s view", bundle.Kind)
	}

	ch := chart.Chart{
		Title:      fmt.Sprintf("Foredeck %s view", bundle.Kind),
		Width:      cfg.ChartWidth,
		Height:     cfg.ChartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 48}},
		XAxis:      chart.XAxis{Name: "Date"},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: bundle.Domain.Min, Max: bundle.Domain.Max},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return renderToFile(&ch, outputPath)
}

// renderDriverChart draws one exogenous signal, as bars for discrete signals
// and a line otherwise.
func renderDriverChart(driver schema.DriverSeries, cfg *contract.Config, outputPath string) error {
	if len(driver.Points) == 0 {
		return fmt.Errorf("driver %q has no points", driver.Key)
	}

	if driver.Kind == schema.BarChart {
		bars := make([]chart.Value, 0, len(driver.Points))
		for _, p := range driver.Points {
			v, ok := p.Value(driver.Key)
			if !ok {
				continue
			}
			bars = append(bars, chart.Value{
				Label: time.UnixMilli(p.Ts).UTC().Format("01-02"),
				Value: v,
			})
		}
		bc := chart.BarChart{
			Title:      fmt.Sprintf("Driver: %s", driver.Key),
			Width:      cfg.ChartWidth,
			Height:     cfg.ChartHeight,
			Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 48}},
			YAxis: chart.YAxis{
				Range: &chart.ContinuousRange{Min: driver.Domain.Min, Max: driver.Domain.Max},
			},
			BarWidth: 20,
			Bars:     bars,
		}
		return renderBarToFile(&bc, outputPath)
	}

	var times []time.Time
	var values []float64
	for _, p := range driver.Points {
		v, ok := p.Value(driver.Key)
		if !ok {
			continue
		}
		times = append(times, time.UnixMilli(p.Ts).UTC())
		values = append(values, v)
	}
	ch := chart.Chart{
		Title:      fmt.Sprintf("Driver: %s", driver.Key),
		Width:      cfg.ChartWidth,
		Height:     cfg.ChartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 48}},
		XAxis:      chart.XAxis{Name: "Date"},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: driver.Domain.Min, Max: driver.Domain.Max},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    driver.Key,
				XValues: times,
				YValues: values,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
			},
		},
	}
	return renderToFile(&ch, outputPath)
}

// fieldSeries collects the (time, value) pairs where a field is populated.
// go-chart rejects series shorter than two points, so sparse fields are
// simply dropped by the caller.
func fieldSeries(rows []schema.CombinedRow, field string) ([]time.Time, []float64) {
	var times []time.Time
	var values []float64
	for _, row := range rows {
		v, ok := row.Field(field)
		if !ok {
			continue
		}
		times = append(times, time.UnixMilli(row.Ts).UTC())
		values = append(values, v)
	}
	if len(times) < 2 {
		return nil, nil
	}
	return times, values
}

func renderToFile(ch *chart.Chart, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := ch.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func renderBarToFile(bc *chart.BarChart, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := bc.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
