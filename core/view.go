package core

import "github.com/foredeck/foredeck/schema"

// ViewInput bundles the raw datasets and settings one view build consumes.
// All fields are optional; missing datasets simply produce empty output.
type ViewInput struct {
	Historical []schema.RawRow
	Test       []schema.RawRow
	Forecast   []schema.RawRow
	Drivers    []schema.RawRow

	// DriverKeys names the exogenous signals to extract. Empty means
	// discover every non-date, non-identifier column in the driver rows.
	DriverKeys []string

	Window    schema.ViewWindow
	Extract   ExtractOptions
	ClampZero bool

	// Fields overrides the default set of fields the axis domain scans.
	Fields []string
}

// evaluationFields are the default domain fields for the evaluation view.
var evaluationFields = []string{
	schema.FieldActual,
	schema.FieldActualTest,
	schema.FieldBaseline,
	schema.FieldMultivariate,
}

// projectionFields are the default domain fields for the projection view.
var projectionFields = []string{
	schema.FieldActual,
	schema.FieldBaselineForecast,
	schema.FieldMultivariateForecast,
	schema.FieldHandoffBaseline,
	schema.FieldHandoffMultivariate,
}

// BuildEvaluationView runs the full evaluation pipeline: extract historical
// and test series, combine them, normalize and apply the requested window,
// compute the axis domain, and classify any driver signals. Pure function of
// its input; recomputed in full on every call.
func BuildEvaluationView(in ViewInput) schema.ViewBundle {
	hist := ExtractSeries(in.Historical, in.Extract)

	testOpts := in.Extract
	if len(testOpts.ValueKeys) == 0 {
		testOpts.ValueKeys = EvaluationValueKeys()
	}
	test := ExtractSeries(in.Test, testOpts)

	combined := CombineEvaluation(hist, test)
	return assembleView(schema.EvaluationView, combined, evaluationFields, in)
}

// BuildProjectionView runs the full projection pipeline, including the
// handoff bridge between the last historical and first forecast points.
func BuildProjectionView(in ViewInput) schema.ViewBundle {
	hist := ExtractSeries(in.Historical, in.Extract)

	forecastOpts := in.Extract
	if len(forecastOpts.ValueKeys) == 0 {
		forecastOpts.ValueKeys = ForecastValueKeys()
	}
	forecast := ExtractSeries(in.Forecast, forecastOpts)

	combined := CombineProjection(hist, forecast)
	return assembleView(schema.ProjectionView, combined, projectionFields, in)
}

func assembleView(kind schema.ViewKind, combined []schema.CombinedRow, defaultFields []string, in ViewInput) schema.ViewBundle {
	window := NormalizeRange(combined, in.Window)
	rows := FilterByRange(combined, window)

	fields := in.Fields
	if len(fields) == 0 {
		fields = defaultFields
	}

	return schema.ViewBundle{
		Kind:    kind,
		Rows:    rows,
		Window:  window,
		Domain:  ComputeDomain(rows, fields, in.ClampZero),
		Drivers: buildDriverSeries(in),
	}
}

// buildDriverSeries extracts, classifies and scales each driver signal.
func buildDriverSeries(in ViewInput) []schema.DriverSeries {
	if len(in.Drivers) == 0 {
		return nil
	}
	keys := in.DriverKeys
	if len(keys) == 0 {
		keys = DiscoverDriverKeys(in.Drivers, in.Extract)
	}

	series := make([]schema.DriverSeries, 0, len(keys))
	for _, key := range keys {
		points := ExtractDriver(in.Drivers, key, in.Extract)
		if len(points) == 0 {
			continue
		}
		kind := ClassifyDriver(DriverValues(points, key))
		series = append(series, schema.DriverSeries{
			Key:    key,
			Points: points,
			Kind:   kind,
			Domain: ComputeDriverDomain(points, key, DriverClampPolicy(kind)),
		})
	}
	return series
}

// DiscoverDriverKeys lists the candidate driver columns of a dataset in
// document order: every column that is not a date or identifier alias.
func DiscoverDriverKeys(rows []schema.RawRow, opts ExtractOptions) []string {
	dateAliases := opts.DateAliases
	if len(dateAliases) == 0 {
		dateAliases = DefaultDateAliases
	}
	dates := aliasSet(dateAliases)
	idents := aliasSet(identifierAliases)

	seen := make(map[string]struct{})
	var keys []string
	for _, row := range rows {
		for _, key := range row.Order {
			nk := normalizeKey(key)
			if _, ok := dates[nk]; ok {
				continue
			}
			if _, ok := idents[nk]; ok {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	return keys
}
