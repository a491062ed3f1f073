package core

import (
	"sort"
	"strings"

	"github.com/foredeck/foredeck/schema"
)

// DefaultDateAliases is the prioritized list of column names accepted as the
// timestamp of a raw row. Matching is done on normalized key names.
var DefaultDateAliases = []string{
	"week_ending",
	"week ending",
	"period_end",
	"period end",
	"date",
	"index",
	"ds",
	"timestamp",
}

// identifierAliases are columns that can never be picked as a series value
// by the positional fallback heuristic.
var identifierAliases = []string{"id", "row_id", "index"}

// ExtractOptions controls how raw rows become TimePoints.
type ExtractOptions struct {
	// DateAliases overrides DefaultDateAliases when non-empty.
	DateAliases []string

	// ValueKeys maps canonical field names to their acceptable column
	// aliases, tried in order. When empty, the first column (in document
	// order) whose value parses as a finite number, excluding date and
	// identifier columns, becomes schema.FieldActual. That positional pick
	// is contract: it decides which column is the series value when the
	// caller does not disambiguate.
	ValueKeys map[string][]string
}

// normalizeKey lowers, trims and collapses separators so that "Week Ending"
// and "week_ending" match the same alias.
func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	k = strings.ReplaceAll(k, "-", "_")
	k = strings.ReplaceAll(k, " ", "_")
	return k
}

func aliasSet(aliases []string) map[string]struct{} {
	set := make(map[string]struct{}, len(aliases))
	for _, a := range aliases {
		set[normalizeKey(a)] = struct{}{}
	}
	return set
}

// ExtractSeries converts a loosely-typed row collection into an ascending
// ts-sorted TimePoint series. Rows with no parseable timestamp or no finite
// value are dropped silently; duplicate timestamps are preserved (later merge
// stages resolve them by map key, last write wins).
func ExtractSeries(rows []schema.RawRow, opts ExtractOptions) []schema.TimePoint {
	dateAliases := opts.DateAliases
	if len(dateAliases) == 0 {
		dateAliases = DefaultDateAliases
	}
	dates := aliasSet(dateAliases)
	idents := aliasSet(identifierAliases)

	points := make([]schema.TimePoint, 0, len(rows))
	for _, row := range rows {
		ts, ok := rowInstant(row, dateAliases)
		if !ok {
			continue
		}
		values := rowValues(row, opts.ValueKeys, dates, idents)
		if len(values) == 0 {
			continue
		}
		points = append(points, schema.TimePoint{Ts: ts, Values: values})
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Ts < points[j].Ts })
	return points
}

// rowInstant finds the row's timestamp using the prioritized alias list.
func rowInstant(row schema.RawRow, dateAliases []string) (int64, bool) {
	normalized := make(map[string]any, len(row.Fields))
	for k, v := range row.Fields {
		normalized[normalizeKey(k)] = v
	}
	for _, alias := range dateAliases {
		v, ok := normalized[normalizeKey(alias)]
		if !ok {
			continue
		}
		if ts, parsed := schema.ParseInstantAny(v); parsed {
			return ts, true
		}
	}
	return 0, false
}

// rowValues collects the named numeric fields from a row. With no explicit
// ValueKeys it falls back to the first-finite-numeric heuristic.
func rowValues(row schema.RawRow, valueKeys map[string][]string, dates, idents map[string]struct{}) map[string]float64 {
	values := make(map[string]float64)

	if len(valueKeys) == 0 {
		for _, key := range row.Order {
			nk := normalizeKey(key)
			if _, isDate := dates[nk]; isDate {
				continue
			}
			if _, isIdent := idents[nk]; isIdent {
				continue
			}
			if v, ok := schema.ParseFinite(row.Fields[key]); ok {
				values[schema.FieldActual] = v
				break
			}
		}
		return values
	}

	normalized := make(map[string]any, len(row.Fields))
	for k, v := range row.Fields {
		normalized[normalizeKey(k)] = v
	}
	for field, aliases := range valueKeys {
		for _, alias := range aliases {
			raw, ok := normalized[normalizeKey(alias)]
			if !ok {
				continue
			}
			if v, parsed := schema.ParseFinite(raw); parsed {
				values[field] = v
				break
			}
		}
	}
	return values
}

// EvaluationValueKeys are the aliases for held-out test prediction rows.
func EvaluationValueKeys() map[string][]string {
	return map[string][]string{
		schema.FieldActual:       {"actual", "y", "target"},
		schema.FieldBaseline:     {"baseline", "baseline_prediction"},
		schema.FieldMultivariate: {"multivariate", "multivariate_prediction"},
	}
}

// ForecastValueKeys are the aliases for forward forecast rows.
func ForecastValueKeys() map[string][]string {
	return map[string][]string{
		schema.FieldBaselineForecast:     {"baseline_forecast", "baseline"},
		schema.FieldMultivariateForecast: {"multivariate_forecast", "multivariate"},
	}
}

// ExtractDriver pulls one named exogenous signal out of a driver dataset.
func ExtractDriver(rows []schema.RawRow, key string, opts ExtractOptions) []schema.TimePoint {
	driverOpts := opts
	driverOpts.ValueKeys = map[string][]string{key: {key}}
	return ExtractSeries(rows, driverOpts)
}

// DriverValues flattens an extracted driver series into its raw values.
func DriverValues(points []schema.TimePoint, key string) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		if v, ok := p.Value(key); ok {
			out = append(out, v)
		}
	}
	return out
}
