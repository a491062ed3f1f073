// Package schema has configs, models and shared types for all parts of foredeck.
package schema

// RawRow is a loosely-typed dataset row as decoded from JSON or CSV.
// Fields holds the raw values keyed by column name; Order preserves the
// document/column order, which the extractor's value-pick heuristic relies on.
type RawRow struct {
	Fields map[string]any
	Order  []string
}

// TimePoint is one canonical, time-indexed tuple extracted from a raw dataset.
// Ts is a Unix-millisecond instant. Values holds the named numeric fields that
// were present and finite on the source row.
type TimePoint struct {
	Ts     int64              `json:"ts"`
	Values map[string]float64 `json:"values"`
}

// Value returns the named field and whether it was present.
func (p TimePoint) Value(field string) (float64, bool) {
	v, ok := p.Values[field]
	return v, ok
}

// CombinedRow is the union of up to two source series keyed by Ts.
// Nil pointers mean the field is absent at that instant; rows are created
// fresh per combine and never mutated in place.
type CombinedRow struct {
	Ts                   int64    `json:"ts"`
	Actual               *float64 `json:"actual,omitempty"`
	ActualTest           *float64 `json:"actual_test,omitempty"`
	Baseline             *float64 `json:"baseline,omitempty"`
	Multivariate         *float64 `json:"multivariate,omitempty"`
	BaselineForecast     *float64 `json:"baseline_forecast,omitempty"`
	MultivariateForecast *float64 `json:"multivariate_forecast,omitempty"`
	HandoffBaseline      *float64 `json:"handoff_baseline,omitempty"`
	HandoffMultivariate  *float64 `json:"handoff_multivariate,omitempty"`
}

// Field returns the canonical field by name and whether it is set.
func (r CombinedRow) Field(name string) (float64, bool) {
	var p *float64
	switch name {
	case FieldActual:
		p = r.Actual
	case FieldActualTest:
		p = r.ActualTest
	case FieldBaseline:
		p = r.Baseline
	case FieldMultivariate:
		p = r.Multivariate
	case FieldBaselineForecast:
		p = r.BaselineForecast
	case FieldMultivariateForecast:
		p = r.MultivariateForecast
	case FieldHandoffBaseline:
		p = r.HandoffBaseline
	case FieldHandoffMultivariate:
		p = r.HandoffMultivariate
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// ViewWindow is the caller-selected [StartTs, EndTs] sub-range of a series.
// A nil bound means "unbounded on that side, default to the series extreme".
type ViewWindow struct {
	StartTs *int64 `json:"start_ts"`
	EndTs   *int64 `json:"end_ts"`
}

// AxisDomain is the padded numeric [Min, Max] range used to scale a chart axis.
// Min < Max always holds after computation.
type AxisDomain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DriverSeries is one extracted exogenous signal with its rendering decision.
type DriverSeries struct {
	Key    string      `json:"key"`
	Points []TimePoint `json:"points"`
	Kind   ChartKind   `json:"kind"`
	Domain AxisDomain  `json:"domain"`
}

// ViewBundle is the complete chart-ready payload for one view: combined rows
// filtered to the active window, the normalized window itself, the value-axis
// domain, and per-driver series with classifications.
type ViewBundle struct {
	Kind    ViewKind       `json:"kind"`
	Rows    []CombinedRow  `json:"rows"`
	Window  ViewWindow     `json:"window"`
	Domain  AxisDomain     `json:"domain"`
	Drivers []DriverSeries `json:"drivers,omitempty"`
}
