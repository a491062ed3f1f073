package core

import (
	"sort"

	"github.com/foredeck/foredeck/schema"
)

func ptr(v float64) *float64 { return &v }

func fieldPtr(p schema.TimePoint, name string) *float64 {
	if v, ok := p.Value(name); ok {
		return ptr(v)
	}
	return nil
}

// CombineEvaluation merges the full historical actual series with the
// held-out test prediction series into one evaluation timeline. The output
// follows the historical rows; where a test row shares the same ts, its
// baseline and multivariate predictions are attached along with a separate
// ActualTest copy of the test row's own actual, kept distinct so the overlay
// can render dashed on top of the solid historical line. Rows without a
// matching test prediction keep those fields nil.
func CombineEvaluation(hist, test []schema.TimePoint) []schema.CombinedRow {
	testByTs := make(map[int64]schema.TimePoint, len(test))
	for _, p := range test {
		testByTs[p.Ts] = p
	}

	rows := make([]schema.CombinedRow, 0, len(hist))
	for _, h := range hist {
		row := schema.CombinedRow{Ts: h.Ts, Actual: fieldPtr(h, schema.FieldActual)}
		if t, ok := testByTs[h.Ts]; ok {
			row.Baseline = fieldPtr(t, schema.FieldBaseline)
			row.Multivariate = fieldPtr(t, schema.FieldMultivariate)
			row.ActualTest = fieldPtr(t, schema.FieldActual)
		}
		rows = append(rows, row)
	}
	return rows
}

// CombineProjection merges the historical actual series with the forward
// forecast series into one projection timeline. Forecast timestamps are
// normally strictly after the last historical point, but the merge does not
// assume so: rows sharing a ts are merged, new timestamps are inserted, and
// the result is sorted ascending. When a temporal gap separates the last
// historical point from the first forecast point, two handoff points are set
// so a continuous bridge can be drawn from the last known actual to the first
// forecast value; the forecast series itself intentionally keeps a nil gap
// before its first point.
func CombineProjection(hist, forecast []schema.TimePoint) []schema.CombinedRow {
	merged := make(map[int64]*schema.CombinedRow, len(hist)+len(forecast))

	for _, h := range hist {
		merged[h.Ts] = &schema.CombinedRow{Ts: h.Ts, Actual: fieldPtr(h, schema.FieldActual)}
	}
	for _, f := range forecast {
		row, ok := merged[f.Ts]
		if !ok {
			row = &schema.CombinedRow{Ts: f.Ts}
			merged[f.Ts] = row
		}
		row.BaselineForecast = fieldPtr(f, schema.FieldBaselineForecast)
		row.MultivariateForecast = fieldPtr(f, schema.FieldMultivariateForecast)
	}

	rows := make([]schema.CombinedRow, 0, len(merged))
	for _, row := range merged {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Ts < rows[j].Ts })

	applyHandoff(rows, hist, forecast)
	return rows
}

// applyHandoff sets the two bridging points between the last historical row
// and the first forecast row, when a gap exists between them.
func applyHandoff(rows []schema.CombinedRow, hist, forecast []schema.TimePoint) {
	if len(hist) == 0 || len(forecast) == 0 {
		return
	}
	lastHistTs := hist[len(hist)-1].Ts
	firstForecastTs := forecast[0].Ts
	if firstForecastTs <= lastHistTs {
		return
	}

	for i := range rows {
		switch rows[i].Ts {
		case lastHistTs:
			if rows[i].Actual != nil {
				rows[i].HandoffBaseline = ptr(*rows[i].Actual)
				rows[i].HandoffMultivariate = ptr(*rows[i].Actual)
			}
		case firstForecastTs:
			if rows[i].BaselineForecast != nil {
				rows[i].HandoffBaseline = ptr(*rows[i].BaselineForecast)
			}
			if rows[i].MultivariateForecast != nil {
				rows[i].HandoffMultivariate = ptr(*rows[i].MultivariateForecast)
			}
		}
	}
}
