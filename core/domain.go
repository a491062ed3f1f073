package core

import (
	"math"

	"github.com/foredeck/foredeck/schema"
)

// Padding policy for axis domains.
const (
	domainPadFraction   = 0.15 // Pad fraction of the raw span on each side
	constantPadFraction = 0.05 // Pad fraction of |v| for a constant series
	constantPadFloor    = 1.0  // Pad for an all-zero constant series
)

// ComputeDomain scans the named fields of a row set and returns the padded
// axis range covering every finite value observed. With no finite values the
// safe default [0, 1] is returned. clampZero forces the padded minimum down
// to zero when the data never dips below it, used for error-magnitude and
// count-style axes.
func ComputeDomain(rows []schema.CombinedRow, fields []string, clampZero bool) schema.AxisDomain {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		for _, field := range fields {
			if v, ok := row.Field(field); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
				values = append(values, v)
			}
		}
	}
	return padDomain(values, clampZero)
}

// ComputeDriverDomain is ComputeDomain for an extracted driver series.
func ComputeDriverDomain(points []schema.TimePoint, key string, clampZero bool) schema.AxisDomain {
	values := make([]float64, 0, len(points))
	for _, p := range points {
		if v, ok := p.Value(key); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
			values = append(values, v)
		}
	}
	return padDomain(values, clampZero)
}

func padDomain(values []float64, clampZero bool) schema.AxisDomain {
	if len(values) == 0 {
		return schema.AxisDomain{Min: 0, Max: 1}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var pad float64
	if lo == hi {
		// Constant series: pad relative to magnitude, or by a whole unit
		// when the value is zero and 5% would collapse the range.
		pad = math.Abs(lo) * constantPadFraction
		if pad == 0 {
			pad = constantPadFloor
		}
	} else {
		pad = domainPadFraction * (hi - lo)
	}
	lo -= pad
	hi += pad

	if clampZero && lo > 0 {
		lo = 0
	}
	return schema.AxisDomain{Min: lo, Max: hi}
}
