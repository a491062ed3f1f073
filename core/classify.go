package core

import (
	"math"

	"github.com/foredeck/foredeck/schema"
)

// Discreteness thresholds for driver classification.
const (
	discreteMaxValue    = 20 // Largest value a bar-rendered signal may reach
	discreteMaxDistinct = 10 // Most distinct values a bar-rendered signal may have
)

// ClassifyDriver decides whether an exogenous signal renders as discrete bars
// or a continuous line. A signal is discrete iff every value is integral, the
// maximum is at most 20 and there are at most 10 distinct values. Each driver
// key is classified independently; the decision also selects the zero-clamp
// policy downstream (bar clamps, line pads naturally).
func ClassifyDriver(values []float64) schema.ChartKind {
	if len(values) == 0 {
		return schema.LineChart
	}

	distinct := make(map[float64]struct{}, len(values))
	maxVal := values[0]
	for _, v := range values {
		if v != math.Trunc(v) {
			return schema.LineChart
		}
		if v > maxVal {
			maxVal = v
		}
		distinct[v] = struct{}{}
	}

	if maxVal > discreteMaxValue || len(distinct) > discreteMaxDistinct {
		return schema.LineChart
	}
	return schema.BarChart
}

// DriverClampPolicy returns whether a driver's axis domain should clamp to
// zero, derived from its chart kind.
func DriverClampPolicy(kind schema.ChartKind) bool {
	return kind == schema.BarChart
}
