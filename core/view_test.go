package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foredeck/foredeck/schema"
)

func evaluationInput() ViewInput {
	return ViewInput{
		Historical: []schema.RawRow{
			rawRow("week_ending", "2024-03-01", "sales", "100"),
			rawRow("week_ending", "2024-03-08", "sales", "110"),
			rawRow("week_ending", "2024-03-15", "sales", "120"),
		},
		Test: []schema.RawRow{
			rawRow("week_ending", "2024-03-15", "actual", "120", "baseline", "115", "multivariate", "118"),
		},
	}
}

func TestBuildEvaluationView(t *testing.T) {
	bundle := BuildEvaluationView(evaluationInput())

	assert.Equal(t, schema.EvaluationView, bundle.Kind)
	require.Len(t, bundle.Rows, 3)

	// Overlay attached only where the test series overlaps
	assert.Nil(t, bundle.Rows[0].Baseline)
	require.NotNil(t, bundle.Rows[2].Baseline)
	assert.InDelta(t, 115.0, *bundle.Rows[2].Baseline, 1e-9)

	// Window resolves to the series extremes
	require.NotNil(t, bundle.Window.StartTs)
	require.NotNil(t, bundle.Window.EndTs)
	assert.Equal(t, bundle.Rows[0].Ts, *bundle.Window.StartTs)
	assert.Equal(t, bundle.Rows[2].Ts, *bundle.Window.EndTs)

	// Domain spans all scanned fields with padding
	assert.Less(t, bundle.Domain.Min, 100.0)
	assert.Greater(t, bundle.Domain.Max, 120.0)
}

func TestBuildEvaluationViewWindowed(t *testing.T) {
	in := evaluationInput()
	start, _ := schema.ParseInstant("2024-03-08")
	in.Window = schema.ViewWindow{StartTs: &start}

	bundle := BuildEvaluationView(in)
	require.Len(t, bundle.Rows, 2)
	assert.Equal(t, start, bundle.Rows[0].Ts)
}

func TestBuildProjectionView(t *testing.T) {
	in := ViewInput{
		Historical: []schema.RawRow{
			rawRow("week_ending", "2024-03-01", "sales", "100"),
			rawRow("week_ending", "2024-03-08", "sales", "110"),
		},
		Forecast: []schema.RawRow{
			rawRow("week_ending", "2024-03-15", "baseline_forecast", "112", "multivariate_forecast", "114"),
		},
	}

	bundle := BuildProjectionView(in)
	assert.Equal(t, schema.ProjectionView, bundle.Kind)
	require.Len(t, bundle.Rows, 3)

	// Handoff bridges the gap between history and forecast
	last := bundle.Rows[1]
	require.NotNil(t, last.HandoffBaseline)
	assert.InDelta(t, 110.0, *last.HandoffBaseline, 1e-9)

	first := bundle.Rows[2]
	require.NotNil(t, first.HandoffBaseline)
	assert.InDelta(t, 112.0, *first.HandoffBaseline, 1e-9)
	require.NotNil(t, first.HandoffMultivariate)
	assert.InDelta(t, 114.0, *first.HandoffMultivariate, 1e-9)
}

func TestBuildViewDrivers(t *testing.T) {
	in := evaluationInput()
	in.Drivers = []schema.RawRow{
		rawRow("date", "2024-03-01", "holiday", "1", "temperature", "18.5"),
		rawRow("date", "2024-03-08", "holiday", "0", "temperature", "21.25"),
	}

	bundle := BuildEvaluationView(in)
	require.Len(t, bundle.Drivers, 2)

	holiday := bundle.Drivers[0]
	assert.Equal(t, "holiday", holiday.Key)
	assert.Equal(t, schema.BarChart, holiday.Kind)
	// Bar drivers clamp their domain to zero
	assert.LessOrEqual(t, holiday.Domain.Min, 0.0)

	temp := bundle.Drivers[1]
	assert.Equal(t, "temperature", temp.Key)
	assert.Equal(t, schema.LineChart, temp.Kind)
	assert.Greater(t, temp.Domain.Min, 0.0)
}

func TestBuildViewDriversExplicitKeys(t *testing.T) {
	in := evaluationInput()
	in.Drivers = []schema.RawRow{
		rawRow("date", "2024-03-01", "holiday", "1", "temperature", "18.5"),
	}
	in.DriverKeys = []string{"temperature"}

	bundle := BuildEvaluationView(in)
	require.Len(t, bundle.Drivers, 1)
	assert.Equal(t, "temperature", bundle.Drivers[0].Key)
}

func TestBuildViewEmptyInput(t *testing.T) {
	bundle := BuildEvaluationView(ViewInput{})
	assert.Empty(t, bundle.Rows)
	assert.Nil(t, bundle.Window.StartTs)
	assert.Nil(t, bundle.Window.EndTs)
	assert.Equal(t, schema.AxisDomain{Min: 0, Max: 1}, bundle.Domain)
	assert.Empty(t, bundle.Drivers)
}
