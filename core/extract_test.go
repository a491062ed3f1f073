package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foredeck/foredeck/schema"
)

func rawRow(pairs ...any) schema.RawRow {
	row := schema.RawRow{Fields: make(map[string]any, len(pairs)/2)}
	for i := 0; i < len(pairs); i += 2 {
		key := pairs[i].(string)
		row.Fields[key] = pairs[i+1]
		row.Order = append(row.Order, key)
	}
	return row
}

func TestExtractSeriesFirstFiniteHeuristic(t *testing.T) {
	rows := []schema.RawRow{
		// id and date columns must be skipped; "notes" is not numeric;
		// "sales" is the first finite column in document order.
		rawRow("id", "7", "week_ending", "2024-03-08", "notes", "promo week", "sales", "$1,200", "returns", "30"),
		rawRow("id", "8", "week_ending", "2024-03-01", "notes", "", "sales", "1100", "returns", "25"),
	}

	points := ExtractSeries(rows, ExtractOptions{})
	require.Len(t, points, 2)

	// Sorted ascending despite reversed input order
	assert.Less(t, points[0].Ts, points[1].Ts)

	v, ok := points[0].Value(schema.FieldActual)
	require.True(t, ok)
	assert.InDelta(t, 1100.0, v, 1e-9)

	v, ok = points[1].Value(schema.FieldActual)
	require.True(t, ok)
	assert.InDelta(t, 1200.0, v, 1e-9)

	// Only the positional pick lands in Values
	assert.Len(t, points[1].Values, 1)
}

func TestExtractSeriesDateAliases(t *testing.T) {
	tests := []struct {
		name string
		row  schema.RawRow
	}{
		{"week_ending", rawRow("week_ending", "2024-03-01", "sales", "10")},
		{"spaced alias", rawRow("Week Ending", "2024-03-01", "sales", "10")},
		{"ds", rawRow("ds", "2024-03-01", "sales", "10")},
		{"plain date", rawRow("date", "2024-03-01", "sales", "10")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := ExtractSeries([]schema.RawRow{tt.row}, ExtractOptions{})
			require.Len(t, points, 1)
		})
	}
}

func TestExtractSeriesDropsBadRows(t *testing.T) {
	rows := []schema.RawRow{
		rawRow("week_ending", "not a date", "sales", "10"), // unparsable ts
		rawRow("week_ending", "2024-03-01", "sales", "n/a"), // no finite value
		rawRow("week_ending", "2024-03-08", "sales", "12"),
	}
	points := ExtractSeries(rows, ExtractOptions{})
	require.Len(t, points, 1)
	assert.Equal(t, int64(1709856000000), points[0].Ts)
}

func TestExtractSeriesExplicitValueKeys(t *testing.T) {
	rows := []schema.RawRow{
		rawRow("week_ending", "2024-03-01", "actual", "100", "baseline", "95.5", "multivariate", "101"),
	}
	points := ExtractSeries(rows, ExtractOptions{ValueKeys: EvaluationValueKeys()})
	require.Len(t, points, 1)

	v, ok := points[0].Value(schema.FieldBaseline)
	require.True(t, ok)
	assert.InDelta(t, 95.5, v, 1e-9)

	v, ok = points[0].Value(schema.FieldMultivariate)
	require.True(t, ok)
	assert.InDelta(t, 101.0, v, 1e-9)
}

func TestExtractDriver(t *testing.T) {
	rows := []schema.RawRow{
		rawRow("date", "2024-03-01", "holiday", "1", "temperature", "18.5"),
		rawRow("date", "2024-03-08", "holiday", "0", "temperature", "21.0"),
	}

	holiday := ExtractDriver(rows, "holiday", ExtractOptions{})
	require.Len(t, holiday, 2)
	assert.Equal(t, []float64{1, 0}, DriverValues(holiday, "holiday"))

	temp := ExtractDriver(rows, "temperature", ExtractOptions{})
	require.Len(t, temp, 2)
	assert.Equal(t, []float64{18.5, 21.0}, DriverValues(temp, "temperature"))
}

func TestDiscoverDriverKeys(t *testing.T) {
	rows := []schema.RawRow{
		rawRow("date", "2024-03-01", "id", "1", "holiday", "1", "temperature", "18.5"),
		rawRow("date", "2024-03-08", "id", "2", "holiday", "0", "promo", "1"),
	}
	keys := DiscoverDriverKeys(rows, ExtractOptions{})
	assert.Equal(t, []string{"holiday", "temperature", "promo"}, keys)
}
