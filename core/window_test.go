package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foredeck/foredeck/schema"
)

func tsRows(tss ...int64) []schema.CombinedRow {
	rows := make([]schema.CombinedRow, len(tss))
	for i, ts := range tss {
		rows[i] = schema.CombinedRow{Ts: ts}
	}
	return rows
}

func i64(v int64) *int64 { return &v }

func TestNormalizeRange(t *testing.T) {
	rows := tsRows(100, 200, 300, 400)

	tests := []struct {
		name      string
		requested schema.ViewWindow
		wantStart int64
		wantEnd   int64
	}{
		{"nil bounds default to extremes", schema.ViewWindow{}, 100, 400},
		{"explicit inside range", schema.ViewWindow{StartTs: i64(200), EndTs: i64(300)}, 200, 300},
		{"start clamps up", schema.ViewWindow{StartTs: i64(50), EndTs: i64(300)}, 100, 300},
		{"end clamps down", schema.ViewWindow{StartTs: i64(200), EndTs: i64(9000)}, 200, 400},
		{"inverted discards request", schema.ViewWindow{StartTs: i64(300), EndTs: i64(200)}, 100, 400},
		{"both past the end clamp to max", schema.ViewWindow{StartTs: i64(1400), EndTs: i64(2400)}, 400, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRange(rows, tt.requested)
			require.NotNil(t, got.StartTs)
			require.NotNil(t, got.EndTs)
			assert.Equal(t, tt.wantStart, *got.StartTs)
			assert.Equal(t, tt.wantEnd, *got.EndTs)
		})
	}
}

func TestNormalizeRangeEmptyRows(t *testing.T) {
	got := NormalizeRange(nil, schema.ViewWindow{StartTs: i64(100)})
	assert.Nil(t, got.StartTs)
	assert.Nil(t, got.EndTs)
}

func TestNormalizeRangeIdempotent(t *testing.T) {
	rows := tsRows(100, 200, 300)
	once := NormalizeRange(rows, schema.ViewWindow{StartTs: i64(150), EndTs: i64(9000)})
	twice := NormalizeRange(rows, once)
	assert.Equal(t, *once.StartTs, *twice.StartTs)
	assert.Equal(t, *once.EndTs, *twice.EndTs)
}

func TestFilterByRange(t *testing.T) {
	rows := tsRows(100, 200, 300, 400)

	got := FilterByRange(rows, schema.ViewWindow{StartTs: i64(200), EndTs: i64(300)})
	require.Len(t, got, 2)
	assert.Equal(t, int64(200), got[0].Ts)
	assert.Equal(t, int64(300), got[1].Ts)

	// Nil-bound window (empty input normalization) is a no-op
	got = FilterByRange(rows, schema.ViewWindow{})
	assert.Len(t, got, 4)
}
