package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstant(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantTs int64
		wantOK bool
	}{
		{"iso date", "2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).UnixMilli(), true},
		{"iso datetime", "2024-03-15T10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC).UnixMilli(), true},
		{"rfc3339", "2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC).UnixMilli(), true},
		{"spaced datetime", "2024-03-15 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC).UnixMilli(), true},
		{"slash date", "2024/03/15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).UnixMilli(), true},
		{"us date", "03/15/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).UnixMilli(), true},
		{"epoch seconds", "1710499800", 1710499800000, true},
		{"epoch millis", "1710499800000", 1710499800000, true},
		{"surrounding space", "  2024-03-15  ", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).UnixMilli(), true},
		{"empty", "", 0, false},
		{"garbage", "next tuesday", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := ParseInstant(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantTs, ts)
			}
		})
	}
}

func TestParseInstantAny(t *testing.T) {
	ts, ok := ParseInstantAny("2024-03-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).UnixMilli(), ts)

	ts, ok = ParseInstantAny(float64(1710499800))
	require.True(t, ok)
	assert.Equal(t, int64(1710499800000), ts)

	ts, ok = ParseInstantAny(float64(1710499800000))
	require.True(t, ok)
	assert.Equal(t, int64(1710499800000), ts)

	when := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	ts, ok = ParseInstantAny(when)
	require.True(t, ok)
	assert.Equal(t, when.UnixMilli(), ts)

	_, ok = ParseInstantAny(nil)
	assert.False(t, ok)

	_, ok = ParseInstantAny([]string{"2024-03-15"})
	assert.False(t, ok)
}

func TestParseFinite(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{"float", 42.5, 42.5, true},
		{"int", 7, 7.0, true},
		{"plain string", "42.5", 42.5, true},
		{"currency dollars", "$1,234.50", 1234.5, true},
		{"currency pounds", "£99", 99.0, true},
		{"currency euros", "€1 250", 1250.0, true},
		{"negative", "-3.25", -3.25, true},
		{"nan string", "NaN", 0, false},
		{"none string", "None", 0, false},
		{"null string", "null", 0, false},
		{"empty string", "", 0, false},
		{"whitespace", "   ", 0, false},
		{"bool", true, 0, false},
		{"words", "n/a", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFinite(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}
