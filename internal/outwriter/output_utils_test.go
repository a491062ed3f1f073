package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foredeck/foredeck/schema"
)

func TestCreateFormatters(t *testing.T) {
	fmtFloat, fmtOptional := createFormatters(2)
	assert.Equal(t, "3.14", fmtFloat(3.14159))
	assert.Equal(t, "", fmtOptional(nil))

	v := 10.0
	assert.Equal(t, "10.00", fmtOptional(&v))

	fmtFloat, _ = createFormatters(0)
	assert.Equal(t, "3", fmtFloat(3.14159))
}

func TestFormatInstant(t *testing.T) {
	assert.Equal(t, "2024-03-01", formatInstant(1709251200000))
	assert.Equal(t, "-", formatOptionalInstant(nil))

	ts := int64(1709856000000)
	assert.Equal(t, "2024-03-08", formatOptionalInstant(&ts))
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "2"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"points": 3}))
	assert.JSONEq(t, `{"points":3}`, buf.String())
}

func TestSeriesFields(t *testing.T) {
	eval := seriesFields(schema.EvaluationView)
	assert.Contains(t, eval, schema.FieldActualTest)
	assert.NotContains(t, eval, schema.FieldBaselineForecast)

	proj := seriesFields(schema.ProjectionView)
	assert.Contains(t, proj, schema.FieldHandoffBaseline)
	assert.NotContains(t, proj, schema.FieldActualTest)

	for _, field := range append(eval, proj...) {
		assert.NotEmpty(t, seriesHeaders[field], "missing header for %s", field)
	}
}
