//go:build basic

// Package integration contains integration tests for foredeck.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestForedeckPrepare runs the prepare command against a small dataset and
// checks both view kinds render without error.
func TestForedeckPrepare(t *testing.T) {
	dataset := writeDataset(t)

	require.NoError(t, runForedeckCommand(t, "prepare", dataset))
	require.NoError(t, runForedeckCommand(t, "prepare", dataset, "--view", "projection"))
	require.NoError(t, runForedeckCommand(t, "prepare", dataset, "--start", "2024-03-08", "--end", "2024-03-15"))
}

// TestForedeckPrepareJSON checks the JSON output carries the handoff bridge.
func TestForedeckPrepareJSON(t *testing.T) {
	dataset := writeDataset(t)

	cmd := exec.Command(getForedeckBinary(), "prepare", dataset, "--view", "projection", "--output", "json")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	require.NoError(t, cmd.Run())

	out := stdout.String()
	assert.Contains(t, out, "handoff_baseline")
	assert.Contains(t, out, "baseline_forecast")
}

// TestForedeckDrivers checks classification output for mixed driver columns.
func TestForedeckDrivers(t *testing.T) {
	dataset := writeDataset(t)

	cmd := exec.Command(getForedeckBinary(), "drivers", dataset, "--output", "csv")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	require.NoError(t, cmd.Run())

	out := stdout.String()
	// promo_flag is small-integer valued, temperature is not
	promoLine := findCSVLine(out, "promo_flag")
	tempLine := findCSVLine(out, "temperature")
	require.NotEmpty(t, promoLine)
	require.NotEmpty(t, tempLine)
	assert.Contains(t, promoLine, "bar")
	assert.Contains(t, tempLine, "line")
}

// TestForedeckStoriesOffline checks the bundled fixtures surface without network.
func TestForedeckStoriesOffline(t *testing.T) {
	cmd := exec.Command(getForedeckBinary(), "stories", "--offline", "--cache-backend", "none", "--output", "json")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	require.NoError(t, cmd.Run())

	assert.Contains(t, stdout.String(), "From Fog to Forecasts")
}

// TestForedeckChart renders PNGs into a scratch directory.
func TestForedeckChart(t *testing.T) {
	dataset := writeDataset(t)
	chartDir := t.TempDir()

	require.NoError(t, runForedeckCommand(t, "chart", dataset, "--view", "projection", "--chart-dir", chartDir))

	matches, err := filepath.Glob(filepath.Join(chartDir, "foredeck_*.png"))
	require.NoError(t, err)
	assert.NotEmpty(t, matches)
}

func findCSVLine(out, key string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, key+",") {
			return line
		}
	}
	return ""
}
