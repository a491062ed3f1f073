// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/foredeck/foredeck/internal/contract"
	"github.com/foredeck/foredeck/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSeries prints a prepared view bundle using the configured output format.
func (ow *OutWriter) WriteSeries(bundle schema.ViewBundle, cfg *contract.Config, duration time.Duration) error {
	return PrintSeriesResults(bundle, cfg, duration)
}

// WriteDrivers prints classified driver signals using the configured output format.
func (ow *OutWriter) WriteDrivers(drivers []schema.DriverSeries, cfg *contract.Config, duration time.Duration) error {
	return PrintDriverResults(drivers, cfg, duration)
}

// WriteStories prints the reconciled story listing using the configured output format.
func (ow *OutWriter) WriteStories(stories []schema.StoryRecord, cfg *contract.Config, duration time.Duration) error {
	return PrintStoryResults(stories, cfg, duration)
}

// GetMaxTableTitleWidth calculates the maximum width for story titles in table
// output based on terminal width and table configuration.
func GetMaxTableTitleWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns with table formatting:
	// Author + Source + Published + Categories with borders/padding
	baseWidth := 60

	// Calculate available space for the title
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable title width
		return 15
	}
	if available > 70 {
		// Maximum title width to prevent overly long lines
		return 70
	}
	return available
}
