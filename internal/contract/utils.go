package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/foredeck/foredeck/schema"
)

// Color variables for console output.
var (
	LocalColor  = color.New(color.FgGreen, color.Bold) // localColor marks stories this browser controls.
	DebugColor  = color.New(color.FgYellow)            // debugColor marks bundled fixture stories.
	LiveColor   = color.New(color.FgCyan)              // liveColor marks remote/authoritative stories.
	PinnedColor = color.New(color.FgMagenta, color.Bold)
)

// GetPlainSourceLabel returns the plain text label for a story source.
// This is the core logic used for CSV, JSON and table printing.
func GetPlainSourceLabel(source schema.StorySource) string {
	switch source {
	case schema.LocalSource:
		return "Local"
	case schema.DebugSource:
		return "Debug"
	default:
		return "Live"
	}
}

// GetColorSourceLabel returns a colored label for console output (table).
func GetColorSourceLabel(source schema.StorySource) string {
	text := GetPlainSourceLabel(source)
	switch source {
	case schema.LocalSource:
		return LocalColor.Sprint(text)
	case schema.DebugSource:
		return DebugColor.Sprint(text)
	default:
		return LiveColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncateText truncates a string to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and content.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
