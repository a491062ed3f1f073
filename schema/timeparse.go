package schema

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when normalizing a date-like string.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// epochMillisCutoff separates epoch seconds from epoch milliseconds when a
// bare number is handed in. Anything at or above it is treated as millis.
const epochMillisCutoff = 1e11

// ParseInstant normalizes a date-like string into a Unix-millisecond instant.
// It never panics; ok is false when the input is unparsable. Numeric strings
// are accepted as epoch seconds or milliseconds.
func ParseInstant(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().UnixMilli(), true
		}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return epochToMillis(n)
	}
	return 0, false
}

// ParseInstantAny normalizes any raw field value into an instant. Strings go
// through ParseInstant; numbers are treated as epoch seconds or milliseconds.
func ParseInstantAny(v any) (int64, bool) {
	switch x := v.(type) {
	case string:
		return ParseInstant(x)
	case float64:
		return epochToMillis(x)
	case float32:
		return epochToMillis(float64(x))
	case int:
		return epochToMillis(float64(x))
	case int64:
		return epochToMillis(float64(x))
	case time.Time:
		return x.UTC().UnixMilli(), true
	default:
		return 0, false
	}
}

func epochToMillis(n float64) (int64, bool) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	if math.Abs(n) >= epochMillisCutoff {
		return int64(n), true
	}
	return int64(n * 1000), true
}

// ParseFinite coerces a raw field value into a finite float64. Strings are
// cleaned of currency symbols, thousands separators and whitespace first,
// mirroring what upstream uploads tend to contain. ok is false for anything
// that does not resolve to a finite number.
func ParseFinite(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		return 0, false
	case string:
		cleaned := strings.Map(func(r rune) rune {
			switch r {
			case '$', ',', ' ', '£', '€':
				return -1
			}
			return r
		}, strings.TrimSpace(x))
		if cleaned == "" {
			return 0, false
		}
		switch strings.ToLower(cleaned) {
		case "nan", "none", "null":
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	default:
		return 0, false
	}
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
