package core

import "github.com/foredeck/foredeck/schema"

// NormalizeRange resolves a requested view window against the available
// timeline. Nil bounds default to the series extremes; an inverted request is
// discarded in favor of the full range; both endpoints are clamped into
// [minTs, maxTs]. Empty input yields a window with nil bounds. Resetting a
// window is just calling this again with the current full series, never a
// cached prior range.
func NormalizeRange(rows []schema.CombinedRow, requested schema.ViewWindow) schema.ViewWindow {
	if len(rows) == 0 {
		return schema.ViewWindow{}
	}

	minTs := rows[0].Ts
	maxTs := rows[0].Ts
	for _, r := range rows[1:] {
		if r.Ts < minTs {
			minTs = r.Ts
		}
		if r.Ts > maxTs {
			maxTs = r.Ts
		}
	}

	start := minTs
	if requested.StartTs != nil {
		start = *requested.StartTs
	}
	end := maxTs
	if requested.EndTs != nil {
		end = *requested.EndTs
	}

	if start > end {
		start, end = minTs, maxTs
	}
	start = clampTs(start, minTs, maxTs)
	end = clampTs(end, minTs, maxTs)

	return schema.ViewWindow{StartTs: &start, EndTs: &end}
}

func clampTs(ts, lo, hi int64) int64 {
	if ts < lo {
		return lo
	}
	if ts > hi {
		return hi
	}
	return ts
}

// FilterByRange keeps the rows whose ts falls inclusively inside the
// normalized window. A window with nil bounds (empty input) is a no-op.
func FilterByRange(rows []schema.CombinedRow, win schema.ViewWindow) []schema.CombinedRow {
	if win.StartTs == nil || win.EndTs == nil {
		return rows
	}
	out := make([]schema.CombinedRow, 0, len(rows))
	for _, r := range rows {
		if r.Ts >= *win.StartTs && r.Ts <= *win.EndTs {
			out = append(out, r)
		}
	}
	return out
}
