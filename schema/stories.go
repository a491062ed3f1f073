package schema

import (
	"sort"
	"strings"
)

// pinnedTitleFragment pins the flagship case-study story to the top of the
// final listing regardless of recency. Matched against the normalized title.
const pinnedTitleFragment = "from fog to forecasts"

// StoryRecord is one "story" entry as it arrives from any of the three
// sources. Identity for deduplication is a derived content signature, not
// StoryID, because the same logical story may arrive from multiple sources
// under different or missing ids.
type StoryRecord struct {
	StoryID     string      `json:"story_id"`
	Title       string      `json:"title"`
	Author      string      `json:"author"`
	Description string      `json:"description"`
	Categories  []string    `json:"categories"`
	PublishedAt string      `json:"published_at"`
	CreatedAt   string      `json:"created_at"`
	IsDebug     bool        `json:"is_debug"`
	Source      StorySource `json:"source"`
}

// SortTimestamp is the value stories order by: PublishedAt, falling back to
// CreatedAt. ISO-8601 strings make lexicographic comparison chronological;
// a story missing both fields yields "" and sorts to the bottom.
func (s StoryRecord) SortTimestamp() string {
	if s.PublishedAt != "" {
		return s.PublishedAt
	}
	return s.CreatedAt
}

// Signature derives the content fingerprint used to deduplicate story records
// across sources. It deliberately ignores StoryID and timestamps so the same
// authored content published through different flows collapses to one entry:
// lower-cased trimmed title, author and description joined with the
// lexicographically sorted categories, all '|'-separated.
func (s StoryRecord) Signature() string {
	categories := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		categories[i] = strings.ToLower(strings.TrimSpace(c))
	}
	sort.Strings(categories)

	parts := []string{
		strings.ToLower(strings.TrimSpace(s.Title)),
		strings.ToLower(strings.TrimSpace(s.Author)),
		strings.ToLower(strings.TrimSpace(s.Description)),
	}
	parts = append(parts, categories...)
	return strings.Join(parts, "|")
}

// Pinned reports whether a story carries the flagship title and should be
// surfaced first in listings.
func (s StoryRecord) Pinned() bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(s.Title)), pinnedTitleFragment)
}

// FormatCategories joins categories for display.
func FormatCategories(categories []string) string {
	return strings.Join(categories, ", ")
}
