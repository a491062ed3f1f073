package core

import (
	"sort"

	"github.com/foredeck/foredeck/schema"
)

// availabilityRank scores how locally controllable a story's source is.
// Higher wins when resolving duplicates.
func availabilityRank(s schema.StoryRecord) int {
	switch s.Source {
	case schema.LocalSource:
		return 2
	case schema.DebugSource:
		return 1
	default:
		return 0
	}
}

// ReconcileStories merges story records from the remote, locally-cached and
// bundled-debug streams into a single deduplicated, ordered listing. Groups
// share a content signature; each group resolves to one winner by, in order,
// higher availability rank, non-debug over debug, lexicographically greater
// publish timestamp (ISO-8601 strings compare chronologically), then
// first-seen. The result pins the flagship story first and orders the rest
// by descending publish timestamp. It never errors: a story missing both
// timestamp fields simply sorts to the bottom.
func ReconcileStories(live, local, debug []schema.StoryRecord) []schema.StoryRecord {
	all := make([]schema.StoryRecord, 0, len(live)+len(local)+len(debug))
	all = append(all, live...)
	all = append(all, local...)
	all = append(all, debug...)

	winners := make(map[string]schema.StoryRecord)
	order := make([]string, 0, len(all))
	for _, story := range all {
		sig := story.Signature()
		current, seen := winners[sig]
		if !seen {
			winners[sig] = story
			order = append(order, sig)
			continue
		}
		if beats(story, current) {
			winners[sig] = story
		}
	}

	result := make([]schema.StoryRecord, 0, len(order))
	for _, sig := range order {
		result = append(result, winners[sig])
	}

	sort.SliceStable(result, func(i, j int) bool {
		pi := result[i].Pinned()
		pj := result[j].Pinned()
		if pi != pj {
			return pi
		}
		return result[i].SortTimestamp() > result[j].SortTimestamp()
	})
	return result
}

// beats reports whether challenger replaces incumbent inside a signature
// group. Ties not resolved by any rule keep the incumbent (first seen).
func beats(challenger, incumbent schema.StoryRecord) bool {
	cr, ir := availabilityRank(challenger), availabilityRank(incumbent)
	if cr != ir {
		return cr > ir
	}
	if challenger.IsDebug != incumbent.IsDebug {
		return !challenger.IsDebug
	}
	return challenger.SortTimestamp() > incumbent.SortTimestamp()
}
