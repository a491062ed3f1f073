// Package fixtures bundles the demo stories shipped with the binary, the
// "debug" source of the story reconciler.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/foredeck/foredeck/schema"
)

//go:embed stories.json
var storiesJSON []byte

var (
	decodeOnce sync.Once
	decoded    []schema.StoryRecord
	decodeErr  error
)

// DebugStories returns the bundled fixture stories. The embedded payload is
// decoded once; a malformed fixture file panics on first use rather than ship
// silently. Each call returns a fresh slice so callers may reorder or mutate
// their copy.
func DebugStories() []schema.StoryRecord {
	decodeOnce.Do(func() {
		decodeErr = json.Unmarshal(storiesJSON, &decoded)
	})
	if decodeErr != nil {
		panic("fixtures: malformed embedded stories.json: " + decodeErr.Error())
	}

	stories := make([]schema.StoryRecord, len(decoded))
	copy(stories, decoded)
	for i := range stories {
		stories[i].Source = schema.DebugSource
		stories[i].IsDebug = true
	}
	return stories
}
