package cmd

import (
	"github.com/spf13/cobra"

	"github.com/foredeck/foredeck/core"
	"github.com/foredeck/foredeck/internal/contract"
)

// storiesCmd reconciles and lists the story stream.
var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "List the reconciled story stream.",
	Long: `Merge the three story sources into one deduplicated listing: the live feed,
the locally-cached stories you published, and the bundled demo stories.
Duplicates collapse by content signature; the most locally-controllable copy
wins. The flagship case study is always pinned first.

Examples:
  # List stories from the cache and bundled fixtures only
  foredeck stories --offline

  # Include live feeds (fetched concurrently, failures degrade to warnings)
  foredeck stories --feed-url https://example.com/stories.rss,https://other.example/feed.xml

  # Machine-readable listing
  foredeck stories --offline --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStories(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list stories", err)
		}
	},
}

// storiesPublishCmd writes stories from a JSON file into the local cache.
var storiesPublishCmd = &cobra.Command{
	Use:   "publish <stories.json>",
	Short: "Publish stories from a JSON file into the local cache.",
	Long: `Upsert the story records of a JSON file into the configured cache backend.
Stories are keyed by content signature, so publishing the same file twice is
idempotent, and a published story outranks its live or debug duplicates in
future listings.

Examples:
  # Publish to the default SQLite cache
  foredeck stories publish ./my_stories.json

  # Publish to a shared PostgreSQL cache
  FOREDECK_CACHE_BACKEND=postgresql FOREDECK_CACHE_DB_CONNECT="..." foredeck stories publish ./my_stories.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteStoriesPublish(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot publish stories", err)
		}
	},
}
