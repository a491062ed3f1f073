// Package core has the reconciliation and chart-preparation engine: series
// extraction, combining, windowing, axis domains, driver classification and
// story reconciliation. The pipeline functions are pure over in-memory
// collections; bad input degrades silently instead of erroring. The Execute
// entrypoints wire the pipeline to datasets, the story cache, the live feed
// and the output writers.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/foredeck/foredeck/internal/chartpng"
	"github.com/foredeck/foredeck/internal/contract"
	"github.com/foredeck/foredeck/internal/dataio"
	"github.com/foredeck/foredeck/internal/feed"
	"github.com/foredeck/foredeck/internal/fixtures"
	"github.com/foredeck/foredeck/internal/outwriter"
	"github.com/foredeck/foredeck/internal/storycache"
	"github.com/foredeck/foredeck/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecutePrepare builds the configured view from the dataset directory and
// prints the chart-ready bundle. It serves as the main entry point for the
// 'prepare' command.
func ExecutePrepare(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	bundle, err := GetViewResults(cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteSeries(bundle, cfg, duration)
}

// ExecuteDrivers extracts and classifies the exogenous driver signals of a
// dataset and prints the classification.
func ExecuteDrivers(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	drivers, err := GetDriverResults(cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteDrivers(drivers, cfg, duration)
}

// ExecuteStories reconciles the live, local and debug story streams and
// prints the deduplicated listing. Live fetch failures degrade to a warning;
// the reconciler runs on whatever sources are reachable.
func ExecuteStories(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	stories := GetStoryResults(ctx, cfg)
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteStories(stories, cfg, duration)
}

// ExecuteStoriesPublish writes the stories from a JSON file into the local
// cache, keyed by content signature so republishing stays idempotent.
func ExecuteStoriesPublish(_ context.Context, cfg *contract.Config, storiesPath string) error {
	stories, err := dataio.LoadStoriesFile(storiesPath)
	if err != nil {
		return err
	}
	if len(stories) == 0 {
		return fmt.Errorf("no stories found in %s", storiesPath)
	}

	store, err := storycache.Open(cfg.CacheBackend, cfg.CacheDBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Upsert(stories...); err != nil {
		return err
	}
	fmt.Printf("Published %d stories to the %s cache\n", len(stories), cfg.CacheBackend)
	return nil
}

// ExecuteCacheStatus prints the story cache backend and row count.
func ExecuteCacheStatus(_ context.Context, cfg *contract.Config) error {
	store, err := storycache.Open(cfg.CacheBackend, cfg.CacheDBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	if err != nil {
		return err
	}
	fmt.Printf("Cache backend: %s\nStories: %d\n", status.Backend, status.Stories)
	return nil
}

// ExecuteCacheClear drops all cached stories.
func ExecuteCacheClear(_ context.Context, cfg *contract.Config) error {
	store, err := storycache.Open(cfg.CacheBackend, cfg.CacheDBConnect)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Printf("Cleared the %s story cache\n", cfg.CacheBackend)
	return nil
}

// ExecuteCacheMigrate runs story cache schema migrations to targetVersion.
func ExecuteCacheMigrate(_ context.Context, cfg *contract.Config, targetVersion int) error {
	if err := storycache.Migrate(cfg.CacheBackend, cfg.CacheDBConnect, targetVersion); err != nil {
		return err
	}
	fmt.Printf("Migrated the %s story cache\n", cfg.CacheBackend)
	return nil
}

// ExecuteChart builds the configured view and renders it, plus one chart per
// driver, as PNG files under cfg.ChartDir.
func ExecuteChart(_ context.Context, cfg *contract.Config) error {
	start := time.Now()
	bundle, err := GetViewResults(cfg)
	if err != nil {
		return err
	}
	paths, err := chartpng.RenderView(bundle, cfg)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	fmt.Printf("Rendered %d charts in %v\n", len(paths), time.Since(start))
	return nil
}

// GetViewResults loads the dataset directory and runs the pipeline for the
// configured view kind. Exposed for the MCP server.
func GetViewResults(cfg *contract.Config) (schema.ViewBundle, error) {
	ds, err := dataio.LoadDataset(cfg.DatasetDir)
	if err != nil {
		return schema.ViewBundle{}, err
	}
	in := viewInput(cfg, ds)
	if cfg.View == schema.ProjectionView {
		return BuildProjectionView(in), nil
	}
	return BuildEvaluationView(in), nil
}

// GetDriverResults loads the dataset directory and returns its classified
// driver signals. Exposed for the MCP server.
func GetDriverResults(cfg *contract.Config) ([]schema.DriverSeries, error) {
	ds, err := dataio.LoadDataset(cfg.DatasetDir)
	if err != nil {
		return nil, err
	}
	return buildDriverSeries(viewInput(cfg, ds)), nil
}

// GetStoryResults gathers the three story streams and reconciles them. Live
// feeds are fetched concurrently; unreachable sources degrade to warnings so
// the listing always renders.
func GetStoryResults(ctx context.Context, cfg *contract.Config) []schema.StoryRecord {
	var live []schema.StoryRecord
	if !cfg.Offline && len(cfg.FeedURLs) > 0 {
		result := feed.FetchAll(ctx, feed.NewRSSFetcher(), cfg.FeedURLs)
		for _, err := range result.Errors {
			contract.LogWarn("fetching live stories", err)
		}
		live = result.Stories
	}

	local, err := loadLocalStories(cfg)
	if err != nil {
		contract.LogWarn("reading story cache", err)
	}

	return ReconcileStories(live, local, fixtures.DebugStories())
}

func viewInput(cfg *contract.Config, ds *dataio.Dataset) ViewInput {
	return ViewInput{
		Historical: ds.Historical,
		Test:       ds.Test,
		Forecast:   ds.Forecast,
		Drivers:    ds.Drivers,
		DriverKeys: cfg.DriverKeys,
		Window:     cfg.Window,
		ClampZero:  cfg.ClampZero,
		Fields:     cfg.Fields,
	}
}

// loadLocalStories lists the cached stories, treating an unconfigured cache
// as an empty source.
func loadLocalStories(cfg *contract.Config) ([]schema.StoryRecord, error) {
	store, err := storycache.Open(cfg.CacheBackend, cfg.CacheDBConnect)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()
	return store.List()
}
