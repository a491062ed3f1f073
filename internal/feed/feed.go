// Package feed fetches the remote story stream, the "live" source of the
// story reconciler.
package feed

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/foredeck/foredeck/schema"
)

// Fetcher retrieves live stories from a remote feed.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]schema.StoryRecord, error)
}

// RSSFetcher reads RSS/Atom story feeds.
type RSSFetcher struct {
	parser *gofeed.Parser
}

// NewRSSFetcher returns a feed fetcher backed by gofeed.
func NewRSSFetcher() *RSSFetcher {
	return &RSSFetcher{parser: gofeed.NewParser()}
}

// Fetch downloads and parses one feed into live story records. Items without
// a publish date keep an empty PublishedAt and sort to the bottom downstream.
func (f *RSSFetcher) Fetch(ctx context.Context, url string) ([]schema.StoryRecord, error) {
	parsed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, err
	}

	stories := make([]schema.StoryRecord, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		stories = append(stories, itemToStory(item))
	}
	return stories, nil
}

func itemToStory(item *gofeed.Item) schema.StoryRecord {
	story := schema.StoryRecord{
		StoryID:     item.GUID,
		Title:       item.Title,
		Description: stripHTML(item.Description),
		Categories:  item.Categories,
		Source:      schema.LiveSource,
	}
	if item.Author != nil {
		story.Author = item.Author.Name
	}
	if item.PublishedParsed != nil {
		story.PublishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	if item.UpdatedParsed != nil {
		story.CreatedAt = item.UpdatedParsed.UTC().Format(time.RFC3339)
	}
	return story
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// FetchResult carries the stories and errors of a multi-feed fetch.
type FetchResult struct {
	Stories []schema.StoryRecord
	Errors  []error
}

// FetchAll fetches several feeds concurrently. Failures are collected, not
// fatal: the reconciler runs on whatever arrived.
func FetchAll(ctx context.Context, fetcher Fetcher, urls []string) FetchResult {
	var (
		mu     sync.Mutex
		result FetchResult
		wg     sync.WaitGroup
	)

	for _, url := range urls {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			stories, err := fetcher.Fetch(ctx, u)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, err)
				return
			}
			result.Stories = append(result.Stories, stories...)
		}(url)
	}

	wg.Wait()
	return result
}
