package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"globalpulse/internal/domain/entity"
	"globalpulse/internal/observability/metrics"
	"globalpulse/internal/repository"

	"golang.org/x/sync/errgroup"
)

// FreshnessWindow is the retention cutoff relative to sync time. Items
// published earlier than this are dropped before they ever reach storage.
const FreshnessWindow = 24 * time.Hour

// FeedItem represents a single entry parsed out of a feed payload, prior to
// normalization. Body and media fields vary by feed dialect, so all of them
// are optional; normalizeItem applies the fallback order.
type FeedItem struct {
	Title              string
	Link               string
	Description        string
	Content            string // content:encoded, else content
	PublishedAt        *time.Time
	EnclosureURL       string
	MediaContentURLs   []string
	MediaThumbnailURLs []string
}

// FeedFetcher retrieves and parses one remote feed into its items.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]FeedItem, error)
}

// ContentFetcher retrieves the full readable text of an article page.
// Used to enhance items whose feed body is too thin; always optional.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// ContentEnhanceConfig controls full-content fetching during a sync run.
type ContentEnhanceConfig struct {
	Threshold int // Minimum feed content length before fetching the article page
}

// Service drives one full synchronization pass across all configured feeds.
type Service struct {
	Feeds          []entity.Feed
	Fetcher        FeedFetcher
	Repo           repository.ArticleRepository
	ContentFetcher ContentFetcher // nil disables content enhancement
	enhanceConfig  ContentEnhanceConfig
}

// NewService creates a sync Service over an explicit feed registry.
// The registry is injected rather than read from package state so tests can
// point the orchestrator at synthetic feeds.
func NewService(
	feeds []entity.Feed,
	fetcher FeedFetcher,
	repo repository.ArticleRepository,
	contentFetcher ContentFetcher,
	enhanceConfig ContentEnhanceConfig,
) Service {
	return Service{
		Feeds:          feeds,
		Fetcher:        fetcher,
		Repo:           repo,
		ContentFetcher: contentFetcher,
		enhanceConfig:  enhanceConfig,
	}
}

// Result is what a completed sync run reports to its trigger.
type Result struct {
	Count     int       `json:"count"`     // Articles submitted for persistence
	Timestamp time.Time `json:"timestamp"` // Completion time
}

// Stats carries the per-run breakdown for logs and metrics.
type Stats struct {
	Feeds       int
	FailedFeeds int64
	Items       int64
	Stale       int64
	Inserted    int64
	Skipped     int64
	Duration    time.Duration
}

// RunSync executes one fetch-all, normalize-all, upsert-all pass.
//
// Every feed is fetched concurrently; a failure at the fetch, validate, or
// parse stage of one feed is logged and that feed contributes zero items,
// but the run continues. Only a storage failure makes RunSync return an
// error. Running twice in succession never duplicates rows: the repository
// skips every URL it has already stored.
func (s *Service) RunSync(ctx context.Context) (*Result, error) {
	logger := slog.Default()
	start := time.Now()
	cutoff := start.Add(-FreshnessWindow)

	stats := &Stats{Feeds: len(s.Feeds)}

	// Each goroutine writes only its own slot, so the slice needs no lock.
	perFeed := make([][]*entity.Article, len(s.Feeds))

	var eg errgroup.Group
	for i, feed := range s.Feeds {
		eg.Go(func() error {
			perFeed[i] = s.collectFeed(ctx, feed, start, cutoff, stats)
			return nil
		})
	}
	// Collection errors are swallowed per feed; Wait only joins the fan-out.
	_ = eg.Wait()

	merged := make([]*entity.Article, 0, 64)
	for _, articles := range perFeed {
		merged = append(merged, articles...)
	}

	// Newest first. Ordering is a convenience for bulk-insert order and the
	// read API; storage correctness does not depend on it.
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	res, err := s.Repo.UpsertBatch(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("upsert articles: %w", err)
	}
	stats.Inserted = res.Inserted
	stats.Skipped = res.Skipped
	stats.Duration = time.Since(start)

	metrics.RecordSyncRun(len(merged), res.Inserted, res.Skipped, stats.Duration)

	logger.Info("sync completed",
		slog.Int("feeds", stats.Feeds),
		slog.Int64("failed_feeds", stats.FailedFeeds),
		slog.Int64("feed_items", stats.Items),
		slog.Int64("stale_dropped", stats.Stale),
		slog.Int("submitted", len(merged)),
		slog.Int64("inserted", res.Inserted),
		slog.Int64("duplicated", res.Skipped),
		slog.Duration("duration", stats.Duration),
	)

	return &Result{Count: len(merged), Timestamp: time.Now()}, nil
}

// collectFeed fetches, normalizes, and freshness-filters a single feed.
// Any failure is recorded and swallowed here; the caller always gets a
// usable (possibly empty) slice.
func (s *Service) collectFeed(ctx context.Context, feed entity.Feed, now, cutoff time.Time, stats *Stats) []*entity.Article {
	logger := slog.Default()
	feedStart := time.Now()

	items, err := s.Fetcher.Fetch(ctx, feed.URL)
	if err != nil {
		atomic.AddInt64(&stats.FailedFeeds, 1)
		metrics.RecordFeedSyncError(feed.Source, errorType(err))
		logger.Warn("failed to sync feed",
			slog.String("source", feed.Source),
			slog.String("feed_url", feed.URL),
			slog.Any("error", err))
		return nil
	}

	atomic.AddInt64(&stats.Items, int64(len(items)))

	articles := make([]*entity.Article, 0, len(items))
	for _, item := range items {
		article, ok := normalizeItem(item, feed, now)
		if !ok {
			continue
		}
		if article.PublishedAt.Before(cutoff) {
			atomic.AddInt64(&stats.Stale, 1)
			continue
		}
		articles = append(articles, article)
	}

	s.enhanceArticles(ctx, articles)

	metrics.RecordFeedSynced(feed.Source, time.Since(feedStart), len(items), len(articles))

	logger.Info("feed synced",
		slog.String("source", feed.Source),
		slog.Int("feed_items", len(items)),
		slog.Int("fresh", len(articles)),
		slog.Duration("duration", time.Since(feedStart)))

	return articles
}

// enhanceArticles upgrades thin feed bodies with the full page text. URLs
// already in storage are skipped first: their rows are final, so refetching
// their pages every run would be wasted work. The existence check is an
// optimization only; if it fails, every article is treated as new.
func (s *Service) enhanceArticles(ctx context.Context, articles []*entity.Article) {
	if s.ContentFetcher == nil || len(articles) == 0 {
		return
	}

	urls := make([]string, len(articles))
	for i, a := range articles {
		urls[i] = a.URL
	}
	known, err := s.Repo.ExistsByURLBatch(ctx, urls)
	if err != nil {
		slog.Warn("url existence check failed, enhancing all items",
			slog.Any("error", err))
		known = nil
	}

	for _, a := range articles {
		if known[a.URL] {
			continue
		}
		a.Content = s.enhanceContent(ctx, a.URL, a.Content)
	}
}

// enhanceContent swaps in the full article text when the feed body is thin.
// It never fails: any fetch problem falls back to the feed content.
func (s *Service) enhanceContent(ctx context.Context, url, content string) string {
	if s.ContentFetcher == nil {
		return content
	}
	if len(content) >= s.enhanceConfig.Threshold {
		metrics.RecordContentFetchSkipped()
		return content
	}

	full, err := s.ContentFetcher.FetchContent(ctx, url)
	if err != nil {
		slog.Debug("content fetch failed, keeping feed content",
			slog.String("url", url),
			slog.Any("error", err))
		return content
	}
	if len(full) > len(content) {
		return full
	}
	return content
}

// errorType maps a feed failure to a metric label.
func errorType(err error) string {
	switch {
	case errors.Is(err, ErrInvalidFeedFormat):
		return "invalid_format"
	case errors.Is(err, ErrFeedFetchFailed):
		return "fetch_failed"
	default:
		return "other"
	}
}
