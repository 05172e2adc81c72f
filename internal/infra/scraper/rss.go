// Package scraper provides implementations for fetching RSS/Atom feeds.
// It uses the gofeed library to parse feed content with reliability patterns.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"globalpulse/internal/resilience/circuitbreaker"
	"globalpulse/internal/resilience/retry"
	"globalpulse/internal/usecase/sync"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
)

// maxFeedBytes caps the feed payload size to guard against runaway responses.
const maxFeedBytes = 10 << 20 // 10MB

const userAgent = "GlobalPulseBot/1.0"

// defaultFetchTimeout bounds one feed request. Slow feeds are dropped from
// the run rather than allowed to stall it.
const defaultFetchTimeout = 10 * time.Second

// RSSFetcher implements sync.FeedFetcher using the gofeed library.
// It includes circuit breaker and retry logic for improved reliability.
type RSSFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
// A nil client gets a default with a 10 second timeout.
// It automatically configures circuit breaker and retry logic.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &RSSFetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Fetch retrieves and parses an RSS/Atom feed from the given URL.
// Transport failures and 5xx responses are retried with backoff; a payload
// that is not a feed aborts immediately since retrying cannot fix it.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]sync.FeedItem, error) {
	var items []sync.FeedItem

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("service", "feed-fetch"),
					slog.String("url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
				return err
			}
			return err
		}

		items = cbResult.([]sync.FeedItem)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	return items, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]sync.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sync.ErrFeedFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sync.ErrFeedFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Keep the HTTPError in the chain so retry classification still works.
		return nil, fmt.Errorf("%w: %w", sync.ErrFeedFetchFailed,
			&retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", sync.ErrFeedFetchFailed, err)
	}

	payload := string(body)
	if !looksLikeFeed(payload) {
		return nil, fmt.Errorf("%w: response is not XML", sync.ErrInvalidFeedFormat)
	}

	feed, err := gofeed.NewParser().ParseString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sync.ErrInvalidFeedFormat, err)
	}

	items := make([]sync.FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		items = append(items, toFeedItem(it))
	}

	return items, nil
}

// looksLikeFeed checks that the payload at least starts like an XML feed
// before handing it to the parser. Feeds behind misconfigured servers often
// return HTML error pages with a 200 status.
func looksLikeFeed(payload string) bool {
	trimmed := strings.TrimLeft(payload, "\xef\xbb\xbf \t\r\n")
	for _, prefix := range []string{"<?xml", "<rss", "<feed", "<rdf"} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// toFeedItem maps a parsed gofeed item onto the neutral item shape.
func toFeedItem(it *gofeed.Item) sync.FeedItem {
	item := sync.FeedItem{
		Title:              it.Title,
		Link:               it.Link,
		Description:        it.Description,
		Content:            it.Content,
		PublishedAt:        it.PublishedParsed,
		MediaContentURLs:   mediaURLs(it, "content"),
		MediaThumbnailURLs: mediaURLs(it, "thumbnail"),
	}

	if item.PublishedAt == nil {
		item.PublishedAt = it.UpdatedParsed
	}

	for _, enc := range it.Enclosures {
		if enc != nil && enc.URL != "" {
			item.EnclosureURL = enc.URL
			break
		}
	}

	return item
}

// mediaURLs extracts url attributes from Media RSS extension elements.
func mediaURLs(it *gofeed.Item, element string) []string {
	media, ok := it.Extensions["media"]
	if !ok {
		return nil
	}

	entries := media[element]
	urls := make([]string, 0, len(entries))
	for _, entry := range entries {
		if u := entry.Attrs["url"]; u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil
	}
	return urls
}
