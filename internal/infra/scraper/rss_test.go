package scraper_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"globalpulse/internal/infra/scraper"
	"globalpulse/internal/usecase/sync"
)

func feedServer(t *testing.T, contentType, payload string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		if _, err := w.Write([]byte(payload)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
}

func TestRSSFetcher_Fetch_Success(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>Article 1</title>
      <link>https://example.com/article1</link>
      <description>Description 1</description>
      <content:encoded><![CDATA[<p>Full body 1</p>]]></content:encoded>
      <pubDate>Mon, 01 Jan 2024 00:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Article 2</title>
      <link>https://example.com/article2</link>
      <description>Description 2</description>
      <pubDate>Tue, 02 Jan 2024 00:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`
	server := feedServer(t, "application/rss+xml", rss)
	defer server.Close()

	client := &http.Client{Timeout: 10 * time.Second}
	fetcher := scraper.NewRSSFetcher(client)

	items, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("items length = %d, want 2", len(items))
	}

	if items[0].Title != "Article 1" {
		t.Errorf("items[0].Title = %q, want %q", items[0].Title, "Article 1")
	}
	if items[0].Link != "https://example.com/article1" {
		t.Errorf("items[0].Link = %q, want %q", items[0].Link, "https://example.com/article1")
	}
	if items[0].Content != "<p>Full body 1</p>" {
		t.Errorf("items[0].Content = %q, want encoded content", items[0].Content)
	}
	if items[0].Description != "Description 1" {
		t.Errorf("items[0].Description = %q, want %q", items[0].Description, "Description 1")
	}
	if items[0].PublishedAt == nil {
		t.Error("items[0].PublishedAt = nil, want parsed date")
	}

	if items[1].Content != "" {
		t.Errorf("items[1].Content = %q, want empty without content:encoded", items[1].Content)
	}
}

func TestRSSFetcher_Fetch_Atom(t *testing.T) {
	atom := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <link href="https://example.com"/>
  <updated>2024-01-01T00:00:00Z</updated>
  <entry>
    <title>Atom Article 1</title>
    <link href="https://example.com/atom1"/>
    <id>atom1</id>
    <updated>2024-01-01T00:00:00Z</updated>
    <summary>Atom Summary 1</summary>
  </entry>
</feed>`
	server := feedServer(t, "application/atom+xml", atom)
	defer server.Close()

	client := &http.Client{Timeout: 10 * time.Second}
	fetcher := scraper.NewRSSFetcher(client)

	items, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("items length = %d, want 1", len(items))
	}
	if items[0].Title != "Atom Article 1" {
		t.Errorf("items[0].Title = %q, want %q", items[0].Title, "Atom Article 1")
	}
	if items[0].PublishedAt == nil {
		t.Error("items[0].PublishedAt = nil, want updated date fallback")
	}
}

func TestRSSFetcher_Fetch_MediaExtensions(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Media Feed</title>
    <link>https://example.com</link>
    <description>Media</description>
    <item>
      <title>With media content</title>
      <link>https://example.com/media1</link>
      <media:content url="https://img.example.com/content.jpg" medium="image"/>
      <media:thumbnail url="https://img.example.com/thumb.jpg"/>
    </item>
    <item>
      <title>With enclosure</title>
      <link>https://example.com/media2</link>
      <enclosure url="https://img.example.com/enclosure.jpg" type="image/jpeg" length="1024"/>
    </item>
  </channel>
</rss>`
	server := feedServer(t, "application/rss+xml", rss)
	defer server.Close()

	client := &http.Client{Timeout: 10 * time.Second}
	fetcher := scraper.NewRSSFetcher(client)

	items, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items length = %d, want 2", len(items))
	}

	if len(items[0].MediaContentURLs) == 0 || items[0].MediaContentURLs[0] != "https://img.example.com/content.jpg" {
		t.Errorf("MediaContentURLs = %v, want content.jpg first", items[0].MediaContentURLs)
	}
	if len(items[0].MediaThumbnailURLs) == 0 || items[0].MediaThumbnailURLs[0] != "https://img.example.com/thumb.jpg" {
		t.Errorf("MediaThumbnailURLs = %v, want thumb.jpg first", items[0].MediaThumbnailURLs)
	}
	if items[1].EnclosureURL != "https://img.example.com/enclosure.jpg" {
		t.Errorf("EnclosureURL = %q, want enclosure.jpg", items[1].EnclosureURL)
	}
}

func TestRSSFetcher_Fetch_NotXML(t *testing.T) {
	server := feedServer(t, "text/html", "<!DOCTYPE html><html><body>Maintenance</body></html>")
	defer server.Close()

	client := &http.Client{Timeout: 10 * time.Second}
	fetcher := scraper.NewRSSFetcher(client)

	_, err := fetcher.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Fetch() error = nil, want invalid format error")
	}
	if !errors.Is(err, sync.ErrInvalidFeedFormat) {
		t.Errorf("Fetch() error = %v, want ErrInvalidFeedFormat", err)
	}
}

func TestRSSFetcher_Fetch_ClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := &http.Client{Timeout: 10 * time.Second}
	fetcher := scraper.NewRSSFetcher(client)

	// 404 is not retryable, so this fails fast.
	_, err := fetcher.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Fetch() error = nil, want fetch error")
	}
	if !errors.Is(err, sync.ErrFeedFetchFailed) {
		t.Errorf("Fetch() error = %v, want ErrFeedFetchFailed", err)
	}
}

func TestRSSFetcher_Fetch_ContextCancelled(t *testing.T) {
	server := feedServer(t, "application/rss+xml", `<?xml version="1.0"?><rss version="2.0"><channel><title>x</title></channel></rss>`)
	defer server.Close()

	client := &http.Client{Timeout: 10 * time.Second}
	fetcher := scraper.NewRSSFetcher(client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := fetcher.Fetch(ctx, server.URL); err == nil {
		t.Fatal("Fetch() error = nil, want context error")
	}
}

func TestRSSFetcher_Fetch_EmptyFeed(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Empty Feed</title>
    <link>https://example.com</link>
    <description>No items</description>
  </channel>
</rss>`
	server := feedServer(t, "application/rss+xml", rss)
	defer server.Close()

	client := &http.Client{Timeout: 10 * time.Second}
	fetcher := scraper.NewRSSFetcher(client)

	items, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items length = %d, want 0", len(items))
	}
}
