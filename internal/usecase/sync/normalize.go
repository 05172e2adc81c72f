package sync

import (
	"math/rand"
	"regexp"
	"strings"
	"time"

	"globalpulse/internal/domain/entity"
)

// locationLabel is the constant placeholder label for synthetic coordinates.
const locationLabel = "News Location"

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// normalizeItem maps one feed item plus its feed's configuration into an
// article draft. It returns false when the item has no link: an article
// without a URL cannot be deduplicated, so it is discarded outright.
func normalizeItem(item FeedItem, feed entity.Feed, now time.Time) (*entity.Article, bool) {
	if item.Link == "" {
		return nil, false
	}

	title := item.Title
	if title == "" {
		title = entity.UntitledPlaceholder
	}

	summary := item.Description
	if summary == "" {
		summary = snippet(item.Content)
	}

	content := item.Content
	if content == "" {
		content = item.Description
	}

	publishedAt := now
	if item.PublishedAt != nil {
		publishedAt = *item.PublishedAt
	}

	article := &entity.Article{
		Title:       title,
		Summary:     summary,
		Content:     content,
		URL:         item.Link,
		ImageURL:    resolveImageURL(item),
		Source:      feed.Source,
		Category:    entity.Categorize(title, content),
		Language:    feed.Language,
		PublishedAt: publishedAt,
		Location:    randomLocation(),
		CreatedAt:   now,
	}
	// A draft that fails validation is dropped rather than stored broken.
	// The usual culprit is a feed configured with an unsupported language.
	if err := article.Validate(); err != nil {
		return nil, false
	}
	return article, true
}

// resolveImageURL picks the best-available image reference from a feed item.
// Resolution order: media:content, enclosure, media:thumbnail. Feeds rarely
// populate more than one of these, but when they do the richer media:content
// entry is preferred.
func resolveImageURL(item FeedItem) string {
	if len(item.MediaContentURLs) > 0 && item.MediaContentURLs[0] != "" {
		return item.MediaContentURLs[0]
	}
	if item.EnclosureURL != "" {
		return item.EnclosureURL
	}
	if len(item.MediaThumbnailURLs) > 0 && item.MediaThumbnailURLs[0] != "" {
		return item.MediaThumbnailURLs[0]
	}
	return ""
}

// snippet strips markup from feed HTML so it can stand in for a missing
// description field.
func snippet(html string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(html, " "))
}

// randomLocation generates the decorative coordinate attached to every
// article. Latitude is clamped to [-80, 80] so markers stay off the poles.
// #nosec G404 -- math/rand is fine here; the value is cosmetic display data.
func randomLocation() *entity.Location {
	return &entity.Location{
		Lat:   rand.Float64()*160 - 80,
		Lng:   rand.Float64()*360 - 180,
		Label: locationLabel,
	}
}
