// Package sync provides the feed synchronization use case: fetching all
// configured feeds concurrently, normalizing their items into articles, and
// persisting the merged result with URL-based deduplication.
package sync

import "errors"

// Sentinel errors for feed synchronization operations.
var (
	// ErrFeedFetchFailed indicates that retrieving a feed over HTTP failed.
	// This covers network errors, timeouts, and non-2xx responses.
	ErrFeedFetchFailed = errors.New("failed to fetch feed")

	// ErrInvalidFeedFormat indicates that a fetched payload does not look
	// like XML, or that the XML could not be parsed as RSS/Atom.
	ErrInvalidFeedFormat = errors.New("invalid feed format")
)
