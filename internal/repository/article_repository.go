package repository

import (
	"context"

	"globalpulse/internal/domain/entity"
)

// ArticleFilters contains optional filters for listing articles.
// Nil/zero fields are ignored.
type ArticleFilters struct {
	Category *entity.Category // Filter by exact category
	Language *entity.Language // Filter by exact language tag
	Search   string           // Case-insensitive substring match on title or summary
	Limit    int              // Maximum rows returned; 0 means the repository default
}

// UpsertResult summarizes one upsert batch.
type UpsertResult struct {
	Inserted int64 // Rows actually written
	Skipped  int64 // Rows dropped because their URL already existed
}

// ArticleRepository is the persistence port for articles.
//
// UpsertBatch is the only write path: for each article, insert unless a row
// with the same URL already exists, in which case that article is skipped.
// A URL collision is routine, never an error; only a storage-level failure
// (connection loss, constraint other than url) returns a non-nil error.
type ArticleRepository interface {
	UpsertBatch(ctx context.Context, articles []*entity.Article) (UpsertResult, error)
	// List retrieves articles matching the filters, newest first.
	List(ctx context.Context, filters ArticleFilters) ([]*entity.Article, error)
	// Get retrieves one article by ID. Returns (nil, nil) when not found.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// Recent retrieves the most recently published articles, newest first.
	Recent(ctx context.Context, limit int) ([]*entity.Article, error)
	// CountArticles returns the total number of stored articles.
	CountArticles(ctx context.Context) (int64, error)
	// ExistsByURLBatch reports which of the given URLs are already stored.
	ExistsByURLBatch(ctx context.Context, urls []string) (map[string]bool, error)
}
