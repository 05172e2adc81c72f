package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"globalpulse/internal/domain/entity"
	"globalpulse/internal/observability/metrics"
	"globalpulse/internal/repository"
	"globalpulse/internal/resilience/circuitbreaker"

	"github.com/lib/pq"
)

// DefaultListLimit caps article listings when the caller does not set one.
const DefaultListLimit = 50

type ArticleRepo struct {
	db           *sql.DB
	reads        *circuitbreaker.DBCircuitBreaker
	queryBuilder *ArticleQueryBuilder
}

// NewArticleRepo builds the Postgres-backed repository. Read queries go
// through a circuit breaker; the upsert transaction uses the raw connection.
func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{
		db:           db,
		reads:        circuitbreaker.NewDBCircuitBreaker(db),
		queryBuilder: NewArticleQueryBuilder(),
	}
}

const articleColumns = `id, title, summary, content, url, image_url, source, category, language, published_at, location, created_at`

// UpsertBatch inserts the given articles, silently skipping any whose URL is
// already stored. The whole batch runs in one transaction; a failure on any
// row rolls back everything so a retried sync starts clean.
func (repo *ArticleRepo) UpsertBatch(ctx context.Context, articles []*entity.Article) (repository.UpsertResult, error) {
	var result repository.UpsertResult
	if len(articles) == 0 {
		return result, nil
	}

	start := time.Now()

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("UpsertBatch: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
INSERT INTO articles
       (title, summary, content, url, image_url, source, category, language, published_at, location, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (url) DO NOTHING`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return result, fmt.Errorf("UpsertBatch: prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, article := range articles {
		locationJSON, err := marshalLocation(article.Location)
		if err != nil {
			return repository.UpsertResult{}, fmt.Errorf("UpsertBatch: location for %s: %w", article.URL, err)
		}

		res, err := stmt.ExecContext(ctx,
			article.Title,
			article.Summary,
			nullString(article.Content),
			article.URL,
			nullString(article.ImageURL),
			article.Source,
			string(article.Category),
			string(article.Language),
			article.PublishedAt,
			locationJSON,
			article.CreatedAt,
		)
		if err != nil {
			return repository.UpsertResult{}, fmt.Errorf("UpsertBatch: insert %s: %w", article.URL, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return repository.UpsertResult{}, fmt.Errorf("UpsertBatch: rows affected: %w", err)
		}
		if n > 0 {
			result.Inserted++
		} else {
			result.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return repository.UpsertResult{}, fmt.Errorf("UpsertBatch: commit: %w", err)
	}

	metrics.RecordDBQuery("upsert_articles", time.Since(start))
	return result, nil
}

// List retrieves articles matching the filters, newest first.
func (repo *ArticleRepo) List(ctx context.Context, filters repository.ArticleFilters) ([]*entity.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	whereClause, args := repo.queryBuilder.BuildWhereClause(filters)
	args = append(args, limit)

	query := fmt.Sprintf(`
SELECT %s
FROM articles
%s
ORDER BY published_at DESC
LIMIT $%d`, articleColumns, whereClause, len(args))

	rows, err := repo.reads.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// Get retrieves one article by ID. Returns (nil, nil) when no row matches.
func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM articles
WHERE id = $1
LIMIT 1`, articleColumns)

	row := repo.db.QueryRowContext(ctx, query, id)
	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

// Recent retrieves the most recently published articles.
func (repo *ArticleRepo) Recent(ctx context.Context, limit int) ([]*entity.Article, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := fmt.Sprintf(`
SELECT %s
FROM articles
ORDER BY published_at DESC
LIMIT $1`, articleColumns)

	rows, err := repo.reads.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("Recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("Recent: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// CountArticles returns the total number of articles in the database.
func (repo *ArticleRepo) CountArticles(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles`
	var count int64
	err := repo.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountArticles: %w", err)
	}
	return count, nil
}

// ExistsByURLBatch checks which of the given URLs are already stored,
// in a single round trip rather than one query per URL.
func (repo *ArticleRepo) ExistsByURLBatch(ctx context.Context, urls []string) (map[string]bool, error) {
	if len(urls) == 0 {
		return make(map[string]bool), nil
	}

	const query = `SELECT url FROM articles WHERE url = ANY($1)`
	rows, err := repo.reads.QueryContext(ctx, query, pq.Array(urls))
	if err != nil {
		return nil, fmt.Errorf("ExistsByURLBatch: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]bool, len(urls))
	for _, url := range urls {
		result[url] = false
	}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("ExistsByURLBatch: Scan: %w", err)
		}
		result[url] = true
	}
	return result, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var (
		article      entity.Article
		content      sql.NullString
		imageURL     sql.NullString
		locationJSON []byte
	)

	if err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Summary,
		&content,
		&article.URL,
		&imageURL,
		&article.Source,
		&article.Category,
		&article.Language,
		&article.PublishedAt,
		&locationJSON,
		&article.CreatedAt,
	); err != nil {
		return nil, err
	}

	article.Content = content.String
	article.ImageURL = imageURL.String

	if len(locationJSON) > 0 {
		var loc entity.Location
		if err := json.Unmarshal(locationJSON, &loc); err != nil {
			return nil, fmt.Errorf("unmarshal location: %w", err)
		}
		article.Location = &loc
	}

	return &article, nil
}

// marshalLocation serializes a location for the JSONB column. Nil stays NULL.
func marshalLocation(loc *entity.Location) (interface{}, error) {
	if loc == nil {
		return nil, nil
	}
	data, err := json.Marshal(loc)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// nullString maps empty strings to NULL for nullable text columns.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
