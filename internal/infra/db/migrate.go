package db

import (
	"database/sql"
)

func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id           BIGSERIAL PRIMARY KEY,
    title        TEXT NOT NULL,
    summary      TEXT NOT NULL,
    content      TEXT,
    url          TEXT NOT NULL UNIQUE,
    image_url    TEXT,
    source       TEXT NOT NULL,
    category     TEXT NOT NULL,
    language     VARCHAR(8) NOT NULL,
    published_at TIMESTAMPTZ NOT NULL,
    location     JSONB,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// Every listing sorts by recency.
		`CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_language ON articles(language)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// pg_trgm speeds up ILIKE search. Ignore errors: the extension may
	// already exist or the role may lack superuser rights.
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)

	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_articles_title_gin ON articles USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_summary_gin ON articles USING gin(summary gin_trgm_ops)`,
	}
	for _, idx := range searchIndexes {
		// Fails without pg_trgm, which is fine; search falls back to seq scan.
		_, _ = db.Exec(idx)
	}

	return nil
}

// MigrateDown rolls back the database schema.
// Use with caution: this deletes all stored articles.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_articles_title_gin`,
		`DROP INDEX IF EXISTS idx_articles_summary_gin`,
		`DROP INDEX IF EXISTS idx_articles_published_at`,
		`DROP INDEX IF EXISTS idx_articles_category`,
		`DROP INDEX IF EXISTS idx_articles_language`,
		`DROP TABLE IF EXISTS articles`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
