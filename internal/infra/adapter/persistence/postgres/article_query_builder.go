// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"
	"time"

	"globalpulse/internal/repository"
)

// DefaultQueryTimeout bounds filtered read queries so a slow search cannot
// hold a connection indefinitely.
const DefaultQueryTimeout = 5 * time.Second

// ArticleQueryBuilder builds WHERE clauses for filtered article reads.
// PostgreSQL-specific: uses ILIKE for case-insensitive search and $N placeholders.
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and arguments for the given
// filters. Returns an empty clause when no filter is set.
func (qb *ArticleQueryBuilder) BuildWhereClause(filters repository.ArticleFilters) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	if filters.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", paramIndex))
		args = append(args, string(*filters.Category))
		paramIndex++
	}

	if filters.Language != nil {
		conditions = append(conditions, fmt.Sprintf("language = $%d", paramIndex))
		args = append(args, string(*filters.Language))
		paramIndex++
	}

	if filters.Search != "" {
		pattern := "%" + escapeILIKE(filters.Search) + "%"
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE $%d OR summary ILIKE $%d)", paramIndex, paramIndex))
		args = append(args, pattern)
		paramIndex++
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// escapeILIKE escapes LIKE metacharacters so user input matches literally.
func escapeILIKE(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
