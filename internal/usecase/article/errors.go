// Package article provides use cases for querying stored articles.
// It implements filter validation and delegates persistence to the repository.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrInvalidCategory indicates an unrecognized category filter value.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidLanguage indicates an unrecognized language filter value.
	ErrInvalidLanguage = errors.New("invalid language")
)
