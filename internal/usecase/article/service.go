package article

import (
	"context"
	"fmt"
	"strings"

	"globalpulse/internal/domain/entity"
	"globalpulse/internal/repository"
)

// maxListLimit caps the number of rows a single List call can request.
const maxListLimit = 200

// ListInput carries the raw filter values from the transport layer.
// Empty strings mean "no filter".
type ListInput struct {
	Category string
	Language string
	Search   string
	Limit    int
}

// Service provides read-side article use cases.
// It validates filter input and delegates persistence to the repository.
type Service struct {
	Repo repository.ArticleRepository
}

// List retrieves articles matching the given filters, newest first.
// Returns ErrInvalidCategory or ErrInvalidLanguage when a filter value is
// outside the known enumeration.
func (s *Service) List(ctx context.Context, in ListInput) ([]*entity.Article, error) {
	filters, err := buildFilters(in)
	if err != nil {
		return nil, err
	}

	articles, err := s.Repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// Get retrieves a single article by its ID.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// Count returns the total number of stored articles.
func (s *Service) Count(ctx context.Context) (int64, error) {
	total, err := s.Repo.CountArticles(ctx)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return total, nil
}

// buildFilters validates the raw input and converts it into repository filters.
func buildFilters(in ListInput) (repository.ArticleFilters, error) {
	var filters repository.ArticleFilters

	if in.Category != "" {
		category := entity.Category(in.Category)
		if !category.Valid() {
			return filters, fmt.Errorf("%w: %s", ErrInvalidCategory, in.Category)
		}
		filters.Category = &category
	}

	if in.Language != "" {
		language := entity.Language(strings.ToLower(in.Language))
		if !language.Valid() {
			return filters, fmt.Errorf("%w: %s", ErrInvalidLanguage, in.Language)
		}
		filters.Language = &language
	}

	filters.Search = strings.TrimSpace(in.Search)

	limit := in.Limit
	if limit < 0 {
		limit = 0
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	filters.Limit = limit

	return filters, nil
}
