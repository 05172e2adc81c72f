// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and Feed, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// UntitledPlaceholder is stored as the title when a feed item omits one.
const UntitledPlaceholder = "Untitled"

// Language identifies the language an article is written in.
// It is inherited from feed configuration, never detected from content.
type Language string

// Supported languages.
const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// Valid reports whether the language is one of the supported values.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageArabic
}

// Location is a decorative map coordinate attached to an article.
// Coordinates are synthetic and carry no real geographic meaning.
type Location struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label"`
}

// Article represents a news article entity in the system.
// Articles are created only by the ingestion pipeline and deduplicated by URL.
type Article struct {
	ID          int64
	Title       string
	Summary     string
	Content     string
	URL         string
	ImageURL    string
	Source      string
	Category    Category
	Language    Language
	PublishedAt time.Time
	Location    *Location
	CreatedAt   time.Time
}

// Validate checks the invariants that must hold before an article is persisted.
func (a *Article) Validate() error {
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if err := ValidateURL(a.URL); err != nil {
		return err
	}
	if a.Source == "" {
		return &ValidationError{Field: "source", Message: "is required"}
	}
	if !a.Category.Valid() {
		return &ValidationError{Field: "category", Message: "is not a known category"}
	}
	if !a.Language.Valid() {
		return &ValidationError{Field: "language", Message: "must be en or ar"}
	}
	if a.PublishedAt.IsZero() {
		return &ValidationError{Field: "publishedAt", Message: "is required"}
	}
	return nil
}
