// Package article provides HTTP handlers for article-related endpoints.
// It includes handlers for listing articles, fetching one by ID, and
// triggering a manual feed sync.
package article

import (
	"time"

	"globalpulse/internal/domain/entity"
)

// LocationDTO represents the JSON structure for an article's map coordinate.
type LocationDTO struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label"`
}

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	Content     string       `json:"content,omitempty"`
	URL         string       `json:"url"`
	ImageURL    string       `json:"image_url,omitempty"`
	Source      string       `json:"source"`
	Category    string       `json:"category"`
	Language    string       `json:"language"`
	PublishedAt time.Time    `json:"published_at"`
	Location    *LocationDTO `json:"location,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// toDTO converts a domain article into its transport representation.
func toDTO(a *entity.Article) DTO {
	dto := DTO{
		ID:          a.ID,
		Title:       a.Title,
		Summary:     a.Summary,
		Content:     a.Content,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		Source:      a.Source,
		Category:    string(a.Category),
		Language:    string(a.Language),
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
	}
	if a.Location != nil {
		dto.Location = &LocationDTO{
			Lat:   a.Location.Lat,
			Lng:   a.Location.Lng,
			Label: a.Location.Label,
		}
	}
	return dto
}
