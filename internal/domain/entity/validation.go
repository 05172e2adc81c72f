package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength bounds stored URLs; feeds occasionally emit garbage links.
const maxURLLength = 2048

// ValidateURL checks that a feed or article link is something the backend
// can safely fetch and store: non-empty, bounded in length, parseable, and
// an absolute http(s) URL.
func ValidateURL(rawURL string) error {
	switch {
	case rawURL == "":
		return &ValidationError{Field: "url", Message: "is required"}
	case len(rawURL) > maxURLLength:
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("must not exceed %d characters", maxURLLength),
		}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "must use http or https scheme"}
	}
	if parsed.Host == "" {
		return &ValidationError{Field: "url", Message: "must have a host"}
	}

	return nil
}
