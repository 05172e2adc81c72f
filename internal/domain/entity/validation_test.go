package entity

import (
	"strings"
	"testing"
)

func TestValidateURL_Accepts(t *testing.T) {
	for _, u := range []string{
		"https://feeds.bbci.co.uk/news/world/rss.xml",
		"http://rss.cnn.com/rss/edition_world.rss",
		"https://www.aljazeera.net/aljazeerarss?outputType=xml",
	} {
		if err := ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", u, err)
		}
	}
}

func TestValidateURL_Rejects(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"ftp scheme", "ftp://example.com/feed"},
		{"javascript scheme", "javascript:alert(1)"},
		{"missing host", "https://"},
		{"relative path", "news/world/rss.xml"},
		{"bare domain without scheme", "example.com"},
		{"over length cap", "https://example.com/" + strings.Repeat("a", maxURLLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateURL(tt.url); err == nil {
				t.Errorf("ValidateURL(%q) = nil, want error", tt.url)
			}
		})
	}
}
