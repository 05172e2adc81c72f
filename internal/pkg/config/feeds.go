package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"globalpulse/internal/domain/entity"
)

// defaultFeeds is the built-in feed registry used when no external
// registry file is configured. It covers the major English and Arabic
// world-news publishers.
var defaultFeeds = []entity.Feed{
	{URL: "https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml", Source: "New York Times", Language: entity.LanguageEnglish},
	{URL: "https://feeds.washingtonpost.com/rss/world", Source: "Washington Post", Language: entity.LanguageEnglish},
	{URL: "http://rss.cnn.com/rss/edition.rss", Source: "CNN", Language: entity.LanguageEnglish},
	{URL: "https://feeds.nbcnews.com/nbcnews/public/news", Source: "NBC News", Language: entity.LanguageEnglish},
	{URL: "https://abcnews.go.com/abcnews/topstories", Source: "ABC News", Language: entity.LanguageEnglish},
	{URL: "https://feeds.foxnews.com/foxnews/latest", Source: "Fox News", Language: entity.LanguageEnglish},
	{URL: "https://feeds.npr.org/1001/rss.xml", Source: "NPR", Language: entity.LanguageEnglish},
	{URL: "https://www.cbsnews.com/latest/rss/main", Source: "CBS News", Language: entity.LanguageEnglish},
	{URL: "https://feeds.bbci.co.uk/news/rss.xml", Source: "BBC News", Language: entity.LanguageEnglish},
	{URL: "https://www.theguardian.com/world/rss", Source: "The Guardian", Language: entity.LanguageEnglish},
	{URL: "https://news.sky.com/feeds/rss/world.xml", Source: "Sky News", Language: entity.LanguageEnglish},
	{URL: "https://www.independent.co.uk/news/world/rss", Source: "The Independent", Language: entity.LanguageEnglish},
	{URL: "https://www.telegraph.co.uk/rss.xml", Source: "The Telegraph", Language: entity.LanguageEnglish},
	{URL: "https://www.aljazeera.com/xml/rss/all.xml", Source: "Al Jazeera English", Language: entity.LanguageEnglish},
	{URL: "https://www.reuters.com/rssFeed/worldNews", Source: "Reuters", Language: entity.LanguageEnglish},
	{URL: "https://rss.dw.com/xml/rss-en-all", Source: "Deutsche Welle", Language: entity.LanguageEnglish},
	{URL: "https://www.france24.com/en/rss", Source: "France 24", Language: entity.LanguageEnglish},
	{URL: "https://timesofindia.indiatimes.com/rssfeedstopstories.cms", Source: "Times of India", Language: entity.LanguageEnglish},
	{URL: "https://www.japantimes.co.jp/feed/", Source: "Japan Times", Language: entity.LanguageEnglish},
	{URL: "https://www.scmp.com/rss/91/feed", Source: "South China Morning Post", Language: entity.LanguageEnglish},
	{URL: "https://www.abc.net.au/news/feed/51120/rss.xml", Source: "ABC Australia", Language: entity.LanguageEnglish},
	{URL: "https://globalnews.ca/feed/", Source: "Global News Canada", Language: entity.LanguageEnglish},
	{URL: "https://www.aljazeera.net/aljazeerarss/feed", Source: "Al Jazeera Arabic", Language: entity.LanguageArabic},
	{URL: "https://feeds.bbci.co.uk/arabic/rss.xml", Source: "BBC Arabic", Language: entity.LanguageArabic},
	{URL: "https://www.france24.com/ar/rss", Source: "France 24 Arabic", Language: entity.LanguageArabic},
	{URL: "https://www.skynewsarabia.com/web/rss", Source: "Sky News Arabia", Language: entity.LanguageArabic},
	{URL: "https://arabic.rt.com/rss/", Source: "RT Arabic", Language: entity.LanguageArabic},
	{URL: "https://www.alarabiya.net/.mrss/ar.xml", Source: "Al Arabiya", Language: entity.LanguageArabic},
}

// feedRegistry is the YAML document shape of an external feed registry file.
type feedRegistry struct {
	Feeds []entity.Feed `yaml:"feeds"`
}

// DefaultFeeds returns a copy of the built-in feed registry.
func DefaultFeeds() []entity.Feed {
	feeds := make([]entity.Feed, len(defaultFeeds))
	copy(feeds, defaultFeeds)
	return feeds
}

// LoadFeeds returns the feed registry for a sync run.
//
// When the FEEDS_FILE environment variable names a YAML registry file, that
// file replaces the built-in list entirely. Every entry is validated; a
// registry with any invalid feed is rejected rather than silently filtered,
// so a typo in one URL is caught at startup.
//
// YAML format:
//
//	feeds:
//	  - url: https://example.com/rss.xml
//	    source: Example Wire
//	    language: en
func LoadFeeds() ([]entity.Feed, error) {
	path := os.Getenv("FEEDS_FILE")
	if path == "" {
		return DefaultFeeds(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds file %s: %w", path, err)
	}

	var registry feedRegistry
	if err := yaml.Unmarshal(raw, &registry); err != nil {
		return nil, fmt.Errorf("parse feeds file %s: %w", path, err)
	}

	if len(registry.Feeds) == 0 {
		return nil, fmt.Errorf("feeds file %s contains no feeds", path)
	}

	for i := range registry.Feeds {
		if err := registry.Feeds[i].Validate(); err != nil {
			return nil, fmt.Errorf("feeds file %s entry %d (%s): %w", path, i, registry.Feeds[i].URL, err)
		}
	}

	return registry.Feeds, nil
}
