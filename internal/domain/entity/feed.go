package entity

// Feed is one configured remote RSS source: where to fetch, how to label
// the publisher, and which language tag its articles inherit.
type Feed struct {
	URL      string   `yaml:"url"`
	Source   string   `yaml:"source"`
	Language Language `yaml:"language"`
}

// Validate checks that the feed configuration is usable.
func (f *Feed) Validate() error {
	if err := ValidateURL(f.URL); err != nil {
		return err
	}
	if f.Source == "" {
		return &ValidationError{Field: "source", Message: "is required"}
	}
	if !f.Language.Valid() {
		return &ValidationError{Field: "language", Message: "must be en or ar"}
	}
	return nil
}
