package domain

import (
	"fmt"
	"strings"
)

// EnrichmentRequest is created once per user action and never mutated.
type EnrichmentRequest struct {
	Dish   string
	Locale string
	// Region is an optional ISO 3166-1 alpha-2 hint used to bias provider results.
	Region string
}

// NewEnrichmentRequest trims the dish name and rejects empty input.
func NewEnrichmentRequest(dish, locale string) (EnrichmentRequest, error) {
	dish = strings.Join(strings.Fields(dish), " ")
	if dish == "" {
		return EnrichmentRequest{}, ErrEmptyDish
	}
	return EnrichmentRequest{Dish: dish, Locale: strings.TrimSpace(locale)}, nil
}

// WithRegion returns a copy carrying an upper-cased region hint.
func (r EnrichmentRequest) WithRegion(region string) EnrichmentRequest {
	r.Region = strings.ToUpper(strings.TrimSpace(region))
	return r
}

// Credentials holds the opaque provider tokens. Empty values are reported by
// the extractor that needs them.
type Credentials struct {
	GroqAPIKey     string
	GeminiAPIKey   string
	YouTubeAPIKey  string
	GoogleAPIKey   string
	SearchEngineID string
	SerpAPIKey     string
	PlacesAPIKey   string
	MapsAPIKey     string
	IPInfoToken    string
}

// MissingCredentialError names the credential an extractor could not find.
func MissingCredentialError(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingCredential, name)
}
