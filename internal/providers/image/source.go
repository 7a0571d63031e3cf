// Package image finds dish photos: a search API supplies ranked candidate
// URLs, then every candidate is downloaded and normalised concurrently.
package image

import (
	"context"

	"gourmet/internal/domain"
)

// CandidateSource returns up to n image URLs ranked best first.
type CandidateSource interface {
	Name() string
	Available() bool
	Candidates(ctx context.Context, req domain.EnrichmentRequest, n int) ([]string, error)
}

// FallbackSource tries each available source in order and returns the first
// non-empty answer.
type FallbackSource struct {
	sources    []CandidateSource
	OnFallback func(from string, err error)
}

func NewFallbackSource(sources ...CandidateSource) *FallbackSource {
	return &FallbackSource{sources: sources}
}

func (f *FallbackSource) Name() string {
	return "fallback"
}

func (f *FallbackSource) Available() bool {
	for _, src := range f.sources {
		if src != nil && src.Available() {
			return true
		}
	}
	return false
}

// Candidates falls through on errors and on empty answers. OnFallback
// receives a nil error for the latter.
func (f *FallbackSource) Candidates(ctx context.Context, req domain.EnrichmentRequest, n int) ([]string, error) {
	var lastErr error
	tried := false
	for _, src := range f.sources {
		if src == nil || !src.Available() {
			continue
		}
		tried = true
		urls, err := src.Candidates(ctx, req, n)
		if err == nil && len(urls) > 0 {
			return urls, nil
		}
		if err != nil {
			lastErr = err
		}
		if f.OnFallback != nil {
			f.OnFallback(src.Name(), err)
		}
	}
	if !tried {
		return nil, domain.MissingCredentialError("GOOGLE_API_KEY/SEARCH_ENGINE_ID or SERPAPI_API_KEY")
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return []string{}, nil
}

var _ CandidateSource = (*FallbackSource)(nil)
