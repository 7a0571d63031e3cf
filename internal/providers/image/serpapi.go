package image

import (
	"context"
	"fmt"
	"strings"

	g "github.com/serpapi/google-search-results-golang"

	"gourmet/internal/domain"
)

type searchFunc func(params map[string]string, apiKey string) (map[string]interface{}, error)

// SerpAPI queries the google_images engine. The client library is blocking
// and context-unaware, so the call runs in its own goroutine and is abandoned
// once ctx is done.
type SerpAPI struct {
	apiKey string
	search searchFunc
}

func NewSerpAPI(apiKey string) *SerpAPI {
	return &SerpAPI{apiKey: strings.TrimSpace(apiKey), search: googleSearch}
}

func googleSearch(params map[string]string, apiKey string) (map[string]interface{}, error) {
	search := g.NewGoogleSearch(params, apiKey)
	return search.GetJSON()
}

func (s *SerpAPI) Name() string {
	return "serpapi"
}

func (s *SerpAPI) Available() bool {
	return s != nil && s.apiKey != ""
}

func (s *SerpAPI) Candidates(ctx context.Context, req domain.EnrichmentRequest, n int) ([]string, error) {
	if !s.Available() {
		return nil, domain.MissingCredentialError("SERPAPI_API_KEY")
	}
	params := map[string]string{
		"engine": "google_images",
		"q":      SearchQuery(req.Dish),
	}
	if lang := strings.TrimSpace(req.Locale); lang != "" {
		params["hl"] = strings.ToLower(strings.SplitN(lang, "-", 2)[0])
	}

	type outcome struct {
		results map[string]interface{}
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		results, err := s.search(params, s.apiKey)
		done <- outcome{results: results, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("serpapi: %w", ctx.Err())
	case out := <-done:
		if out.err != nil {
			return nil, fmt.Errorf("serpapi: search: %w", out.err)
		}
		return parseImageResults(out.results, n), nil
	}
}

// parseImageResults reads images_results[].original, skipping entries of
// the wrong shape.
func parseImageResults(results map[string]interface{}, n int) []string {
	raw, ok := results["images_results"].([]interface{})
	if !ok {
		return []string{}
	}
	urls := make([]string, 0, min(len(raw), n))
	for _, item := range raw {
		if len(urls) == n {
			break
		}
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		original, _ := entry["original"].(string)
		if original = strings.TrimSpace(original); original == "" {
			continue
		}
		urls = append(urls, original)
	}
	return urls
}

var _ CandidateSource = (*SerpAPI)(nil)
