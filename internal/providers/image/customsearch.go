package image

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"gourmet/internal/domain"
)

// Custom Search refuses num above 10.
const customSearchMaxNum = 10

type CustomSearchOptions struct {
	APIKey         string
	SearchEngineID string
	ClientOptions  []option.ClientOption
}

// CustomSearch queries Google Programmable Search in image mode.
type CustomSearch struct {
	service *customsearch.Service
	cx      string
}

func NewCustomSearch(ctx context.Context, opts CustomSearchOptions) (*CustomSearch, error) {
	cs := &CustomSearch{cx: strings.TrimSpace(opts.SearchEngineID)}
	key := strings.TrimSpace(opts.APIKey)
	if key == "" || cs.cx == "" {
		return cs, nil
	}
	clientOpts := append([]option.ClientOption{option.WithAPIKey(key)}, opts.ClientOptions...)
	svc, err := customsearch.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("customsearch: new service: %w", err)
	}
	cs.service = svc
	return cs, nil
}

func (c *CustomSearch) Name() string {
	return "customsearch"
}

func (c *CustomSearch) Available() bool {
	return c != nil && c.service != nil
}

func (c *CustomSearch) Candidates(ctx context.Context, req domain.EnrichmentRequest, n int) ([]string, error) {
	if !c.Available() {
		return nil, domain.MissingCredentialError("GOOGLE_API_KEY/SEARCH_ENGINE_ID")
	}
	n = min(max(n, 1), customSearchMaxNum)
	resp, err := c.service.Cse.List().
		Q(SearchQuery(req.Dish)).
		Cx(c.cx).
		SearchType("image").
		Num(int64(n)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("customsearch: list: %w", err)
	}
	urls := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || strings.TrimSpace(item.Link) == "" {
			continue
		}
		urls = append(urls, strings.TrimSpace(item.Link))
	}
	return urls, nil
}

// SearchQuery is the image query sent to every candidate source.
func SearchQuery(dish string) string {
	return dish + " recipe food"
}

var _ CandidateSource = (*CustomSearch)(nil)
