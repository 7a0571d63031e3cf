// Package places looks up restaurants serving a dish via the Google Places
// Text Search API.
package places

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gourmet/internal/domain"
	"gourmet/internal/infra"
)

const (
	noticeSource      = "places"
	defaultLimit      = 5
	defaultEndpoint   = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
	missingKeyMessage = "Google Places API key is not configured. Please set GOOGLE_PLACES_API_KEY in your .env file."
)

// JSONGetter is the subset of fetch.Client used here.
type JSONGetter interface {
	GetJSON(ctx context.Context, rawURL string, params url.Values, timeout time.Duration, out any) error
}

type Options struct {
	APIKey   string
	Endpoint string
	Limit    int
	Timeout  time.Duration
	Logger   *infra.Logger
}

type Client struct {
	http     JSONGetter
	apiKey   string
	endpoint string
	limit    int
	timeout  time.Duration
	logger   *infra.Logger
}

type textSearchResponse struct {
	Status       string             `json:"status"`
	ErrorMessage string             `json:"error_message"`
	Results      []textSearchResult `json:"results"`
}

type textSearchResult struct {
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           *float64 `json:"rating"`
	Geometry         struct {
		Location domain.LatLng `json:"location"`
	} `json:"geometry"`
}

func New(getter JSONGetter, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		nop := infra.NopLogger()
		logger = &nop
	}
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Client{
		http:     getter,
		apiKey:   strings.TrimSpace(opts.APIKey),
		endpoint: endpoint,
		limit:    limit,
		timeout:  opts.Timeout,
		logger:   logger,
	}
}

// FetchLocations returns up to Limit restaurants. Every outcome other than a
// non-empty result list reports exactly one notice and returns an empty slice.
func (c *Client) FetchLocations(ctx context.Context, req domain.EnrichmentRequest, reporter domain.Reporter) []domain.Place {
	if reporter == nil {
		reporter = domain.Discard
	}
	report := func(level domain.NoticeLevel, msg string) []domain.Place {
		reporter.Report(domain.Notice{Level: level, Source: noticeSource, Message: msg})
		return []domain.Place{}
	}

	if c.apiKey == "" {
		return report(domain.NoticeError, missingKeyMessage)
	}

	params := url.Values{}
	params.Set("query", req.Dish+" restaurant")
	params.Set("key", c.apiKey)
	if lang := strings.TrimSpace(req.Locale); lang != "" {
		params.Set("language", lang)
	}
	if req.Region != "" {
		params.Set("region", strings.ToLower(req.Region))
	}

	var resp textSearchResponse
	if err := c.http.GetJSON(ctx, c.endpoint, params, c.timeout, &resp); err != nil {
		c.logger.Warn().Err(err).Str("dish", req.Dish).Msg("places text search failed")
		if resp.ErrorMessage != "" {
			return report(domain.NoticeError, "Google Maps API Error: "+resp.ErrorMessage)
		}
		return report(domain.NoticeError, fmt.Sprintf("Error fetching locations: %v", err))
	}

	switch {
	case len(resp.Results) > 0:
		return c.toPlaces(resp.Results)
	case resp.ErrorMessage != "":
		return report(domain.NoticeError, "Google Maps API Error: "+resp.ErrorMessage)
	case resp.Status == statusZeroResults:
		return report(domain.NoticeWarning, fmt.Sprintf("No restaurants found for '%s'", req.Dish))
	case resp.Status != statusOK:
		return report(domain.NoticeError, "Google Places API returned status: "+resp.Status)
	default:
		// OK with an empty list; treated like zero results.
		return report(domain.NoticeWarning, fmt.Sprintf("No restaurants found for '%s'", req.Dish))
	}
}

func (c *Client) toPlaces(results []textSearchResult) []domain.Place {
	places := make([]domain.Place, 0, min(len(results), c.limit))
	for _, r := range results[:min(len(results), c.limit)] {
		place := domain.Place{
			Name:     r.Name,
			Address:  r.FormattedAddress,
			Rating:   domain.DefaultPlaceRating,
			Location: r.Geometry.Location,
		}
		if strings.TrimSpace(place.Address) == "" {
			place.Address = domain.DefaultPlaceAddress
		}
		if r.Rating != nil {
			place.Rating = strconv.FormatFloat(*r.Rating, 'f', -1, 64)
		}
		places = append(places, place)
	}
	return places
}
