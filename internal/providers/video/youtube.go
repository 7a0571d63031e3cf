// Package video finds tutorial videos for a dish on YouTube.
package video

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"gourmet/internal/domain"
	"gourmet/internal/infra"
)

const (
	noticeSource = "videos"
	defaultLimit = 6
	// youtubeMaxResults is the largest maxResults search.list accepts.
	youtubeMaxResults = 50
)

type Options struct {
	APIKey string
	Limit  int
	Logger *infra.Logger
	// ClientOptions are appended after the API key; tests use them to point
	// the service at a local server.
	ClientOptions []option.ClientOption
}

// YouTube wraps the Data API v3 search endpoint.
type YouTube struct {
	service *youtube.Service
	limit   int
	logger  *infra.Logger
}

// NewYouTube builds the search client. A missing key is not an error; every
// lookup then reports it instead.
func NewYouTube(ctx context.Context, opts Options) (*YouTube, error) {
	logger := opts.Logger
	if logger == nil {
		nop := infra.NopLogger()
		logger = &nop
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, youtubeMaxResults)
	y := &YouTube{limit: limit, logger: logger}

	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		return y, nil
	}
	clientOpts := append([]option.ClientOption{option.WithAPIKey(key)}, opts.ClientOptions...)
	svc, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("youtube: new service: %w", err)
	}
	y.service = svc
	return y, nil
}

// FetchVideoLinks returns at most Limit videos in the order YouTube ranks
// them. Failures yield an empty slice and a notice.
func (y *YouTube) FetchVideoLinks(ctx context.Context, req domain.EnrichmentRequest, reporter domain.Reporter) []domain.VideoLink {
	if reporter == nil {
		reporter = domain.Discard
	}
	if y.service == nil {
		reporter.Report(domain.Notice{
			Level:   domain.NoticeError,
			Source:  noticeSource,
			Message: "YouTube API key is not configured. Please set YOUTUBE_API_KEY in your .env file.",
		})
		return []domain.VideoLink{}
	}

	call := y.service.Search.List([]string{"snippet"}).
		Q(req.Dish + " recipe").
		Type("video").
		MaxResults(int64(y.limit)).
		Context(ctx)
	if lang := relevanceLanguage(req.Locale); lang != "" {
		call = call.RelevanceLanguage(lang)
	}
	if len(req.Region) == 2 {
		call = call.RegionCode(req.Region)
	}

	resp, err := call.Do()
	if err != nil {
		y.logger.Warn().Err(err).Str("dish", req.Dish).Msg("youtube search failed")
		reporter.Report(domain.Notice{
			Level:   domain.NoticeWarning,
			Source:  noticeSource,
			Message: fmt.Sprintf("Error fetching YouTube links: %v", err),
		})
		return []domain.VideoLink{}
	}
	return toVideoLinks(resp.Items, y.limit)
}

func toVideoLinks(items []*youtube.SearchResult, limit int) []domain.VideoLink {
	links := make([]domain.VideoLink, 0, min(len(items), limit))
	for _, item := range items {
		if len(links) == limit {
			break
		}
		if item == nil || item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		link := domain.VideoLink{URL: domain.WatchURL(item.Id.VideoId)}
		if sn := item.Snippet; sn != nil {
			link.Title = sn.Title
			if sn.Thumbnails != nil && sn.Thumbnails.Medium != nil {
				link.Thumbnail = sn.Thumbnails.Medium.Url
			}
		}
		links = append(links, link)
	}
	return links
}

// relevanceLanguage reduces a BCP 47 tag to the ISO 639-1 code YouTube wants.
func relevanceLanguage(locale string) string {
	if strings.TrimSpace(locale) == "" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}
