package image

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"gourmet/internal/domain"
	"gourmet/internal/infra"
)

const (
	noticeSource        = "images"
	defaultLimit        = 8
	defaultCandidates   = 10
	defaultFetchTimeout = 5 * time.Second
)

// Fetcher downloads and normalises one image; fetch.Client implements it.
type Fetcher interface {
	GetImage(ctx context.Context, rawURL string, timeout time.Duration) (domain.Image, error)
}

type ExtractorOptions struct {
	Limit        int
	Candidates   int
	FetchTimeout time.Duration
	Logger       *infra.Logger
}

type Extractor struct {
	source     CandidateSource
	fetcher    Fetcher
	limit      int
	candidates int
	timeout    time.Duration
	logger     *infra.Logger
}

func NewExtractor(source CandidateSource, fetcher Fetcher, opts ExtractorOptions) *Extractor {
	logger := opts.Logger
	if logger == nil {
		nop := infra.NopLogger()
		logger = &nop
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	candidates := opts.Candidates
	if candidates <= 0 {
		candidates = defaultCandidates
	}
	candidates = max(candidates, limit)
	timeout := opts.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Extractor{
		source:     source,
		fetcher:    fetcher,
		limit:      limit,
		candidates: candidates,
		timeout:    timeout,
		logger:     logger,
	}
}

// FetchImages returns at most Limit decoded images ordered by search rank.
// Candidates that fail to download simply leave a gap in the ranking.
func (e *Extractor) FetchImages(ctx context.Context, req domain.EnrichmentRequest, reporter domain.Reporter) []domain.Image {
	if reporter == nil {
		reporter = domain.Discard
	}
	if e.source == nil || !e.source.Available() {
		reporter.Report(domain.Notice{
			Level:   domain.NoticeError,
			Source:  noticeSource,
			Message: "Image search is not configured. Please set GOOGLE_API_KEY and SEARCH_ENGINE_ID or SERPAPI_API_KEY in your .env file.",
		})
		return []domain.Image{}
	}

	urls, err := e.source.Candidates(ctx, req, e.candidates)
	if err != nil {
		level := domain.NoticeWarning
		if errors.Is(err, domain.ErrMissingCredential) {
			level = domain.NoticeError
		}
		e.logger.Warn().Err(err).Str("dish", req.Dish).Msg("image search failed")
		reporter.Report(domain.Notice{Level: level, Source: noticeSource, Message: fmt.Sprintf("Error fetching images: %v", err)})
		return []domain.Image{}
	}
	return e.download(ctx, dedupe(urls))
}

func (e *Extractor) download(ctx context.Context, urls []string) []domain.Image {
	fetched := make([]*domain.Image, len(urls))

	var g errgroup.Group
	for i, u := range urls {
		g.Go(func() error {
			img, err := e.fetcher.GetImage(ctx, u, e.timeout)
			if err != nil {
				e.logger.Debug().Err(err).Int("rank", i+1).Msg("image candidate skipped")
				return nil
			}
			img.Rank = i + 1
			fetched[i] = &img
			return nil
		})
	}
	_ = g.Wait()

	images := make([]domain.Image, 0, e.limit)
	for _, img := range fetched {
		if img == nil {
			continue
		}
		images = append(images, *img)
		if len(images) == e.limit {
			break
		}
	}
	return images
}

// dedupe keeps the first occurrence of each URL.
func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
