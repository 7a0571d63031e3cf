// Package enrich runs every extractor for a dish concurrently and assembles
// their results into a bundle.
package enrich

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gourmet/internal/domain"
	"gourmet/internal/infra"
)

type RecipeExtractor interface {
	GetRecipe(ctx context.Context, req domain.EnrichmentRequest, reporter domain.Reporter) domain.RecipeResult
}

type ImageExtractor interface {
	FetchImages(ctx context.Context, req domain.EnrichmentRequest, reporter domain.Reporter) []domain.Image
}

type VideoExtractor interface {
	FetchVideoLinks(ctx context.Context, req domain.EnrichmentRequest, reporter domain.Reporter) []domain.VideoLink
}

type PlaceExtractor interface {
	FetchLocations(ctx context.Context, req domain.EnrichmentRequest, reporter domain.Reporter) []domain.Place
}

// Extractors groups the collaborators. A nil extractor contributes an empty
// result.
type Extractors struct {
	Recipe RecipeExtractor
	Images ImageExtractor
	Videos VideoExtractor
	Places PlaceExtractor
}

type Options struct {
	IncludePlaces bool
}

type Enricher struct {
	ex     Extractors
	logger *infra.Logger
}

func New(ex Extractors, logger *infra.Logger) *Enricher {
	if logger == nil {
		nop := infra.NopLogger()
		logger = &nop
	}
	return &Enricher{ex: ex, logger: logger}
}

// Enrich waits for every branch. Branches never fail; each turns its own
// errors into an empty value plus notices. Notices are returned grouped by
// branch in recipe, images, videos, places order.
func (e *Enricher) Enrich(ctx context.Context, req domain.EnrichmentRequest, opts Options) (domain.Bundle, []domain.Notice) {
	started := time.Now()
	var recipeNotices, imageNotices, videoNotices, placeNotices domain.Notices
	bundle := domain.Bundle{
		Dish:   req.Dish,
		Title:  Title(req),
		Images: []domain.Image{},
		Videos: []domain.VideoLink{},
		Places: []domain.Place{},
	}

	var g errgroup.Group
	if e.ex.Recipe != nil {
		g.Go(func() error {
			bundle.Recipe = e.ex.Recipe.GetRecipe(ctx, req, &recipeNotices)
			return nil
		})
	} else {
		bundle.Recipe = domain.RecipeFailure("no recipe provider configured")
	}
	if e.ex.Images != nil {
		g.Go(func() error {
			bundle.Images = nonNil(e.ex.Images.FetchImages(ctx, req, &imageNotices))
			return nil
		})
	}
	if e.ex.Videos != nil {
		g.Go(func() error {
			bundle.Videos = nonNil(e.ex.Videos.FetchVideoLinks(ctx, req, &videoNotices))
			return nil
		})
	}
	if opts.IncludePlaces && e.ex.Places != nil {
		g.Go(func() error {
			bundle.Places = nonNil(e.ex.Places.FetchLocations(ctx, req, &placeNotices))
			return nil
		})
	}
	_ = g.Wait()

	list := make([]domain.Notice, 0)
	for _, n := range []*domain.Notices{&recipeNotices, &imageNotices, &videoNotices, &placeNotices} {
		list = append(list, n.List()...)
	}
	e.logger.Info().
		Str("dish", req.Dish).
		Bool("recipe_ok", bundle.Recipe.OK()).
		Int("images", len(bundle.Images)).
		Int("videos", len(bundle.Videos)).
		Int("places", len(bundle.Places)).
		Int("notices", len(list)).
		Dur("elapsed", time.Since(started)).
		Msg("enrichment complete")
	return bundle, list
}

// Search is the "find recipe" action. The previous state is discarded
// entirely, places included.
func (e *Enricher) Search(ctx context.Context, req domain.EnrichmentRequest, opts Options) domain.SearchState {
	bundle, notices := e.Enrich(ctx, req, opts)
	return domain.SearchState{
		Dish:        req.Dish,
		Bundle:      bundle,
		HasSearched: true,
		Notices:     notices,
	}
}

// FindPlaces is the "restaurants near me" action: it keeps whatever prev
// already shows and replaces only the places.
func (e *Enricher) FindPlaces(ctx context.Context, prev domain.SearchState, req domain.EnrichmentRequest) domain.SearchState {
	var notices domain.Notices
	places := []domain.Place{}
	if e.ex.Places != nil {
		places = nonNil(e.ex.Places.FetchLocations(ctx, req, &notices))
	}

	next := prev
	next.Bundle.Places = places
	if !prev.HasSearched {
		next.Dish = req.Dish
		next.Bundle.Dish = req.Dish
		next.Bundle.Title = Title(req)
	}
	next.Bundle.Images = nonNil(next.Bundle.Images)
	next.Bundle.Videos = nonNil(next.Bundle.Videos)
	next.Notices = notices.List()
	return next
}

// Reset is the "start over" action.
func Reset() domain.SearchState {
	return domain.SearchState{
		Bundle: domain.Bundle{
			Images: []domain.Image{},
			Videos: []domain.VideoLink{},
			Places: []domain.Place{},
		},
		Notices: []domain.Notice{},
	}
}

// Title renders the dish for headings using the request locale's casing
// rules.
func Title(req domain.EnrichmentRequest) string {
	tag := language.Und
	if req.Locale != "" {
		if parsed, err := language.Parse(req.Locale); err == nil {
			tag = parsed
		}
	}
	return cases.Title(tag).String(req.Dish)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
