// Package service builds the extractor graph from configuration. Both
// binaries share it.
package service

import (
	"context"
	"fmt"
	"net/http"

	"gourmet/internal/enrich"
	"gourmet/internal/fetch"
	"gourmet/internal/infra"
	"gourmet/internal/infra/geoip"
	"gourmet/internal/middleware"
	"gourmet/internal/providers/image"
	"gourmet/internal/providers/places"
	"gourmet/internal/providers/recipe"
	"gourmet/internal/providers/video"
)

type Service struct {
	Enricher *enrich.Enricher
	Recipe   *recipe.Extractor
	Images   *image.Extractor
	Videos   *video.YouTube
	Places   *places.Client
	Locator  geoip.Locator
	// CountryLookup is nil unless a GeoIP database is configured.
	CountryLookup middleware.CountryLookup

	resolver *geoip.Resolver
}

func New(ctx context.Context, cfg *infra.Config, logger *infra.Logger) (*Service, error) {
	creds := cfg.Credentials
	fetcher := fetch.New(fetch.Options{
		HTTPClient:        &http.Client{},
		Logger:            logger,
		MaxImageDimension: cfg.ImageMaxDimension,
	})

	gen, err := newGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	recipeExtractor := recipe.NewExtractor(gen, recipe.ExtractorOptions{Timeout: cfg.RecipeTimeout, Logger: logger})

	customSearch, err := image.NewCustomSearch(ctx, image.CustomSearchOptions{
		APIKey:         creds.GoogleAPIKey,
		SearchEngineID: creds.SearchEngineID,
	})
	if err != nil {
		return nil, err
	}
	source := image.NewFallbackSource(customSearch, image.NewSerpAPI(creds.SerpAPIKey))
	source.OnFallback = func(from string, err error) {
		logger.Warn().Err(err).Str("source", from).Msg("image search fell back")
	}
	imageExtractor := image.NewExtractor(source, fetcher, image.ExtractorOptions{
		Limit:        cfg.ImageLimit,
		Candidates:   cfg.ImageCandidates,
		FetchTimeout: cfg.ImageFetchTimeout,
		Logger:       logger,
	})

	youtube, err := video.NewYouTube(ctx, video.Options{
		APIKey: creds.YouTubeAPIKey,
		Limit:  cfg.VideoLimit,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	placesClient := places.New(fetcher, places.Options{
		APIKey: creds.PlacesAPIKey,
		Limit:  cfg.PlaceLimit,
		Logger: logger,
	})

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		return nil, err
	}
	var chain geoip.Chain
	svc := &Service{resolver: resolver}
	if resolver != nil {
		chain = append(chain, resolver)
		svc.CountryLookup = resolver.CountryCode
	}
	if creds.IPInfoToken != "" {
		chain = append(chain, geoip.NewIPInfo(fetcher, geoip.IPInfoOptions{Token: creds.IPInfoToken, Timeout: cfg.ImageFetchTimeout}))
	}

	svc.Recipe = recipeExtractor
	svc.Images = imageExtractor
	svc.Videos = youtube
	svc.Places = placesClient
	svc.Locator = chain
	svc.Enricher = enrich.New(enrich.Extractors{
		Recipe: recipeExtractor,
		Images: imageExtractor,
		Videos: youtube,
		Places: placesClient,
	}, logger)
	return svc, nil
}

func newGenerator(ctx context.Context, cfg *infra.Config, logger *infra.Logger) (recipe.Generator, error) {
	var client *http.Client
	if cfg.RecipeTimeout > 0 {
		client = &http.Client{Timeout: cfg.RecipeTimeout}
	}
	switch cfg.RecipeProvider {
	case infra.RecipeProviderGemini:
		return recipe.NewGeminiGenerator(ctx, recipe.GeminiOptions{
			APIKey:     cfg.Credentials.GeminiAPIKey,
			Model:      cfg.GeminiModel,
			HTTPClient: client,
		})
	case infra.RecipeProviderGroq, "":
		return recipe.NewGroqGenerator(recipe.GroqOptions{
			APIKey:     cfg.Credentials.GroqAPIKey,
			Model:      cfg.GroqModel,
			BaseURL:    cfg.GroqBaseURL,
			HTTPClient: client,
			OnWarning: func(reason, detail string) {
				logger.Warn().Str("reason", reason).Str("detail", detail).Msg("groq model fallback")
			},
		}), nil
	default:
		return nil, fmt.Errorf("service: unknown recipe provider %q", cfg.RecipeProvider)
	}
}

// Close releases the GeoIP database.
func (s *Service) Close() error {
	return s.resolver.Close()
}
