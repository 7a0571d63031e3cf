package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gourmet/internal/domain"
	"gourmet/internal/enrich"
	"gourmet/internal/infra"
	"gourmet/internal/infra/geoip"
)

func testConfig() *infra.Config {
	return &infra.Config{
		RecipeProvider:    infra.RecipeProviderGroq,
		GroqModel:         "llama-3.3-70b-versatile",
		ImageLimit:        8,
		ImageCandidates:   10,
		ImageMaxDimension: 800,
		VideoLimit:        6,
		PlaceLimit:        5,
	}
}

func TestNewWithoutCredentialsDegradesToNotices(t *testing.T) {
	logger := infra.NopLogger()
	svc, err := New(context.Background(), testConfig(), &logger)
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	assert.Nil(t, svc.CountryLookup)

	req, err := domain.NewEnrichmentRequest("ramen", "en")
	require.NoError(t, err)
	bundle, notices := svc.Enricher.Enrich(context.Background(), req, enrich.Options{IncludePlaces: true})

	assert.False(t, bundle.Recipe.OK())
	assert.Contains(t, bundle.Recipe.Display(), "Error fetching recipe: ")
	assert.Empty(t, bundle.Images)
	assert.Empty(t, bundle.Videos)
	assert.Empty(t, bundle.Places)

	sources := map[string]bool{}
	for _, n := range notices {
		sources[n.Source] = true
	}
	assert.Equal(t, map[string]bool{"recipe": true, "images": true, "videos": true, "places": true}, sources)

	var locNotices domain.Notices
	center := geoip.LocateCaller(context.Background(), svc.Locator, "203.0.113.9", &locNotices)
	assert.Equal(t, domain.LatLng{}, center)
	assert.Len(t, locNotices.List(), 1)
}

func TestNewGeminiProvider(t *testing.T) {
	cfg := testConfig()
	cfg.RecipeProvider = infra.RecipeProviderGemini
	logger := infra.NopLogger()

	svc, err := New(context.Background(), cfg, &logger)
	require.NoError(t, err)

	req, _ := domain.NewEnrichmentRequest("ramen", "en")
	got := svc.Recipe.GetRecipe(context.Background(), req, nil)
	assert.Equal(t, "Error fetching recipe: missing credential: GEMINI_API_KEY", got.Display())
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	cfg := testConfig()
	cfg.RecipeProvider = "llamafile"
	logger := infra.NopLogger()

	_, err := New(context.Background(), cfg, &logger)
	assert.Error(t, err)
}

func TestNewFailsOnMissingGeoIPDatabase(t *testing.T) {
	cfg := testConfig()
	cfg.GeoIPDBPath = "/nonexistent/GeoLite2-City.mmdb"
	logger := infra.NopLogger()

	_, err := New(context.Background(), cfg, &logger)
	assert.Error(t, err)
}
