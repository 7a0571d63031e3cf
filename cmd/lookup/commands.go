package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gourmet/internal/domain"
	"gourmet/internal/enrich"
	"gourmet/internal/infra"
	"gourmet/internal/infra/geoip"
	"gourmet/internal/service"
	"gourmet/internal/storage"
	"gourmet/pkg/zip"
)

// runtime is bound into every command's Run method.
type runtime struct {
	ctx    context.Context
	cfg    *infra.Config
	svc    *service.Service
	out    io.Writer
	locale string
	region string
}

type result struct {
	Result  any             `json:"result"`
	Notices []domain.Notice `json:"notices"`
}

func (rt *runtime) request(words []string) (domain.EnrichmentRequest, error) {
	req, err := domain.NewEnrichmentRequest(strings.Join(words, " "), rt.locale)
	if err != nil {
		return domain.EnrichmentRequest{}, err
	}
	return req.WithRegion(rt.region), nil
}

func (rt *runtime) print(v any, notices []domain.Notice) error {
	if notices == nil {
		notices = []domain.Notice{}
	}
	enc := json.NewEncoder(rt.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result{Result: v, Notices: notices})
}

type CheckCmd struct{}

func (c *CheckCmd) Run(rt *runtime) error {
	creds := rt.cfg.Credentials
	configured := map[string]string{
		"GROQ_API_KEY":          mask(creds.GroqAPIKey),
		"GEMINI_API_KEY":        mask(creds.GeminiAPIKey),
		"YOUTUBE_API_KEY":       mask(creds.YouTubeAPIKey),
		"GOOGLE_API_KEY":        mask(creds.GoogleAPIKey),
		"SEARCH_ENGINE_ID":      mask(creds.SearchEngineID),
		"SERPAPI_API_KEY":       mask(creds.SerpAPIKey),
		"GOOGLE_PLACES_API_KEY": mask(creds.PlacesAPIKey),
		"GOOGLE_MAPS_API_KEY":   mask(creds.MapsAPIKey),
		"IPINFO_TOKEN":          mask(creds.IPInfoToken),
	}
	return rt.print(map[string]any{
		"recipe_provider": rt.cfg.RecipeProvider,
		"credentials":     configured,
		"missing":         rt.cfg.MissingCredentials(),
	}, nil)
}

// mask keeps the first five characters so keys can be told apart.
func mask(v string) string {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return ""
	case len(v) <= 5:
		return strings.Repeat("*", len(v))
	default:
		return v[:5] + "..."
	}
}

type RecipeCmd struct {
	Dish []string `arg:"" help:"Dish name"`
}

func (c *RecipeCmd) Run(rt *runtime) error {
	req, err := rt.request(c.Dish)
	if err != nil {
		return err
	}
	var notices domain.Notices
	res := rt.svc.Recipe.GetRecipe(rt.ctx, req, &notices)
	return rt.print(res, notices.List())
}

type VideosCmd struct {
	Dish []string `arg:"" help:"Dish name"`
}

func (c *VideosCmd) Run(rt *runtime) error {
	req, err := rt.request(c.Dish)
	if err != nil {
		return err
	}
	var notices domain.Notices
	links := rt.svc.Videos.FetchVideoLinks(rt.ctx, req, &notices)
	return rt.print(links, notices.List())
}

type ImagesCmd struct {
	Dish []string `arg:"" help:"Dish name"`
	Out  string   `help:"Directory to save the photos into" type:"path"`
	Zip  string   `help:"Write the photos into a zip archive at this path" type:"path"`
}

func (c *ImagesCmd) Run(rt *runtime) error {
	req, err := rt.request(c.Dish)
	if err != nil {
		return err
	}
	var notices domain.Notices
	images := rt.svc.Images.FetchImages(rt.ctx, req, &notices)
	if err := c.export(rt.ctx, req.Dish, images); err != nil {
		return err
	}
	return rt.print(images, notices.List())
}

func (c *ImagesCmd) export(ctx context.Context, dish string, images []domain.Image) error {
	if c.Out != "" {
		store, err := storage.NewFileStore(c.Out)
		if err != nil {
			return err
		}
		if _, err := store.SaveImages(ctx, dish, images); err != nil {
			return err
		}
	}
	if c.Zip != "" {
		assets := make([]zip.Asset, 0, len(images))
		for _, img := range images {
			assets = append(assets, zip.Asset{Filename: storage.ImageKey(dish, img), Data: img.Data})
		}
		raw, err := zip.ArchiveAssets(assets)
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.Zip, raw, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", c.Zip, err)
		}
	}
	return nil
}

type PlacesCmd struct {
	Dish []string `arg:"" help:"Dish name"`
}

func (c *PlacesCmd) Run(rt *runtime) error {
	req, err := rt.request(c.Dish)
	if err != nil {
		return err
	}
	var notices domain.Notices
	places := rt.svc.Places.FetchLocations(rt.ctx, req, &notices)
	return rt.print(places, notices.List())
}

type LocateCmd struct {
	IP string `arg:"" optional:"" help:"IP address to resolve; empty resolves this machine"`
}

func (c *LocateCmd) Run(rt *runtime) error {
	var notices domain.Notices
	loc := geoip.LocateCaller(rt.ctx, rt.svc.Locator, c.IP, &notices)
	return rt.print(loc, notices.List())
}

type SearchCmd struct {
	Dish          []string `arg:"" help:"Dish name"`
	IncludePlaces bool     `help:"Also look up restaurants" name:"places"`
}

func (c *SearchCmd) Run(rt *runtime) error {
	req, err := rt.request(c.Dish)
	if err != nil {
		return err
	}
	state := rt.svc.Enricher.Search(rt.ctx, req, enrich.Options{IncludePlaces: c.IncludePlaces})
	return rt.print(state.Bundle, state.Notices)
}
