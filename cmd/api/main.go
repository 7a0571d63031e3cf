package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"gourmet/internal/http/handlers"
	httpapi "gourmet/internal/http/httpapi"
	"gourmet/internal/infra"
	"gourmet/internal/service"
)

func main() {
	// Load .env when present
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.WithLevel(infra.NewLogger(cfg.AppEnv), cfg.LogLevel)

	missing := cfg.MissingCredentials()
	for _, name := range missing {
		logger.Warn().Str("credential", name).Msg("credential not configured, dependent results will be empty")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := service.New(ctx, cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build extractors")
	}
	defer func() {
		_ = svc.Close()
	}()

	app := &handlers.App{
		Searcher:           svc.Enricher,
		Locator:            svc.Locator,
		MapsAPIKey:         cfg.Credentials.MapsAPIKey,
		SearchTimeout:      cfg.SearchTimeout,
		MissingCredentials: missing,
		Logger:             &logger,
	}
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:            logger,
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		RateLimitPerMin:   cfg.RateLimitPerMin,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
		DefaultLocale:     cfg.DefaultLocale,
		CountryLookup:     svc.CountryLookup,
	})

	server := infra.NewHTTPServer(cfg, router)
	logger.Info().
		Str("addr", server.Addr()).
		Str("recipe_provider", cfg.RecipeProvider).
		Dur("write_timeout", server.WriteTimeout()).
		Msg("API listening")
	if err := server.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("http server failed")
		return
	}
	logger.Info().Msg("server stopped")
}
