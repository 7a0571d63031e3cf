// Command lookup exercises one extractor at a time against the live APIs,
// using the same configuration as the API server.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"gourmet/internal/infra"
	"gourmet/internal/service"
)

// CLI is the complete command structure for lookup.
type CLI struct {
	EnvFile string `help:"Path to a .env file to load before reading the environment" default:".env" name:"env-file"`
	Locale  string `help:"Locale hint passed to providers" default:"en"`
	Region  string `help:"ISO country hint passed to providers"`
	Verbose bool   `short:"v" help:"Log provider diagnostics to stderr"`

	Check  CheckCmd  `cmd:"" help:"Show which credentials are configured"`
	Recipe RecipeCmd `cmd:"" help:"Generate a recipe for a dish"`
	Videos VideosCmd `cmd:"" help:"Search tutorial videos for a dish"`
	Images ImagesCmd `cmd:"" help:"Search and download photos for a dish"`
	Places PlacesCmd `cmd:"" help:"Find restaurants serving a dish"`
	Locate LocateCmd `cmd:"" help:"Resolve approximate coordinates for an IP address"`
	Search SearchCmd `cmd:"" help:"Run the full enrichment for a dish"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("lookup"),
		kong.Description("Query the recipe, image, video, places and geolocation providers directly."),
		kong.UsageOnError(),
	)

	rt, err := newRuntime(context.Background(), &cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lookup: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = rt.svc.Close()
	}()

	if err := ctx.Run(rt); err != nil {
		fmt.Fprintf(os.Stderr, "lookup: %v\n", err)
		os.Exit(1)
	}
}

func newRuntime(ctx context.Context, cli *CLI) (*runtime, error) {
	if path := strings.TrimSpace(cli.EnvFile); path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	cfg, err := infra.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := infra.NopLogger()
	if cli.Verbose {
		logger = infra.NewLoggerTo("development", os.Stderr)
	}
	svc, err := service.New(ctx, cfg, &logger)
	if err != nil {
		return nil, err
	}
	return &runtime{
		ctx:    ctx,
		cfg:    cfg,
		svc:    svc,
		out:    os.Stdout,
		locale: cli.Locale,
		region: cli.Region,
	}, nil
}
