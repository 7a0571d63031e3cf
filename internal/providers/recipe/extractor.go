package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gourmet/internal/domain"
	"gourmet/internal/infra"
)

type ExtractorOptions struct {
	Timeout time.Duration
	Logger  *infra.Logger
}

// Extractor turns a Generator into a total function: it always returns a
// RecipeResult and never an error.
type Extractor struct {
	gen     Generator
	timeout time.Duration
	logger  *infra.Logger
}

func NewExtractor(gen Generator, opts ExtractorOptions) *Extractor {
	logger := opts.Logger
	if logger == nil {
		nop := infra.NopLogger()
		logger = &nop
	}
	return &Extractor{gen: gen, timeout: opts.Timeout, logger: logger}
}

// GetRecipe prompts the model for dish. Missing credentials are additionally
// reported on the side channel.
func (e *Extractor) GetRecipe(ctx context.Context, req domain.EnrichmentRequest, reporter domain.Reporter) (result domain.RecipeResult) {
	if reporter == nil {
		reporter = domain.Discard
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Interface("panic", r).Str("dish", req.Dish).Msg("recipe generator panicked")
			result = domain.RecipeFailure(fmt.Sprint(r))
		}
	}()
	if e.gen == nil {
		return domain.RecipeFailure("no recipe provider configured")
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	started := time.Now()
	text, err := e.gen.Generate(ctx, BuildPrompt(req.Dish))
	switch {
	case errors.Is(err, ErrNoChoices):
		return domain.RecipeText(domain.NoRecipeText)
	case errors.Is(err, domain.ErrMissingCredential):
		reporter.Report(domain.Notice{Level: domain.NoticeError, Source: "recipe", Message: err.Error()})
		return domain.RecipeFailure(err.Error())
	case err != nil:
		e.logger.Warn().Err(err).Str("provider", e.gen.Name()).Str("dish", req.Dish).Msg("recipe generation failed")
		return domain.RecipeFailure(err.Error())
	}
	if text == "" {
		return domain.RecipeText(domain.NoRecipeText)
	}
	e.logger.Debug().Str("provider", e.gen.Name()).Dur("elapsed", time.Since(started)).Int("chars", len(text)).Msg("recipe generated")
	return domain.RecipeText(text)
}
