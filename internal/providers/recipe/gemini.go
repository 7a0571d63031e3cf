package recipe

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"gourmet/internal/domain"
)

const (
	geminiProviderName = "gemini"
	defaultGeminiModel = "gemini-2.5-flash"
)

type GeminiOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiGenerator uses the Gemini API through the genai SDK. Without a key
// no SDK client is created, so the SDK never falls back to ambient
// GOOGLE_API_KEY, which belongs to Custom Search here.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, opts GeminiOptions) (*GeminiGenerator, error) {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultGeminiModel
	}
	g := &GeminiGenerator{model: model}
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return g, nil
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *GeminiGenerator) Name() string {
	return geminiProviderName
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", domain.MissingCredentialError("GEMINI_API_KEY")
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoChoices
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrNoChoices
	}
	return text, nil
}

var _ Generator = (*GeminiGenerator)(nil)
