package recipe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gourmet/internal/domain"
)

type stubGenerator struct {
	text   string
	err    error
	panics bool
	prompt string
	ctx    context.Context
}

func (s *stubGenerator) Name() string { return "stub" }

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	s.ctx = ctx
	if s.panics {
		panic("boom")
	}
	return s.text, s.err
}

func mustRequest(t *testing.T, dish string) domain.EnrichmentRequest {
	t.Helper()
	req, err := domain.NewEnrichmentRequest(dish, "en")
	require.NoError(t, err)
	return req
}

func TestExtractorGetRecipe(t *testing.T) {
	tests := []struct {
		name        string
		gen         *stubGenerator
		wantOK      bool
		wantDisplay string
		wantNotices int
	}{
		{
			name:        "success",
			gen:         &stubGenerator{text: "## Ingredients\n- rice"},
			wantOK:      true,
			wantDisplay: "## Ingredients\n- rice",
		},
		{
			name:        "provider exception",
			gen:         &stubGenerator{err: errors.New("connection refused")},
			wantDisplay: "Error fetching recipe: connection refused",
		},
		{
			name:        "no choices",
			gen:         &stubGenerator{err: ErrNoChoices},
			wantOK:      true,
			wantDisplay: domain.NoRecipeText,
		},
		{
			name:        "empty text",
			gen:         &stubGenerator{},
			wantOK:      true,
			wantDisplay: domain.NoRecipeText,
		},
		{
			name:        "missing key",
			gen:         &stubGenerator{err: domain.MissingCredentialError("GROQ_API_KEY")},
			wantDisplay: "Error fetching recipe: missing credential: GROQ_API_KEY",
			wantNotices: 1,
		},
		{
			name:        "panic",
			gen:         &stubGenerator{panics: true},
			wantDisplay: "Error fetching recipe: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var notices domain.Notices
			ext := NewExtractor(tt.gen, ExtractorOptions{})
			got := ext.GetRecipe(context.Background(), mustRequest(t, "  fried   rice "), &notices)

			assert.Equal(t, tt.wantOK, got.OK())
			assert.Equal(t, tt.wantDisplay, got.Display())
			assert.Len(t, notices.List(), tt.wantNotices)
			assert.Equal(t, BuildPrompt("fried rice"), tt.gen.prompt)
		})
	}
}

func TestExtractorAppliesTimeout(t *testing.T) {
	gen := &stubGenerator{text: "ok"}
	ext := NewExtractor(gen, ExtractorOptions{Timeout: time.Minute})
	ext.GetRecipe(context.Background(), mustRequest(t, "ramen"), nil)

	deadline, ok := gen.ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestExtractorWithoutGenerator(t *testing.T) {
	ext := NewExtractor(nil, ExtractorOptions{})
	got := ext.GetRecipe(context.Background(), mustRequest(t, "ramen"), nil)
	assert.False(t, got.OK())
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t,
		"Provide a detailed, step-by-step recipe for Pad Thai. Include ingredients and instructions. Format it nicely with Markdown.",
		BuildPrompt("Pad Thai"))
}
