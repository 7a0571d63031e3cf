package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gourmet/internal/domain"
)

func TestGroqGeneratorSendsChatCompletion(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  ## Pad Thai\n1. Soak noodles  "}}]}`))
	}))
	defer server.Close()

	gen := NewGroqGenerator(GroqOptions{APIKey: "gsk-test", BaseURL: server.URL + "/", HTTPClient: server.Client()})
	text, err := gen.Generate(context.Background(), BuildPrompt("Pad Thai"))

	require.NoError(t, err)
	assert.Equal(t, "## Pad Thai\n1. Soak noodles", text)
	assert.Equal(t, defaultGroqModel, got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "step-by-step recipe for Pad Thai")
}

func TestGroqGeneratorErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
		is      error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`, wantErr: "groq: status 401: Invalid API Key"},
		{name: "plain text error", status: http.StatusBadGateway, body: "upstream down", wantErr: "groq: status 502: upstream down"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, is: ErrNoChoices},
		{name: "malformed", status: http.StatusOK, body: `{"choices":`, wantErr: "groq: decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			gen := NewGroqGenerator(GroqOptions{APIKey: "k", BaseURL: server.URL, HTTPClient: server.Client()})
			_, err := gen.Generate(context.Background(), "prompt")
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestGroqGeneratorMissingKey(t *testing.T) {
	gen := NewGroqGenerator(GroqOptions{})
	_, err := gen.Generate(context.Background(), "prompt")
	assert.True(t, errors.Is(err, domain.ErrMissingCredential))
}

func TestGroqGeneratorWarnsOnUnknownModel(t *testing.T) {
	var reasons []string
	gen := NewGroqGenerator(GroqOptions{
		APIKey: "k",
		Model:  "mixtral-8x7b-32768",
		OnWarning: func(reason, _ string) {
			reasons = append(reasons, reason)
		},
	})
	assert.Equal(t, "mixtral-8x7b-32768", gen.model)
	assert.Equal(t, []string{"model_unrecognized"}, reasons)
}
