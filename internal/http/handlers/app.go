package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"gourmet/internal/domain"
	"gourmet/internal/enrich"
	"gourmet/internal/infra"
	"gourmet/internal/infra/geoip"
)

const maxRequestBody = 16 << 10

// Searcher is implemented by enrich.Enricher.
type Searcher interface {
	Search(ctx context.Context, req domain.EnrichmentRequest, opts enrich.Options) domain.SearchState
	FindPlaces(ctx context.Context, prev domain.SearchState, req domain.EnrichmentRequest) domain.SearchState
}

type App struct {
	Searcher      Searcher
	Locator       geoip.Locator
	MapsAPIKey    string
	SearchTimeout time.Duration
	// MissingCredentials is reported by the health endpoint.
	MissingCredentials []string
	Logger             *infra.Logger
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: message}})
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

// withDeadline applies the optional whole-request deadline.
func (a *App) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.SearchTimeout > 0 {
		return context.WithTimeout(ctx, a.SearchTimeout)
	}
	return context.WithCancel(ctx)
}

func (a *App) logger() *infra.Logger {
	if a.Logger == nil {
		nop := infra.NopLogger()
		return &nop
	}
	return a.Logger
}
