package handlers

import (
	"net/http"

	"gourmet/internal/domain"
	"gourmet/internal/enrich"
	"gourmet/internal/middleware"
)

type searchRequest struct {
	Dish          string `json:"dish"`
	IncludePlaces bool   `json:"include_places"`
}

type placesRequest struct {
	Dish string `json:"dish"`
}

// Search runs the recipe, image and video extractors for a dish, and the
// places extractor too when include_places is set.
func (a *App) Search(w http.ResponseWriter, r *http.Request) {
	var body searchRequest
	if !a.decode(w, r, &body) {
		return
	}
	req, ok := a.enrichmentRequest(w, r, body.Dish)
	if !ok {
		return
	}
	ctx, cancel := a.withDeadline(r.Context())
	defer cancel()

	state := a.Searcher.Search(ctx, req, enrich.Options{IncludePlaces: body.IncludePlaces})
	view := newStateView(state)
	if len(state.Bundle.Places) > 0 {
		m, notices := a.mapFor(r, req)
		view.Map = &m
		view.Notices = append(view.Notices, notices...)
	}
	a.json(w, http.StatusOK, view)
}

// Places looks up restaurants for a dish and centres a map on the caller.
func (a *App) Places(w http.ResponseWriter, r *http.Request) {
	var body placesRequest
	if !a.decode(w, r, &body) {
		return
	}
	req, ok := a.enrichmentRequest(w, r, body.Dish)
	if !ok {
		return
	}
	ctx, cancel := a.withDeadline(r.Context())
	defer cancel()

	state := a.Searcher.FindPlaces(ctx, enrich.Reset(), req)
	view := newStateView(state)
	if len(state.Bundle.Places) > 0 {
		m, notices := a.mapFor(r, req)
		view.Map = &m
		view.Notices = append(view.Notices, notices...)
	}
	a.json(w, http.StatusOK, view)
}

func (a *App) enrichmentRequest(w http.ResponseWriter, r *http.Request, dish string) (domain.EnrichmentRequest, bool) {
	req, err := middleware.HintsFromContext(r.Context()).Request(dish)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return domain.EnrichmentRequest{}, false
	}
	return req, true
}
