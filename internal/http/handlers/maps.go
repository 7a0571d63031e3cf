package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"gourmet/internal/domain"
	"gourmet/internal/infra/geoip"
	"gourmet/internal/middleware"
)

const (
	mapsEmbedURL = "https://www.google.com/maps/embed/v1/search"
	mapZoom      = "12"
)

// MapEmbedURL builds the Maps Embed API search URL centred on center.
func MapEmbedURL(apiKey, dish string, center domain.LatLng) string {
	q := url.Values{}
	q.Set("key", apiKey)
	q.Set("q", dish)
	q.Set("center", formatCoord(center.Lat)+","+formatCoord(center.Lng))
	q.Set("zoom", mapZoom)
	return mapsEmbedURL + "?" + q.Encode()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (a *App) mapFor(r *http.Request, req domain.EnrichmentRequest) (mapView, []domain.Notice) {
	var notices domain.Notices
	center := geoip.LocateCaller(r.Context(), a.Locator, middleware.ClientIP(r), &notices)
	view := mapView{Center: center}
	if a.MapsAPIKey == "" {
		notices.Report(domain.Notice{
			Level:   domain.NoticeError,
			Source:  "map",
			Message: "Google Maps API key is not configured. Please set GOOGLE_MAPS_API_KEY in your .env file.",
		})
	} else {
		view.EmbedURL = MapEmbedURL(a.MapsAPIKey, req.Dish, center)
	}
	return view, notices.List()
}

// Location reports the caller's approximate coordinates.
func (a *App) Location(w http.ResponseWriter, r *http.Request) {
	var notices domain.Notices
	center := geoip.LocateCaller(r.Context(), a.Locator, middleware.ClientIP(r), &notices)
	a.logger().Debug().Float64("lat", center.Lat).Float64("lng", center.Lng).Msg("caller located")
	a.json(w, http.StatusOK, map[string]any{
		"location": center,
		"notices":  notices.List(),
	})
}
