package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gourmet/internal/domain"
	"gourmet/internal/fetch"
)

func newTestClient(t *testing.T, key string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	getter := fetch.New(fetch.Options{HTTPClient: server.Client()})
	return New(getter, Options{APIKey: key, Endpoint: server.URL + "/maps/api/place/textsearch/json"})
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		_, _ = w.Write([]byte(body))
	}
}

func TestFetchLocationsMapsFirstFiveResults(t *testing.T) {
	client := newTestClient(t, "places-key", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/maps/api/place/textsearch/json", r.URL.Path)
		assert.Equal(t, "sushi restaurant", q.Get("query"))
		assert.Equal(t, "places-key", q.Get("key"))
		assert.Equal(t, "ja", q.Get("language"))
		assert.Equal(t, "jp", q.Get("region"))
		jsonHandler(`{"status":"OK","results":[
			{"name":"Sushi Dai","formatted_address":"Tsukiji, Tokyo","rating":4.6,"geometry":{"location":{"lat":35.66,"lng":139.77}}},
			{"name":"No Address","rating":4,"geometry":{"location":{"lat":1,"lng":2}}},
			{"name":"No Rating","formatted_address":"Somewhere","geometry":{"location":{"lat":3,"lng":4}}},
			{"name":"Four","geometry":{"location":{"lat":0,"lng":0}}},
			{"name":"Five","geometry":{"location":{"lat":0,"lng":0}}},
			{"name":"Six","geometry":{"location":{"lat":0,"lng":0}}}
		]}`)(w, r)
	})

	var notices domain.Notices
	places := client.FetchLocations(context.Background(), domain.EnrichmentRequest{Dish: "sushi", Locale: "ja", Region: "JP"}, &notices)

	require.Len(t, places, 5)
	assert.Equal(t, domain.Place{Name: "Sushi Dai", Address: "Tsukiji, Tokyo", Rating: "4.6", Location: domain.LatLng{Lat: 35.66, Lng: 139.77}}, places[0])
	assert.Equal(t, domain.DefaultPlaceAddress, places[1].Address)
	assert.Equal(t, "4", places[1].Rating)
	assert.Equal(t, domain.DefaultPlaceRating, places[2].Rating)
	assert.Equal(t, "Five", places[4].Name)
	assert.Empty(t, notices.List())
}

func TestFetchLocationsClassification(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		status    int
		wantLevel domain.NoticeLevel
		wantMsg   string
	}{
		{
			name:      "provider error message",
			body:      `{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid.","results":[]}`,
			wantLevel: domain.NoticeError,
			wantMsg:   "Google Maps API Error: The provided API key is invalid.",
		},
		{
			name:      "zero results",
			body:      `{"status":"ZERO_RESULTS","results":[]}`,
			wantLevel: domain.NoticeWarning,
			wantMsg:   "No restaurants found for 'Gefilte Fish'",
		},
		{
			name:      "other status",
			body:      `{"status":"OVER_QUERY_LIMIT","results":[]}`,
			wantLevel: domain.NoticeError,
			wantMsg:   "Google Places API returned status: OVER_QUERY_LIMIT",
		},
		{
			name:      "ok but empty",
			body:      `{"status":"OK","results":[]}`,
			wantLevel: domain.NoticeWarning,
			wantMsg:   "No restaurants found for 'Gefilte Fish'",
		},
		{
			name:      "malformed body",
			body:      `{"status":`,
			wantLevel: domain.NoticeError,
			wantMsg:   "Error fetching locations: ",
		},
		{
			name:      "error message on non-2xx",
			body:      `{"status":"REQUEST_DENIED","error_message":"This API project is not authorized to use this API."}`,
			status:    http.StatusForbidden,
			wantLevel: domain.NoticeError,
			wantMsg:   "Google Maps API Error: This API project is not authorized to use this API.",
		},
		{
			name:      "http failure",
			body:      `{}`,
			status:    http.StatusServiceUnavailable,
			wantLevel: domain.NoticeError,
			wantMsg:   "Error fetching locations: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, "places-key", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte(tt.body))
			})

			var notices domain.Notices
			places := client.FetchLocations(context.Background(), domain.EnrichmentRequest{Dish: "Gefilte Fish"}, &notices)

			assert.NotNil(t, places)
			assert.Empty(t, places)
			got := notices.List()
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantLevel, got[0].Level)
			assert.Equal(t, "places", got[0].Source)
			assert.Contains(t, got[0].Message, tt.wantMsg)
		})
	}
}

func TestFetchLocationsErrorDoesNotLeakKey(t *testing.T) {
	client := newTestClient(t, "secret-places-key", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	var notices domain.Notices
	client.FetchLocations(context.Background(), domain.EnrichmentRequest{Dish: "pho"}, &notices)

	got := notices.List()
	require.Len(t, got, 1)
	assert.NotContains(t, got[0].Message, "secret-places-key")
}

func TestFetchLocationsMissingKey(t *testing.T) {
	called := false
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	var notices domain.Notices
	places := client.FetchLocations(context.Background(), domain.EnrichmentRequest{Dish: "pho"}, &notices)

	assert.Empty(t, places)
	assert.False(t, called)
	got := notices.List()
	require.Len(t, got, 1)
	assert.Equal(t, missingKeyMessage, got[0].Message)
	assert.Equal(t, domain.NoticeError, got[0].Level)
}
