package geoip

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gourmet/internal/domain"
	"gourmet/internal/fetch"
)

type stubLocator struct {
	loc   domain.LatLng
	err   error
	calls int
}

func (s *stubLocator) Locate(context.Context, string) (domain.LatLng, error) {
	s.calls++
	return s.loc, s.err
}

func TestIPInfoLocate(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		assert.Equal(t, "tok", r.URL.Query().Get("token"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ip":"8.8.8.8","city":"Mountain View","loc":"37.4056,-122.0775"}`))
	}))
	defer server.Close()

	info := NewIPInfo(fetch.New(fetch.Options{HTTPClient: server.Client()}), IPInfoOptions{Token: "tok", Endpoint: server.URL + "/"})

	loc, err := info.Locate(context.Background(), "8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, domain.LatLng{Lat: 37.4056, Lng: -122.0775}, loc)

	_, err = info.Locate(context.Background(), "192.168.1.10")
	require.NoError(t, err)
	_, err = info.Locate(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"/8.8.8.8/json", "/json", "/json"}, paths)
}

func TestIPInfoFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bogon", body: `{"ip":"10.0.0.1","bogon":true}`},
		{name: "missing loc", body: `{"ip":"1.1.1.1"}`},
		{name: "bad latitude", body: `{"ip":"1.1.1.1","loc":"north,1"}`},
		{name: "bad longitude", body: `{"ip":"1.1.1.1","loc":"1,east"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			info := NewIPInfo(fetch.New(fetch.Options{HTTPClient: server.Client()}), IPInfoOptions{Token: "tok", Endpoint: server.URL})
			_, err := info.Locate(context.Background(), "1.1.1.1")
			assert.Error(t, err)
		})
	}
}

func TestIPInfoWithoutToken(t *testing.T) {
	_, err := NewIPInfo(nil, IPInfoOptions{}).Locate(context.Background(), "1.1.1.1")
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestChain(t *testing.T) {
	first := &stubLocator{err: errors.New("db miss")}
	second := &stubLocator{loc: domain.LatLng{Lat: 1, Lng: 2}}
	loc, err := Chain{nil, first, second}.Locate(context.Background(), "1.1.1.1")
	require.NoError(t, err)
	assert.Equal(t, domain.LatLng{Lat: 1, Lng: 2}, loc)
	assert.Equal(t, 1, first.calls)

	_, err = Chain{}.Locate(context.Background(), "1.1.1.1")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = Chain{first, &stubLocator{err: errors.New("quota")}}.Locate(context.Background(), "1.1.1.1")
	assert.ErrorContains(t, err, "db miss")
	assert.ErrorContains(t, err, "quota")
}

func TestLocateCaller(t *testing.T) {
	var notices domain.Notices
	loc := LocateCaller(context.Background(), &stubLocator{loc: domain.LatLng{Lat: 48.85, Lng: 2.35}}, "1.1.1.1", &notices)
	assert.Equal(t, domain.LatLng{Lat: 48.85, Lng: 2.35}, loc)
	assert.Empty(t, notices.List())

	loc = LocateCaller(context.Background(), &stubLocator{err: errors.New("rate limited")}, "1.1.1.1", &notices)
	assert.Equal(t, domain.LatLng{}, loc)
	got := notices.List()
	require.Len(t, got, 1)
	assert.Equal(t, "Could not determine location: rate limited", got[0].Message)
	assert.Equal(t, domain.NoticeError, got[0].Level)

	loc = LocateCaller(context.Background(), nil, "1.1.1.1", nil)
	assert.Equal(t, domain.LatLng{}, loc)
}

func TestNilResolver(t *testing.T) {
	r, err := NewResolver("  ")
	require.NoError(t, err)
	assert.Nil(t, r)

	_, err = r.CountryCode("1.1.1.1")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = r.Locate(context.Background(), "1.1.1.1")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NoError(t, r.Close())

	_, err = NewResolver("/nonexistent/GeoLite2-City.mmdb")
	assert.Error(t, err)
}
