// Package geoip resolves approximate caller locations from IP addresses,
// either from a local MaxMind database or from the ipinfo.io API.
package geoip

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"

	"gourmet/internal/domain"
)

// ErrUnavailable is returned when no location source is configured.
var ErrUnavailable = errors.New("geoip resolver unavailable")

// CountryResolver resolves ISO country codes from IP addresses.
type CountryResolver interface {
	CountryCode(ip string) (string, error)
}

// Locator resolves coordinates for an IP address. An empty ip means the
// server's own public address.
type Locator interface {
	Locate(ctx context.Context, ip string) (domain.LatLng, error)
}

// Resolver provides lookups backed by a MaxMind GeoIP2 or GeoLite2 City database.
type Resolver struct {
	reader *geoip2.Reader
}

// NewResolver opens the GeoIP database at the given path. When the path is
// empty, a nil *Resolver is returned; its methods report ErrUnavailable.
func NewResolver(path string) (*Resolver, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &Resolver{reader: reader}, nil
}

// CountryCode returns the ISO country code for the provided IP.
func (r *Resolver) CountryCode(ip string) (string, error) {
	parsed, err := r.parse(ip)
	if err != nil {
		return "", err
	}
	record, err := r.reader.Country(parsed)
	if err != nil {
		return "", fmt.Errorf("geoip: lookup country: %w", err)
	}
	if record == nil || record.Country.IsoCode == "" {
		return "", nil
	}
	return record.Country.IsoCode, nil
}

// Locate returns the city-level coordinates recorded for ip.
func (r *Resolver) Locate(_ context.Context, ip string) (domain.LatLng, error) {
	parsed, err := r.parse(ip)
	if err != nil {
		return domain.LatLng{}, err
	}
	record, err := r.reader.City(parsed)
	if err != nil {
		return domain.LatLng{}, fmt.Errorf("geoip: lookup city: %w", err)
	}
	if record == nil || (record.Location.Latitude == 0 && record.Location.Longitude == 0) {
		return domain.LatLng{}, fmt.Errorf("geoip: no location recorded for %s", ip)
	}
	return domain.LatLng{Lat: record.Location.Latitude, Lng: record.Location.Longitude}, nil
}

func (r *Resolver) parse(ip string) (net.IP, error) {
	if r == nil || r.reader == nil {
		return nil, ErrUnavailable
	}
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return nil, fmt.Errorf("geoip: invalid ip %q", ip)
	}
	return parsed, nil
}

// Close closes the underlying database reader.
func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}

var (
	_ CountryResolver = (*Resolver)(nil)
	_ Locator         = (*Resolver)(nil)
)
