package geoip

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gourmet/internal/domain"
)

const defaultIPInfoEndpoint = "https://ipinfo.io"

// JSONGetter is the subset of fetch.Client used by IPInfo.
type JSONGetter interface {
	GetJSON(ctx context.Context, rawURL string, params url.Values, timeout time.Duration, out any) error
}

type IPInfoOptions struct {
	Token    string
	Endpoint string
	Timeout  time.Duration
}

// IPInfo resolves coordinates through the ipinfo.io details API.
type IPInfo struct {
	http     JSONGetter
	token    string
	endpoint string
	timeout  time.Duration
}

type ipinfoDetails struct {
	IP    string `json:"ip"`
	Loc   string `json:"loc"`
	Bogon bool   `json:"bogon"`
}

func NewIPInfo(getter JSONGetter, opts IPInfoOptions) *IPInfo {
	endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	if endpoint == "" {
		endpoint = defaultIPInfoEndpoint
	}
	return &IPInfo{
		http:     getter,
		token:    strings.TrimSpace(opts.Token),
		endpoint: endpoint,
		timeout:  opts.Timeout,
	}
}

// Locate queries ipinfo for ip. Private, loopback and empty addresses are
// looked up as the server's own address, which is what a locally run
// instance needs.
func (i *IPInfo) Locate(ctx context.Context, ip string) (domain.LatLng, error) {
	if i == nil || i.token == "" {
		return domain.LatLng{}, domain.MissingCredentialError("IPINFO_TOKEN")
	}
	target := i.endpoint + "/json"
	if public(ip) {
		target = i.endpoint + "/" + url.PathEscape(strings.TrimSpace(ip)) + "/json"
	}
	params := url.Values{}
	params.Set("token", i.token)

	var details ipinfoDetails
	if err := i.http.GetJSON(ctx, target, params, i.timeout, &details); err != nil {
		return domain.LatLng{}, err
	}
	if details.Bogon {
		return domain.LatLng{}, fmt.Errorf("ipinfo: %s is not publicly routable", details.IP)
	}
	return parseLoc(details.Loc)
}

// parseLoc reads ipinfo's "lat,long" string.
func parseLoc(loc string) (domain.LatLng, error) {
	lat, lng, ok := strings.Cut(strings.TrimSpace(loc), ",")
	if !ok {
		return domain.LatLng{}, fmt.Errorf("ipinfo: malformed loc %q", loc)
	}
	latF, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return domain.LatLng{}, fmt.Errorf("ipinfo: latitude: %w", err)
	}
	lngF, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return domain.LatLng{}, fmt.Errorf("ipinfo: longitude: %w", err)
	}
	return domain.LatLng{Lat: latF, Lng: lngF}, nil
}

func public(ip string) bool {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return false
	}
	return !parsed.IsLoopback() && !parsed.IsPrivate() && !parsed.IsUnspecified() && !parsed.IsLinkLocalUnicast()
}

var _ Locator = (*IPInfo)(nil)
