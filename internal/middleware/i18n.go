package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"gourmet/internal/domain"
)

const defaultLocale = "en"

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// Hints bias provider results towards the caller: Locale selects the
// language of recipes and search results, Region (ISO 3166-1 alpha-2, may be
// empty) narrows video and restaurant searches.
type Hints struct {
	Locale string
	Region string
}

// Request builds the enrichment request for dish carrying these hints.
func (h Hints) Request(dish string) (domain.EnrichmentRequest, error) {
	req, err := domain.NewEnrichmentRequest(dish, h.Locale)
	if err != nil {
		return domain.EnrichmentRequest{}, err
	}
	return req.WithRegion(h.Region), nil
}

type hintsContextKey struct{}

// I18N detects Hints once per request and stores them in the context.
func I18N(fallback string, lookup CountryLookup) func(http.Handler) http.Handler {
	fallback = normalizeLocale(fallback)
	if fallback == "" {
		fallback = defaultLocale
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hints := Hints{
				Locale: detectLocale(r, fallback),
				Region: ResolveCountry(r, lookup),
			}
			next.ServeHTTP(w, r.WithContext(WithHints(r.Context(), hints)))
		})
	}
}

func WithHints(ctx context.Context, h Hints) context.Context {
	return context.WithValue(ctx, hintsContextKey{}, h)
}

// HintsFromContext returns the stored hints, or the default locale with no
// region outside the I18N middleware.
func HintsFromContext(ctx context.Context) Hints {
	if h, ok := ctx.Value(hintsContextKey{}).(Hints); ok {
		return h
	}
	return Hints{Locale: defaultLocale}
}

func detectLocale(r *http.Request, fallback string) string {
	if v := normalizeLocale(r.Header.Get("X-Locale")); v != "" {
		return v
	}
	if v := parseAcceptLanguage(r.Header.Get("Accept-Language")); v != "" {
		return v
	}
	if fallback != "" {
		return fallback
	}
	return defaultLocale
}

// parseAcceptLanguage returns the highest weighted tag.
func parseAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return ""
	}
	for _, tag := range tags {
		if tag != language.Und {
			return tag.String()
		}
	}
	return ""
}

// normalizeLocale canonicalises a BCP 47 tag ("en_us" becomes "en-US") and
// returns "" for anything unparseable.
func normalizeLocale(locale string) string {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil || tag == language.Und {
		return ""
	}
	return tag.String()
}

var countryHeaders = []string{"X-Country-Code", "CF-IPCountry", "X-Appengine-Country"}

// ResolveCountry picks the caller's country from, in order: CDN country
// headers, an explicit region in X-Locale or Accept-Language, then lookup on
// the client IP. It returns "" when none of them answer.
func ResolveCountry(r *http.Request, lookup CountryLookup) string {
	if r == nil {
		return ""
	}
	for _, key := range countryHeaders {
		if val := strings.TrimSpace(r.Header.Get(key)); len(val) == 2 {
			return strings.ToUpper(val)
		}
	}
	for _, header := range []string{"X-Locale", "Accept-Language"} {
		if region := localeRegion(r.Header.Get(header)); region != "" {
			return region
		}
	}
	if lookup == nil {
		return ""
	}
	ip := ClientIP(r)
	if ip == "" {
		return ""
	}
	country, err := lookup(ip)
	if err != nil {
		return ""
	}
	return strings.ToUpper(country)
}

// localeRegion returns the explicit region subtag of the first tag, if any.
func localeRegion(accept string) string {
	token, _, _ := strings.Cut(accept, ",")
	token, _, _ = strings.Cut(token, ";")
	token = strings.ReplaceAll(strings.TrimSpace(token), "_", "-")
	if token == "" {
		return ""
	}
	tag, err := language.Parse(token)
	if err != nil {
		return ""
	}
	region, conf := tag.Region()
	if conf != language.Exact {
		return ""
	}
	return region.String()
}
