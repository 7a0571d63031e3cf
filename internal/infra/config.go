package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gourmet/internal/domain"
)

const (
	RecipeProviderGroq   = "groq"
	RecipeProviderGemini = "gemini"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	LogLevel           string
	Port               string
	DefaultLocale      string
	CORSAllowedOrigins []string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
	// TrustProxyHeaders lets X-Forwarded-For / X-Real-IP replace the peer
	// address. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool

	RecipeProvider string
	GroqModel      string
	GroqBaseURL    string
	GeminiModel    string
	GeoIPDBPath    string
	Credentials    domain.Credentials

	ImageLimit        int
	ImageCandidates   int
	ImageMaxDimension int
	VideoLimit        int
	PlaceLimit        int
	ImageFetchTimeout time.Duration
	SearchTimeout     time.Duration
	RecipeTimeout     time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
// Missing credentials are not an error; see MissingCredentials.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		Port:               getEnv("PORT", "8080"),
		DefaultLocale:      getEnv("DEFAULT_LOCALE", "en"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		TrustProxyHeaders:  getEnvBool("TRUST_PROXY_HEADERS", false),

		RecipeProvider: strings.ToLower(getEnv("RECIPE_PROVIDER", RecipeProviderGroq)),
		GroqModel:      getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqBaseURL:    getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeoIPDBPath:    os.Getenv("GEOIP_DB_PATH"),
		Credentials: domain.Credentials{
			GroqAPIKey:     getEnv("GROQ_API_KEY", os.Getenv("GOOGLE_GEM_API_KEY")),
			GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
			YouTubeAPIKey:  os.Getenv("YOUTUBE_API_KEY"),
			GoogleAPIKey:   os.Getenv("GOOGLE_API_KEY"),
			SearchEngineID: os.Getenv("SEARCH_ENGINE_ID"),
			SerpAPIKey:     os.Getenv("SERPAPI_API_KEY"),
			PlacesAPIKey:   os.Getenv("GOOGLE_PLACES_API_KEY"),
			MapsAPIKey:     os.Getenv("GOOGLE_MAPS_API_KEY"),
			IPInfoToken:    os.Getenv("IPINFO_TOKEN"),
		},

		ImageLimit:        getEnvInt("IMAGE_LIMIT", 8),
		ImageCandidates:   getEnvInt("IMAGE_CANDIDATES", 10),
		ImageMaxDimension: getEnvInt("IMAGE_MAX_DIMENSION", 800),
		VideoLimit:        getEnvInt("VIDEO_LIMIT", 6),
		PlaceLimit:        getEnvInt("PLACE_LIMIT", 5),
		ImageFetchTimeout: time.Second * time.Duration(getEnvInt("IMAGE_FETCH_TIMEOUT_SECONDS", 5)),
		SearchTimeout:     time.Second * time.Duration(getEnvInt("SEARCH_TIMEOUT_SECONDS", 0)),
		RecipeTimeout:     time.Second * time.Duration(getEnvInt("RECIPE_TIMEOUT_SECONDS", 60)),
	}

	switch cfg.RecipeProvider {
	case RecipeProviderGroq, RecipeProviderGemini:
	default:
		return nil, fmt.Errorf("RECIPE_PROVIDER must be %q or %q, got %q", RecipeProviderGroq, RecipeProviderGemini, cfg.RecipeProvider)
	}

	for name, v := range map[string]int{
		"IMAGE_LIMIT":      cfg.ImageLimit,
		"IMAGE_CANDIDATES": cfg.ImageCandidates,
		"VIDEO_LIMIT":      cfg.VideoLimit,
		"PLACE_LIMIT":      cfg.PlaceLimit,
	} {
		if v <= 0 {
			return nil, fmt.Errorf("%s must be positive", name)
		}
	}
	if cfg.ImageCandidates < cfg.ImageLimit {
		cfg.ImageCandidates = cfg.ImageLimit
	}

	return cfg, nil
}

// MissingCredentials lists the environment variables whose absence will make
// an extractor return empty results.
func (c *Config) MissingCredentials() []string {
	var missing []string
	creds := c.Credentials
	switch c.RecipeProvider {
	case RecipeProviderGemini:
		if creds.GeminiAPIKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	default:
		if creds.GroqAPIKey == "" {
			missing = append(missing, "GROQ_API_KEY")
		}
	}
	if creds.YouTubeAPIKey == "" {
		missing = append(missing, "YOUTUBE_API_KEY")
	}
	if (creds.GoogleAPIKey == "" || creds.SearchEngineID == "") && creds.SerpAPIKey == "" {
		missing = append(missing, "GOOGLE_API_KEY/SEARCH_ENGINE_ID or SERPAPI_API_KEY")
	}
	if creds.PlacesAPIKey == "" {
		missing = append(missing, "GOOGLE_PLACES_API_KEY")
	}
	if creds.MapsAPIKey == "" {
		missing = append(missing, "GOOGLE_MAPS_API_KEY")
	}
	if creds.IPInfoToken == "" && c.GeoIPDBPath == "" {
		missing = append(missing, "IPINFO_TOKEN or GEOIP_DB_PATH")
	}
	return missing
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
