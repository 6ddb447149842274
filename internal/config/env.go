package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env holds runtime configuration sourced from environment variables.
type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	ProviderURL     string
	ProviderAnonKey string
	ProviderTimeout time.Duration

	JWTSecret  string
	JWTIssuer  string
	SessionTTL time.Duration

	DemoLoginEnabled     bool
	ListingCountFiltered bool

	CORSOrigins []string
}

// LoadEnv reads configuration, loading a local .env file first when
// present. Missing values fall back to development defaults.
func LoadEnv() Env {
	_ = godotenv.Load()

	env := Env{
		AppAddr: fallback(os.Getenv("APP_ADDR"), ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: fallback(os.Getenv("DB_USER"), "root"),
		DBPass: strings.TrimSpace(os.Getenv("DB_PASSWORD")),
		DBHost: fallback(os.Getenv("DB_HOST"), "127.0.0.1:3306"),
		DBName: fallback(os.Getenv("DB_NAME"), "rental_prima"),

		ProviderURL:     strings.TrimSpace(os.Getenv("PROVIDER_URL")),
		ProviderAnonKey: strings.TrimSpace(os.Getenv("PROVIDER_ANON_KEY")),

		JWTSecret: fallback(os.Getenv("JWT_SECRET"), "rental-prima-super-secret-jwt-key"),
		JWTIssuer: fallback(os.Getenv("JWT_ISSUER"), "rental-prima"),

		DemoLoginEnabled:     parseBool(os.Getenv("DEMO_LOGIN_ENABLED"), false),
		ListingCountFiltered: parseBool(os.Getenv("LISTING_COUNT_FILTERED"), true),

		CORSOrigins: parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "http://localhost:3000")),
	}

	env.ProviderTimeout = time.Duration(parseInt(os.Getenv("PROVIDER_TIMEOUT_SECONDS"), 10)) * time.Second
	env.SessionTTL = time.Duration(parseInt(os.Getenv("SESSION_TTL_HOURS"), 24)) * time.Hour

	return env
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseBool(value string, def bool) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func parseInt(value string, def int) int {
	v := strings.TrimSpace(value)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
