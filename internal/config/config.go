package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. External collaborators (upstream data API, auth
// provider, payment provider, image host) are only ever reached at the
// addresses configured here.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	UpstreamAPIURL  string // base URL of the storefront data API
	AuthMode        string // "provider" (external auth service) or "dev" (local MySQL)
	AuthProviderURL string // base URL of the external auth provider
	AuthProviderKey string // publishable key sent to the auth provider
	PaymentKey      string // publishable key for the payment provider
	ImageHostURL    string // upload endpoint of the image host
	ImageHostKey    string // API key for the image host
	DBUser          string // database username (dev auth + refresh tokens)
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
	JWTSecret       string // secret used to sign session JWTs
	AccessTTLMin    int    // access token time-to-live in minutes
	RefreshTTLDays  int    // refresh token time-to-live in days
	BcryptCost      int    // bcrypt cost for dev-provider password hashing
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		UpstreamAPIURL:  must("UPSTREAM_API_URL"),
		AuthMode:        envStr("AUTH_MODE", "provider"),
		AuthProviderURL: os.Getenv("AUTH_PROVIDER_URL"),
		AuthProviderKey: os.Getenv("AUTH_PROVIDER_KEY"),
		PaymentKey:      os.Getenv("PAYMENT_PROVIDER_KEY"),
		ImageHostURL:    envStr("IMAGE_HOST_URL", "https://api.imgbb.com/1/upload"),
		ImageHostKey:    os.Getenv("IMAGE_HOST_KEY"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		JWTSecret:       must("JWT_SECRET"),
		AccessTTLMin:    mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays:  mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:      envInt("BCRYPT_COST", 12),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
