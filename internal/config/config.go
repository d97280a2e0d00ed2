package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Rate source names accepted in RATE_SOURCE.
const (
	RateSourceStatic   = "static"
	RateSourceDatabase = "database"
	RateSourceYahoo    = "yahoo"
)

// Unknown-rate policies accepted in UNKNOWN_RATE_POLICY.
const (
	PolicyFail = "fail"
	PolicySkip = "skip"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Currency
	ReportingCurrency  string
	RateSource         string
	StaticRates        map[string]decimal.Decimal
	ForexBaseURL       string
	RateRequestTimeout time.Duration
	UnknownRatePolicy  string

	// Rate cache
	RedisAddr     string
	RedisPassword string
	RateCacheTTL  time.Duration

	// Pipeline keys; more than one while a key is being rotated
	PipelineAPIKeys []string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		ReportingCurrency: strings.ToUpper(getEnv("REPORTING_CURRENCY", "EUR")),
		RateSource:        strings.ToLower(getEnv("RATE_SOURCE", RateSourceStatic)),
		ForexBaseURL:      getEnv("FOREX_BASE_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
		UnknownRatePolicy: strings.ToLower(getEnv("UNKNOWN_RATE_POLICY", PolicyFail)),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		PipelineAPIKeys: strings.Split(getEnv("PIPELINE_API_KEYS", getEnv("PIPELINE_API_KEY", "")), ","),
	}

	if len(config.ReportingCurrency) != 3 {
		return nil, fmt.Errorf("invalid REPORTING_CURRENCY %q: must be a 3-letter code", config.ReportingCurrency)
	}

	switch config.RateSource {
	case RateSourceStatic, RateSourceDatabase, RateSourceYahoo:
	default:
		return nil, fmt.Errorf("invalid RATE_SOURCE %q: must be static, database, or yahoo", config.RateSource)
	}

	switch config.UnknownRatePolicy {
	case PolicyFail, PolicySkip:
	default:
		return nil, fmt.Errorf("invalid UNKNOWN_RATE_POLICY %q: must be fail or skip", config.UnknownRatePolicy)
	}

	rates, err := ParseRates(getEnv("STATIC_RATES", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid STATIC_RATES: %w", err)
	}
	config.StaticRates = rates

	config.JWTExpirationDur = parseDuration("JWT_EXPIRES_IN", "24h", 24*time.Hour)
	config.RateRequestTimeout = parseDuration("RATE_REQUEST_TIMEOUT", "10s", 10*time.Second)
	config.RateCacheTTL = parseDuration("RATE_CACHE_TTL", "1h", time.Hour)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// ParseRates parses a comma-separated list of CODE=RATE pairs, e.g. "USD=0.9,GBP=1.17".
// Each rate is the number of reporting-currency units one unit of CODE is worth.
func ParseRates(s string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)
	s = strings.TrimSpace(s)
	if s == "" {
		return rates, nil
	}

	for _, pair := range strings.Split(s, ",") {
		code, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("expected CODE=RATE, got %q", pair)
		}
		code = strings.ToUpper(strings.TrimSpace(code))
		if len(code) != 3 {
			return nil, fmt.Errorf("invalid currency code %q", code)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", code, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rate for %s must be positive, got %s", code, rate)
		}
		rates[code] = rate
	}
	return rates, nil
}

func parseDuration(key, fallback string, fallbackDur time.Duration) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, fallback)
		return fallbackDur
	}
	return d
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
