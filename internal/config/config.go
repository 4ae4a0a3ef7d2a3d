package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"player-auction/internal/bidding"
)

// Config centralizes environment variables and runtime parameters.
type Config struct {
	Env      string // "local", "dev", "prod"
	LogLevel string

	HTTPPort    string
	MetricsPort string

	// Empty DSN selects the in-memory store.
	PostgresDSN string

	JWTSecret string
	JWTExpiry time.Duration

	// Bid increment tiers
	IncrementThreshold decimal.Decimal
	LowIncrement       decimal.Decimal
	HighIncrement      decimal.Decimal

	// Exclusion-section budget
	LockWait    time.Duration
	LockRetries int
}

// Load reads environment variables, applying defaults for anything unset.
func Load() Config {
	return Config{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9095"),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me-0123456789abcdef"),
		JWTExpiry: getDuration("JWT_EXPIRY", 24*time.Hour),

		IncrementThreshold: getDecimal("BID_TIER_THRESHOLD", "5"),
		LowIncrement:       getDecimal("BID_LOW_INCREMENT", "0.2"),
		HighIncrement:      getDecimal("BID_HIGH_INCREMENT", "0.5"),

		LockWait:    getDuration("LOCK_WAIT", bidding.DefaultLockWait),
		LockRetries: getInt("LOCK_RETRIES", bidding.DefaultLockRetries),
	}
}

// BidRules builds the increment rules the validator runs with.
func (c Config) BidRules() bidding.Rules {
	return bidding.Rules{
		TierThreshold: c.IncrementThreshold,
		LowIncrement:  c.LowIncrement,
		HighIncrement: c.HighIncrement,
	}
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDecimal(key, def string) decimal.Decimal {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(def)
}
