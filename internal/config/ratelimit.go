package config

import "time"

// RateLimitConfig defines the token-bucket limiter applied in front of
// the API.  The bucket lives in Redis so all replicas share one budget.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int           // bucket size (burst)
	RefillTokens   int           // tokens added per interval
	RefillInterval time.Duration // refill cadence
	TTL            time.Duration // idle bucket expiry
	Prefix         string        // Redis key prefix
	KeyStrategy    string        // ip / user / route combinations
	Debug          bool          // expose the computed key and log decisions
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig, with permissive defaults suited to an internal tool.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:        getenv("RATELIMIT_ENABLED", "true") == "true",
		Capacity:       atoi(getenv("RATELIMIT_CAPACITY", "60")),
		RefillTokens:   atoi(getenv("RATELIMIT_REFILL_TOKENS", "60")),
		RefillInterval: parseDur(getenv("RATELIMIT_REFILL_INTERVAL", "1m")),
		TTL:            parseDur(getenv("RATELIMIT_TTL", "10m")),
		Prefix:         getenv("RATELIMIT_PREFIX", "fp-rl"),
		KeyStrategy:    getenv("RATELIMIT_KEY_STRATEGY", "ip_route"),
		Debug:          getenv("RATELIMIT_DEBUG", "false") == "true",
	}
}
