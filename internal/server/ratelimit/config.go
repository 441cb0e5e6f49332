package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// Tiers group endpoints that share a bucket per client.
const (
	TierCompute = "compute"
	TierWrite   = "write"
	TierDefault = "default"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" matches by prefix
	Method string        // HTTP method (GET, POST, etc.)
	Tier   string        // Bucket shared by endpoints of the same tier
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig builds the configuration from RATE_LIMIT_* variables. lookup is
// usually os.LookupEnv.
func LoadConfig(lookup func(string) (string, bool)) *Config {
	env := envReader(lookup)

	if !env.boolean("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.integer("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   env.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(env.str("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(env.str("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Full assessments and sweeps run every estimator
		{Path: "/assessments", Method: "POST", Tier: TierCompute, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/sweep", Method: "POST", Tier: TierCompute, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/assessments/stream", Method: "POST", Tier: TierCompute, Limit: 60, Window: time.Minute, Burst: 10},

		{Path: "/assessments/", Method: "DELETE", Tier: TierWrite, Limit: 100, Window: time.Minute, Burst: 20},

		// Reads, /recommend and /structure-specs use the default limit; /health is unlimited
	}
}

type envReader func(string) (string, bool)

func (e envReader) str(key, def string) string {
	if v, ok := e(key); ok && v != "" {
		return v
	}
	return def
}

func (e envReader) integer(key string, def int) int {
	if n, err := strconv.Atoi(e.str(key, "")); err == nil {
		return n
	}
	return def
}

func (e envReader) boolean(key string, def bool) bool {
	if b, err := strconv.ParseBool(e.str(key, "")); err == nil {
		return b
	}
	return def
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(e.str(key, "")); err == nil {
		return d
	}
	return def
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
