package config

import (
	"time"
)

type AppConfig struct {
	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	CacheEnabled bool
	CacheConfigs map[string]CacheConfig

	EnforceHTTPS bool

	Environment string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type CacheConfig struct {
	TTL     time.Duration
	Enabled bool
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"/signup": {
				Requests: 5,
				Window:   time.Minute,
			},
			"/auth": {
				Requests: 10,
				Window:   time.Minute,
			},
			"/profiles": {
				Requests: 100,
				Window:   time.Minute,
			},
		},
		CacheEnabled: true,
		CacheConfigs: map[string]CacheConfig{
			"/profiles": {
				TTL:     3 * time.Second,
				Enabled: true,
			},
		},
		EnforceHTTPS: false,
		Environment:  "development",
	}
}
