package app

import (
	"time"

	"github.com/guttosm/laundry-service/config"
)

// testConfig returns a configuration that needs no external services.
func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 5 * time.Second,
		},
		Log: config.LogConfig{Level: "error"},
		Quotes: config.QuoteConfig{
			Store:     config.QuoteStoreMemory,
			TTL:       time.Minute,
			CacheSize: 100,
		},
		Catalog: config.CatalogConfig{CacheTTL: time.Second},
		Solver:  config.SolverConfig{MaxNodes: 10000, Tolerance: 1e-9},
		Auth: config.AuthConfig{
			JWTSecretKey:   "app-test-secret-with-enough-length",
			AccessTokenTTL: time.Minute,
			AdminUsername:  "admin",
		},
		Database: config.DatabaseConfig{
			LogsTTL:                        24 * time.Hour,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
		Redis: config.RedisConfig{KeyPrefix: "test:quote:"},
	}
}
