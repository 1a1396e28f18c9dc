package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseDSN      string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RegistryBaseURL  string
	RegistryAPIKey   string
	PolicyBundlePath string
	PolicyBundleID   string
	VerifyBaseURL    string
	CacheTTL         time.Duration
}

func FromEnv() Config {
	return Config{
		DatabaseDSN:      os.Getenv("DATABASE_DSN"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          envInt("REDIS_DB", 0),
		RegistryBaseURL:  envDefault("REGISTRY_BASE_URL", "http://localhost:8545"),
		RegistryAPIKey:   os.Getenv("REGISTRY_API_KEY"),
		PolicyBundlePath: os.Getenv("POLICY_BUNDLE_PATH"),
		PolicyBundleID:   envDefault("POLICY_BUNDLE_ID", "verdict_v1"),
		VerifyBaseURL:    envDefault("VERIFY_BASE_URL", "http://localhost:3000"),
		CacheTTL:         envDuration("CACHE_TTL", 5*time.Minute),
	}
}

func envDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

func envInt(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}
