package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every runtime setting for the API server.
// Values come from environment variables (optionally loaded from .env
// by cmd/api before Load is called).
type Config struct {
	// HTTP Server
	Port          string
	BaseURL       string
	AllowedOrigin string

	// Database
	DBDSN string

	// Auth
	JWTSecret string

	// AI upstreams
	GroqAPIKey   string
	OpenAIAPIKey string

	// Receipt storage
	UploadDir string

	// Wallet assets
	WalletSource  string // "mock" or "chain"
	EthRPCURL     string
	RedisAddr     string
	AssetCacheTTL time.Duration
}

// Load reads the configuration from the environment, applying defaults
// for everything that is safe to default.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),

		DBDSN: getEnv("DB_DSN", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		GroqAPIKey:   getEnv("GROQ_API_KEY", ""),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),

		WalletSource:  getEnv("WALLET_SOURCE", "mock"),
		EthRPCURL:     getEnv("ETH_RPC_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		AssetCacheTTL: getEnvDuration("ASSET_CACHE_TTL", 5*time.Minute),
	}
}

// Validate checks the configuration and returns an error describing
// every problem found, so a broken deployment fails fast at startup.
// Missing AI keys are NOT startup errors: they surface as 500s when the
// corresponding feature is actually used.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBDSN == "" {
		problems = append(problems, "DB_DSN is required")
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}

	switch c.WalletSource {
	case "mock":
		// nothing else needed
	case "chain":
		if c.EthRPCURL == "" {
			problems = append(problems, "ETH_RPC_URL is required when WALLET_SOURCE is 'chain'")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid wallet source '%s': must be 'mock' or 'chain'", c.WalletSource))
	}

	if c.AssetCacheTTL <= 0 {
		problems = append(problems, "ASSET_CACHE_TTL must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %v", problems)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
