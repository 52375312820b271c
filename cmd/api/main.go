package main

import (
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/vivek91319165/nebula-financial-verse/internal/ai"
	"github.com/vivek91319165/nebula-financial-verse/internal/config"
	"github.com/vivek91319165/nebula-financial-verse/internal/database"
	"github.com/vivek91319165/nebula-financial-verse/internal/handlers"
	"github.com/vivek91319165/nebula-financial-verse/internal/logger"
	"github.com/vivek91319165/nebula-financial-verse/internal/ocr"
	"github.com/vivek91319165/nebula-financial-verse/internal/routes"
	"github.com/vivek91319165/nebula-financial-verse/internal/wallet"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		logger.Warn("Could not find or load .env file. Relying on system environment variables.")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	// 1. --- Database Connection & Migrations ---
	db, err := database.OpenDB(cfg.DBDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// 2. --- AI Services ---
	// Missing keys are tolerated here: the affected endpoints report
	// the configuration error when they are actually called.
	if cfg.GroqAPIKey == "" {
		logger.Warn("GROQ_API_KEY not set; insight generation will be unavailable")
	}
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY not set; receipt scanning will be unavailable")
	}
	aiService := ai.NewService(cfg.GroqAPIKey)
	ocrService := ocr.NewService(cfg.OpenAIAPIKey)

	// 3. --- Wallet Asset Source ---
	var assetSource wallet.AssetSource
	switch cfg.WalletSource {
	case "chain":
		assetSource = wallet.NewChainSource(cfg.EthRPCURL)
	default:
		assetSource = wallet.NewMockSource()
	}
	logger.Infof("Wallet asset source: %s", cfg.WalletSource)

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		assetSource = wallet.NewCachedSource(assetSource, rdb, cfg.AssetCacheTTL)
		logger.Infof("Wallet asset cache enabled (redis %s, ttl %s)", cfg.RedisAddr, cfg.AssetCacheTTL)
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		DB:     db,
		Cfg:    cfg,
		AI:     aiService,
		OCR:    ocrService,
		Assets: assetSource,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	logger.Infof("Starting Nebula Financial Verse API server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
