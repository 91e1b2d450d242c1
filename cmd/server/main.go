package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/nirmaanhetu/marketplace-api/internal/api"
	"github.com/nirmaanhetu/marketplace-api/internal/core/ports"
	"github.com/nirmaanhetu/marketplace-api/internal/infrastructure/ai"
	"github.com/nirmaanhetu/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/nirmaanhetu/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/nirmaanhetu/marketplace-api/internal/infrastructure/db/redis"
	"github.com/nirmaanhetu/marketplace-api/internal/infrastructure/media"
	"github.com/nirmaanhetu/marketplace-api/pkg/logger"
)

func main() {
	// A missing .env is fine: production reads the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure MongoDB indexes")
	}

	var rdb *redis.Client
	rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		// Rate limiting degrades to pass-through without Redis.
		log.Warn().Err(err).Msg("Redis unavailable, rate limiting disabled")
		rdb = nil
	} else {
		defer func() { _ = rdb.Close() }()
	}

	var mediaStore ports.MediaStore
	if cfg.Cloudinary.Configured() {
		store, err := media.NewCloudinaryStore(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Cloudinary")
		}
		mediaStore = store
	} else {
		log.Warn().Msg("Cloudinary credentials not set, media uploads disabled")
	}

	var assistant ports.AssistantClient
	if cfg.Gemini.APIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Gemini client")
		}
		assistant = gemini
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, assistant replies degraded")
	}

	e := api.NewRouter(cfg, db, rdb, mediaStore, assistant, log)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("marketplace API listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
