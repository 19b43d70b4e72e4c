package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/labelwise/backend/config"
	httpDelivery "github.com/labelwise/backend/internal/delivery/http"
	"github.com/labelwise/backend/internal/domain"
	"github.com/labelwise/backend/internal/infrastructure/cache"
	"github.com/labelwise/backend/internal/infrastructure/llm"
	"github.com/labelwise/backend/internal/infrastructure/mongodb"
	"github.com/labelwise/backend/internal/infrastructure/ocr"
	"github.com/labelwise/backend/internal/infrastructure/translate"
	"github.com/labelwise/backend/internal/usecase"
)

func main() {
	// Load .env if present; real environment variables win
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting LabelWise Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	ctx := context.Background()
	debug := cfg.Server.Environment == "development"

	// Initialize infrastructure dependencies
	mongoClient, err := mongodb.NewClient(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Close(ctx)

	products := mongodb.NewProductRepository(mongoClient)
	users := mongodb.NewUserRepository(mongoClient)

	var analysisCache domain.CacheRepository
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		analysisCache = redisCache
	default:
		analysisCache = cache.NewMemoryCache()
	}
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	reader, err := ocr.NewRekognitionReader(ctx, cfg.AWS.Region)
	if err != nil {
		log.Fatalf("Failed to initialize text detection: %v", err)
	}

	model := llm.NewClient(cfg.Model.APIKey, cfg.Model.BaseURL, cfg.Model.Name)
	log.Printf("Model configured: %s (%s)", cfg.Model.Name, cfg.Model.BaseURL)

	translator := translate.NewMyMemoryClient(cfg.Translate.BaseURL)

	// Initialize usecase layer
	normalizer := usecase.NewTermNormalizer(usecase.NormalizerConfig{})
	extractor := usecase.NewLabelExtractor(model, products, usecase.ExtractorConfig{
		EnableDebugLogging: debug,
	})
	analyzer := usecase.NewLabelAnalyzer(model, normalizer, analysisCache, usecase.AnalyzerConfig{
		CacheTTL:           cfg.Cache.TTL,
		EnableDebugLogging: debug,
	})
	translation := usecase.NewTranslationService(translator)
	auth := usecase.NewAuthService(users, usecase.AuthConfig{
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.TokenTTL,
	})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(reader, extractor, analyzer, translation, auth, products)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, auth)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
