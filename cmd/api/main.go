package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/voyageai/recommender/api/internal/cache"
	"github.com/voyageai/recommender/api/internal/config"
	"github.com/voyageai/recommender/api/internal/handler"
	"github.com/voyageai/recommender/api/internal/llm"
	"github.com/voyageai/recommender/api/internal/logger"
	middlewarepkg "github.com/voyageai/recommender/api/internal/middleware"
	"github.com/voyageai/recommender/api/internal/places"
	"github.com/voyageai/recommender/api/internal/router"
	"github.com/voyageai/recommender/api/internal/service"
	"github.com/voyageai/recommender/api/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zapLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var store cache.Store
	switch cfg.CacheBackend {
	case "redis":
		redisStore, err := cache.NewRedisStore(ctx, cfg.Redis, cfg.CacheTTL)
		if err != nil {
			zapLogger.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redisStore.Close()
		store = redisStore
	default:
		store = cache.NewMemoryStore(cfg.CacheTTL)
	}

	var extractor service.IntentExtractor
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiExtractor(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			zapLogger.Fatal("failed to create gemini extractor", zap.Error(err))
		}
		extractor = gemini
	} else {
		zapLogger.Warn("GEMINI_API_KEY not set, using heuristic intent extraction")
		extractor = llm.NewHeuristicExtractor()
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	placesClient := places.NewClient(httpClient, cfg.PlacesAPIKey)

	recommendService := service.NewRecommendService(extractor, placesClient, store, zapLogger, cfg)

	renderer, err := web.NewRenderer()
	if err != nil {
		zapLogger.Fatal("failed to parse templates", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(zapLogger))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, router.Handlers{
		Recommend: handler.NewRecommendHandler(recommendService),
		Pages:     handler.NewPagesHandler(recommendService),
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()
	zapLogger.Info("server started", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		zapLogger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
