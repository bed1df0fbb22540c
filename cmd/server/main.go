package main

import (
	"log"
	"time"

	"book-assistant/internal/assistant"
	"book-assistant/internal/cohere"
	"book-assistant/internal/config"
	"book-assistant/internal/googlebooks"
	"book-assistant/internal/handler"
	"book-assistant/internal/logging"
	"book-assistant/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	godotenv.Load(".env.local")

	cfg, err := config.Load("config.yml")
	if err != nil {
		log.Fatalf("[FATAL] Failed to load configuration: %v", err)
	}

	logger, flush := logging.Setup(cfg.LogLevel, cfg.IsProduction())
	defer flush()

	logger.Info("starting book assistant", zap.String("env", cfg.Env))

	searcher := googlebooks.NewClient(cfg.GoogleBooksAPIKey, cfg.HTTPTimeout, cfg.SearchRPS, logger)
	generator := cohere.NewClient(cfg.CohereAPIKey, cfg.CohereModel, cfg.HTTPTimeout, logger)
	asst := assistant.New(searcher, generator, logger)
	api := handler.NewAPI(asst, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// Security headers (before CORS)
	r.Use(middleware.SecurityHeaders())

	allowedOrigins := []string{}
	if gin.Mode() != gin.ReleaseMode {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173")
	}
	allowedOrigins = append(allowedOrigins, cfg.AllowedOrigins...)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept-Language"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Generation costs money, so /api/analyze gets per-IP throttling plus a
	// global daily quota. Search routes stay unthrottled.
	ipLimiter := middleware.NewIPRateLimiter(rate.Every(1*time.Second), 3)
	dailyQuota := middleware.NewDailyQuota(cfg.DailyAnalysisQuota)

	logger.Info("rate limiting enabled", zap.Int64("daily_quota", cfg.DailyAnalysisQuota))

	// Health check endpoints (outside /api group, no rate limiting)
	r.GET("/health", api.HandleHealth)
	r.GET("/ready", api.HandleReadiness)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/search", api.HandleSearch)
		apiGroup.GET("/recommendations", api.HandleRecommendations)
		apiGroup.POST("/analyze", middleware.RateLimit(ipLimiter, dailyQuota, logger), api.HandleAnalyze)
	}

	logger.Info("server ready",
		zap.String("port", cfg.Port),
		zap.Strings("allowed_origins", allowedOrigins))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
