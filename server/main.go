package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"seatreserve/api/routes"
	"seatreserve/internal/notifications"
	"seatreserve/internal/shared/config"
	"seatreserve/internal/shared/middleware"
	"seatreserve/pkg/cache"
	"seatreserve/pkg/logger"
	"seatreserve/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Re-create the logger now that the mode and level are known
	appLogger = logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	logger.SetDefault(appLogger)

	appLogger.Info("Starting mock reservation API",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("commit", GitCommit),
	)

	// Redis is optional: shared listing cache and rate limiting
	var redisClient *redis.Client
	var cacheService cache.Service
	if cfg.RedisEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewClient(ctx, cache.Config{
			Address:  cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cancel()
		if err != nil {
			appLogger.Error("Redis unavailable, continuing without cache", slog.Any("error", err))
		} else {
			redisClient = client
			cacheService = cache.NewService(client)
			flushInventoryCache(cacheService, appLogger)
			defer redisClient.Close()
		}
	}

	if cacheService == nil {
		cacheService = cache.NewMemoryService(cfg.Redis.ListingCacheTTL)
		appLogger.Info("Redis not configured, listings are cached in process")
	}

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && redisClient != nil {
		rateLimiter = ratelimit.NewRateLimiter(redisClient, &ratelimit.Config{
			Enabled:             cfg.RateLimit.Enabled,
			WindowDuration:      cfg.RateLimit.WindowDuration,
			DefaultRequests:     cfg.RateLimit.DefaultRequests,
			AuthRequests:        cfg.RateLimit.AuthRequests,
			ReservationRequests: cfg.RateLimit.ReservationRequests,
			SearchRequests:      cfg.RateLimit.SearchRequests,
			WhitelistedIPs:      cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else if cfg.RateLimit.Enabled {
		appLogger.Warn("Rate limiting requested but Redis is not configured")
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	publisher := newPublisher(cfg, appLogger)
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Error("Error closing event publisher", slog.Any("error", err))
		}
	}()

	services := routes.NewServices(cfg, routes.Deps{
		Cache:     cacheService,
		Publisher: publisher,
		Logger:    appLogger,
	})
	router := setupRouter(cfg, services, cacheService, rateLimiter, appLogger)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_base", fmt.Sprintf("http://localhost:%s%s", cfg.Port, cfg.GetAPIBasePath())),
			slog.Bool("redis", redisClient != nil),
			slog.Bool("rate_limiting", rateLimiter != nil),
			slog.Bool("kafka_events", cfg.KafkaEnabled()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

// newPublisher picks Kafka when brokers are configured and falls back to the log
func newPublisher(cfg *config.Config, appLogger *logger.Logger) notifications.Publisher {
	if !cfg.KafkaEnabled() {
		appLogger.Info("No Kafka brokers configured, reservation events go to the log")
		return notifications.NewLogPublisher(appLogger)
	}

	producerConfig := notifications.DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.Topic = cfg.Kafka.ReservationTopic
	producerConfig.RetryMax = cfg.Kafka.RetryMax
	producerConfig.Timeout = cfg.Kafka.Timeout

	publisher, err := notifications.NewKafkaPublisher(producerConfig)
	if err != nil {
		appLogger.Error("Kafka producer unavailable, reservation events go to the log", slog.Any("error", err))
		return notifications.NewLogPublisher(appLogger)
	}
	appLogger.Info("Kafka reservation publisher initialized",
		slog.Any("brokers", cfg.Kafka.Brokers),
		slog.String("topic", cfg.Kafka.ReservationTopic),
	)
	return publisher
}

// flushInventoryCache drops listings cached by a previous run; the inventory is re-seeded on start
func flushInventoryCache(cacheService cache.Service, appLogger *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pattern := range cache.InventoryPatterns() {
		if err := cacheService.DeletePattern(ctx, pattern); err != nil {
			appLogger.Warn("Failed to flush cached listings", slog.String("pattern", pattern), slog.Any("error", err))
		}
	}
}

func setupRouter(cfg *config.Config, services *routes.Services, cacheService cache.Service, rateLimiter *ratelimit.RateLimiter, appLogger *logger.Logger) *gin.Engine {
	engine := gin.New()
	if cfg.IsProduction() {
		// client IPs feed the rate limiter, so forwarded headers are ignored
		if err := engine.SetTrustedProxies(nil); err != nil {
			appLogger.Warn("Failed to reset trusted proxies", slog.Any("error", err))
		}
	}

	engine.Use(middleware.RequestLogger(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	routes.NewRouter(cfg, services, cacheService).SetupRoutes(engine)

	return engine
}
