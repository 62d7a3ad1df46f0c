package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	syncapp "github.com/stockie/backend/internal/application/sync"
	tradeapp "github.com/stockie/backend/internal/application/trade"
	"github.com/stockie/backend/internal/domain/integration"
	"github.com/stockie/backend/internal/infrastructure/cache"
	"github.com/stockie/backend/internal/infrastructure/config"
	"github.com/stockie/backend/internal/infrastructure/logger"
	"github.com/stockie/backend/internal/infrastructure/marketplace"
	"github.com/stockie/backend/internal/infrastructure/persistence"
	"github.com/stockie/backend/internal/infrastructure/scheduler"
	"github.com/stockie/backend/internal/interfaces/http/handler"
	"github.com/stockie/backend/internal/interfaces/http/middleware"
	"github.com/stockie/backend/internal/interfaces/http/router"
)

func main() {
	// -----------------------------------------------------------------------
	// Configuration and logging
	// -----------------------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("Starting Stockie Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// -----------------------------------------------------------------------
	// Database
	// -----------------------------------------------------------------------
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	// -----------------------------------------------------------------------
	// Repositories
	// -----------------------------------------------------------------------
	credentialRepo := persistence.NewGormCredentialRepository(db.DB)
	brandMirrorRepo := persistence.NewGormBrandMirrorRepository(db.DB)
	categoryMirrorRepo := persistence.NewGormCategoryMirrorRepository(db.DB)
	attributeMirrorRepo := persistence.NewGormCategoryAttributeRepository(db.DB)
	addressMirrorRepo := persistence.NewGormAddressMirrorRepository(db.DB)
	productMirrorRepo := persistence.NewGormProductMirrorRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// -----------------------------------------------------------------------
	// Sync job guard: Redis when available, process-local otherwise
	// -----------------------------------------------------------------------
	var jobGuard syncapp.JobGuard
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		jobGuard = cache.NewRedisJobGuard(redisClient)
		log.Info("Redis job guard enabled",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		jobGuard = cache.NewInMemoryJobGuard()
		log.Info("Using in-memory job guard")
	}

	// -----------------------------------------------------------------------
	// Marketplace adapter
	// -----------------------------------------------------------------------
	trendyolCfg := marketplace.NewTrendyolConfig()
	if cfg.Trendyol.APIBaseURL != "" {
		trendyolCfg.APIBaseURL = cfg.Trendyol.APIBaseURL
	}
	if cfg.Trendyol.UserAgent != "" {
		trendyolCfg.UserAgent = cfg.Trendyol.UserAgent
	}
	if cfg.Trendyol.TimeoutSeconds > 0 {
		trendyolCfg.TimeoutSeconds = cfg.Trendyol.TimeoutSeconds
	}
	trendyol, err := marketplace.NewTrendyolAdapter(trendyolCfg, log)
	if err != nil {
		log.Fatal("Failed to create Trendyol adapter", zap.Error(err))
	}

	// -----------------------------------------------------------------------
	// Application services
	// -----------------------------------------------------------------------
	clock := syncapp.NewClock()
	pagerCfg := syncapp.DefaultPagerConfig()
	if cfg.Sync.PageSize > 0 {
		pagerCfg.PageSize = cfg.Sync.PageSize
	}
	if cfg.Sync.MaxAttempts > 0 {
		pagerCfg.MaxAttempts = cfg.Sync.MaxAttempts
	}
	if cfg.Sync.RetryBackoff > 0 {
		pagerCfg.RetryDelay = cfg.Sync.RetryBackoff
	}
	if cfg.Sync.CooldownEvery > 0 {
		pagerCfg.CooldownEvery = cfg.Sync.CooldownEvery
	}
	if cfg.Sync.Cooldown > 0 {
		pagerCfg.Cooldown = cfg.Sync.Cooldown
	}
	pager := syncapp.NewPager(pagerCfg, clock, log)

	platform := integration.PlatformCodeTrendyol
	brandSync := syncapp.NewBrandSyncService(platform, credentialRepo, trendyol, brandMirrorRepo, jobGuard, pager, clock, log)
	categorySync := syncapp.NewCategorySyncService(platform, credentialRepo, trendyol, categoryMirrorRepo, jobGuard, pager, clock, log)
	attributeSync := syncapp.NewAttributeSyncService(platform, credentialRepo, trendyol, categoryMirrorRepo, attributeMirrorRepo, jobGuard, pager, clock, log)
	addressSync := syncapp.NewAddressSyncService(platform, credentialRepo, trendyol, addressMirrorRepo, jobGuard, clock, log)
	productSync := syncapp.NewProductSyncService(platform, credentialRepo, trendyol, productMirrorRepo, productRepo, jobGuard, pager, clock, log)
	orderSync := syncapp.NewOrderSyncService(platform, credentialRepo, trendyol, orderRepo, jobGuard, pager, clock, log, cfg.Sync.OrderWindowDays)

	orderQueries := tradeapp.NewOrderQueryService(orderRepo, log)
	orderPush := tradeapp.NewOrderPushService(platform, credentialRepo, trendyol, orderRepo, log)

	// -----------------------------------------------------------------------
	// Periodic order sync
	// -----------------------------------------------------------------------
	schedulerCfg := scheduler.DefaultConfig()
	schedulerCfg.Enabled = cfg.Scheduler.Enabled
	if cfg.Scheduler.OrderSyncInterval > 0 {
		schedulerCfg.Interval = cfg.Scheduler.OrderSyncInterval
	}
	orderScheduler, err := scheduler.NewOrderSyncScheduler(schedulerCfg, orderSync, log)
	if err != nil {
		log.Fatal("Failed to create order sync scheduler", zap.Error(err))
	}
	if err := orderScheduler.Start(context.Background()); err != nil {
		log.Fatal("Failed to start order sync scheduler", zap.Error(err))
	}

	// -----------------------------------------------------------------------
	// HTTP server
	// -----------------------------------------------------------------------
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	corsCfg.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/healthz", healthHandler(db, log))
	engine.GET("/health", healthHandler(db, log))

	syncHandler := handler.NewMarketplaceSyncHandler(
		brandSync, categorySync, attributeSync, addressSync, productSync, orderSync,
		addressSync, orderScheduler,
	)
	orderHandler := handler.NewOrderHandler(orderQueries, orderPush)
	systemHandler := handler.NewSystemHandler()

	systemRoutes := router.NewDomainGroup("system", "/system").
		GET("/info", systemHandler.GetSystemInfo).
		GET("/ping", systemHandler.Ping)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(syncHandler).
		Register(orderHandler).
		Register(systemRoutes).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// -----------------------------------------------------------------------
	// Graceful shutdown
	// -----------------------------------------------------------------------
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := orderScheduler.Stop(shutdownCtx); err != nil {
		log.Error("Scheduler shutdown failed", zap.Error(err))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}

	log.Info("Server stopped")
}

func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			log.Error("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
