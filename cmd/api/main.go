package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-painel-dengue/internal/config"
	"github.com/prefeitura-rio/app-painel-dengue/internal/handlers"
	"github.com/prefeitura-rio/app-painel-dengue/internal/logging"
	"github.com/prefeitura-rio/app-painel-dengue/internal/middleware"
	"github.com/prefeitura-rio/app-painel-dengue/internal/observability"
	"github.com/prefeitura-rio/app-painel-dengue/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/prefeitura-rio/app-painel-dengue/docs"
)

// @title           Painel Dengue API
// @version         1.0
// @description     Painel de notificações de dengue do SINAN. Filtra os casos por sexo, faixa etária, município, evolução, classificação, hospitalização, raça/cor, gestação e período de notificação e devolve indicadores, gráficos e planilhas.

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8050
// @BasePath  /v1

// @tag.name dashboard
// @tag.description Filtros, indicadores e gráficos do painel

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logging.Sync()

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.AppConfig

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize database connections
	if cfg.DataSource == config.DataSourceMongo {
		if err := config.InitMongoDB(); err != nil {
			logging.Logger.Fatal("failed to initialize MongoDB", zap.Error(err))
		}
	}
	if cfg.RedisEnabled {
		if err := config.InitRedis(); err != nil {
			logging.Logger.Warn("redis unavailable, serving without result cache", zap.Error(err))
		}
	}

	// Load the dataset once; every request filters this copy
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Minute)
	dataset, err := services.LoadDataset(loadCtx, cfg, config.MongoDB)
	cancelLoad()
	if err != nil {
		logging.Logger.Fatal("failed to load dataset", zap.Error(err))
	}
	logging.Logger.Info("dataset ready",
		zap.String("source", dataset.Source()),
		zap.Int("rows", dataset.Len()),
		zap.String("fingerprint", dataset.Fingerprint()),
	)

	var cache services.ResultCache
	if config.Redis != nil {
		redisCache := services.NewRedisDashboardCache(config.Redis, cfg.RedisTTL)
		purgeCtx, cancelPurge := context.WithTimeout(context.Background(), 10*time.Second)
		if purged, err := redisCache.PurgeStale(purgeCtx, dataset.Fingerprint()); err != nil {
			logging.Logger.Warn("failed to purge stale dashboard cache", zap.Error(err))
		} else if purged > 0 {
			logging.Logger.Info("purged stale dashboard cache", zap.Int64("keys", purged))
		}
		cancelPurge()
		cache = redisCache
	}
	dashboard := handlers.NewDashboardHandlers(services.NewDashboardService(dataset, cache), config.Redis)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	corsMiddleware := cors.Default()
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsMiddleware = cors.New(corsConfig)
	}

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		middleware.RequestTiming(),
		corsMiddleware,
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Dashboard page and API v1 routes
	handlers.RegisterRoutes(router, dashboard)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
	}
	config.CloseConnections(ctx)

	logging.Logger.Info("server exited gracefully")
}
