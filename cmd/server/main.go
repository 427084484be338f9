package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/velamo/remitroute/internal/cache"
	"github.com/velamo/remitroute/internal/config"
	"github.com/velamo/remitroute/internal/database"
	"github.com/velamo/remitroute/internal/events"
	"github.com/velamo/remitroute/internal/handler"
	"github.com/velamo/remitroute/internal/metrics"
	"github.com/velamo/remitroute/internal/middleware"
	"github.com/velamo/remitroute/internal/quotestore"
	"github.com/velamo/remitroute/internal/repository"
	"github.com/velamo/remitroute/internal/service"
)

const rateCacheWindow = 60 * time.Second

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		if err := database.SeedData(context.Background(), pool); err != nil {
			log.Fatal().Err(err).Msg("failed to seed data")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	svcMetrics := metrics.New(reg)

	// Repositories
	corridorRepo := repository.NewCorridorRepository(pool)
	providerRepo := repository.NewProviderRepository(pool)
	rateRepo := repository.NewRateRepository(pool)
	capacityRepo := repository.NewCapacityRepository(pool)
	agentFeeRepo := repository.NewAgentFeeRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)
	quoteRepo := repository.NewQuoteRepository(pool)
	txnRepo := repository.NewTransactionRepository(pool)
	flowRepo := repository.NewFlowRepository(pool)

	// Caches and core services
	corridorCache := cache.NewCorridorCache()
	providerCache := cache.NewProviderCache()
	rateCache := cache.NewRateCache(rateCacheWindow)

	registry := service.NewRegistry(corridorRepo, providerRepo, corridorCache, providerCache)
	rateService := service.NewRateService(rateRepo, registry, rateCache, svcMetrics)
	capacityOracle := service.NewCapacityOracle(capacityRepo)
	feeCalculator := service.NewFeeCalculator(agentFeeRepo)
	optimizer := service.NewOptimizer(registry, rateService, capacityOracle, feeCalculator, historyRepo, svcMetrics)

	quoteStore := newQuoteStore(cfg)
	quoteService := service.NewQuoteService(optimizer, quoteStore, quoteRepo, txnRepo, capacityOracle, svcMetrics)
	forecaster := service.NewForecaster(flowRepo)

	// Update-event subscription for cache invalidation
	runCtx, stop := context.WithCancel(context.Background())
	defer stop()
	if len(cfg.KafkaBrokers) > 0 {
		subscriber := events.NewSubscriber(cfg.KafkaBrokers, "remitroute")
		subscriber.OnCorridorChanged(registry.OnCorridorChanged)
		subscriber.OnProviderChanged(registry.OnProviderChanged)
		subscriber.OnRateChanged(rateService.OnRateChanged)
		go subscriber.Run(runCtx)
		log.Info().Strs("brokers", cfg.KafkaBrokers).Msg("update-event subscriber started")
	} else {
		log.Warn().Msg("no kafka brokers configured, caches rely on freshness windows only")
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(pool)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	routeHandler := handler.NewRouteHandler(quoteService)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	forecastHandler := handler.NewForecastHandler(forecaster)

	api := router.Group("/api/v1")
	{
		api.POST("/routes/optimize", routeHandler.Optimize)
		api.GET("/quotes/:id", quoteHandler.Get)
		api.POST("/quotes/:id/execute", quoteHandler.Execute)
		api.GET("/forecast/cashflow", forecastHandler.GetCashFlow)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	stop()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func newQuoteStore(cfg *config.Config) quotestore.Store {
	if cfg.RedisAddr == "" {
		log.Warn().Msg("no redis configured, using in-memory quote store")
		return quotestore.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to redis")
	}
	return quotestore.NewRedisStore(client)
}
