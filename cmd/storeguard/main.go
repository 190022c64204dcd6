package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storeguard/internal/config"
	"github.com/kailas-cloud/storeguard/internal/db"
	dbElastic "github.com/kailas-cloud/storeguard/internal/db/elastic"
	dbMongo "github.com/kailas-cloud/storeguard/internal/db/mongo"
	dbOpenSearch "github.com/kailas-cloud/storeguard/internal/db/opensearch"
	dbRedis "github.com/kailas-cloud/storeguard/internal/db/redis"
	"github.com/kailas-cloud/storeguard/internal/domain/credential"
	"github.com/kailas-cloud/storeguard/internal/domain/page"
	logpkg "github.com/kailas-cloud/storeguard/internal/logger"
	"github.com/kailas-cloud/storeguard/internal/metrics"
	orderrepo "github.com/kailas-cloud/storeguard/internal/repository/order"
	searchrepo "github.com/kailas-cloud/storeguard/internal/repository/search"
	"github.com/kailas-cloud/storeguard/internal/repository/searchcache"
	userrepo "github.com/kailas-cloud/storeguard/internal/repository/user"
	chiTransport "github.com/kailas-cloud/storeguard/internal/transport/chi"
	articleuc "github.com/kailas-cloud/storeguard/internal/usecase/article"
	authuc "github.com/kailas-cloud/storeguard/internal/usecase/auth"
	healthuc "github.com/kailas-cloud/storeguard/internal/usecase/health"
	orderuc "github.com/kailas-cloud/storeguard/internal/usecase/order"
	"github.com/kailas-cloud/storeguard/internal/version"
)

func main() {
	// Load configuration based on ENV (.env first, then config/<env>.yaml)
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting storeguard API server",
		zap.String("build", version.String()),
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("build_date", version.Date),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("search_driver", cfg.Search.Driver),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// Fails fast on missing API credentials.
	verifier, err := credential.NewVerifierWithRealm(cfg.Auth.Username, cfg.Auth.Password, cfg.Auth.Realm)
	if err != nil {
		logger.Fatal("Invalid API credentials", zap.Error(err))
	}

	ctx := context.Background()

	// Document store
	store, err := dbMongo.NewStore(ctx, dbMongo.Config{
		URI:            cfg.Mongo.URI,
		Username:       cfg.Mongo.Username,
		Password:       cfg.Mongo.Password,
		AuthSource:     cfg.Mongo.AuthSource,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: time.Duration(cfg.Mongo.ConnectTimeoutSec) * time.Second,
		MaxPoolSize:    cfg.Mongo.MaxPoolSize,
		RetryAttempts:  cfg.Mongo.RetryAttempts,
		RetryInterval:  time.Duration(cfg.Mongo.RetryIntervalSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn("Error closing document store", zap.Error(err))
		}
	}()
	logger.Info("Connected to document store", zap.String("database", cfg.Mongo.Database))

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	searcher, err := buildSearcher(cfg.Search, logger)
	if err != nil {
		logger.Fatal("Failed to create search client", zap.Error(err))
	}

	var articles articleuc.Repository = searchrepo.New(searcher, cfg.Search.Index)

	// Pass nil interface (not typed nil pointer!) when the cache is disabled.
	// Go gotcha: (*dbRedis.Store)(nil) wrapped in healthuc.Pinger != nil.
	var cachePinger healthuc.Pinger
	if cfg.Cache.Enabled {
		cache, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cache.Close()

		if err := cache.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to cache", zap.Strings("addrs", cfg.Cache.Addrs))

		articles = searchcache.New(
			articles, cache, cfg.Search.Index,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.SearchCacheTotal, logger,
		)
		cachePinger = cache
	}

	// Repositories
	users := userrepo.New(store.Collection(userrepo.CollectionName))
	orders := orderrepo.New(store.Collection(orderrepo.CollectionName))

	// Use case services
	authSvc := authuc.New(users)
	orderSvc := orderuc.New(orders, page.Limits{
		DefaultSize: cfg.Pagination.OrdersDefaultSize,
		MaxSize:     cfg.Pagination.OrdersMaxSize,
	})
	articleSvc := articleuc.New(articles, page.Limits{
		DefaultSize: cfg.Pagination.ArticlesDefaultSize,
		MaxSize:     cfg.Pagination.ArticlesMaxSize,
	}, time.Duration(cfg.Search.TimeoutSec)*time.Second)
	healthSvc := healthuc.New(store, searcher, cachePinger)

	server := chiTransport.NewServer(
		authSvc, orderSvc, articleSvc, healthSvc,
		verifier.Challenge(), cfg.HTTP.MaxBodyBytes, logger,
	)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BasicAuthMiddleware(verifier))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildSearcher picks the search driver and wraps it with metrics and error logging.
func buildSearcher(cfg config.SearchConfig, logger *zap.Logger) (db.Searcher, error) {
	var (
		base db.Searcher
		err  error
	)
	switch cfg.Driver {
	case config.DriverOpenSearch:
		base, err = dbOpenSearch.NewSearcher(dbOpenSearch.Config{
			Addresses: cfg.Addresses,
			Username:  cfg.Username,
			Password:  cfg.Password,
		})
	case config.DriverElasticsearch, "":
		base, err = dbElastic.NewSearcher(dbElastic.Config{
			Addresses: cfg.Addresses,
			Username:  cfg.Username,
			Password:  cfg.Password,
		})
	default:
		return nil, fmt.Errorf("unknown search driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s searcher: %w", cfg.Driver, err)
	}
	return articleuc.NewInstrumentedSearcher(base, logger), nil
}
