package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/flossdex/internal/config"
	"github.com/kailas-cloud/flossdex/internal/db"
	"github.com/kailas-cloud/flossdex/internal/db/memory"
	dbRedis "github.com/kailas-cloud/flossdex/internal/db/redis"
	logpkg "github.com/kailas-cloud/flossdex/internal/logger"
	"github.com/kailas-cloud/flossdex/internal/metrics"
	"github.com/kailas-cloud/flossdex/internal/palette"
	collectionrepo "github.com/kailas-cloud/flossdex/internal/repository/collection"
	chiTransport "github.com/kailas-cloud/flossdex/internal/transport/chi"
	collectionuc "github.com/kailas-cloud/flossdex/internal/usecase/collection"
	healthuc "github.com/kailas-cloud/flossdex/internal/usecase/health"
	nearestuc "github.com/kailas-cloud/flossdex/internal/usecase/nearest"
	"github.com/kailas-cloud/flossdex/internal/usecase/neighbor"
	searchuc "github.com/kailas-cloud/flossdex/internal/usecase/search"
	"github.com/kailas-cloud/flossdex/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting flossdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	pal, err := palette.Open(cfg.Palette.Path)
	if err != nil {
		logger.Fatal("Failed to load palette", zap.Error(err))
	}
	logger.Info("Palette loaded", zap.String("path", cfg.Palette.Path), zap.Int("flosses", pal.Len()))

	store, err := newStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	dispatcher := searchuc.NewDispatcher(pal, neighbor.NewEngine(logger), searchuc.Config{
		Workers:   cfg.Search.Workers,
		QueueSize: cfg.Search.QueueSize,
	}, logger)
	defer dispatcher.Close()
	logger.Info("Search channel started",
		zap.Int("workers", cfg.Search.Workers),
		zap.Int("queue_size", cfg.Search.QueueSize),
		zap.Uint64("max_candidates", cfg.Search.MaxCandidates),
	)

	collSvc := collectionuc.New(collectionrepo.New(store, cfg.Storage.KeyPrefix), pal)
	nearestSvc := nearestuc.New(dispatcher, collSvc, pal, nearestuc.Config{
		MaxCandidates: cfg.Search.MaxCandidates,
		Timeout:       time.Duration(cfg.Search.TimeoutSec) * time.Second,
	})
	healthSvc := healthuc.New(store, dispatcher)

	server := chiTransport.NewServer(pal, collSvc, nearestSvc, healthSvc, chiTransport.SearchDefaults{
		MaxBlendSize:   cfg.Search.DefaultMaxBlendSize,
		ResultLimit:    cfg.Search.DefaultResultLimit,
		MaxResultLimit: cfg.Search.MaxResultLimit,
		MaxCandidates:  cfg.Search.MaxCandidates,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

	logger.Info("Server stopped gracefully", zap.Int("abandoned_searches", dispatcher.InFlight()))
}

// newStore opens the collection store for the configured driver. Redis and Valkey
// share the rueidis-backed store.
func newStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverRedis, config.DriverValkey:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("%s store: %w", cfg.Driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
