package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bastionhq/bastion/internal/api"
	"github.com/bastionhq/bastion/internal/cache"
	"github.com/bastionhq/bastion/internal/config"
	"github.com/bastionhq/bastion/internal/db"
	"github.com/bastionhq/bastion/internal/logging"
	"github.com/bastionhq/bastion/internal/middleware"
	"github.com/bastionhq/bastion/internal/services"
)

func main() {
	cfg := config.Load()

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		os.Stderr.WriteString("logger init: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store, err := db.Open(cfg.SQLitePath)
	if err != nil {
		log.Fatal("open database", zap.String("path", cfg.SQLitePath), zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	var kv services.LeaderboardCache
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisKV, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		cancel()
		if err != nil {
			log.Fatal("connect redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer func() { _ = redisKV.Close() }()
		kv = redisKV
		log.Info("leaderboard cache", zap.String("backend", "redis"), zap.String("addr", cfg.RedisAddr))
	} else {
		kv = cache.NewMemory()
		log.Info("leaderboard cache", zap.String("backend", "memory"))
	}

	mux := http.NewServeMux()
	api.NewRouter(store, kv, log).Register(mux)

	var handler http.Handler = mux
	handler = middleware.WithAuth(handler)
	handler = middleware.NoStore(handler)
	handler = middleware.SecureHeaders(handler)
	handler = middleware.CORS(cfg.CORSOrigins)(handler)
	handler = middleware.RequestLog(log)(handler)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("db", cfg.SQLitePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
