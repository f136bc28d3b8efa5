// Command booruindexd loads the full post corpus into memory, serves
// search over HTTP, and keeps the in-memory copy current via a Redis
// change-feed.
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/edirooss/booru-index/internal/booru"
	"github.com/edirooss/booru-index/internal/changefeed"
	"github.com/edirooss/booru-index/internal/httpapi"
	"github.com/edirooss/booru-index/internal/ingest"
)

func main() {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	log := zap.Must(logConfig.Build())
	defer log.Sync()
	log = log.Named("main")

	ctx := context.Background()

	pgURL := os.Getenv("BOORU_POSTGRES_URL")
	if pgURL == "" {
		pgURL = "postgres://localhost:5432/booru"
	}
	pool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		log.Fatal("postgres pool creation failed", zap.Error(err))
	}
	defer pool.Close()

	loadStart := time.Now()
	posts, err := ingest.LoadAll(ctx, pool)
	if err != nil {
		log.Fatal("bulk load failed", zap.Error(err))
	}
	log.Info("bulk load complete", zap.Int("posts", len(posts)), zap.Duration("elapsed", time.Since(loadStart)))

	store := booru.BuildDatabase(posts)
	svc := httpapi.NewService(store)

	redisAddr := os.Getenv("BOORU_REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         redisAddr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
	})
	defer rdb.Close()

	postIDIndex := changefeed.NewPostIDIndex(posts)
	listener := changefeed.NewListener(rdb, log, svc.Mutex(), svc.Store(), postIDIndex)

	listenerCtx, cancelListener := context.WithCancel(ctx)
	defer cancelListener()
	go func() {
		if err := listener.Run(listenerCtx); err != nil && listenerCtx.Err() == nil {
			log.Error("change-feed listener stopped", zap.Error(err))
		}
	}()

	r := httpapi.NewRouter(svc, log)

	addr := os.Getenv("BOORU_LISTEN_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	httpserver := &http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 15,
		ErrorLog:       zap.NewStdLog(log.Named("http").WithOptions(zap.AddCallerSkip(1))),
	}

	log.Info("running HTTP server", zap.String("addr", addr))
	if err := httpserver.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server failed", zap.Error(err))
	}
}
