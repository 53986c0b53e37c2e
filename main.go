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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/manosay/manosay/backend/go-services/internal/accounts"
	"github.com/manosay/manosay/backend/go-services/internal/config"
	"github.com/manosay/manosay/backend/go-services/internal/credentials"
	"github.com/manosay/manosay/backend/go-services/internal/database"
	"github.com/manosay/manosay/backend/go-services/internal/leads"
	"github.com/manosay/manosay/backend/go-services/internal/mailer"
	"github.com/manosay/manosay/backend/go-services/internal/posts"
	"github.com/manosay/manosay/backend/go-services/internal/sessions"
	"github.com/manosay/manosay/backend/go-services/internal/storage"
	"github.com/manosay/manosay/backend/go-services/internal/uploads"
	"github.com/manosay/manosay/backend/go-services/pkg/logger"
	"github.com/manosay/manosay/backend/go-services/pkg/metrics"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// LOG_LEVEL is read again from config below; this covers config errors
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Server.LogLevel)
	logger.Infof("config loaded: env=%s mongo_db=%s redis=%v smtp=%v minio=%v",
		cfg.Server.Environment, cfg.MongoDB.Database, cfg.Redis.Addr() != "", cfg.SMTP.Configured(), cfg.MinIO.Configured())
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := database.New(database.Options{
		URI:      cfg.MongoDB.URI,
		Database: cfg.MongoDB.Database,
		Timeout:  cfg.MongoDB.Timeout,
		Policy:   database.RetryPolicy{MaxRetries: cfg.MongoDB.MaxRetries, BaseBackoff: cfg.MongoDB.RetryBackoff},
	})
	if err := store.Connect(ctx); err != nil {
		logger.Fatalf("document store unavailable: %v", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Warnf("ensure indexes: %v", err)
	}

	rdb := connectRedis(ctx, cfg.Redis)

	hasher := credentials.NewHasher(credentials.DefaultCost, 0)
	issuer := credentials.NewTokenIssuer(cfg.JWT.Secret, nil)
	var revoked sessions.Revoker
	if rdb != nil {
		revoked = sessions.NewRevocations(rdb)
	}
	sessionMgr := sessions.NewManager(issuer, revoked, cfg.JWT.SessionTTL)

	relay := mailer.NewRelay(cfg.SMTP)
	queue := mailer.NewQueue(relay, cfg.Mail.QueueSize, cfg.Mail.Workers, nil)

	objects, err := newStorage(ctx, cfg)
	if err != nil {
		logger.Fatalf("upload storage: %v", err)
	}

	svc := services{
		accounts: accounts.NewService(accounts.NewMongoRepository(store), hasher),
		posts:    posts.NewService(posts.NewMongoRepository(store)),
		leads:    leads.NewService(leads.NewMongoRepository(store), queue),
		uploads:  uploads.NewService(objects, cfg.Uploads.MaxBytes),
		sessions: sessionMgr,
		issuer:   issuer,
		relay:    relay,
		store:    store,
		redis:    rdb,
	}
	r := newRouter(cfg, svc)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting manosay site on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
	if err := queue.Close(shutdownCtx); err != nil {
		logger.Warnf("mail queue not drained: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := store.Disconnect(shutdownCtx); err != nil {
		logger.Errorf("disconnect document store: %v", err)
	}
	logger.Infof("stopped")
}

// connectRedis returns a client, or nil when Redis is not configured or
// does not answer. Redis only backs optional features.
func connectRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	addr := cfg.Addr()
	if addr == "" {
		return nil
	}
	c := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Password, DB: cfg.DB})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		logger.Warnf("redis %s unavailable, continuing without it: %v", addr, err)
		_ = c.Close()
		return nil
	}
	logger.Infof("connected to redis %s", addr)
	return c
}

// newStorage picks MinIO when configured, else the local static directory.
func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.MinIO.Configured() {
		s, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		logger.Infof("uploads go to minio bucket %s", cfg.MinIO.Bucket)
		return s, nil
	}
	return storage.NewLocalStorage(cfg.Uploads.Dir, storage.PublicPrefix(cfg.Uploads.StaticDir, cfg.Uploads.Dir))
}
