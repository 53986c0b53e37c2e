package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/manosay/manosay/backend/go-services/handlers"
	"github.com/manosay/manosay/backend/go-services/internal/accounts"
	"github.com/manosay/manosay/backend/go-services/internal/config"
	"github.com/manosay/manosay/backend/go-services/internal/credentials"
	"github.com/manosay/manosay/backend/go-services/internal/leads"
	"github.com/manosay/manosay/backend/go-services/internal/mailer"
	"github.com/manosay/manosay/backend/go-services/internal/posts"
	"github.com/manosay/manosay/backend/go-services/internal/sessions"
	"github.com/manosay/manosay/backend/go-services/internal/uploads"
	"github.com/manosay/manosay/backend/go-services/pkg/middleware"
	"github.com/manosay/manosay/backend/go-services/web"
)

var startTime = time.Now()

// services are the collaborators the HTTP surface is built from.
type services struct {
	accounts *accounts.Service
	posts    *posts.Service
	leads    *leads.Service
	uploads  *uploads.Service
	sessions *sessions.Manager
	issuer   *credentials.TokenIssuer
	relay    mailer.Relay
	store    handlers.HealthChecker
	redis    *redis.Client
}

func newRouter(cfg *config.Config, svc services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if len(cfg.Server.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	}
	r.SetHTMLTemplate(web.MustTemplates())
	r.MaxMultipartMemory = cfg.Uploads.MaxBytes
	if cfg.Uploads.StaticDir != "" {
		r.Static("/static", cfg.Uploads.StaticDir)
	}

	limit := rateLimiter(cfg.RateLimit, svc.redis)

	handlers.NewSiteHandler(svc.posts).Register(r)
	handlers.NewAdminHandler(svc.accounts, svc.posts, svc.uploads, svc.sessions, cfg.Server.IsProduction()).Register(r, limit)
	handlers.NewAPIHandler(svc.accounts, svc.leads, svc.relay, svc.issuer, cfg.JWT.SessionTTL, svc.store).Register(r, limit)
	handlers.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	// readiness: the document store must answer; redis only when the limiter depends on it
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{"store": svc.store != nil && svc.store.HealthCheck(c.Request.Context())}
		ready := deps["store"]
		if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
			deps["redis"] = svc.redis != nil && svc.redis.Ping(c.Request.Context()).Err() == nil
			ready = ready && deps["redis"]
		}
		body := gin.H{"deps": deps, "uptime": time.Since(startTime).Round(time.Second).String()}
		if !ready {
			body["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["status"] = "ready"
		c.JSON(http.StatusOK, body)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// rateLimiter returns the limiter for form and credential endpoints, or nil
// when rate limiting is disabled.
func rateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) gin.HandlerFunc {
	if !cfg.Enabled {
		return nil
	}
	if cfg.UseRedis && rdb != nil {
		return middleware.RedisRateLimitMiddleware(rdb, cfg.RPS, cfg.Burst, time.Duration(cfg.WindowSeconds)*time.Second)
	}
	return middleware.RateLimitMiddleware(cfg.RPS, cfg.Burst)
}
