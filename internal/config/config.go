package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/manosay/manosay/backend/go-services/pkg/logger"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	Mail      MailQueueConfig
	RateLimit RateLimitConfig
	Uploads   UploadsConfig
	MinIO     MinIOConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	Environment    string
	LogLevel       string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// IsProduction reports whether the service runs with production settings
// (secure cookies, mandatory JWT secret).
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

type MongoDBConfig struct {
	URI          string
	Database     string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type JWTConfig struct {
	Secret     string
	SessionTTL time.Duration
}

type SMTPConfig struct {
	Server    string
	Port      int
	Username  string
	Password  string
	Recipient string
}

// Configured reports whether every value needed to relay mail is present.
func (s SMTPConfig) Configured() bool {
	return s.Server != "" && s.Username != "" && s.Password != "" && s.Recipient != ""
}

type MailQueueConfig struct {
	QueueSize int
	Workers   int
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

type UploadsConfig struct {
	StaticDir string
	Dir       string
	MaxBytes  int64
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	PublicURL string
}

// Configured reports whether uploads should go to MinIO instead of local disk.
func (m MinIOConfig) Configured() bool {
	return m.Endpoint != "" && m.AccessKey != "" && m.SecretKey != ""
}

// ErrMissingRequired is returned when a mandatory setting is absent.
var ErrMissingRequired = errors.New("missing required configuration")

// LoadConfig loads configuration from environment variables and an optional .env file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MONGO_TIMEOUT", 5)
	v.SetDefault("MONGO_MAX_RETRIES", 3)
	v.SetDefault("MONGO_RETRY_BACKOFF_MS", 1000)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("JWT_EXP_HOURS", 24)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_QUEUE_SIZE", 64)
	v.SetDefault("MAIL_WORKERS", 2)
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("STATIC_DIR", "static")
	v.SetDefault("UPLOADS_DIR", "static/uploads")
	v.SetDefault("UPLOADS_MAX_BYTES", 5*1024*1024)
	v.SetDefault("MINIO_BUCKET", "manosay-uploads")

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Host:           v.GetString("SERVER_HOST"),
			Environment:    v.GetString("SERVER_ENVIRONMENT"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ReadTimeout:    30 * time.Second,
			// contact mail is relayed in-request with a 30s bound
			WriteTimeout: 45 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:          strings.TrimSpace(v.GetString("MONGO_URI")),
			Database:     strings.TrimSpace(v.GetString("MONGO_DB")),
			Timeout:      time.Duration(v.GetInt("MONGO_TIMEOUT")) * time.Second,
			MaxRetries:   v.GetInt("MONGO_MAX_RETRIES"),
			RetryBackoff: time.Duration(v.GetInt("MONGO_RETRY_BACKOFF_MS")) * time.Millisecond,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			SessionTTL: time.Duration(v.GetInt("JWT_EXP_HOURS")) * time.Hour,
		},
		SMTP: SMTPConfig{
			Server:    v.GetString("SMTP_SERVER"),
			Port:      v.GetInt("SMTP_PORT"),
			Username:  v.GetString("SMTP_USERNAME"),
			Password:  v.GetString("SMTP_PASSWORD"),
			Recipient: v.GetString("RECIPIENT_EMAIL"),
		},
		Mail: MailQueueConfig{
			QueueSize: v.GetInt("MAIL_QUEUE_SIZE"),
			Workers:   v.GetInt("MAIL_WORKERS"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Uploads: UploadsConfig{
			StaticDir: v.GetString("STATIC_DIR"),
			Dir:       v.GetString("UPLOADS_DIR"),
			MaxBytes:  v.GetInt64("UPLOADS_MAX_BYTES"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			PublicURL: v.GetString("MINIO_PUBLIC_URL"),
		},
	}

	if cfg.MongoDB.URI == "" {
		return nil, fmt.Errorf("%w: MONGO_URI", ErrMissingRequired)
	}
	if cfg.MongoDB.Database == "" {
		return nil, fmt.Errorf("%w: MONGO_DB", ErrMissingRequired)
	}
	if cfg.MongoDB.MaxRetries < 1 {
		cfg.MongoDB.MaxRetries = 1
	}
	if cfg.Mail.Workers < 1 {
		cfg.Mail.Workers = 1
	}
	if cfg.JWT.SessionTTL <= 0 {
		cfg.JWT.SessionTTL = 24 * time.Hour
	}

	if cfg.JWT.Secret == "" {
		if cfg.Server.IsProduction() {
			return nil, fmt.Errorf("%w: JWT_SECRET", ErrMissingRequired)
		}
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		cfg.JWT.Secret = secret
		logger.Warnf("JWT_SECRET is not set; using a random per-process secret (sessions will not survive restarts)")
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
