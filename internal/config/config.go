package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type Config struct {
	Env string

	DBDriver    string
	DatabaseURL string

	RedisAddr        string
	RedisUsername    string
	RedisPassword    string
	RedisDB          int
	RedisDialTimeout time.Duration

	SessionStore     string
	SessionKeyPrefix string
	SessionTTL       time.Duration

	AuthMinPasswordLength int
	Argon2Time            int
	Argon2MemoryKiB       int
	Argon2Threads         int

	HealthCheckTimeout time.Duration

	OTELServiceName           string
	OTELEnvironment           string
	OTELExporterOTLPEndpoint  string
	OTELExporterOTLPInsecure  bool
	OTELMetricsExportInterval time.Duration
	OTELTraceSamplingRatio    float64
	OTELMetricsEnabled        bool
	OTELTracingEnabled        bool
	OTELLogsEnabled           bool
	OTELLogLevel              string
}

func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")
	localLike := isLocalLikeEnv(env)

	cfg := &Config{
		Env:                   env,
		DBDriver:              strings.ToLower(getEnv("DB_DRIVER", DBDriverPostgres)),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisUsername:         os.Getenv("REDIS_USERNAME"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		SessionStore:          strings.ToLower(getEnv("SESSION_STORE", SessionStoreRedis)),
		SessionKeyPrefix:      getEnv("SESSION_KEY_PREFIX", "invoice:sess"),
		AuthMinPasswordLength: getEnvInt("AUTH_MIN_PASSWORD_LENGTH", 8),
		Argon2Time:            getEnvInt("AUTH_ARGON2_TIME", 3),
		Argon2MemoryKiB:       getEnvInt("AUTH_ARGON2_MEMORY_KIB", 64*1024),
		Argon2Threads:         getEnvInt("AUTH_ARGON2_THREADS", 2),

		OTELServiceName:          getEnv("OTEL_SERVICE_NAME", "invoice-creator"),
		OTELEnvironment:          getEnv("OTEL_ENVIRONMENT", env),
		OTELExporterOTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTELExporterOTLPInsecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OTELTraceSamplingRatio:   getEnvFloat("OTEL_TRACE_SAMPLING_RATIO", 1.0),
		OTELMetricsEnabled:       getEnvBool("OTEL_METRICS_ENABLED", !localLike),
		OTELTracingEnabled:       getEnvBool("OTEL_TRACING_ENABLED", !localLike),
		OTELLogsEnabled:          getEnvBool("OTEL_LOGS_ENABLED", !localLike),
		OTELLogLevel:             strings.ToLower(getEnv("OTEL_LOG_LEVEL", "info")),
	}

	var err error
	if cfg.RedisDialTimeout, err = time.ParseDuration(getEnv("REDIS_DIAL_TIMEOUT", "5s")); err != nil {
		return nil, fmt.Errorf("parse REDIS_DIAL_TIMEOUT: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("parse SESSION_TTL: %w", err)
	}
	if cfg.HealthCheckTimeout, err = time.ParseDuration(getEnv("HEALTH_CHECK_TIMEOUT", "2s")); err != nil {
		return nil, fmt.Errorf("parse HEALTH_CHECK_TIMEOUT: %w", err)
	}
	if cfg.OTELMetricsExportInterval, err = time.ParseDuration(getEnv("OTEL_METRICS_EXPORT_INTERVAL", "10s")); err != nil {
		return nil, fmt.Errorf("parse OTEL_METRICS_EXPORT_INTERVAL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string
	switch c.DBDriver {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		errs = append(errs, "DB_DRIVER must be one of postgres, sqlite")
	}
	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	switch c.SessionStore {
	case SessionStoreRedis:
		if c.RedisAddr == "" {
			errs = append(errs, "REDIS_ADDR is required when SESSION_STORE=redis")
		}
	case SessionStoreMemory:
	default:
		errs = append(errs, "SESSION_STORE must be one of redis, memory")
	}
	if c.SessionTTL <= 0 || c.SessionTTL > 30*24*time.Hour {
		errs = append(errs, "SESSION_TTL must be between 1s and 30d")
	}
	if c.RedisDB < 0 {
		errs = append(errs, "REDIS_DB must be >= 0")
	}
	if c.AuthMinPasswordLength < 1 {
		errs = append(errs, "AUTH_MIN_PASSWORD_LENGTH must be > 0")
	}
	if c.Argon2Time < 1 || c.Argon2MemoryKiB < 8*1024 || c.Argon2Threads < 1 || c.Argon2Threads > 255 {
		errs = append(errs, "AUTH_ARGON2_* parameters are out of range")
	}
	if c.HealthCheckTimeout <= 0 {
		errs = append(errs, "HEALTH_CHECK_TIMEOUT must be > 0")
	}
	if (c.OTELMetricsEnabled || c.OTELTracingEnabled || c.OTELLogsEnabled) && c.OTELExporterOTLPEndpoint == "" {
		errs = append(errs, "OTEL_EXPORTER_OTLP_ENDPOINT is required when OTel is enabled")
	}
	if c.OTELTraceSamplingRatio < 0 || c.OTELTraceSamplingRatio > 1 {
		errs = append(errs, "OTEL_TRACE_SAMPLING_RATIO must be between 0 and 1")
	}
	if c.OTELMetricsExportInterval <= 0 {
		errs = append(errs, "OTEL_METRICS_EXPORT_INTERVAL must be > 0")
	}
	if !isValidLogLevel(c.OTELLogLevel) {
		errs = append(errs, "OTEL_LOG_LEVEL must be one of debug, info, warn, error")
	}
	if !isLocalLikeEnv(c.Env) {
		if c.DBDriver == DBDriverSQLite {
			errs = append(errs, "DB_DRIVER=sqlite is only allowed in local environments")
		}
		if c.SessionStore == SessionStoreMemory {
			errs = append(errs, "SESSION_STORE=memory is only allowed in local environments")
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func isLocalLikeEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "development", "dev", "local", "test":
		return true
	default:
		return false
	}
}

func isValidLogLevel(v string) bool {
	switch strings.ToLower(v) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
