package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Env:                       "development",
		DBDriver:                  DBDriverPostgres,
		DatabaseURL:               "postgres://x",
		RedisAddr:                 "localhost:6379",
		SessionStore:              SessionStoreRedis,
		SessionTTL:                24 * time.Hour,
		AuthMinPasswordLength:     8,
		Argon2Time:                3,
		Argon2MemoryKiB:           64 * 1024,
		Argon2Threads:             2,
		HealthCheckTimeout:        time.Second,
		OTELTraceSamplingRatio:    1.0,
		OTELMetricsExportInterval: 10 * time.Second,
		OTELLogLevel:              "info",
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}
}

func TestValidateProdProfileStrictRules(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.DBDriver = DBDriverSQLite
	cfg.SessionStore = SessionStoreMemory

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected strict prod validation errors")
	}
	for _, want := range []string{"DB_DRIVER=sqlite", "SESSION_STORE=memory"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestValidateDevelopmentProfileAllowsRelaxedSettings(t *testing.T) {
	cfg := validConfig()
	cfg.DBDriver = DBDriverSQLite
	cfg.DatabaseURL = "file:dev.db"
	cfg.SessionStore = SessionStoreMemory
	cfg.RedisAddr = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected relaxed dev validation to pass: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"DB_DRIVER":                   func(c *Config) { c.DBDriver = "mysql" },
		"DATABASE_URL":                func(c *Config) { c.DatabaseURL = "" },
		"REDIS_ADDR":                  func(c *Config) { c.RedisAddr = "" },
		"SESSION_STORE":               func(c *Config) { c.SessionStore = "cookie" },
		"SESSION_TTL":                 func(c *Config) { c.SessionTTL = 0 },
		"AUTH_MIN_PASSWORD_LENGTH":    func(c *Config) { c.AuthMinPasswordLength = 0 },
		"AUTH_ARGON2_":                func(c *Config) { c.Argon2MemoryKiB = 1 },
		"OTEL_TRACE_SAMPLING_RATIO":   func(c *Config) { c.OTELTraceSamplingRatio = 2 },
		"OTEL_LOG_LEVEL":              func(c *Config) { c.OTELLogLevel = "verbose" },
		"OTEL_EXPORTER_OTLP_ENDPOINT": func(c *Config) { c.OTELTracingEnabled = true; c.OTELExporterOTLPEndpoint = "" },
	}
	for key, mutate := range cases {
		t.Run(key, func(t *testing.T) {
			cfg := validConfig()
			mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), key) {
				t.Fatalf("expected error mentioning %s, got %v", key, err)
			}
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("AUTH_MIN_PASSWORD_LENGTH", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SessionTTL != 2*time.Hour || cfg.AuthMinPasswordLength != 10 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.OTELTracingEnabled || cfg.OTELMetricsEnabled || cfg.OTELLogsEnabled {
		t.Fatal("expected otel exporters disabled by default in test env")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://x")
	t.Setenv("SESSION_TTL", "forever")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "SESSION_TTL") {
		t.Fatalf("expected SESSION_TTL parse error, got %v", err)
	}
}
