package di

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/invoicecreator/invoice-creator/internal/app"
	"github.com/invoicecreator/invoice-creator/internal/config"
	"github.com/invoicecreator/invoice-creator/internal/observability"
	"github.com/invoicecreator/invoice-creator/internal/repository"
	"github.com/invoicecreator/invoice-creator/internal/security"
	"github.com/invoicecreator/invoice-creator/internal/service"
	"github.com/invoicecreator/invoice-creator/internal/session"
)

func localConfigForTest(dsn string) *config.Config {
	return &config.Config{
		Env:                "test",
		DBDriver:           config.DBDriverSQLite,
		DatabaseURL:        dsn,
		SessionStore:       config.SessionStoreMemory,
		SessionKeyPrefix:   "test:sess",
		SessionTTL:         time.Hour,
		Argon2Time:         1,
		Argon2MemoryKiB:    8 * 1024,
		Argon2Threads:      1,
		HealthCheckTimeout: time.Second,
		OTELServiceName:    "invoice-creator-test",
		OTELLogLevel:       "error",
	}
}

func TestProvideSessionStoreFollowsConfig(t *testing.T) {
	cfg := localConfigForTest("file:di_store?mode=memory&cache=shared")
	if client := provideRedisClient(cfg, observability.NewDiscardLogger()); client != nil {
		t.Fatal("expected no redis client for memory sessions")
	}
	if _, ok := provideSessionStore(cfg, nil).(*session.MemoryStore); !ok {
		t.Fatal("expected memory store")
	}

	mr := miniredis.RunT(t)
	cfg.SessionStore = config.SessionStoreRedis
	cfg.RedisAddr = mr.Addr()
	client := provideRedisClient(cfg, observability.NewDiscardLogger())
	if client == nil {
		t.Fatal("expected redis client")
	}
	t.Cleanup(func() { _ = client.Close() })
	if _, ok := provideSessionStore(cfg, client).(*session.RedisStore); !ok {
		t.Fatal("expected redis store")
	}
}

func TestProvidePasswordHasherUsesConfiguredCost(t *testing.T) {
	cfg := localConfigForTest("")
	hasher := providePasswordHasher(cfg)
	encoded, err := hasher.Hash("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	want := "$argon2id$v=19$m=8192,t=1,p=1$"
	if len(encoded) < len(want) || encoded[:len(want)] != want {
		t.Fatalf("expected configured params in %q", encoded)
	}
	if _, ok := hasher.(*security.Argon2idHasher); !ok {
		t.Fatalf("unexpected hasher type %T", hasher)
	}
}

func TestProvidedGraphRunsAuthLifecycle(t *testing.T) {
	cfg := localConfigForTest("file:di_graph?mode=memory&cache=shared")
	db, err := provideRuntimeDB(cfg)
	if err != nil {
		t.Fatalf("runtime db: %v", err)
	}
	logger := observability.NewDiscardLogger()
	store := provideSessionStore(cfg, provideRedisClient(cfg, logger))
	creds := service.NewCredentialStore(repository.NewUserRepository(db), repository.NewLocalCredentialRepository(db))
	clientRepo := repository.NewClientRepository(db)
	services := app.Services{
		Auth:    service.NewAuthService(creds, service.NewIdentitySession(), providePasswordHasher(cfg), logger),
		Clients: service.NewClientService(clientRepo, logger),
		Jobs:    service.NewJobService(repository.NewJobRepository(db), clientRepo, logger),
	}
	a := app.New(cfg, logger, nil, db, nil, store, services, provideReadinessProbeRunner(cfg, db, nil))
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	ctx := context.Background()
	if _, err := a.Auth.Register(ctx, "Alice", "a@b.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	sess := a.Session("")
	if ok, err := a.Auth.Authenticate(ctx, sess, "a@b.com", "pw"); err != nil || !ok {
		t.Fatalf("authenticate: %v %v", ok, err)
	}
	again := a.Session(sess.ID())
	if id, err := a.Auth.GetIdentity(ctx, again); err != nil || id == nil || id.Name != "Alice" {
		t.Fatalf("expected identity on reopened session, got %+v %v", id, err)
	}
	if ready, results := a.Readiness.Ready(ctx); !ready || len(results) != 1 {
		t.Fatalf("expected db probe only and healthy, got %v %+v", ready, results)
	}
}
