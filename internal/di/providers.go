package di

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/invoicecreator/invoice-creator/internal/app"
	"github.com/invoicecreator/invoice-creator/internal/config"
	"github.com/invoicecreator/invoice-creator/internal/database"
	"github.com/invoicecreator/invoice-creator/internal/health"
	"github.com/invoicecreator/invoice-creator/internal/observability"
	"github.com/invoicecreator/invoice-creator/internal/repository"
	"github.com/invoicecreator/invoice-creator/internal/security"
	"github.com/invoicecreator/invoice-creator/internal/service"
	"github.com/invoicecreator/invoice-creator/internal/session"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(
	provideObservabilityRuntime,
	provideAppLogger,
)

var RuntimeInfraSet = wire.NewSet(
	provideRuntimeDB,
	provideRedisClient,
	provideSessionStore,
	provideReadinessProbeRunner,
)

var RepositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewLocalCredentialRepository,
	repository.NewClientRepository,
	repository.NewJobRepository,
)

var SecuritySet = wire.NewSet(providePasswordHasher)

var ServiceSet = wire.NewSet(
	service.NewCredentialStore,
	wire.Bind(new(service.CredentialStore), new(*service.GormCredentialStore)),
	service.NewIdentitySession,
	service.NewAuthService,
	service.NewClientService,
	service.NewJobService,
	wire.Struct(new(app.Services), "*"),
)

var AppSet = wire.NewSet(app.New)

func provideObservabilityRuntime(cfg *config.Config) (*observability.Runtime, error) {
	bootstrapLogger := observability.NewBootstrapLogger(cfg)
	return observability.InitRuntime(context.Background(), cfg, bootstrapLogger)
}

// provideAppLogger writes to stderr so command output on stdout stays
// machine readable.
func provideAppLogger(cfg *config.Config, runtime *observability.Runtime) *slog.Logger {
	return observability.InitLogger(cfg, os.Stderr, runtime.LoggerProvider)
}

func provideRuntimeDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}

// provideRedisClient returns nil when sessions are kept in memory.
func provideRedisClient(cfg *config.Config, logger *slog.Logger) redis.UniversalClient {
	if cfg.SessionStore != config.SessionStoreRedis {
		return nil
	}
	client := session.NewRedisClient(cfg)
	observability.InstrumentRedisClient(client, logger)
	return client
}

func provideSessionStore(cfg *config.Config, client redis.UniversalClient) session.Store {
	if client == nil {
		return session.NewMemoryStore(cfg.SessionTTL)
	}
	return session.NewRedisStore(client, cfg.SessionKeyPrefix, cfg.SessionTTL)
}

func providePasswordHasher(cfg *config.Config) security.PasswordHasher {
	params := security.DefaultArgon2Params()
	params.Time = uint32(cfg.Argon2Time)        // #nosec G115 -- range checked by config.Validate.
	params.Memory = uint32(cfg.Argon2MemoryKiB) // #nosec G115 -- range checked by config.Validate.
	params.Threads = uint8(cfg.Argon2Threads)   // #nosec G115 -- range checked by config.Validate.
	return security.NewArgon2idHasher(params)
}

func provideReadinessProbeRunner(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient) *health.ProbeRunner {
	return health.NewProbeRunner(cfg.HealthCheckTimeout, health.NewDBChecker(db), health.NewRedisChecker(redisClient))
}
