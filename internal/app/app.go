package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/invoicecreator/invoice-creator/internal/config"
	"github.com/invoicecreator/invoice-creator/internal/database"
	"github.com/invoicecreator/invoice-creator/internal/health"
	"github.com/invoicecreator/invoice-creator/internal/observability"
	"github.com/invoicecreator/invoice-creator/internal/service"
	"github.com/invoicecreator/invoice-creator/internal/session"
)

type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	Observability *observability.Runtime
	DB            *gorm.DB
	Redis         redis.UniversalClient
	Sessions      session.Store
	Auth          *service.AuthService
	Clients       *service.ClientService
	Jobs          *service.JobService
	Readiness     *health.ProbeRunner
}

type Services struct {
	Auth    *service.AuthService
	Clients *service.ClientService
	Jobs    *service.JobService
}

func New(
	cfg *config.Config,
	logger *slog.Logger,
	runtime *observability.Runtime,
	db *gorm.DB,
	redisClient redis.UniversalClient,
	sessions session.Store,
	services Services,
	readiness *health.ProbeRunner,
) *App {
	return &App{
		Config:        cfg,
		Logger:        logger,
		Observability: runtime,
		DB:            db,
		Redis:         redisClient,
		Sessions:      sessions,
		Auth:          services.Auth,
		Clients:       services.Clients,
		Jobs:          services.Jobs,
		Readiness:     readiness,
	}
}

// Session returns a handle on the session with id, minting a new id when id
// is empty.
func (a *App) Session(id string) *session.Handle {
	if id == "" {
		id = session.NewID()
	}
	return session.NewHandle(a.Sessions, id)
}

// Close flushes telemetry and releases the redis and database connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Observability != nil {
		if err := a.Observability.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.DB != nil {
		if err := database.Close(a.DB); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
