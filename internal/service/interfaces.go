package service

import (
	"context"

	"github.com/invoicecreator/invoice-creator/internal/domain"
	"github.com/invoicecreator/invoice-creator/internal/repository"
	"github.com/invoicecreator/invoice-creator/internal/session"
	"github.com/invoicecreator/invoice-creator/internal/validation"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, name, email, password string) (uint, error)
	Authenticate(ctx context.Context, sess *session.Handle, email, password string) (bool, error)
	GetIdentity(ctx context.Context, sess *session.Handle) (*domain.Identity, error)
	ClearIdentity(ctx context.Context, sess *session.Handle) error
	RequireIdentity(ctx context.Context, sess *session.Handle) (*domain.Identity, error)
}

type ClientServiceInterface interface {
	Create(ctx context.Context, in validation.ClientInput) (*domain.Client, error)
	Update(ctx context.Context, id uint, in validation.ClientInput) (*domain.Client, error)
	Get(ctx context.Context, id uint) (*ClientView, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]ClientView, error)
}

type JobServiceInterface interface {
	Create(ctx context.Context, in validation.JobInput) (*domain.Job, error)
	Update(ctx context.Context, id uint, in validation.JobInput) (*domain.Job, error)
	Get(ctx context.Context, id uint) (*JobView, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]JobView, error)
	ListPage(ctx context.Context, req repository.PageRequest) (repository.PageResult[JobView], error)
	ListByClient(ctx context.Context, clientID uint) ([]JobView, error)
}

var (
	_ AuthServiceInterface   = (*AuthService)(nil)
	_ ClientServiceInterface = (*ClientService)(nil)
	_ JobServiceInterface    = (*JobService)(nil)
)
