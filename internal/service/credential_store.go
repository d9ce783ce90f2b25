package service

import (
	"context"
	"errors"

	"github.com/invoicecreator/invoice-creator/internal/domain"
	"github.com/invoicecreator/invoice-creator/internal/repository"
)

// Credential is the stored login record for one user.
type Credential struct {
	UserID       uint
	Name         string
	Email        string
	PasswordHash string
}

// CredentialStore persists credentials keyed by canonical email.
type CredentialStore interface {
	// FindByEmail returns (nil, nil) when no credential exists for email.
	FindByEmail(ctx context.Context, email string) (*Credential, error)
	// Create fails with ErrDuplicateCredential when email is taken.
	Create(ctx context.Context, name, email, passwordHash string) (uint, error)
}

type GormCredentialStore struct {
	users repository.UserRepository
	creds repository.LocalCredentialRepository
}

func NewCredentialStore(users repository.UserRepository, creds repository.LocalCredentialRepository) *GormCredentialStore {
	return &GormCredentialStore{users: users, creds: creds}
}

func (s *GormCredentialStore) FindByEmail(ctx context.Context, email string) (*Credential, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, infraError("find user by email", err)
	}
	cred, err := s.creds.FindByUserID(ctx, user.ID)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, infraError("find local credential", err)
	}
	return &Credential{UserID: user.ID, Name: user.Name, Email: user.Email, PasswordHash: cred.PasswordHash}, nil
}

func (s *GormCredentialStore) Create(ctx context.Context, name, email, passwordHash string) (uint, error) {
	existing, err := s.FindByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrDuplicateCredential
	}

	user := &domain.User{Name: name, Email: email}
	if err := s.creds.CreateWithUser(ctx, user, &domain.LocalCredential{PasswordHash: passwordHash}); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return 0, ErrDuplicateCredential
		}
		return 0, infraError("create credential", err)
	}
	return user.ID, nil
}
