package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/invoicecreator/invoice-creator/internal/observability"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrJobNotFound        = errors.New("job not found")
	ErrDuplicateEmail     = errors.New("email already registered")
)

// finish records the outcome of a repository call and maps gorm's not-found
// error onto the repository sentinel.
func finish(ctx context.Context, repo, op string, err error, notFound error) error {
	switch {
	case err == nil:
		observability.RecordRepositoryOperation(ctx, repo, op, "success")
		return nil
	case notFound != nil && (errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, notFound)):
		observability.RecordRepositoryOperation(ctx, repo, op, "not_found")
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		observability.RecordRepositoryOperation(ctx, repo, op, "conflict")
		return err
	default:
		observability.RecordRepositoryOperation(ctx, repo, op, "error")
		return err
	}
}
