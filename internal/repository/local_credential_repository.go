package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/invoicecreator/invoice-creator/internal/domain"
)

type LocalCredentialRepository interface {
	// CreateWithUser inserts user and credential in one transaction and sets
	// credential.UserID from the new user row.
	CreateWithUser(ctx context.Context, user *domain.User, credential *domain.LocalCredential) error
	FindByUserID(ctx context.Context, userID uint) (*domain.LocalCredential, error)
}

type GormLocalCredentialRepository struct {
	db *gorm.DB
}

func NewLocalCredentialRepository(db *gorm.DB) LocalCredentialRepository {
	return &GormLocalCredentialRepository{db: db}
}

func (r *GormLocalCredentialRepository) CreateWithUser(ctx context.Context, user *domain.User, credential *domain.LocalCredential) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		credential.UserID = user.ID
		return tx.Create(credential).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		finish(ctx, "local_credential", "create_with_user", err, nil)
		return ErrDuplicateEmail
	}
	return finish(ctx, "local_credential", "create_with_user", err, nil)
}

func (r *GormLocalCredentialRepository) FindByUserID(ctx context.Context, userID uint) (*domain.LocalCredential, error) {
	var c domain.LocalCredential
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, finish(ctx, "local_credential", "find_by_user_id", err, ErrCredentialNotFound)
	}
	finish(ctx, "local_credential", "find_by_user_id", nil, nil)
	return &c, nil
}
