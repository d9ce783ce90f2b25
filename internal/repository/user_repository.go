package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/invoicecreator/invoice-creator/internal/domain"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}

type GormUserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &GormUserRepository{db: db} }

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, finish(ctx, "user", "find_by_id", err, ErrUserNotFound)
	}
	finish(ctx, "user", "find_by_id", nil, nil)
	return &u, nil
}

// FindByEmail expects the canonical lowercase form; it lowercases again so
// ad-hoc callers cannot miss a stored row.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(strings.ToLower(email))).First(&u).Error
	if err != nil {
		return nil, finish(ctx, "user", "find_by_email", err, ErrUserNotFound)
	}
	finish(ctx, "user", "find_by_email", nil, nil)
	return &u, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		finish(ctx, "user", "create", err, nil)
		return ErrDuplicateEmail
	}
	return finish(ctx, "user", "create", err, nil)
}

func (r *GormUserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error
	return users, finish(ctx, "user", "list", err, nil)
}
