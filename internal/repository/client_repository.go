package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/invoicecreator/invoice-creator/internal/domain"
)

var clientColumns = []string{"company_name", "company_contact", "abn", "contact_email", "contact_phone", "address", "updated_at"}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	FindByID(ctx context.Context, id uint) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	DeleteByID(ctx context.Context, id uint) error
	List(ctx context.Context) ([]domain.Client, error)
}

type GormClientRepository struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &GormClientRepository{db: db} }

func (r *GormClientRepository) Create(ctx context.Context, client *domain.Client) error {
	return finish(ctx, "client", "create", r.db.WithContext(ctx).Create(client).Error, nil)
}

func (r *GormClientRepository) FindByID(ctx context.Context, id uint) (*domain.Client, error) {
	var c domain.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, finish(ctx, "client", "find_by_id", err, ErrClientNotFound)
	}
	finish(ctx, "client", "find_by_id", nil, nil)
	return &c, nil
}

// Update writes every editable column of client, including empty values.
func (r *GormClientRepository) Update(ctx context.Context, client *domain.Client) error {
	res := r.db.WithContext(ctx).Model(&domain.Client{ID: client.ID}).Select(clientColumns).Updates(client)
	if res.Error == nil && res.RowsAffected == 0 {
		return finish(ctx, "client", "update", ErrClientNotFound, ErrClientNotFound)
	}
	return finish(ctx, "client", "update", res.Error, ErrClientNotFound)
}

// DeleteByID removes the client; its jobs go with it through the foreign key.
func (r *GormClientRepository) DeleteByID(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Client{}, id)
	if res.Error == nil && res.RowsAffected == 0 {
		return finish(ctx, "client", "delete_by_id", ErrClientNotFound, ErrClientNotFound)
	}
	return finish(ctx, "client", "delete_by_id", res.Error, ErrClientNotFound)
}

func (r *GormClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	err := r.db.WithContext(ctx).Order("company_name asc").Order("id asc").Find(&clients).Error
	return clients, finish(ctx, "client", "list", err, nil)
}
