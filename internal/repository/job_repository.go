package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/invoicecreator/invoice-creator/internal/domain"
)

var jobColumns = []string{
	"client_id", "title", "description", "location", "rate", "rate_type",
	"target_type", "target_name", "start_time", "end_time", "had_30min_break", "updated_at",
}

type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id uint) (*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	DeleteByID(ctx context.Context, id uint) error
	List(ctx context.Context) ([]domain.Job, error)
	ListPaged(ctx context.Context, req PageRequest) (PageResult[domain.Job], error)
	ListByClient(ctx context.Context, clientID uint) ([]domain.Job, error)
}

type GormJobRepository struct{ db *gorm.DB }

func NewJobRepository(db *gorm.DB) JobRepository { return &GormJobRepository{db: db} }

func (r *GormJobRepository) Create(ctx context.Context, job *domain.Job) error {
	return finish(ctx, "job", "create", r.db.WithContext(ctx).Omit("Client").Create(job).Error, nil)
}

func (r *GormJobRepository) FindByID(ctx context.Context, id uint) (*domain.Job, error) {
	var j domain.Job
	if err := r.db.WithContext(ctx).Preload("Client").First(&j, id).Error; err != nil {
		return nil, finish(ctx, "job", "find_by_id", err, ErrJobNotFound)
	}
	finish(ctx, "job", "find_by_id", nil, nil)
	return &j, nil
}

func (r *GormJobRepository) Update(ctx context.Context, job *domain.Job) error {
	res := r.db.WithContext(ctx).Model(&domain.Job{ID: job.ID}).Select(jobColumns).Updates(job)
	if res.Error == nil && res.RowsAffected == 0 {
		return finish(ctx, "job", "update", ErrJobNotFound, ErrJobNotFound)
	}
	return finish(ctx, "job", "update", res.Error, ErrJobNotFound)
}

func (r *GormJobRepository) DeleteByID(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Job{}, id)
	if res.Error == nil && res.RowsAffected == 0 {
		return finish(ctx, "job", "delete_by_id", ErrJobNotFound, ErrJobNotFound)
	}
	return finish(ctx, "job", "delete_by_id", res.Error, ErrJobNotFound)
}

// List returns every job newest first with its client loaded.
func (r *GormJobRepository) List(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	err := r.newestFirst(ctx).Find(&jobs).Error
	return jobs, finish(ctx, "job", "list", err, nil)
}

func (r *GormJobRepository) ListPaged(ctx context.Context, req PageRequest) (PageResult[domain.Job], error) {
	normalized := normalizePageRequest(req)
	result := PageResult[domain.Job]{Page: normalized.Page, PageSize: normalized.PageSize}

	if err := r.db.WithContext(ctx).Model(&domain.Job{}).Count(&result.Total).Error; err != nil {
		return PageResult[domain.Job]{}, finish(ctx, "job", "list_paged", err, nil)
	}
	offset := (normalized.Page - 1) * normalized.PageSize
	if err := r.newestFirst(ctx).Offset(offset).Limit(normalized.PageSize).Find(&result.Items).Error; err != nil {
		return PageResult[domain.Job]{}, finish(ctx, "job", "list_paged", err, nil)
	}
	result.TotalPages = calcTotalPages(result.Total, normalized.PageSize)
	finish(ctx, "job", "list_paged", nil, nil)
	return result, nil
}

func (r *GormJobRepository) ListByClient(ctx context.Context, clientID uint) ([]domain.Job, error) {
	var jobs []domain.Job
	err := r.newestFirst(ctx).Where("client_id = ?", clientID).Find(&jobs).Error
	return jobs, finish(ctx, "job", "list_by_client", err, nil)
}

func (r *GormJobRepository) newestFirst(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Client").Order("created_at desc").Order("id desc")
}
