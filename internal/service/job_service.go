package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/invoicecreator/invoice-creator/internal/domain"
	"github.com/invoicecreator/invoice-creator/internal/observability"
	"github.com/invoicecreator/invoice-creator/internal/repository"
	"github.com/invoicecreator/invoice-creator/internal/validation"
)

// JobView is a job with the owning client's company name joined in. The
// name is empty when the client row is missing.
type JobView struct {
	domain.Job
	ClientName string `json:"client_name"`
}

func NewJobView(j domain.Job) JobView {
	v := JobView{Job: j}
	if j.Client != nil {
		v.ClientName = j.Client.CompanyName
	}
	return v
}

type JobService struct {
	jobs    repository.JobRepository
	clients repository.ClientRepository
	logger  *slog.Logger
}

func NewJobService(jobs repository.JobRepository, clients repository.ClientRepository, logger *slog.Logger) *JobService {
	if logger == nil {
		logger = observability.Logger()
	}
	return &JobService{jobs: jobs, clients: clients, logger: logger}
}

func (s *JobService) Create(ctx context.Context, in validation.JobInput) (*domain.Job, error) {
	row, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.jobs.Create(ctx, &row); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	s.logger.InfoContext(ctx, "job created", "job_id", row.ID, "client_id", row.ClientID)
	return &row, nil
}

func (s *JobService) Update(ctx context.Context, id uint, in validation.JobInput) (*domain.Job, error) {
	row, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	row.ID = id
	if err := s.jobs.Update(ctx, &row); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return s.jobs.FindByID(ctx, id)
}

func (s *JobService) Get(ctx context.Context, id uint) (*JobView, error) {
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := NewJobView(*j)
	return &v, nil
}

func (s *JobService) Delete(ctx context.Context, id uint) error {
	if err := s.jobs.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// List returns every job, newest first.
func (s *JobService) List(ctx context.Context) ([]JobView, error) {
	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobViews(jobs), nil
}

func (s *JobService) ListPage(ctx context.Context, req repository.PageRequest) (repository.PageResult[JobView], error) {
	page, err := s.jobs.ListPaged(ctx, req)
	if err != nil {
		return repository.PageResult[JobView]{}, fmt.Errorf("list jobs page: %w", err)
	}
	return repository.PageResult[JobView]{
		Items:      jobViews(page.Items),
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}, nil
}

func (s *JobService) ListByClient(ctx context.Context, clientID uint) ([]JobView, error) {
	jobs, err := s.jobs.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list client jobs: %w", err)
	}
	return jobViews(jobs), nil
}

// validate runs the form rules and then checks that the referenced client
// exists, reporting a missing client against client_id.
func (s *JobService) validate(ctx context.Context, in validation.JobInput) (domain.Job, error) {
	row, errs := validation.ValidateJob(in)
	if !errs.Has(validation.FieldClientID) {
		_, err := s.clients.FindByID(ctx, row.ClientID)
		switch {
		case errors.Is(err, repository.ErrClientNotFound):
			errs.Add(validation.FieldClientID, "Please select a client")
		case err != nil:
			return row, fmt.Errorf("find job client: %w", err)
		}
	}
	if !recordValidation(ctx, "job", errs) {
		return row, errs
	}
	return row, nil
}

func jobViews(jobs []domain.Job) []JobView {
	out := make([]JobView, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewJobView(j))
	}
	return out
}
