package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/invoicecreator/invoice-creator/internal/domain"
	"github.com/invoicecreator/invoice-creator/internal/normalize"
	"github.com/invoicecreator/invoice-creator/internal/observability"
	"github.com/invoicecreator/invoice-creator/internal/repository"
	"github.com/invoicecreator/invoice-creator/internal/validation"
)

// ClientView is a client prepared for display.
type ClientView struct {
	domain.Client
	ABNDisplay   string              `json:"abn_display"`
	PhoneDisplay string              `json:"phone_display"`
	PhoneType    normalize.PhoneType `json:"phone_type"`
}

func NewClientView(c domain.Client) ClientView {
	v := ClientView{Client: c, ABNDisplay: normalize.FormatABN(c.ABN)}
	if c.ContactPhone != "" {
		v.PhoneDisplay = normalize.FormatPhone(c.ContactPhone)
		v.PhoneType = normalize.DetectPhoneType(c.ContactPhone)
	}
	return v
}

type ClientService struct {
	repo   repository.ClientRepository
	logger *slog.Logger
}

func NewClientService(repo repository.ClientRepository, logger *slog.Logger) *ClientService {
	if logger == nil {
		logger = observability.Logger()
	}
	return &ClientService{repo: repo, logger: logger}
}

// Create validates in and persists it. A rejected form comes back as
// validation.FieldErrors.
func (s *ClientService) Create(ctx context.Context, in validation.ClientInput) (*domain.Client, error) {
	row, errs := validation.ValidateClient(in)
	if !recordValidation(ctx, "client", errs) {
		return nil, errs
	}
	if err := s.repo.Create(ctx, &row); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	s.logger.InfoContext(ctx, "client created", "client_id", row.ID)
	return &row, nil
}

func (s *ClientService) Update(ctx context.Context, id uint, in validation.ClientInput) (*domain.Client, error) {
	row, errs := validation.ValidateClient(in)
	if !recordValidation(ctx, "client", errs) {
		return nil, errs
	}
	row.ID = id
	if err := s.repo.Update(ctx, &row); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) Get(ctx context.Context, id uint) (*ClientView, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := NewClientView(*c)
	return &v, nil
}

// Delete removes the client together with its jobs.
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return err
		}
		return fmt.Errorf("delete client: %w", err)
	}
	s.logger.InfoContext(ctx, "client deleted", "client_id", id)
	return nil
}

// List returns every client ordered by company name.
func (s *ClientService) List(ctx context.Context) ([]ClientView, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	out := make([]ClientView, 0, len(clients))
	for _, c := range clients {
		out = append(out, NewClientView(c))
	}
	return out, nil
}

// recordValidation reports whether errs is empty and counts the outcome.
func recordValidation(ctx context.Context, form string, errs validation.FieldErrors) bool {
	if errs.Empty() {
		observability.RecordValidationOutcome(ctx, form, "valid")
		return true
	}
	observability.RecordValidationOutcome(ctx, form, "invalid")
	return false
}
