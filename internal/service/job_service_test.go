package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/invoicecreator/invoice-creator/internal/observability"
	"github.com/invoicecreator/invoice-creator/internal/repository"
	repogomock "github.com/invoicecreator/invoice-creator/internal/repository/gomock"
	"github.com/invoicecreator/invoice-creator/internal/validation"
)

func newJobServicesForTest(t *testing.T) (*JobService, *ClientService) {
	t.Helper()
	db := newServiceDBForTest(t)
	clients := repository.NewClientRepository(db)
	logger := observability.NewDiscardLogger()
	return NewJobService(repository.NewJobRepository(db), clients, logger), NewClientService(clients, logger)
}

func TestJobServiceCreateAndView(t *testing.T) {
	jobs, clients := newJobServicesForTest(t)
	ctx := context.Background()

	c, err := clients.Create(ctx, validation.ClientInput{CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	j, err := jobs.Create(ctx, validation.JobInput{
		ClientID:      "1",
		Title:         "Paint fence",
		StartTime:     "09:00",
		EndTime:       "17:00",
		Rate:          "45.50",
		Had30MinBreak: "1",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if j.ClientID != c.ID || j.Rate == nil || *j.Rate != 45.5 || !j.Had30MinBreak {
		t.Fatalf("unexpected job %+v", j)
	}

	view, err := jobs.Get(ctx, j.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.ClientName != "Acme" {
		t.Fatalf("expected joined client name, got %q", view.ClientName)
	}
}

func TestJobServiceRejectsInvalidForms(t *testing.T) {
	jobs, clients := newJobServicesForTest(t)
	ctx := context.Background()
	if _, err := clients.Create(ctx, validation.ClientInput{CompanyName: "Acme"}); err != nil {
		t.Fatalf("create client: %v", err)
	}

	t.Run("time range", func(t *testing.T) {
		_, err := jobs.Create(ctx, validation.JobInput{ClientID: "1", Title: "Paint fence", StartTime: "09:00", EndTime: "08:00"})
		var fieldErrs validation.FieldErrors
		if !errors.As(err, &fieldErrs) || !fieldErrs.Has(validation.FieldTimeRange) {
			t.Fatalf("expected time_range error, got %v", err)
		}
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := jobs.Create(ctx, validation.JobInput{ClientID: "42", Title: "Paint fence"})
		var fieldErrs validation.FieldErrors
		if !errors.As(err, &fieldErrs) {
			t.Fatalf("expected field errors, got %v", err)
		}
		if msg, _ := fieldErrs.Get(validation.FieldClientID); msg != "Please select a client" {
			t.Fatalf("unexpected client_id message %q", msg)
		}
	})

	list, err := jobs.List(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected nothing persisted, got %v %v", list, err)
	}
}

func TestJobServiceUpdateListAndCascade(t *testing.T) {
	jobs, clients := newJobServicesForTest(t)
	ctx := context.Background()

	c, err := clients.Create(ctx, validation.ClientInput{CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	first, err := jobs.Create(ctx, validation.JobInput{ClientID: "1", Title: "First"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := jobs.Create(ctx, validation.JobInput{ClientID: "1", Title: "Second"}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	updated, err := jobs.Update(ctx, first.ID, validation.JobInput{ClientID: "1", Title: "First (revised)", RateType: "daily"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "First (revised)" || updated.RateType != "daily" {
		t.Fatalf("unexpected updated job %+v", updated)
	}

	list, err := jobs.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %v %v", list, err)
	}
	if list[0].Title != "Second" || list[0].ClientName != "Acme" {
		t.Fatalf("expected newest first with client name, got %+v", list[0])
	}

	page, err := jobs.ListPage(ctx, repository.PageRequest{Page: 1, PageSize: 1})
	if err != nil || len(page.Items) != 1 || page.Total != 2 || page.TotalPages != 2 {
		t.Fatalf("unexpected page %+v %v", page, err)
	}

	byClient, err := jobs.ListByClient(ctx, c.ID)
	if err != nil || len(byClient) != 2 {
		t.Fatalf("list by client: %v %v", byClient, err)
	}

	if err := clients.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}
	if _, err := jobs.Get(ctx, first.ID); !errors.Is(err, repository.ErrJobNotFound) {
		t.Fatalf("expected jobs removed with client, got %v", err)
	}
	if err := jobs.Delete(ctx, first.ID); !errors.Is(err, repository.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobServiceClientLookupFailureIsNotAFieldError(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobRepo := repogomock.NewMockJobRepository(ctrl)
	clientRepo := repogomock.NewMockClientRepository(ctrl)
	dbDown := errors.New("db down")
	clientRepo.EXPECT().FindByID(gomock.Any(), uint(1)).Return(nil, dbDown)

	svc := NewJobService(jobRepo, clientRepo, observability.NewDiscardLogger())
	_, err := svc.Create(context.Background(), validation.JobInput{ClientID: "1", Title: "Paint fence"})
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) || !errors.Is(err, dbDown) {
		t.Fatalf("expected db error, got %v", err)
	}
}
