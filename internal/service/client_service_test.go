package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/invoicecreator/invoice-creator/internal/normalize"
	"github.com/invoicecreator/invoice-creator/internal/observability"
	"github.com/invoicecreator/invoice-creator/internal/repository"
	repogomock "github.com/invoicecreator/invoice-creator/internal/repository/gomock"
	"github.com/invoicecreator/invoice-creator/internal/validation"
)

func newClientServiceForTest(t *testing.T) *ClientService {
	t.Helper()
	db := newServiceDBForTest(t)
	return NewClientService(repository.NewClientRepository(db), observability.NewDiscardLogger())
}

func TestClientServiceCreateStoresCanonicalRow(t *testing.T) {
	svc := newClientServiceForTest(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, validation.ClientInput{
		CompanyName:  " Acme Pty Ltd ",
		ABN:          "51 824 753 556",
		ContactPhone: "+61 412 345 678",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == 0 || c.ABN != "51824753556" || c.ContactPhone != "0412345678" {
		t.Fatalf("unexpected stored row %+v", c)
	}

	view, err := svc.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.ABNDisplay != "51 824 753 556" || view.PhoneDisplay != "0412 345 678" || view.PhoneType != normalize.PhoneTypeMobile {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestClientServiceRejectsInvalidForm(t *testing.T) {
	svc := newClientServiceForTest(t)
	_, err := svc.Create(context.Background(), validation.ClientInput{ABN: "51 824 753 556"})
	var fieldErrs validation.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if !fieldErrs.Has(validation.FieldCompanyName) || fieldErrs.Has(validation.FieldABN) {
		t.Fatalf("unexpected field errors %v", fieldErrs)
	}
	list, err := svc.List(context.Background())
	if err != nil || len(list) != 0 {
		t.Fatalf("expected nothing persisted, got %v %v", list, err)
	}
}

func TestClientServiceUpdateDeleteAndList(t *testing.T) {
	svc := newClientServiceForTest(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, validation.ClientInput{CompanyName: "Bravo"})
	if err != nil {
		t.Fatalf("create bravo: %v", err)
	}
	if _, err := svc.Create(ctx, validation.ClientInput{CompanyName: "Alpha", ContactPhone: "billing@alpha.test"}); err != nil {
		t.Fatalf("create alpha: %v", err)
	}

	updated, err := svc.Update(ctx, b.ID, validation.ClientInput{CompanyName: "Charlie", Address: "1 Main St"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CompanyName != "Charlie" || updated.Address != "1 Main St" {
		t.Fatalf("unexpected updated row %+v", updated)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].CompanyName != "Alpha" || list[1].CompanyName != "Charlie" {
		t.Fatalf("expected clients ordered by company name, got %+v", list)
	}
	if list[0].PhoneType != normalize.PhoneTypeEmail || list[0].PhoneDisplay != "billing@alpha.test" {
		t.Fatalf("expected email contact view, got %+v", list[0])
	}

	if err := svc.Delete(ctx, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, b.ID); !errors.Is(err, repository.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, b.ID); !errors.Is(err, repository.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound on second delete, got %v", err)
	}
	if _, err := svc.Update(ctx, 999, validation.ClientInput{CompanyName: "Ghost"}); !errors.Is(err, repository.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound on update, got %v", err)
	}
}

func TestClientServicePropagatesRepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repogomock.NewMockClientRepository(ctrl)
	dbDown := errors.New("db down")
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dbDown)
	repo.EXPECT().List(gomock.Any()).Return(nil, dbDown)

	svc := NewClientService(repo, observability.NewDiscardLogger())
	if _, err := svc.Create(context.Background(), validation.ClientInput{CompanyName: "Acme"}); !errors.Is(err, dbDown) {
		t.Fatalf("expected db error, got %v", err)
	}
	if _, err := svc.List(context.Background()); !errors.Is(err, dbDown) {
		t.Fatalf("expected db error, got %v", err)
	}
}
