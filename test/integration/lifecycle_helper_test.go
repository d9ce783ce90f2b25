package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/invoicecreator/invoice-creator/internal/app"
	"github.com/invoicecreator/invoice-creator/internal/di"
	"github.com/invoicecreator/invoice-creator/internal/repository"
	"github.com/invoicecreator/invoice-creator/internal/service"
	"github.com/invoicecreator/invoice-creator/internal/validation"
)

func setAppEnv(t *testing.T, driver, databaseURL, redisAddr string) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", driver)
	t.Setenv("DATABASE_URL", databaseURL)
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_ADDR", redisAddr)
	t.Setenv("SESSION_KEY_PREFIX", "it:sess")
	t.Setenv("AUTH_ARGON2_TIME", "1")
	t.Setenv("AUTH_ARGON2_MEMORY_KIB", "8192")
	t.Setenv("AUTH_ARGON2_THREADS", "1")
	t.Setenv("OTEL_LOG_LEVEL", "error")
}

func initApp(t *testing.T) *app.App {
	t.Helper()
	a, err := di.InitializeApp()
	if err != nil {
		t.Fatalf("initialize app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

// assertAuthLifecycle drives register, login, reopen, logout and the
// failure paths through two independently built app graphs that share the
// same backends.
func assertAuthLifecycle(t *testing.T, first, second *app.App) {
	t.Helper()
	ctx := context.Background()

	userID, err := first.Auth.Register(ctx, "Alice", "a@b.com", "pw")
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	if _, err := second.Auth.Register(ctx, "Bob", "A@B.com", "pw2"); !errors.Is(err, service.ErrDuplicateCredential) {
		t.Fatalf("expected duplicate credential, got %v", err)
	}

	sess := first.Session("")
	if ok, err := first.Auth.Authenticate(ctx, sess, "a@b.com", "wrong"); err != nil || ok {
		t.Fatalf("expected rejected login, got %v %v", ok, err)
	}
	if id, err := first.Auth.GetIdentity(ctx, sess); err != nil || id != nil {
		t.Fatalf("expected anonymous after rejected login, got %+v %v", id, err)
	}
	if ok, err := first.Auth.Authenticate(ctx, sess, "a@b.com", "pw"); err != nil || !ok {
		t.Fatalf("expected login, got %v %v", ok, err)
	}

	reopened := second.Session(sess.ID())
	id, err := second.Auth.GetIdentity(ctx, reopened)
	if err != nil || id == nil || id.UserID != userID || id.Name != "Alice" || id.Email != "a@b.com" {
		t.Fatalf("expected identity visible from second app, got %+v %v", id, err)
	}

	if err := second.Auth.ClearIdentity(ctx, reopened); err != nil {
		t.Fatalf("clear identity: %v", err)
	}
	if err := second.Auth.ClearIdentity(ctx, reopened); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if _, err := first.Auth.RequireIdentity(ctx, sess); !errors.Is(err, service.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
}

// assertConcurrentRegistrationIsUnique races registrations for one email
// and expects exactly one winner.
func assertConcurrentRegistrationIsUnique(t *testing.T, a *app.App) {
	t.Helper()
	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		duplicate int
		other     []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Auth.Register(context.Background(), "Racer", "race@b.com", "pw")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, service.ErrDuplicateCredential):
				duplicate++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()
	if wins != 1 || duplicate != attempts-1 || len(other) != 0 {
		t.Fatalf("expected one winner, got wins=%d duplicates=%d other=%v", wins, duplicate, other)
	}
}

func assertRecordsCascade(t *testing.T, a *app.App) {
	t.Helper()
	ctx := context.Background()
	c, err := a.Clients.Create(ctx, validation.ClientInput{CompanyName: "Acme", ABN: "51 824 753 556"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	j, err := a.Jobs.Create(ctx, validation.JobInput{ClientID: itoa(c.ID), Title: "Paint fence", StartTime: "09:00", EndTime: "17:00"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	view, err := a.Jobs.Get(ctx, j.ID)
	if err != nil || view.ClientName != "Acme" {
		t.Fatalf("expected joined client name, got %+v %v", view, err)
	}
	if err := a.Clients.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}
	if _, err := a.Jobs.Get(ctx, j.ID); !errors.Is(err, repository.ErrJobNotFound) {
		t.Fatalf("expected job removed with client, got %v", err)
	}
}
