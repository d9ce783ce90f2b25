package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func itoa(v uint) string { return fmt.Sprint(v) }

func TestLocalStackLifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	setAppEnv(t, "sqlite", filepath.Join(t.TempDir(), "invoice.db"), mr.Addr())

	first := initApp(t)
	second := initApp(t)

	t.Run("auth lifecycle", func(t *testing.T) {
		assertAuthLifecycle(t, first, second)
	})
	t.Run("records cascade", func(t *testing.T) {
		assertRecordsCascade(t, first)
	})
	t.Run("session keys expire with ttl", func(t *testing.T) {
		sess := first.Session("")
		if _, err := first.Auth.Register(context.Background(), "Carol", "carol@b.com", "pw"); err != nil {
			t.Fatalf("register: %v", err)
		}
		if ok, err := first.Auth.Authenticate(context.Background(), sess, "carol@b.com", "pw"); err != nil || !ok {
			t.Fatalf("login: %v %v", ok, err)
		}
		if ttl := mr.TTL("it:sess:" + sess.ID()); ttl <= 0 {
			t.Fatalf("expected session ttl, got %s", ttl)
		}
		mr.FastForward(first.Config.SessionTTL + 1)
		if id, err := first.Auth.GetIdentity(context.Background(), sess); err != nil || id != nil {
			t.Fatalf("expected expired session to be anonymous, got %+v %v", id, err)
		}
	})
	t.Run("health", func(t *testing.T) {
		if ready, results := first.Readiness.Ready(context.Background()); !ready || len(results) != 2 {
			t.Fatalf("expected db and redis healthy, got %v %+v", ready, results)
		}
	})
}
