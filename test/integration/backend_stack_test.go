package integration

import (
	"context"
	"testing"
)

func TestPostgresRedisStackLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("container-backed test skipped in short mode")
	}
	env := newBackendEnv(t)
	setAppEnv(t, "postgres", env.databaseURL, env.redisAddr)

	first := initApp(t)
	second := initApp(t)

	t.Run("auth lifecycle", func(t *testing.T) {
		assertAuthLifecycle(t, first, second)
	})
	t.Run("concurrent registration", func(t *testing.T) {
		assertConcurrentRegistrationIsUnique(t, first)
	})
	t.Run("records cascade", func(t *testing.T) {
		assertRecordsCascade(t, first)
	})
	t.Run("health", func(t *testing.T) {
		ready, results := first.Readiness.Ready(context.Background())
		if !ready || len(results) != 2 {
			t.Fatalf("expected db and redis healthy, got %v %+v", ready, results)
		}
	})
}
