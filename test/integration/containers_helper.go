package integration

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	defaultPostgresTestImage = "docker.io/library/postgres:16-alpine"
	defaultRedisTestImage    = "docker.io/library/redis:7-alpine"
)

// backendEnv holds the addresses of throwaway Postgres and Redis containers.
type backendEnv struct {
	databaseURL string
	redisAddr   string
}

func newBackendEnv(t *testing.T) *backendEnv {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	pgEndpoint := startContainer(t, imageFromEnv("POSTGRES_TEST_IMAGE", defaultPostgresTestImage), "5432/tcp", map[string]string{
		"POSTGRES_USER":     "invoice",
		"POSTGRES_PASSWORD": "invoice",
		"POSTGRES_DB":       "invoice",
	}, wait.ForLog("database system is ready to accept connections").WithOccurrence(2))
	redisEndpoint := startContainer(t, imageFromEnv("REDIS_TEST_IMAGE", defaultRedisTestImage), "6379/tcp", nil, nil)

	return &backendEnv{
		databaseURL: fmt.Sprintf("postgres://invoice:invoice@%s/invoice?sslmode=disable", pgEndpoint),
		redisAddr:   redisEndpoint,
	}
}

func startContainer(t *testing.T, image string, port nat.Port, env map[string]string, ready wait.Strategy) string {
	t.Helper()
	ctx := context.Background()

	strategy := wait.Strategy(wait.ForListeningPort(port).WithStartupTimeout(45 * time.Second))
	if ready != nil {
		strategy = wait.ForAll(ready, strategy).WithDeadline(60 * time.Second)
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			Env:          env,
			ExposedPorts: []string{string(port)},
			WaitingFor:   strategy,
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start %s test container: %v", image, err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("resolve %s host: %v", image, err)
	}
	mappedPort, err := container.MappedPort(ctx, port)
	if err != nil {
		t.Fatalf("resolve %s port: %v", image, err)
	}
	return net.JoinHostPort(host, mappedPort.Port())
}

func imageFromEnv(key, def string) string {
	if image := strings.TrimSpace(os.Getenv(key)); image != "" {
		return image
	}
	return def
}
