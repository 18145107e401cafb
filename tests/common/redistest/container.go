//go:build e2e

package redistest

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const redisPort = "6379/tcp"

var (
	containerOnce sync.Once
	container     testcontainers.Container
	containerErr  error
)

// StartOnce starts a single Redis container per test process and returns its host:port.
// Ryuk reaps the container when the process exits.
func StartOnce(t *testing.T) string {
	t.Helper()

	containerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		container, containerErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{redisPort},
				Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
				WaitingFor: wait.ForListeningPort(nat.Port(redisPort)).
					WithStartupTimeout(60 * time.Second),
				Labels: map[string]string{"purpose": "e2e-tests"},
			},
			Started: true,
		})
		if containerErr != nil {
			slog.Warn("failed to start redis container", "error", containerErr.Error())
		}
	})
	require.NoError(t, containerErr, "failed to start redis container")

	ctx := context.Background()
	port, err := container.MappedPort(ctx, nat.Port(redisPort))
	require.NoError(t, err, "failed to resolve redis port")
	host, err := container.Host(ctx)
	require.NoError(t, err, "failed to resolve redis host")

	return net.JoinHostPort(host, port.Port())
}
