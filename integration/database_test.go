//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// writeStoriesFile lays out a stories file for the publish command.
func writeStoriesFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stories.json")
	content := `[{"title":"Promo Week Recap","author":"Ann","description":"What the March promotion did to sales.","categories":["retail"],"published_at":"2024-03-20T00:00:00Z"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// runCacheLifecycle exercises the publish, status and clear commands against
// whatever backend the environment selects.
func runCacheLifecycle(t *testing.T) {
	storiesPath := writeStoriesFile(t)

	require.NoError(t, runForedeckCommand(t, "cache", "migrate"))
	require.NoError(t, runForedeckCommand(t, "cache", "clear"))
	require.NoError(t, runForedeckCommand(t, "stories", "publish", storiesPath))
	require.NoError(t, runForedeckCommand(t, "stories", "--offline"))
	require.NoError(t, runForedeckCommand(t, "cache", "status"))
	require.NoError(t, runForedeckCommand(t, "cache", "clear"))
}

// TestForedeckWithMySQL tests the foredeck CLI with a MySQL story cache.
func TestForedeckWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "foredeck",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/foredeck?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("FOREDECK_CACHE_BACKEND", "mysql")
	_ = os.Setenv("FOREDECK_CACHE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("FOREDECK_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("FOREDECK_CACHE_DB_CONNECT") }()

	runCacheLifecycle(t)
}

// TestForedeckWithPostgres tests the foredeck CLI with a PostgreSQL story cache.
func TestForedeckWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("FOREDECK_CACHE_BACKEND", "postgresql")
	_ = os.Setenv("FOREDECK_CACHE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("FOREDECK_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("FOREDECK_CACHE_DB_CONNECT") }()

	runCacheLifecycle(t)
}
