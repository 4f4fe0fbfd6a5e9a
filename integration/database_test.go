//go:build database

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/arboclima/arboclima/internal/iocache"
	"github.com/arboclima/arboclima/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// exerciseResultStore runs a set/get/status/clear cycle against a live
// database backend.
func exerciseResultStore(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	store, err := iocache.NewResultStore(backend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Round trip
	value := []byte(`{"lag_months":1,"status":"ok"}`)
	require.NoError(t, store.Set("fp-integration", value, iocache.CurrentCacheVersion, 1700000000))

	got, version, ts, err := store.Get("fp-integration")
	require.NoError(t, err)
	assert.Equal(t, value, got)
	assert.Equal(t, iocache.CurrentCacheVersion, version)
	assert.Equal(t, int64(1700000000), ts)

	// Upsert
	require.NoError(t, store.Set("fp-integration", []byte(`{"lag_months":2}`), iocache.CurrentCacheVersion, 1700000001))
	got, _, ts, err = store.Get("fp-integration")
	require.NoError(t, err)
	assert.Contains(t, string(got), "lag_months")
	assert.Equal(t, int64(1700000001), ts)

	// Status
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(backend), status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, status.TotalEntries)

	// Missing fingerprint
	_, _, _, err = store.Get("fp-missing")
	assert.Equal(t, sql.ErrNoRows, err)

	// Clear drops the table
	require.NoError(t, iocache.ClearResults(backend, "", connStr))
}

// TestResultStoreWithMySQL tests the result store against MySQL.
func TestResultStoreWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "arboclima",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/arboclima?parseTime=true", host, port.Port())
	exerciseResultStore(t, schema.MySQLBackend, connStr)
}

// TestResultStoreWithPostgres tests the result store against PostgreSQL.
func TestResultStoreWithPostgres(t *testing.T) {
	ctx := context.Background()

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

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	exerciseResultStore(t, schema.PostgreSQLBackend, connStr)
}

// TestMigrationsWithPostgres tests embedded migrations against PostgreSQL.
func TestMigrationsWithPostgres(t *testing.T) {
	ctx := context.Background()

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

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	require.NoError(t, iocache.MigrateResults(schema.PostgreSQLBackend, connStr, -1))
	require.NoError(t, iocache.MigrateResults(schema.PostgreSQLBackend, connStr, 0))
}
