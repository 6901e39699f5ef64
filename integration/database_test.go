//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/huangsam/binbridge/internal/binstore"
	"github.com/huangsam/binbridge/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestStoreWithMySQL tests the object store against a MySQL backend.
func TestStoreWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "binbridge",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
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

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/binbridge?parseTime=true", host, port.Port())
	exerciseStore(t, schema.MySQLBackend, connStr, []string{
		"BINBRIDGE_STORE_BACKEND=mysql",
		"BINBRIDGE_STORE_CONNECT=" + connStr,
	})
}

// TestStoreWithPostgres tests the object store against a PostgreSQL backend.
func TestStoreWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	exerciseStore(t, schema.PostgreSQLBackend, connStr, []string{
		"BINBRIDGE_STORE_BACKEND=postgresql",
		"BINBRIDGE_STORE_CONNECT=" + connStr,
	})
}

// exerciseStore migrates, imports and browses a database store, first through
// the library and then through the CLI.
func exerciseStore(t *testing.T, backend schema.DatabaseBackend, connStr string, env []string) {
	t.Helper()

	require.NoError(t, binstore.Migrate(backend, connStr, -1))

	doc, err := binstore.LoadDocument(writeFixture(t))
	require.NoError(t, err)

	store, err := binstore.NewSQLStore(backend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	n, err := store.Import(doc)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	root := store.Root()
	assert.Equal(t, []string{"pt", "eta_phi", "run1", "notes"}, root.Names())
	assert.Equal(t, schema.KindScope, root.Kind("run1"))

	exported, err := store.Export()
	require.NoError(t, err)
	assert.Equal(t, doc, exported)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 4, status.TotalObjects)

	out, err := runCommand(t, env, "describe", "pt", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"sum": 20`)

	_, err = runCommand(t, env, "store", "status")
	require.NoError(t, err)

	_, err = runCommand(t, env, "store", "clear")
	require.NoError(t, err)
}
