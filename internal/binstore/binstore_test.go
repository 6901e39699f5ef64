package binstore

import (
	"path/filepath"
	"testing"

	"github.com/huangsam/binbridge/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	query := "SELECT a FROM t WHERE b = ? AND c = ?"
	assert.Equal(t, query, rebind(query, schema.SQLiteBackend))
	assert.Equal(t, query, rebind(query, schema.MySQLBackend))
	assert.Equal(t, "SELECT a FROM t WHERE b = $1 AND c = $2", rebind(query, schema.PostgreSQLBackend))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`objects`", quoteTableName("objects", schema.MySQLBackend))
	assert.Equal(t, `"objects"`, quoteTableName("objects", schema.PostgreSQLBackend))
	assert.Equal(t, `"objects"`, quoteTableName("objects", schema.SQLiteBackend))
}

func TestOpen_FileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "objects.json.xz")
	require.NoError(t, SaveDocument(path, sampleDocument()))

	src, err := Open(schema.FileBackend, "", path)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()
	assert.Equal(t, []string{"h1", "h2", "dir", "note"}, src.Root().Names())

	_, err = Open(schema.FileBackend, "", "")
	assert.Error(t, err)
}

func TestOpen_SQLiteBackend(t *testing.T) {
	src, err := Open(schema.SQLiteBackend, ":memory:", "")
	require.NoError(t, err)
	defer func() { _ = src.Close() }()
	assert.Empty(t, src.Root().Names())
}

func TestOpen_UnsupportedBackend(t *testing.T) {
	_, err := Open(schema.DatabaseBackend("oracle"), "", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
