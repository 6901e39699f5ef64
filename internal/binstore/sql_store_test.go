package binstore

import (
	"path/filepath"
	"testing"

	"github.com/huangsam/binbridge/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *SQLStore {
	t.Helper()
	store, err := NewSQLStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*SQLStore)
}

func TestSQLStore_ImportAndBrowse(t *testing.T) {
	store := newMemoryStore(t)
	count, err := store.Import(sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	mem, err := NewMemScope(sampleDocument())
	require.NoError(t, err)

	root := store.Root()
	assert.Equal(t, mem.Names(), root.Names())
	for _, name := range mem.Names() {
		assert.Equal(t, mem.Kind(name), root.Kind(name), name)
		assert.True(t, root.Contains(name), name)
	}
	assert.False(t, root.Contains("missing"))
	assert.Equal(t, schema.KindOther, root.Kind("missing"))

	want, err := mem.Get("h1")
	require.NoError(t, err)
	got, err := root.Get("h1")
	require.NoError(t, err)
	require.Equal(t, want.Hist1D.Len(), got.Hist1D.Len())
	for i := range want.Hist1D.Len() {
		assert.Equal(t, want.Hist1D.Bin(i), got.Hist1D.Bin(i))
	}

	obj, err := root.Get("h2")
	require.NoError(t, err)
	assert.Equal(t, 5.0, obj.Hist2D.Content(1, 1))

	_, err = root.Get("missing")
	assert.ErrorIs(t, err, ErrNoEntry)
}

func TestSQLStore_Subscope(t *testing.T) {
	store := newMemoryStore(t)
	_, err := store.Import(sampleDocument())
	require.NoError(t, err)

	dir, err := store.Root().Subscope("dir")
	require.NoError(t, err)
	assert.Equal(t, []string{"inner"}, dir.Names())

	obj, err := store.Root().Get("dir")
	require.NoError(t, err)
	require.NotNil(t, obj.Scope)
	assert.Equal(t, schema.KindOneDimensional, obj.Scope.Kind("inner"))

	_, err = store.Root().Subscope("h1")
	assert.ErrorIs(t, err, ErrNotScope)
}

func TestSQLStore_ImportReplaces(t *testing.T) {
	store := newMemoryStore(t)
	_, err := store.Import(sampleDocument())
	require.NoError(t, err)

	doc := &schema.Document{Entries: []schema.Entry{
		{Name: "only", Kind: "1d", Edges: []float64{0, 1}, Values: []float64{2}},
	}}
	count, err := store.Import(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"only"}, store.Root().Names())
}

func TestSQLStore_ImportRejectsSlashNames(t *testing.T) {
	store := newMemoryStore(t)
	_, err := store.Import(sampleDocument())
	require.NoError(t, err)

	doc := &schema.Document{Entries: []schema.Entry{{Name: "a/b", Kind: "text"}}}
	_, err = store.Import(doc)
	assert.ErrorIs(t, err, ErrInvalidEntry)

	// The failed import leaves the previous tree untouched
	assert.Len(t, store.Root().Names(), 4)
}

func TestSQLStore_Export(t *testing.T) {
	store := newMemoryStore(t)
	_, err := store.Import(sampleDocument())
	require.NoError(t, err)

	doc, err := store.Export()
	require.NoError(t, err)
	assert.Equal(t, sampleDocument(), doc)
}

func TestSQLStore_StatusAndClear(t *testing.T) {
	store := newMemoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalObjects)

	_, err = store.Import(sampleDocument())
	require.NoError(t, err)
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 4, status.TotalObjects)
	assert.Equal(t, 1, status.TotalScopes)
	assert.False(t, status.LastImportTime.IsZero())
	assert.Positive(t, status.TableSizeBytes)

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Root().Names())
}

func TestMigrate_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1))
	// Running again is a no-op
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1))
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 1))
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 0))
}

func TestMigrate_FileBackend(t *testing.T) {
	err := Migrate(schema.FileBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestMigrate_ThenOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "objects.db")
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1))

	store, err := NewSQLStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.Import(sampleDocument())
	require.NoError(t, err)
	assert.Len(t, store.Root().Names(), 4)
}
