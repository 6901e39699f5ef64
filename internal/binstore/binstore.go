// Package binstore serves binned objects from JSON snapshots and databases.
package binstore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/binbridge/internal/contract"
	"github.com/huangsam/binbridge/schema"
)

// Errors returned by the stores in this package.
var (
	ErrNoEntry  = errors.New("no such entry")
	ErrNotScope = errors.New("entry is not a scope")
)

// memSource serves a document held in memory.
type memSource struct {
	root *MemScope
}

var _ contract.Source = &memSource{} // Compile-time check

func (m *memSource) Root() schema.Scope { return m.root }

func (m *memSource) Close() error { return nil }

// NewMemSource serves doc from memory.
func NewMemSource(doc *schema.Document) (contract.Source, error) {
	root, err := NewMemScope(doc)
	if err != nil {
		return nil, err
	}
	return &memSource{root: root}, nil
}

// NewFileSource loads the document at path and serves it from memory.
func NewFileSource(path string) (contract.Source, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return NewMemSource(doc)
}

// Open returns the source selected by backend. The file backend reads the
// document at source; database backends connect with connStr.
func Open(backend schema.DatabaseBackend, connStr, source string) (contract.Source, error) {
	switch backend {
	case schema.FileBackend:
		if source == "" {
			return nil, fmt.Errorf("a source document is required for the %s backend", backend)
		}
		return NewFileSource(source)
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		store, err := NewSQLStore(backend, connStr)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// quoteTableName quotes a table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// rebind rewrites ? placeholders into $n for PostgreSQL.
func rebind(query string, backend schema.DatabaseBackend) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// joinPath turns scope segments into the parent key stored in the database.
func joinPath(path []string) string {
	return strings.Join(path, "/")
}
