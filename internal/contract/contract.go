// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "github.com/huangsam/binbridge/schema"

// Source serves the root scope of an object store.
// This allows commands and the MCP server to be tested against any store.
type Source interface {
	// Root returns the top-level scope.
	Root() schema.Scope

	// Close releases the underlying resources.
	Close() error
}

// ObjectStore is a Source persisted in a database that documents can be imported into.
type ObjectStore interface {
	Source

	// Import replaces the stored tree with doc and returns the number of rows written.
	Import(doc *schema.Document) (int, error)

	// Export rebuilds the stored tree as a document.
	Export() (*schema.Document, error)

	// Clear removes every stored object.
	Clear() error

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)
}
