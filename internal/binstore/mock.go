package binstore

import (
	"github.com/huangsam/binbridge/internal/contract"
	"github.com/huangsam/binbridge/schema"
	"github.com/stretchr/testify/mock"
)

// MockScope is a mock implementation of schema.Scope for testing.
type MockScope struct {
	mock.Mock
}

var _ schema.Scope = &MockScope{} // Compile-time check

// Names implements the schema.Scope interface.
func (m *MockScope) Names() []string {
	args := m.Called()
	names, _ := args.Get(0).([]string)
	return names
}

// Contains implements the schema.Scope interface.
func (m *MockScope) Contains(name string) bool {
	return m.Called(name).Bool(0)
}

// Kind implements the schema.Scope interface.
func (m *MockScope) Kind(name string) schema.Kind {
	return m.Called(name).Get(0).(schema.Kind)
}

// Get implements the schema.Scope interface.
func (m *MockScope) Get(name string) (schema.Object, error) {
	args := m.Called(name)
	return args.Get(0).(schema.Object), args.Error(1)
}

// Subscope implements the schema.Scope interface.
func (m *MockScope) Subscope(name string) (schema.Scope, error) {
	args := m.Called(name)
	scope, _ := args.Get(0).(schema.Scope)
	return scope, args.Error(1)
}

// MockObjectStore is a mock implementation of contract.ObjectStore for testing.
type MockObjectStore struct {
	mock.Mock
}

var _ contract.ObjectStore = &MockObjectStore{} // Compile-time check

// Root implements the contract.ObjectStore interface.
func (m *MockObjectStore) Root() schema.Scope {
	scope, _ := m.Called().Get(0).(schema.Scope)
	return scope
}

// Close implements the contract.ObjectStore interface.
func (m *MockObjectStore) Close() error {
	return m.Called().Error(0)
}

// Import implements the contract.ObjectStore interface.
func (m *MockObjectStore) Import(doc *schema.Document) (int, error) {
	args := m.Called(doc)
	return args.Int(0), args.Error(1)
}

// Export implements the contract.ObjectStore interface.
func (m *MockObjectStore) Export() (*schema.Document, error) {
	args := m.Called()
	doc, _ := args.Get(0).(*schema.Document)
	return doc, args.Error(1)
}

// Clear implements the contract.ObjectStore interface.
func (m *MockObjectStore) Clear() error {
	return m.Called().Error(0)
}

// GetStatus implements the contract.ObjectStore interface.
func (m *MockObjectStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}
