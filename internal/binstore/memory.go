package binstore

import (
	"fmt"

	"github.com/huangsam/binbridge/schema"
)

// MemScope serves one level of a Document from memory.
type MemScope struct {
	entries []schema.Entry
	index   map[string]int
}

var _ schema.Scope = &MemScope{} // Compile-time check

// NewMemScope validates doc and returns its root scope.
func NewMemScope(doc *schema.Document) (*MemScope, error) {
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}
	return newMemScope(doc.Entries), nil
}

func newMemScope(entries []schema.Entry) *MemScope {
	s := &MemScope{entries: entries, index: make(map[string]int, len(entries))}
	for i, e := range entries {
		// The first of several entries sharing a name wins.
		if _, ok := s.index[e.Name]; !ok {
			s.index[e.Name] = i
		}
	}
	return s
}

// Names returns every entry name in document order.
func (s *MemScope) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// Contains reports whether name is listed.
func (s *MemScope) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Kind reports the kind of name, or KindOther when it is not listed.
func (s *MemScope) Kind(name string) schema.Kind {
	i, ok := s.index[name]
	if !ok {
		return schema.KindOther
	}
	return schema.ParseKind(s.entries[i].Kind)
}

// Get returns name as a tagged object.
func (s *MemScope) Get(name string) (schema.Object, error) {
	i, ok := s.index[name]
	if !ok {
		return schema.Object{}, fmt.Errorf("%w: %q", ErrNoEntry, name)
	}
	return entryObject(s.entries[i]), nil
}

// Subscope returns the nested scope called name.
func (s *MemScope) Subscope(name string) (schema.Scope, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoEntry, name)
	}
	e := s.entries[i]
	if schema.ParseKind(e.Kind) != schema.KindScope {
		return nil, fmt.Errorf("%w: %q is %s", ErrNotScope, name, schema.ParseKind(e.Kind))
	}
	return newMemScope(e.Children), nil
}

// entryObject turns a validated entry into a tagged object.
func entryObject(e schema.Entry) schema.Object {
	obj := schema.Object{Name: e.Name, Kind: schema.ParseKind(e.Kind)}
	switch obj.Kind {
	case schema.KindOneDimensional:
		obj.Hist1D = newHist1D(e)
	case schema.KindTwoDimensional:
		obj.Hist2D = newHist2D(e)
	case schema.KindScope:
		obj.Scope = newMemScope(e.Children)
	case schema.KindOther:
	}
	return obj
}
