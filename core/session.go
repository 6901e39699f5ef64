package core

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Session hands out unique identifiers for cloned sources. Two datasets
// extracted from the same name in one session never share an identifier.
type Session struct {
	id      uuid.UUID
	counter atomic.Uint64
}

// NewSession creates a session with a random identifier.
func NewSession() *Session {
	return &Session{id: uuid.New()}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id.String()
}

// Extractions returns how many identifiers the session has handed out.
func (s *Session) Extractions() uint64 {
	return s.counter.Load()
}

// NextID returns a fresh identifier for an extraction of name under path.
func (s *Session) NextID(path []string, name string) string {
	n := s.counter.Add(1)
	return fmt.Sprintf("%s:%s/%s#%d", s.id, strings.Join(path, "/"), name, n)
}
