// Package idgen provides the unique identifier generator injected into
// services. Identifiers are random (version 4) UUIDs; at 122 bits of
// entropy no collision check is performed.
package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator allocates fresh identifiers.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

// NewUUID returns a Generator backed by uuid.New.
func NewUUID() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// Sequence yields prefix-1, prefix-2, ... It is deterministic and meant for tests.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequence returns a Sequence using the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}
