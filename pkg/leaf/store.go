// Package leaf provides the leaf section store: append-only storage for token
// slices that are too large or too deep to build into a section tree eagerly.
package leaf

import (
	"sync"

	"github.com/yaklabco/codesurface/pkg/token"
)

// Store holds detached token slices addressed by the index assigned at append
// time. Indices are never reused and stored slices are never modified.
type Store struct {
	mu       sync.RWMutex
	sections [][]token.Token
}

// NewStore creates a store preloaded with sections, which keep their
// positions as indices.
func NewStore(sections ...[]token.Token) *Store {
	s := &Store{sections: make([][]token.Token, 0, len(sections))}
	for _, sec := range sections {
		s.sections = append(s.sections, token.Clone(sec))
	}
	return s
}

// Append stores a copy of tokens and returns its index.
func (s *Store) Append(tokens []token.Token) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sections = append(s.sections, token.Clone(tokens))
	return len(s.sections) - 1
}

// Get returns a copy of the section at index, or false if there is none.
func (s *Store) Get(index int) ([]token.Token, bool) {
	if s == nil {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.sections) {
		return nil, false
	}
	return token.Clone(s.sections[index]), true
}

// Len returns the number of stored sections.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sections)
}

// Sections returns a copy of every stored section in index order.
func (s *Store) Sections() [][]token.Token {
	if s == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([][]token.Token, len(s.sections))
	for i, sec := range s.sections {
		out[i] = token.Clone(sec)
	}
	return out
}
