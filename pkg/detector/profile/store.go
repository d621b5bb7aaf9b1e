package profile

import (
	"errors"
	"sync/atomic"
)

// ErrNotLoaded is returned when the store is read before a profile loaded.
var ErrNotLoaded = errors.New("no scoring profile loaded")

// Store holds the active scoring profile. Swaps are atomic: a concurrent
// reader sees either the previous or the next profile, never a mix.
type Store struct {
	active atomic.Pointer[Profile]
}

// NewStore creates a store holding the given profile. A nil profile leaves
// the store empty until the first Swap.
func NewStore(p *Profile) *Store {
	s := &Store{}
	if p != nil {
		s.active.Store(p)
	}
	return s
}

// Active returns the current profile, or ErrNotLoaded when none is set.
func (s *Store) Active() (*Profile, error) {
	p := s.active.Load()
	if p == nil {
		return nil, ErrNotLoaded
	}
	return p, nil
}

// Swap installs a new active profile. The profile must already be validated;
// callers reload through a Source, which validates on Load.
func (s *Store) Swap(p *Profile) {
	s.active.Store(p)
}

// Ready reports whether a profile is loaded. Used by the readiness probe.
func (s *Store) Ready() bool {
	return s.active.Load() != nil
}
