package loader

import (
	"maps"
	"sync"

	"go.trai.ch/shelf/internal/core/domain"
)

// State holds the artwork map and per-item load states.
// It is safe for concurrent use.
type State struct {
	mu      sync.RWMutex
	artwork map[domain.ItemID]domain.ImageRef
	states  map[domain.ItemID]domain.LoadState
}

// NewState creates an empty State.
func NewState() *State {
	return &State{
		artwork: make(map[domain.ItemID]domain.ImageRef),
		states:  make(map[domain.ItemID]domain.LoadState),
	}
}

// Claim marks every id that is neither loading nor cached as loading and
// returns them in input order. Duplicates are collapsed.
func (s *State) Claim(ids []domain.ItemID) []domain.ItemID {
	s.mu.Lock()
	defer s.mu.Unlock()

	claimed := make([]domain.ItemID, 0, len(ids))
	for _, id := range ids {
		switch s.states[id] {
		case domain.LoadLoading, domain.LoadCached:
			continue
		}
		s.states[id] = domain.LoadLoading
		claimed = append(claimed, id)
	}
	return claimed
}

// Complete records the outcome of a resolution. A nil ref marks the item
// unavailable. It reports false when the item is no longer loading, in which
// case nothing is recorded.
func (s *State) Complete(id domain.ItemID, ref *domain.ImageRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.states[id] != domain.LoadLoading {
		return false
	}
	if ref == nil {
		s.states[id] = domain.LoadUnavailable
		return true
	}
	s.artwork[id] = *ref
	s.states[id] = domain.LoadCached
	return true
}

// Reset returns loading items to unrequested. Items in any other state are untouched.
func (s *State) Reset(ids []domain.ItemID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if s.states[id] == domain.LoadLoading {
			delete(s.states, id)
		}
	}
}

// Release forgets ids entirely and returns the references they held.
func (s *State) Release(ids []domain.ItemID) []domain.ImageRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	var released []domain.ImageRef
	for _, id := range ids {
		if ref, ok := s.artwork[id]; ok {
			released = append(released, ref)
			delete(s.artwork, id)
		}
		delete(s.states, id)
	}
	return released
}

// Clear forgets every item and returns all references held.
func (s *State) Clear() []domain.ImageRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	released := make([]domain.ImageRef, 0, len(s.artwork))
	for _, ref := range s.artwork {
		released = append(released, ref)
	}
	clear(s.artwork)
	clear(s.states)
	return released
}

// Status returns the load state of id.
func (s *State) Status(id domain.ItemID) domain.LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[id]
}

// Ref returns the reference held for id.
func (s *State) Ref(id domain.ItemID) (domain.ImageRef, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := s.artwork[id]
	return ref, ok
}

// Has reports whether a reference is held for id.
func (s *State) Has(id domain.ItemID) bool {
	_, ok := s.Ref(id)
	return ok
}

// Snapshot returns copies of the artwork map and the load states.
func (s *State) Snapshot() (map[domain.ItemID]domain.ImageRef, map[domain.ItemID]domain.LoadState) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.artwork), maps.Clone(s.states)
}

// Tracked returns the ids with any recorded state.
func (s *State) Tracked() []domain.ItemID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]domain.ItemID, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	return ids
}
