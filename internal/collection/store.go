package collection

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yakov100/recipe-book-sub000/internal/model"
)

// Store holds the session's in-memory recipe collection. It is the single
// mutable source of truth for the session; the snapshot cache and the
// repository are derived views of it or authorities over it, never aliases.
//
// Replace swaps the whole collection atomically, so no reader ever observes
// a partially merged state. Callers must not hold a slice from Get across a
// Replace and expect it to stay current; they re-read instead.
type Store struct {
	mu        sync.RWMutex
	recipes   []model.Recipe
	observers []func([]model.Recipe)
}

func NewStore() *Store {
	return &Store{}
}

// Get returns a copy of the current collection in insertion order.
func (s *Store) Get() []model.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Len returns the current collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

// Find returns the recipe with the given id, if present.
func (s *Store) Find(id uuid.UUID) (model.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return model.Recipe{}, false
}

// Replace swaps in a new collection and notifies subscribers. The input is
// copied, so the caller keeps ownership of its slice.
func (s *Store) Replace(recipes []model.Recipe) {
	next := make([]model.Recipe, len(recipes))
	copy(next, recipes)

	s.mu.Lock()
	s.recipes = next
	observers := make([]func([]model.Recipe), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		view := make([]model.Recipe, len(next))
		copy(view, next)
		fn(view)
	}
}

// Subscribe registers a callback invoked synchronously after every Replace.
func (s *Store) Subscribe(fn func([]model.Recipe)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}
