// Package restapi exposes the three read/replace resources named in
// spec.md §6 ("a simple in-process store is acceptable"). Grounded on
// stdlib net/http (DESIGN.md: no example in the retrieved pack grounds an
// HTTP router, and the REST surface is scoped as a thin external-collaborator
// interface rather than a core simulation concern).
package restapi

import (
	"sync"

	"github.com/ccsim/castersim/engine"
)

// Store is a thread-safe in-process holder for the three REST resources.
// The serve command's tick loop replaces its contents after every tick;
// Server snapshots from it on GET and installs request bodies on POST.
type Store struct {
	mu           sync.RWMutex
	heatSchedule []*engine.Heat
	cutSchedule  []*engine.Product
	products     []*engine.Product
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// HeatSchedule returns a copy of the current heat schedule.
func (s *Store) HeatSchedule() []*engine.Heat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*engine.Heat, len(s.heatSchedule))
	copy(out, s.heatSchedule)
	return out
}

// ReplaceHeatSchedule atomically installs heats as the current schedule.
func (s *Store) ReplaceHeatSchedule(heats []*engine.Heat) {
	s.mu.Lock()
	s.heatSchedule = heats
	s.mu.Unlock()
}

// CutSchedule returns a copy of the current cut schedule.
func (s *Store) CutSchedule() []*engine.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*engine.Product, len(s.cutSchedule))
	copy(out, s.cutSchedule)
	return out
}

// ReplaceCutSchedule atomically installs products as the current cut schedule.
func (s *Store) ReplaceCutSchedule(products []*engine.Product) {
	s.mu.Lock()
	s.cutSchedule = products
	s.mu.Unlock()
}

// Products returns a copy of the current product list.
func (s *Store) Products() []*engine.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*engine.Product, len(s.products))
	copy(out, s.products)
	return out
}

// ReplaceProducts atomically installs products as the current product list.
func (s *Store) ReplaceProducts(products []*engine.Product) {
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
}
