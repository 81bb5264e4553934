// Package masterdata holds the live facility and category master data and
// keeps it current when the underlying JSON files change on disk.
package masterdata

import (
	"sync"

	"menuplan-admin/internal/facility"
	"menuplan-admin/internal/plan"
)

// State is the thread-safe owner of the current master data. The plan
// editing engine reads from it; it never reads the plan.
type State struct {
	mu         sync.RWMutex
	facilities []facility.Facility
	cats       plan.CategorySet
	listeners  []func()
}

// NewState creates a State with the given category configuration.
func NewState(cats plan.CategorySet) *State {
	return &State{cats: cats}
}

// SetFacilities replaces the facility list and notifies listeners. The list
// is expected to be normalized already (storage.LoadFacilities does that).
func (s *State) SetFacilities(facilities []facility.Facility) {
	s.mu.Lock()
	s.facilities = facilities
	s.mu.Unlock()
	s.notify()
}

// SetCategories replaces the ordered category list while keeping the
// configured role ids, then notifies listeners.
func (s *State) SetCategories(ordered []plan.Category) {
	s.mu.Lock()
	s.cats.Ordered = append([]plan.Category{}, ordered...)
	s.mu.Unlock()
	s.notify()
}

// Facilities returns a copy of the current facility list.
func (s *State) Facilities() []facility.Facility {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]facility.Facility{}, s.facilities...)
}

// Categories returns the current category configuration.
func (s *State) Categories() plan.CategorySet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cats
}

// BuildSnapshot captures the current facilities as a plan snapshot. This is
// the autosave scheduler's snapshot source.
func (s *State) BuildSnapshot() *plan.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return plan.BuildSnapshot(s.facilities, s.cats)
}

// OnChange registers a callback invoked after every master-data update,
// typically to recompute the requirement matrix.
func (s *State) OnChange(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *State) notify() {
	s.mu.RLock()
	listeners := append([]func(){}, s.listeners...)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
}
