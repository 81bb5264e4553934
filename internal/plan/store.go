package plan

import (
	"sync"

	"menuplan-admin/internal/facility"
)

// Store owns the canonical in-memory Plan. All mutation goes through the
// store; collaborators only ever see clones. Invalid arguments (unknown day
// or category keys, duplicate recipes, self-swaps) are silent no-ops: the
// values originate from a closed, pre-validated set, and the store's job is
// only to refuse the invalid transition.
type Store struct {
	mu   sync.Mutex
	cats CategorySet
	plan *Plan
	subs []func(*Plan)
}

// NewStore creates a store holding the canonical empty plan for (year, week).
func NewStore(cats CategorySet, year, week int) *Store {
	return &Store{
		cats: cats,
		plan: Normalize(nil, year, week, cats),
	}
}

// Categories returns the configured category set.
func (s *Store) Categories() CategorySet {
	return s.cats
}

// Plan returns a deep copy of the current plan for reading.
func (s *Store) Plan() *Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.Clone()
}

// Subscribe registers a callback invoked synchronously, once, after every
// successful mutation. Rejected mutations do not notify.
func (s *Store) Subscribe(fn func(*Plan)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Replace swaps in the plan for a different week, normalizing raw first.
// Used when the user navigates between weeks.
func (s *Store) Replace(raw *Plan, year, week int) {
	s.mu.Lock()
	s.plan = Normalize(raw, year, week, s.cats)
	s.mu.Unlock()
	s.notify()
}

// MoveRecipe inserts recipe into the target slot, removing it from the
// source slot first when source is non-nil. If the target slot already holds
// a recipe with the same id the whole operation is a no-op, including the
// source removal.
func (s *Store) MoveRecipe(targetDay, targetCategory string, recipe RecipeRef, source *SlotRef) {
	s.mu.Lock()
	changed := s.moveRecipeLocked(targetDay, targetCategory, recipe, source)
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) moveRecipeLocked(targetDay, targetCategory string, recipe RecipeRef, source *SlotRef) bool {
	if recipe.ID == "" || !s.validSlotLocked(targetDay, targetCategory) {
		return false
	}
	if source != nil && !s.validSlotLocked(source.Day, source.Category) {
		return false
	}

	target := s.plan.Days[targetDay]
	if containsRecipe(target.Meals[targetCategory], recipe.ID) {
		return false
	}

	if source != nil {
		src := s.plan.Days[source.Day]
		list := src.Meals[source.Category]
		kept := list[:0]
		for _, r := range list {
			if r.ID != recipe.ID {
				kept = append(kept, r)
			}
		}
		src.Meals[source.Category] = kept
	}

	target.Meals[targetCategory] = append(target.Meals[targetCategory], recipe)
	return true
}

// SwapSlots exchanges the entire recipe lists of two slots. Swapping a slot
// with itself is a no-op. Applying the same swap twice restores the original
// state.
func (s *Store) SwapSlots(a, b SlotRef) {
	s.mu.Lock()
	changed := false
	if a != b && s.validSlotLocked(a.Day, a.Category) && s.validSlotLocked(b.Day, b.Category) {
		dayA := s.plan.Days[a.Day]
		dayB := s.plan.Days[b.Day]
		dayA.Meals[a.Category], dayB.Meals[b.Category] = dayB.Meals[b.Category], dayA.Meals[a.Category]
		changed = true
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// RemoveRecipe removes the recipe with the given id from a slot, if present.
func (s *Store) RemoveRecipe(day, category, recipeID string) {
	s.mu.Lock()
	changed := false
	if s.validSlotLocked(day, category) {
		d := s.plan.Days[day]
		list := d.Meals[category]
		if containsRecipe(list, recipeID) {
			kept := list[:0]
			for _, r := range list {
				if r.ID != recipeID {
					kept = append(kept, r)
				}
			}
			d.Meals[category] = kept
			changed = true
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// ToggleFacilityAssignment flips a facility's claim on one of the two
// main-dish categories for a day. Adding the facility to one main removes it
// from the other, so the two sets stay disjoint. Toggling twice restores the
// original state.
func (s *Store) ToggleFacilityAssignment(day, mainCategory, facilityID string) {
	s.mu.Lock()
	changed := false
	if facilityID != "" && facility.IsWeekday(day) && s.cats.IsMain(mainCategory) {
		d := s.plan.Days[day]
		if containsID(d.Assignments[mainCategory], facilityID) {
			d.Assignments[mainCategory] = removeID(d.Assignments[mainCategory], facilityID)
		} else {
			other := s.cats.OtherMain(mainCategory)
			d.Assignments[other] = removeID(d.Assignments[other], facilityID)
			d.Assignments[mainCategory] = append(d.Assignments[mainCategory], facilityID)
		}
		changed = true
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Clear empties every slot and assignment set while keeping the plan's
// identity and any existing snapshot.
func (s *Store) Clear() {
	s.mu.Lock()
	for wd, day := range s.plan.Days {
		for cat := range day.Meals {
			day.Meals[cat] = []RecipeRef{}
		}
		for cat := range day.Assignments {
			day.Assignments[cat] = []string{}
		}
		s.plan.Days[wd] = day
	}
	s.mu.Unlock()
	s.notify()
}

// LoadTemplate replaces the current plan's days with a deep copy of the
// source plan's days. The snapshot and update metadata are not carried over;
// the templated week earns its own snapshot on its next save.
func (s *Store) LoadTemplate(source *Plan) {
	s.mu.Lock()
	s.plan = Template(source, s.plan.Year, s.plan.Week, s.cats)
	s.mu.Unlock()
	s.notify()
}

// AttachSnapshot sets the plan's snapshot if none is present yet. Called by
// the autosave path right before the first write; it is metadata bookkeeping,
// not an edit, so subscribers are not notified.
func (s *Store) AttachSnapshot(snap *Snapshot) {
	s.mu.Lock()
	if s.plan.Snapshot == nil {
		s.plan.Snapshot = snap.Clone()
	}
	s.mu.Unlock()
}

// RefreshSnapshot replaces the plan's snapshot with a freshly built one,
// leaving all recipe and assignment data untouched. This is the explicit
// "refresh entitlements" action; the regular save path never overwrites an
// existing snapshot.
func (s *Store) RefreshSnapshot(snap *Snapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	s.plan.Snapshot = snap.Clone()
	s.mu.Unlock()
	s.notify()
}

func (s *Store) validSlotLocked(day, category string) bool {
	return facility.IsWeekday(day) && s.cats.Has(category)
}

func (s *Store) notify() {
	s.mu.Lock()
	snap := s.plan.Clone()
	subs := append([]func(*Plan){}, s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}
