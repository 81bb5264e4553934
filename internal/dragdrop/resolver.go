// Package dragdrop translates pointer-drag gestures into plan mutations.
// The UI layer constructs payload values and feeds them through a Resolver;
// the resolver validates the drop and commits through the plan store, so it
// never holds mutable plan state of its own.
package dragdrop

import (
	"menuplan-admin/internal/facility"
	"menuplan-admin/internal/plan"
)

// Payload is the data carried by an active drag gesture.
type Payload interface {
	payload()
}

// RecipeDrag carries a single recipe. Source is nil when the recipe comes
// from an external list (search results) rather than another slot.
type RecipeDrag struct {
	Recipe plan.RecipeRef
	Source *plan.SlotRef
}

func (RecipeDrag) payload() {}

// SlotDrag carries the entire recipe list of one source slot for swapping.
type SlotDrag struct {
	Source plan.SlotRef
}

func (SlotDrag) payload() {}

// Outcome reports how a drop was resolved.
type Outcome int

const (
	// Rejected means the drop failed validation and nothing was mutated.
	// The UI signals this visually; the plan is untouched.
	Rejected Outcome = iota
	// Committed means the drop was translated into a store mutation.
	Committed
)

// Resolver is a state machine over a single drag gesture at a time.
type Resolver struct {
	store  *plan.Store
	active Payload
}

// NewResolver creates a resolver committing through the given store.
func NewResolver(store *plan.Store) *Resolver {
	return &Resolver{store: store}
}

// Begin starts a gesture. Starting a new gesture while one is active
// implicitly cancels the old one.
func (r *Resolver) Begin(p Payload) {
	r.active = p
}

// Dragging reports whether a gesture is in flight.
func (r *Resolver) Dragging() bool {
	return r.active != nil
}

// Cancel aborts the active gesture without mutating the plan.
func (r *Resolver) Cancel() {
	r.active = nil
}

// Drop resolves the active gesture against a target slot. The gesture ends
// either way; only validated drops reach the store.
func (r *Resolver) Drop(target plan.SlotRef) Outcome {
	p := r.active
	r.active = nil
	if p == nil {
		return Rejected
	}

	cats := r.store.Categories()
	if !cats.Has(target.Category) || !facility.IsWeekday(target.Day) {
		return Rejected
	}

	switch d := p.(type) {
	case RecipeDrag:
		if d.Recipe.ID == "" {
			return Rejected
		}
		if slotContains(r.store.Plan(), target, d.Recipe.ID) {
			return Rejected
		}
		r.store.MoveRecipe(target.Day, target.Category, d.Recipe, d.Source)
		return Committed
	case SlotDrag:
		if d.Source == target {
			return Rejected
		}
		r.store.SwapSlots(d.Source, target)
		return Committed
	}
	return Rejected
}

func slotContains(p *plan.Plan, slot plan.SlotRef, recipeID string) bool {
	day, ok := p.Days[slot.Day]
	if !ok {
		return false
	}
	for _, r := range day.Meals[slot.Category] {
		if r.ID == recipeID {
			return true
		}
	}
	return false
}
