package dragdrop

import (
	"reflect"
	"testing"

	"menuplan-admin/internal/plan"
)

func newTestStore() *plan.Store {
	return plan.NewStore(plan.DefaultCategorySet(), 2026, 30)
}

func slotRecipes(s *plan.Store, slot plan.SlotRef) []plan.RecipeRef {
	return s.Plan().Days[slot.Day].Meals[slot.Category]
}

func TestResolverRecipeDrag(t *testing.T) {
	gulasch := plan.RecipeRef{ID: "r1", Name: "Gulasch"}
	target := plan.SlotRef{Day: "montag", Category: "menu1"}

	t.Run("DropFromSearchCommits", func(t *testing.T) {
		s := newTestStore()
		r := NewResolver(s)

		r.Begin(RecipeDrag{Recipe: gulasch})
		if got := r.Drop(target); got != Committed {
			t.Fatalf("Expected Committed, got %v", got)
		}
		if !reflect.DeepEqual(slotRecipes(s, target), []plan.RecipeRef{gulasch}) {
			t.Errorf("Expected recipe in target slot, got %v", slotRecipes(s, target))
		}
	})

	t.Run("DropBetweenSlotsMoves", func(t *testing.T) {
		s := newTestStore()
		source := plan.SlotRef{Day: "dienstag", Category: "menu2"}
		s.MoveRecipe(source.Day, source.Category, gulasch, nil)

		r := NewResolver(s)
		r.Begin(RecipeDrag{Recipe: gulasch, Source: &source})
		if got := r.Drop(target); got != Committed {
			t.Fatalf("Expected Committed, got %v", got)
		}
		if len(slotRecipes(s, source)) != 0 {
			t.Error("Expected recipe removed from source slot")
		}
		if len(slotRecipes(s, target)) != 1 {
			t.Error("Expected recipe in target slot")
		}
	})

	t.Run("DuplicateInTargetRejected", func(t *testing.T) {
		s := newTestStore()
		s.MoveRecipe(target.Day, target.Category, gulasch, nil)
		source := plan.SlotRef{Day: "dienstag", Category: "menu1"}
		s.MoveRecipe(source.Day, source.Category, gulasch, nil)
		before := s.Plan()

		r := NewResolver(s)
		r.Begin(RecipeDrag{Recipe: gulasch, Source: &source})
		if got := r.Drop(target); got != Rejected {
			t.Fatalf("Expected Rejected, got %v", got)
		}
		if !reflect.DeepEqual(before, s.Plan()) {
			t.Error("Expected plan unchanged after rejected drop")
		}
	})

	t.Run("EmptyRecipeIDRejected", func(t *testing.T) {
		s := newTestStore()
		r := NewResolver(s)

		r.Begin(RecipeDrag{Recipe: plan.RecipeRef{Name: "no id"}})
		if got := r.Drop(target); got != Rejected {
			t.Errorf("Expected Rejected, got %v", got)
		}
	})

	t.Run("UnknownTargetRejected", func(t *testing.T) {
		s := newTestStore()
		r := NewResolver(s)

		r.Begin(RecipeDrag{Recipe: gulasch})
		if got := r.Drop(plan.SlotRef{Day: "montag", Category: "brunch"}); got != Rejected {
			t.Errorf("Expected Rejected for unknown category, got %v", got)
		}

		r.Begin(RecipeDrag{Recipe: gulasch})
		if got := r.Drop(plan.SlotRef{Day: "monday", Category: "menu1"}); got != Rejected {
			t.Errorf("Expected Rejected for unknown day, got %v", got)
		}
	})
}

func TestResolverSlotDrag(t *testing.T) {
	a := plan.SlotRef{Day: "montag", Category: "menu1"}
	b := plan.SlotRef{Day: "mittwoch", Category: "menu2"}
	gulasch := plan.RecipeRef{ID: "r1", Name: "Gulasch"}

	t.Run("SwapCommits", func(t *testing.T) {
		s := newTestStore()
		s.MoveRecipe(a.Day, a.Category, gulasch, nil)

		r := NewResolver(s)
		r.Begin(SlotDrag{Source: a})
		if got := r.Drop(b); got != Committed {
			t.Fatalf("Expected Committed, got %v", got)
		}
		if len(slotRecipes(s, a)) != 0 {
			t.Error("Expected source slot emptied")
		}
		if !reflect.DeepEqual(slotRecipes(s, b), []plan.RecipeRef{gulasch}) {
			t.Errorf("Expected recipe list in target slot, got %v", slotRecipes(s, b))
		}
	})

	t.Run("SelfSwapRejected", func(t *testing.T) {
		s := newTestStore()
		s.MoveRecipe(a.Day, a.Category, gulasch, nil)

		r := NewResolver(s)
		r.Begin(SlotDrag{Source: a})
		if got := r.Drop(a); got != Rejected {
			t.Errorf("Expected Rejected for self-swap, got %v", got)
		}
	})
}

func TestResolverGestureLifecycle(t *testing.T) {
	gulasch := plan.RecipeRef{ID: "r1", Name: "Gulasch"}
	target := plan.SlotRef{Day: "montag", Category: "menu1"}

	t.Run("DropWithoutBeginRejected", func(t *testing.T) {
		r := NewResolver(newTestStore())
		if got := r.Drop(target); got != Rejected {
			t.Errorf("Expected Rejected without an active gesture, got %v", got)
		}
	})

	t.Run("CancelNeverMutates", func(t *testing.T) {
		s := newTestStore()
		before := s.Plan()

		r := NewResolver(s)
		r.Begin(RecipeDrag{Recipe: gulasch})
		r.Cancel()
		if r.Dragging() {
			t.Error("Expected no active gesture after cancel")
		}
		if !reflect.DeepEqual(before, s.Plan()) {
			t.Error("Expected plan untouched by cancel")
		}
		if got := r.Drop(target); got != Rejected {
			t.Errorf("Expected Rejected after cancel, got %v", got)
		}
	})

	t.Run("BeginReplacesActiveGesture", func(t *testing.T) {
		s := newTestStore()
		r := NewResolver(s)

		r.Begin(RecipeDrag{Recipe: plan.RecipeRef{ID: "old", Name: "Old"}})
		r.Begin(RecipeDrag{Recipe: gulasch})
		if got := r.Drop(target); got != Committed {
			t.Fatalf("Expected Committed, got %v", got)
		}
		if !reflect.DeepEqual(slotRecipes(s, target), []plan.RecipeRef{gulasch}) {
			t.Errorf("Expected only the second gesture's recipe, got %v", slotRecipes(s, target))
		}
	})

	t.Run("GestureEndsAfterDrop", func(t *testing.T) {
		r := NewResolver(newTestStore())
		r.Begin(RecipeDrag{Recipe: gulasch})
		r.Drop(target)
		if r.Dragging() {
			t.Error("Expected gesture to end after drop")
		}
	})
}
