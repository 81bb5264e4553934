package plan

import (
	"reflect"
	"testing"
)

func TestTemplate(t *testing.T) {
	cats := DefaultCategorySet()

	source := Normalize(nil, 2026, 30, cats)
	source.Days["montag"].Meals["menu1"] = append(source.Days["montag"].Meals["menu1"], RecipeRef{ID: "r1", Name: "Gulasch"})
	source.Days["montag"].Assignments["menu1"] = append(source.Days["montag"].Assignments["menu1"], "ER")
	source.Snapshot = &Snapshot{GeneratedAt: "2026-07-20T10:00:00Z"}
	source.UpdatedAt = "2026-07-20T10:00:00Z"
	source.UpdatedBy = "kitchen"

	t.Run("CopiesDays", func(t *testing.T) {
		p := Template(source, 2026, 35, cats)
		if p.Year != 2026 || p.Week != 35 {
			t.Errorf("Expected target identity 2026/35, got %d/%d", p.Year, p.Week)
		}
		if !reflect.DeepEqual(p.Days["montag"].Meals["menu1"], []RecipeRef{{ID: "r1", Name: "Gulasch"}}) {
			t.Errorf("Expected template to copy montag/menu1, got %v", p.Days["montag"].Meals["menu1"])
		}
		if !reflect.DeepEqual(p.Days["montag"].Assignments["menu1"], []string{"ER"}) {
			t.Errorf("Expected template to copy assignments, got %v", p.Days["montag"].Assignments["menu1"])
		}
	})

	t.Run("StripsSnapshotAndMetadata", func(t *testing.T) {
		p := Template(source, 2026, 35, cats)
		if p.Snapshot != nil {
			t.Error("Expected template to strip the snapshot")
		}
		if p.UpdatedAt != "" || p.UpdatedBy != "" {
			t.Error("Expected template to strip update metadata")
		}
	})

	t.Run("DeepCopy", func(t *testing.T) {
		p := Template(source, 2026, 35, cats)
		p.Days["montag"].Meals["menu1"][0].Name = "changed"
		if source.Days["montag"].Meals["menu1"][0].Name != "Gulasch" {
			t.Error("Expected template to deep-copy the source days")
		}
	})

	t.Run("NilSourceYieldsEmptyPlan", func(t *testing.T) {
		p := Template(nil, 2026, 35, cats)
		if len(p.Days) != 7 {
			t.Fatalf("Expected canonical empty plan, got %d days", len(p.Days))
		}
	})

	t.Run("StoreLoadTemplateKeepsIdentity", func(t *testing.T) {
		s := NewStore(cats, 2027, 2)
		s.LoadTemplate(source)

		p := s.Plan()
		if p.Year != 2027 || p.Week != 2 {
			t.Errorf("Expected store identity 2027/2, got %d/%d", p.Year, p.Week)
		}
		if p.Snapshot != nil {
			t.Error("Expected templated plan to carry no snapshot")
		}
		if len(p.Days["montag"].Meals["menu1"]) != 1 {
			t.Error("Expected templated plan to carry the source recipes")
		}
	})
}
