package telegram

import (
	"strings"
	"testing"

	"menuplan-admin/internal/facility"
	"menuplan-admin/internal/plan"
	"menuplan-admin/internal/requirement"
)

func TestFormatWeekPlan(t *testing.T) {
	cats := plan.DefaultCategorySet()
	p := plan.Normalize(nil, 2026, 30, cats)
	p.Days["montag"].Meals["suppe"] = append(p.Days["montag"].Meals["suppe"], plan.RecipeRef{ID: "r1", Name: "Kartoffelsuppe"})
	p.Days["montag"].Meals["menu1"] = append(p.Days["montag"].Meals["menu1"],
		plan.RecipeRef{ID: "r2", Name: "Gulasch"},
		plan.RecipeRef{ID: "r3", Name: "Spätzle"})

	out := formatWeekPlan(p, cats)

	if !strings.Contains(out, "*Menüplan KW 30/2026*") {
		t.Error("Missing plan header")
	}
	if !strings.Contains(out, "*Montag*") {
		t.Error("Missing capitalized day heading")
	}
	if !strings.Contains(out, "Suppe: Kartoffelsuppe") {
		t.Error("Missing soup line")
	}
	if !strings.Contains(out, "Gulasch, Spätzle") {
		t.Error("Missing joined recipe names")
	}
	if strings.Contains(out, "Menü 2:") {
		t.Error("Empty categories should be omitted")
	}
}

func TestFormatMatrix(t *testing.T) {
	cats := plan.DefaultCategorySet()
	p := plan.Normalize(nil, 2026, 30, cats)

	entries := []facility.SnapshotEntry{
		{ID: "k1", Kuerzel: "K1", IsIntern: true},
		{ID: "er", Kuerzel: "ER", Speiseplan: facility.Speiseplan{
			"montag": {Suppe: true, Hauptspeise: true},
		}},
	}
	matrix := requirement.BuildMatrix(entries, cats)

	out := formatMatrix(p, matrix, cats)

	if !strings.Contains(out, "*Bedarf KW 30/2026*") {
		t.Error("Missing matrix header")
	}
	if !strings.Contains(out, "Suppe: K1 ER") {
		t.Error("Missing montag soup cell")
	}
	if !strings.Contains(out, "*Sonntag*") {
		t.Error("Missing day heading")
	}
	if strings.Contains(out, "Dessert: ER") {
		t.Error("Facility without dessert flag should not appear in dessert cells")
	}
}

func TestTitle(t *testing.T) {
	cases := map[string]string{"montag": "Montag", "": "", "x": "X"}
	for in, want := range cases {
		if got := title(in); got != want {
			t.Errorf("title(%q) = %q, want %q", in, got, want)
		}
	}
}
