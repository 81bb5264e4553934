package facility

import "testing"

func TestNormalize(t *testing.T) {
	t.Run("SoupImpliesMain", func(t *testing.T) {
		out := Normalize([]Facility{
			{ID: "er", Speiseplan: Speiseplan{"montag": {Suppe: true}}},
		})
		if !out[0].Speiseplan["montag"].Hauptspeise {
			t.Error("Expected suppe to imply hauptspeise")
		}
	})

	t.Run("DessertImpliesMain", func(t *testing.T) {
		out := Normalize([]Facility{
			{ID: "er", Speiseplan: Speiseplan{"freitag": {Dessert: true}}},
		})
		if !out[0].Speiseplan["freitag"].Hauptspeise {
			t.Error("Expected dessert to imply hauptspeise")
		}
	})

	t.Run("FillsAllWeekdays", func(t *testing.T) {
		out := Normalize([]Facility{{ID: "er"}})
		if len(out[0].Speiseplan) != len(Weekdays) {
			t.Fatalf("Expected %d weekday entries, got %d", len(Weekdays), len(out[0].Speiseplan))
		}
		for _, wd := range Weekdays {
			if flags := out[0].Speiseplan[wd]; flags.Suppe || flags.Hauptspeise || flags.Dessert {
				t.Errorf("Expected all-false flags for %s, got %+v", wd, flags)
			}
		}
	})

	t.Run("DropsFacilityWithoutID", func(t *testing.T) {
		out := Normalize([]Facility{{Kuerzel: "X"}, {ID: "er", Kuerzel: "ER"}})
		if len(out) != 1 || out[0].ID != "er" {
			t.Errorf("Expected only the facility with an ID, got %v", out)
		}
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		in := []Facility{
			{ID: "er", Speiseplan: Speiseplan{"montag": {Suppe: true}}},
		}
		Normalize(in)
		if in[0].Speiseplan["montag"].Hauptspeise {
			t.Error("Expected input speiseplan untouched")
		}
	})
}

func TestIsWeekday(t *testing.T) {
	for _, wd := range Weekdays {
		if !IsWeekday(wd) {
			t.Errorf("Expected %s to be a weekday", wd)
		}
	}
	for _, s := range []string{"monday", "Montag", "", "feiertag"} {
		if IsWeekday(s) {
			t.Errorf("Expected %q to be rejected", s)
		}
	}
}

func TestSnapshotEntry(t *testing.T) {
	f := Facility{
		ID:         "er",
		Kuerzel:    "ER",
		Name:       "Ergoldsbach",
		IsIntern:   false,
		Speiseplan: Speiseplan{"montag": {Hauptspeise: true}},
		Gruppen:    []Gruppe{{Name: "Krippe", Anzahl: 12}},
	}

	e := f.SnapshotEntry()
	if e.ID != "er" || e.Kuerzel != "ER" || e.Name != "Ergoldsbach" {
		t.Errorf("Expected identity fields copied, got %+v", e)
	}

	e.Speiseplan["montag"] = MealFlags{}
	if !f.Speiseplan["montag"].Hauptspeise {
		t.Error("Expected snapshot entry to deep-copy the speiseplan")
	}
}
