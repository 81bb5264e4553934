package requirement

import (
	"testing"

	"menuplan-admin/internal/facility"
	"menuplan-admin/internal/plan"
)

func cellIDs(m Matrix, day, cat string) []string {
	ids := make([]string, 0, len(m[day][cat]))
	for _, e := range m[day][cat] {
		ids = append(ids, e.ID)
	}
	return ids
}

func hasID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestBuildMatrix(t *testing.T) {
	cats := plan.DefaultCategorySet()

	intern := facility.SnapshotEntry{ID: "k1", Kuerzel: "K1", IsIntern: true}
	extern := facility.SnapshotEntry{
		ID:      "er",
		Kuerzel: "ER",
		Speiseplan: facility.Speiseplan{
			"montag":  {Suppe: true, Hauptspeise: true},
			"freitag": {Hauptspeise: true, Dessert: true},
		},
	}

	t.Run("InternAppearsEverywhere", func(t *testing.T) {
		m := BuildMatrix([]facility.SnapshotEntry{intern}, cats)
		for _, wd := range facility.Weekdays {
			for _, c := range cats.Ordered {
				if !hasID(cellIDs(m, wd, c.ID), "k1") {
					t.Errorf("Expected intern facility in %s/%s", wd, c.ID)
				}
			}
		}
	})

	t.Run("ExternFollowsFlags", func(t *testing.T) {
		m := BuildMatrix([]facility.SnapshotEntry{extern}, cats)

		if !hasID(cellIDs(m, "montag", "suppe"), "er") {
			t.Error("Expected extern facility in montag/suppe")
		}
		if hasID(cellIDs(m, "montag", "dessert"), "er") {
			t.Error("Expected no dessert requirement on montag")
		}
		if !hasID(cellIDs(m, "freitag", "dessert"), "er") {
			t.Error("Expected extern facility in freitag/dessert")
		}
		if hasID(cellIDs(m, "dienstag", "menu1"), "er") {
			t.Error("Expected no requirement on a day without flags")
		}
	})

	t.Run("HauptspeiseFillsBothMains", func(t *testing.T) {
		m := BuildMatrix([]facility.SnapshotEntry{extern}, cats)
		for _, main := range []string{"menu1", "menu2"} {
			if !hasID(cellIDs(m, "montag", main), "er") {
				t.Errorf("Expected extern facility in montag/%s", main)
			}
		}
	})

	t.Run("MissingSpeiseplanReadsAllFalse", func(t *testing.T) {
		bare := facility.SnapshotEntry{ID: "x", Kuerzel: "X"}
		m := BuildMatrix([]facility.SnapshotEntry{bare}, cats)
		for _, wd := range facility.Weekdays {
			for _, c := range cats.Ordered {
				if hasID(cellIDs(m, wd, c.ID), "x") {
					t.Fatalf("Expected no requirement for facility without speiseplan, found in %s/%s", wd, c.ID)
				}
			}
		}
	})

	t.Run("EmptyCellsAreNonNil", func(t *testing.T) {
		m := BuildMatrix(nil, cats)
		for _, wd := range facility.Weekdays {
			for _, c := range cats.Ordered {
				if m[wd][c.ID] == nil {
					t.Fatalf("Expected empty slice for %s/%s, got nil", wd, c.ID)
				}
			}
		}
	})
}

func TestSource(t *testing.T) {
	cats := plan.DefaultCategorySet()

	live := []facility.Facility{
		{ID: "er", Kuerzel: "ER", Speiseplan: facility.Speiseplan{
			"montag": {Suppe: true, Hauptspeise: true, Dessert: true},
		}},
	}

	t.Run("SnapshotIsAuthoritative", func(t *testing.T) {
		p := plan.Normalize(nil, 2026, 30, cats)
		p.Snapshot = &plan.Snapshot{
			Facilities: []facility.SnapshotEntry{
				{ID: "er", Kuerzel: "ER", Speiseplan: facility.Speiseplan{
					"montag": {Hauptspeise: true},
				}},
			},
			GeneratedAt: "2026-07-20T10:00:00Z",
		}

		entries := Source(p, live)
		m := BuildMatrix(entries, cats)
		if hasID(cellIDs(m, "montag", "suppe"), "er") {
			t.Error("Expected snapshot data to win over live master data")
		}
		if !hasID(cellIDs(m, "montag", "menu1"), "er") {
			t.Error("Expected snapshot hauptspeise flag to survive")
		}
	})

	t.Run("FallsBackToLiveData", func(t *testing.T) {
		p := plan.Normalize(nil, 2026, 30, cats)

		entries := Source(p, live)
		m := BuildMatrix(entries, cats)
		if !hasID(cellIDs(m, "montag", "suppe"), "er") {
			t.Error("Expected live master data for a snapshot-less plan")
		}
	})

	t.Run("NilPlanUsesLiveData", func(t *testing.T) {
		entries := Source(nil, live)
		if len(entries) != 1 || entries[0].ID != "er" {
			t.Errorf("Expected live entries for nil plan, got %v", entries)
		}
	})
}
