package plan

import "menuplan-admin/internal/facility"

// Normalize expands a possibly partial or nil persisted plan into the
// canonical shape: all seven weekdays present, every configured category with
// a (possibly empty) recipe list and both main-dish assignment sets. It never
// fails; malformed input degrades to the empty structure, unknown day or
// category keys are dropped, duplicate recipe ids within a slot are removed,
// and a facility id claimed by both main-dish sets stays in the first
// configured main only. Normalize is idempotent.
func Normalize(raw *Plan, year, week int, cats CategorySet) *Plan {
	p := &Plan{
		Year: year,
		Week: week,
		Days: make(map[string]DayPlan, len(facility.Weekdays)),
	}
	for _, wd := range facility.Weekdays {
		day := DayPlan{
			Meals:       make(map[string][]RecipeRef, len(cats.Ordered)),
			Assignments: make(map[string][]string, 2),
		}
		for _, c := range cats.Ordered {
			day.Meals[c.ID] = []RecipeRef{}
		}
		for _, main := range cats.Mains {
			day.Assignments[main] = []string{}
		}
		p.Days[wd] = day
	}

	if raw == nil {
		return p
	}

	p.Snapshot = raw.Snapshot.Clone()
	p.UpdatedAt = raw.UpdatedAt
	p.UpdatedBy = raw.UpdatedBy

	for _, wd := range facility.Weekdays {
		src, ok := raw.Days[wd]
		if !ok {
			continue
		}
		dst := p.Days[wd]

		for _, c := range cats.Ordered {
			for _, ref := range src.Meals[c.ID] {
				if ref.ID == "" || containsRecipe(dst.Meals[c.ID], ref.ID) {
					continue
				}
				dst.Meals[c.ID] = append(dst.Meals[c.ID], ref)
			}
		}

		// Mains are processed in configuration order so that a facility
		// id present in both persisted sets lands in the first main.
		claimed := make(map[string]bool)
		for _, main := range cats.Mains {
			for _, id := range src.Assignments[main] {
				if id == "" || claimed[id] {
					continue
				}
				claimed[id] = true
				dst.Assignments[main] = append(dst.Assignments[main], id)
			}
		}
		p.Days[wd] = dst
	}
	return p
}

func containsRecipe(list []RecipeRef, id string) bool {
	for _, r := range list {
		if r.ID == id {
			return true
		}
	}
	return false
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
