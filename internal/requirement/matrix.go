// Package requirement derives, per weekday and meal category, the facilities
// that are owed that meal. It is the read side of the plan editor: a pure
// computation over facility entitlement data, never a mutator.
package requirement

import (
	"menuplan-admin/internal/facility"
	"menuplan-admin/internal/plan"
)

// Matrix maps weekday -> category id -> facilities requiring that meal.
type Matrix map[string]map[string][]facility.SnapshotEntry

// Source selects the facility data the matrix must be computed from. Once a
// plan carries a snapshot, that snapshot is authoritative for the plan
// forever; only snapshot-less plans fall back to the live master data.
func Source(p *plan.Plan, live []facility.Facility) []facility.SnapshotEntry {
	if p != nil && p.Snapshot != nil {
		return p.Snapshot.Facilities
	}
	entries := make([]facility.SnapshotEntry, 0, len(live))
	for _, f := range live {
		entries = append(entries, f.SnapshotEntry())
	}
	return entries
}

// BuildMatrix computes the full requirement matrix. Internal facilities are
// owed every category on every day regardless of their speiseplan. External
// facilities follow their per-day flags: suppe and dessert map directly onto
// the configured soup and dessert categories, while hauptspeise puts the
// facility into both main-dish categories; which of the two it actually
// receives is decided later via assignment toggling. Missing speiseplan data
// reads as all-false, so malformed master data degrades to an empty cell.
func BuildMatrix(entries []facility.SnapshotEntry, cats plan.CategorySet) Matrix {
	m := make(Matrix, len(facility.Weekdays))
	for _, wd := range facility.Weekdays {
		day := make(map[string][]facility.SnapshotEntry, len(cats.Ordered))
		for _, c := range cats.Ordered {
			day[c.ID] = []facility.SnapshotEntry{}
		}
		m[wd] = day
	}

	for _, e := range entries {
		for _, wd := range facility.Weekdays {
			day := m[wd]
			if e.IsIntern {
				for _, c := range cats.Ordered {
					day[c.ID] = append(day[c.ID], e)
				}
				continue
			}
			flags := e.Speiseplan[wd]
			if flags.Suppe && cats.Soup != "" {
				day[cats.Soup] = append(day[cats.Soup], e)
			}
			if flags.Dessert && cats.Dessert != "" {
				day[cats.Dessert] = append(day[cats.Dessert], e)
			}
			if flags.Hauptspeise {
				for _, main := range cats.Mains {
					day[main] = append(day[main], e)
				}
			}
		}
	}
	return m
}
