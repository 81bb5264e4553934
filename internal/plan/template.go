package plan

// Template derives a fresh plan for (year, week) from a prior week's plan.
// Only the day data is copied; the facility snapshot and the updatedAt /
// updatedBy metadata are stripped so the new week re-earns its own snapshot
// on first save. A nil source yields the canonical empty plan.
func Template(source *Plan, year, week int, cats CategorySet) *Plan {
	if source == nil {
		return Normalize(nil, year, week, cats)
	}
	stripped := &Plan{
		Year: year,
		Week: week,
		Days: source.Days,
	}
	return Normalize(stripped, year, week, cats)
}
