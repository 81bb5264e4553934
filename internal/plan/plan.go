package plan

import (
	"time"

	"menuplan-admin/internal/facility"
)

// RecipeRef is a lightweight pointer into the recipe catalog. Plans never
// embed full recipe data.
type RecipeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SlotRef addresses one meal slot: a weekday plus a category id.
type SlotRef struct {
	Day      string
	Category string
}

// Category is one meal slot type from the master data (soup, the two main
// dish variants, dessert, ...).
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategorySet is the configured closed set of categories. Which ids act as
// soup, dessert and the two mutually exclusive main-dish slots is
// configuration, not structure.
type CategorySet struct {
	Ordered []Category
	Soup    string
	Dessert string
	Mains   [2]string
}

// NewCategorySet builds a CategorySet from the ordered master list and the
// configured role ids.
func NewCategorySet(ordered []Category, soup, dessert string, mains [2]string) CategorySet {
	return CategorySet{
		Ordered: append([]Category(nil), ordered...),
		Soup:    soup,
		Dessert: dessert,
		Mains:   mains,
	}
}

// DefaultCategorySet returns the standard four-slot configuration used when
// no category master file exists.
func DefaultCategorySet() CategorySet {
	return CategorySet{
		Ordered: []Category{
			{ID: "suppe", Name: "Suppe"},
			{ID: "menu1", Name: "Menü 1"},
			{ID: "menu2", Name: "Menü 2"},
			{ID: "dessert", Name: "Dessert"},
		},
		Soup:    "suppe",
		Dessert: "dessert",
		Mains:   [2]string{"menu1", "menu2"},
	}
}

// Has reports whether id is a configured category.
func (cs CategorySet) Has(id string) bool {
	for _, c := range cs.Ordered {
		if c.ID == id {
			return true
		}
	}
	return false
}

// IsMain reports whether id is one of the two main-dish categories.
func (cs CategorySet) IsMain(id string) bool {
	return id == cs.Mains[0] || id == cs.Mains[1]
}

// OtherMain returns the partner main-dish id, or "" if id is not a main.
func (cs CategorySet) OtherMain(id string) string {
	switch id {
	case cs.Mains[0]:
		return cs.Mains[1]
	case cs.Mains[1]:
		return cs.Mains[0]
	}
	return ""
}

// DayPlan holds the slot and assignment data for a single weekday.
// Meals maps category ids to recipe lists; Assignments maps the two main-dish
// category ids to disjoint sets of facility ids.
type DayPlan struct {
	Meals       map[string][]RecipeRef `json:"Mahlzeiten"`
	Assignments map[string][]string    `json:"Zuweisungen"`
}

func (d DayPlan) clone() DayPlan {
	out := DayPlan{
		Meals:       make(map[string][]RecipeRef, len(d.Meals)),
		Assignments: make(map[string][]string, len(d.Assignments)),
	}
	for cat, list := range d.Meals {
		out.Meals[cat] = append([]RecipeRef{}, list...)
	}
	for cat, ids := range d.Assignments {
		out.Assignments[cat] = append([]string{}, ids...)
	}
	return out
}

// Snapshot freezes the facility entitlement data inside a saved plan.
// Once present it is authoritative for that plan's requirement computation,
// regardless of later master-data edits.
type Snapshot struct {
	Facilities  []facility.SnapshotEntry `json:"einrichtungen"`
	GeneratedAt string                   `json:"generatedAt"`
	Categories  []Category               `json:"categories"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		GeneratedAt: s.GeneratedAt,
		Facilities:  make([]facility.SnapshotEntry, 0, len(s.Facilities)),
		Categories:  append([]Category{}, s.Categories...),
	}
	for _, e := range s.Facilities {
		e.Speiseplan = e.Speiseplan.Clone()
		out.Facilities = append(out.Facilities, e)
	}
	return out
}

// BuildSnapshot captures the current facility master data for embedding in a
// plan at save time.
func BuildSnapshot(facilities []facility.Facility, cats CategorySet) *Snapshot {
	snap := &Snapshot{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Facilities:  make([]facility.SnapshotEntry, 0, len(facilities)),
		Categories:  append([]Category{}, cats.Ordered...),
	}
	for _, f := range facilities {
		snap.Facilities = append(snap.Facilities, f.SnapshotEntry())
	}
	return snap
}

// Plan is the full weekly menu-plan document for one (year, week).
type Plan struct {
	Year      int                `json:"year"`
	Week      int                `json:"week"`
	Days      map[string]DayPlan `json:"days"`
	Snapshot  *Snapshot          `json:"einrichtungsSnapshot,omitempty"`
	UpdatedAt string             `json:"updatedAt,omitempty"`
	UpdatedBy string             `json:"updatedBy,omitempty"`
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	out := &Plan{
		Year:      p.Year,
		Week:      p.Week,
		Days:      make(map[string]DayPlan, len(p.Days)),
		Snapshot:  p.Snapshot.Clone(),
		UpdatedAt: p.UpdatedAt,
		UpdatedBy: p.UpdatedBy,
	}
	for wd, day := range p.Days {
		out.Days[wd] = day.clone()
	}
	return out
}

// CurrentWeek returns the ISO year and week of now.
func CurrentWeek(now time.Time) (year, week int) {
	return now.ISOWeek()
}
