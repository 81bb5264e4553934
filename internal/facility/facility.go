package facility

// Weekdays lists the seven day keys used throughout the plan data, Monday
// first. Facility speiseplan data and weekly plans share these keys.
var Weekdays = []string{
	"montag",
	"dienstag",
	"mittwoch",
	"donnerstag",
	"freitag",
	"samstag",
	"sonntag",
}

// IsWeekday reports whether s is one of the seven known day keys.
func IsWeekday(s string) bool {
	for _, wd := range Weekdays {
		if wd == s {
			return true
		}
	}
	return false
}

// MealFlags holds a facility's meal requirements for a single weekday.
type MealFlags struct {
	Suppe       bool `json:"suppe"`
	Hauptspeise bool `json:"hauptspeise"`
	Dessert     bool `json:"dessert"`
}

// Speiseplan maps weekday keys to that day's meal requirements.
type Speiseplan map[string]MealFlags

// Clone returns a deep copy of the speiseplan.
func (sp Speiseplan) Clone() Speiseplan {
	if sp == nil {
		return nil
	}
	out := make(Speiseplan, len(sp))
	for day, flags := range sp {
		out[day] = flags
	}
	return out
}

// Gruppe is a named sub-group of a facility with a head count.
type Gruppe struct {
	Name   string `json:"name"`
	Anzahl int    `json:"anzahl"`
}

// Facility is one consuming organization from the master data.
type Facility struct {
	ID         string     `json:"id"`
	Kuerzel    string     `json:"kuerzel"`
	Name       string     `json:"name"`
	IsIntern   bool       `json:"isIntern"`
	Speiseplan Speiseplan `json:"speiseplan"`
	Gruppen    []Gruppe   `json:"gruppen"`
}

// SnapshotEntry is the subset of facility fields that drives requirement
// computation. Saved plans embed these entries so that past weeks stay
// reproducible after the master data changes.
type SnapshotEntry struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Kuerzel    string     `json:"kuerzel"`
	IsIntern   bool       `json:"isIntern"`
	Speiseplan Speiseplan `json:"speiseplan"`
}

// SnapshotEntry extracts the entitlement-relevant fields as a deep copy.
func (f Facility) SnapshotEntry() SnapshotEntry {
	return SnapshotEntry{
		ID:         f.ID,
		Name:       f.Name,
		Kuerzel:    f.Kuerzel,
		IsIntern:   f.IsIntern,
		Speiseplan: f.Speiseplan.Clone(),
	}
}

// Normalize repairs a facility list as it enters the system: every facility
// gets a speiseplan entry for each weekday, and any day that requests soup or
// dessert also requests a main dish. The implication is a master-data
// invariant and is enforced only here, never during plan editing.
func Normalize(facilities []Facility) []Facility {
	out := make([]Facility, 0, len(facilities))
	for _, f := range facilities {
		if f.ID == "" {
			continue
		}
		if f.Speiseplan == nil {
			f.Speiseplan = make(Speiseplan, len(Weekdays))
		} else {
			f.Speiseplan = f.Speiseplan.Clone()
		}
		for _, wd := range Weekdays {
			flags := f.Speiseplan[wd]
			if flags.Suppe || flags.Dessert {
				flags.Hauptspeise = true
			}
			f.Speiseplan[wd] = flags
		}
		out = append(out, f)
	}
	return out
}
