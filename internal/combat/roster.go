package combat

import "math"

// Roster holds combatants in a fixed processing order with lookup by id.
// Target references between combatants go through Get, never through
// pointers kept across ticks.
type Roster struct {
	list []*Combatant
	byID map[EntityID]*Combatant
}

func NewRoster() *Roster {
	return &Roster{byID: map[EntityID]*Combatant{}}
}

func (r *Roster) Add(c *Combatant) {
	r.list = append(r.list, c)
	r.byID[c.ID] = c
}

// Get resolves a weak reference; nil when the id is unknown or swept.
func (r *Roster) Get(id EntityID) *Combatant {
	if id == 0 {
		return nil
	}
	return r.byID[id]
}

func (r *Roster) All() []*Combatant { return r.list }
func (r *Roster) Len() int          { return len(r.list) }

func (r *Roster) Alive(f Faction) int {
	n := 0
	for _, c := range r.list {
		if c.Faction == f && c.IsAlive() {
			n++
		}
	}
	return n
}

// NearestHostile ignores search range. It returns nil when no live enemy
// exists.
func (r *Roster) NearestHostile(c *Combatant) (*Combatant, float64) {
	var best *Combatant
	bestDist := math.Inf(1)
	for _, o := range r.list {
		if o == c || !o.IsAlive() || !Hostile(c.Faction, o.Faction) {
			continue
		}
		if d := Dist(c.Pos, o.Pos); d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, bestDist
}

// AttackerCounts counts, per target id, the live combatants other than self
// currently aiming at it from the opposing faction.
func (r *Roster) AttackerCounts(self *Combatant) map[EntityID]int {
	out := map[EntityID]int{}
	for _, o := range r.list {
		if o == self || !o.IsAlive() || o.TargetID == 0 {
			continue
		}
		if t := r.byID[o.TargetID]; t != nil && Hostile(o.Faction, t.Faction) {
			out[o.TargetID]++
		}
	}
	return out
}

// Sweep removes dead combatants, calling fn on each before removal.
func (r *Roster) Sweep(fn func(*Combatant)) int {
	kept := r.list[:0]
	removed := 0
	for _, c := range r.list {
		if c.IsAlive() {
			kept = append(kept, c)
			continue
		}
		if fn != nil {
			fn(c)
		}
		delete(r.byID, c.ID)
		removed++
	}
	for i := len(kept); i < len(r.list); i++ {
		r.list[i] = nil
	}
	r.list = kept
	return removed
}
