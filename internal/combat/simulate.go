package combat

import (
	"encoding/json"

	"skirmish/internal/config"
)

type RunOptions struct {
	Delta      float64 // ms per tick
	TimeLimit  float64 // ms of simulated time
	Record     bool
	FrameEvery int // ticks between recorded frames, 0 disables
}

func RunOptionsFrom(def config.TickDef, record bool) RunOptions {
	return RunOptions{Delta: def.Delta, TimeLimit: def.TimeLimit, Record: record}
}

type SimResult struct {
	Winner            string              `json:"winner"`
	Duration          float64             `json:"duration"`
	Ticks             int                 `json:"ticks"`
	Survivors         map[Faction]int     `json:"survivors"`
	Kills             map[Faction]int     `json:"kills"`
	DamageByFaction   map[Faction]float64 `json:"damage_by_faction"`
	DamageByArchetype map[string]float64  `json:"damage_by_archetype"`
	Attacks           int                 `json:"attacks"`
	Hits              int                 `json:"hits"`
	Misses            int                 `json:"misses"`
	Events            []Event             `json:"events,omitempty"`
	Frames            []Frame             `json:"frames,omitempty"`
	Meta              SimMeta             `json:"meta"`
}

type SimMeta struct {
	Arena      Arena              `json:"arena"`
	Archetypes []SimArchetypeMeta `json:"archetypes"`
	Roster     map[Faction]int    `json:"roster"`
}

type SimArchetypeMeta struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	MaxHP       float64 `json:"max_hp"`
	Attack      float64 `json:"attack"`
	Defense     float64 `json:"defense"`
	AttackRange float64 `json:"attack_range"`
	Ranged      bool    `json:"ranged"`
}

// RunSingle steps a populated world at a fixed delta until one side is
// wiped out or the time limit passes, and tallies the event stream.
func RunSingle(w *World, opts RunOptions) SimResult {
	if opts.Delta <= 0 {
		opts.Delta = 1000.0 / 60.0
	}
	type origin struct {
		faction Faction
		arch    string
	}
	who := map[EntityID]origin{}
	res := SimResult{
		Survivors:         map[Faction]int{},
		Kills:             map[Faction]int{},
		DamageByFaction:   map[Faction]float64{},
		DamageByArchetype: map[string]float64{},
		Meta: SimMeta{
			Arena:  w.Arena(),
			Roster: map[Faction]int{},
		},
	}
	for _, id := range w.book.IDs() {
		a, _ := w.book.Get(id)
		res.Meta.Archetypes = append(res.Meta.Archetypes, SimArchetypeMeta{
			ID:          a.ID,
			Name:        a.DisplayName(),
			MaxHP:       a.MaxHP,
			Attack:      a.Attack,
			Defense:     a.Defense,
			AttackRange: a.AttackRange,
			Ranged:      a.Ranged,
		})
	}
	for _, c := range w.Roster().All() {
		who[c.ID] = origin{c.Faction, c.Arch.ID}
		res.Meta.Roster[c.Faction]++
	}

	tally := func(evs []Event) {
		for _, ev := range evs {
			switch ev.Type {
			case EventAttack:
				res.Attacks++
			case EventHit:
				res.Hits++
				src := who[ev.Source]
				res.DamageByFaction[src.faction] += ev.Amount
				res.DamageByArchetype[src.arch] += ev.Amount
			case EventLand:
				res.Misses++
			case EventDeath:
				if ev.Source != 0 {
					res.Kills[who[ev.Source].faction]++
				}
			}
		}
		if opts.Record {
			res.Events = append(res.Events, evs...)
		}
	}

	tally(w.Drain())
	for w.Now() < opts.TimeLimit {
		if _, done := w.Decided(); done {
			break
		}
		w.Step(opts.Delta)
		res.Ticks++
		tally(w.Drain())
		if opts.Record && opts.FrameEvery > 0 && res.Ticks%opts.FrameEvery == 0 {
			res.Frames = append(res.Frames, w.Snapshot())
		}
	}

	res.Duration = w.Now()
	res.Survivors[FactionA] = w.Roster().Alive(FactionA)
	res.Survivors[FactionB] = w.Roster().Alive(FactionB)
	switch f, done := w.Decided(); {
	case !done:
		res.Winner = "timeout"
	case f == 0:
		res.Winner = "draw"
	default:
		res.Winner = f.String()
	}
	return res
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
