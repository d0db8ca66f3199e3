package combat

import (
	"math"
	"math/rand"

	"skirmish/internal/config"
	"skirmish/internal/util"
)

type TargetWeights struct {
	StickFactor  float64 // multiple of search range within which a target is kept
	SwitchLock   float64 // ms a fresh target stays locked
	BaseScore    float64
	HealthWeight float64
	CrowdPenalty float64
	Jitter       float64 // half-width of the uniform tie-break draw
}

func WeightsFrom(def config.TargetingDef) TargetWeights {
	return TargetWeights{
		StickFactor:  def.StickFactor,
		SwitchLock:   def.SwitchLock,
		BaseScore:    def.BaseScore,
		HealthWeight: def.HealthWeight,
		CrowdPenalty: def.CrowdPenalty,
		Jitter:       def.Jitter,
	}
}

// Targeter scores hostiles for an agent. It keeps no per-agent state; the
// only thing it owns is the jitter source.
type Targeter struct {
	W      TargetWeights
	Jitter func() float64
}

func NewTargeter(w TargetWeights, rng *rand.Rand) *Targeter {
	t := &Targeter{W: w}
	if rng != nil && w.Jitter > 0 {
		t.Jitter = func() float64 { return util.Uniform(rng, -w.Jitter, w.Jitter) }
	}
	return t
}

// Selection is the outcome of one targeting pass. Global marks a fallback
// to the nearest hostile outside search range: steer toward it, do not
// engage. Switched is set when a scored pick replaces the previous target.
type Selection struct {
	Target   *Combatant
	Global   bool
	Switched bool
	Score    float64
}

// Score is the deterministic part of the candidate score: closer, weaker and
// less crowded targets rank higher.
func (t *Targeter) Score(a, cand *Combatant, attackers int) float64 {
	return t.W.BaseScore - Dist(a.Pos, cand.Pos) +
		t.W.HealthWeight*(100-cand.HealthPercent()) -
		t.W.CrowdPenalty*float64(attackers)
}

func (t *Targeter) jitter() float64 {
	if t.Jitter == nil {
		return 0
	}
	return t.Jitter()
}

func (t *Targeter) Select(a *Combatant, r *Roster, now float64) Selection {
	if !a.IsAlive() {
		return Selection{}
	}
	if cur := r.Get(a.TargetID); cur != nil && cur.IsAlive() && Hostile(a.Faction, cur.Faction) {
		if Dist(a.Pos, cur.Pos) <= a.SearchRange*t.W.StickFactor {
			return Selection{Target: cur}
		}
		if now < a.SwitchLockUntil {
			return Selection{Target: cur}
		}
	}

	counts := r.AttackerCounts(a)
	var best *Combatant
	bestScore := math.Inf(-1)
	for _, o := range r.All() {
		if o == a || !o.IsAlive() || !Hostile(a.Faction, o.Faction) {
			continue
		}
		if Dist(a.Pos, o.Pos) > a.SearchRange {
			continue
		}
		s := t.Score(a, o, counts[o.ID]) + t.jitter()
		if best == nil || s > bestScore {
			best, bestScore = o, s
		}
	}
	if best == nil {
		g, _ := r.NearestHostile(a)
		return Selection{Target: g, Global: g != nil}
	}
	return Selection{Target: best, Score: bestScore, Switched: best.ID != a.TargetID}
}
