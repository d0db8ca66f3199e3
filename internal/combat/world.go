package combat

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"skirmish/internal/config"
	"skirmish/internal/util"
)

// Behavior holds the idle and patrol timings. Durations are milliseconds.
type Behavior struct {
	MaxIdle            float64
	PatrolRadius       float64
	PatrolMin          float64
	PatrolReroll       float64
	PatrolArrive       float64
	PursueBeyondSearch bool
}

func BehaviorFrom(def config.BehaviorDef) Behavior {
	return Behavior{
		MaxIdle:            def.MaxIdle,
		PatrolRadius:       def.PatrolRadius,
		PatrolMin:          def.PatrolMin,
		PatrolReroll:       def.PatrolReroll,
		PatrolArrive:       def.PatrolArrive,
		PursueBeyondSearch: def.Pursue(),
	}
}

type Option func(*World)

func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithJitter replaces the targeting tie-break draw.
func WithJitter(fn func() float64) Option {
	return func(w *World) { w.targeter.Jitter = fn }
}

// World owns every combatant and in-flight projectile of one simulation and
// advances them one tick at a time. It is not safe for concurrent use.
type World struct {
	env      *Env
	arena    Arena
	behavior Behavior
	targeter *Targeter
	book     *ArchetypeBook
	squads   []config.SquadDef

	roster      *Roster
	projectiles []*Projectile
	events      []Event
	nextID      EntityID

	log *log.Logger
}

func NewWorld(env *Env, sc *config.ScenarioConfig, book *ArchetypeBook, opts ...Option) *World {
	if env.Rng == nil {
		env.Rng = util.New(1)
	}
	w := &World{
		env:      env,
		arena:    ArenaFrom(sc.Arena),
		behavior: BehaviorFrom(sc.Behavior),
		targeter: NewTargeter(WeightsFrom(sc.Targeting), env.Rng),
		book:     book,
		squads:   sc.Squads,
		roster:   NewRoster(),
		log:      log.New(io.Discard),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

func (w *World) Now() float64               { return w.env.Time }
func (w *World) Arena() Arena               { return w.arena }
func (w *World) Roster() *Roster            { return w.roster }
func (w *World) Projectiles() []*Projectile { return w.projectiles }

func (w *World) emit(ev Event) { w.events = append(w.events, ev) }

// Drain hands over the events queued since the last call.
func (w *World) Drain() []Event {
	out := w.events
	w.events = nil
	return out
}

func (w *World) Spawn(archID string, f Faction, pos Vec2) (*Combatant, error) {
	arch, err := w.book.Get(archID)
	if err != nil {
		return nil, err
	}
	w.nextID++
	c := NewCombatant(w.nextID, arch, f, pos, w.env.Rng)
	w.roster.Add(c)
	w.emit(Event{T: w.env.Time, Type: EventSpawn, Source: c.ID, Amount: c.HP, Pos: c.Pos})
	return c, nil
}

// Populate spawns every squad of the scenario at random points of its
// spawn rectangle.
func (w *World) Populate() error {
	for i, sq := range w.squads {
		f, err := ParseFaction(sq.Faction)
		if err != nil {
			return fmt.Errorf("squad %d: %w", i, err)
		}
		for n := 0; n < sq.Count; n++ {
			pos := Vec2{
				X: float64(util.Between(w.env.Rng, sq.Spawn.MinX, sq.Spawn.MaxX)),
				Y: float64(util.Between(w.env.Rng, sq.Spawn.MinY, sq.Spawn.MaxY)),
			}
			if _, err := w.Spawn(sq.Archetype, f, w.arena.Clamp(pos)); err != nil {
				return fmt.Errorf("squad %d: %w", i, err)
			}
		}
	}
	return nil
}

// Step advances the simulation by dt milliseconds. Agents act in roster
// order; projectiles launched during this tick start flying next tick; dead
// agents leave the roster only after everything else has run.
func (w *World) Step(dt float64) {
	w.env.Delta = dt
	w.env.Time += dt
	now := w.env.Time

	inflight := len(w.projectiles)
	for _, c := range w.roster.All() {
		if !c.IsAlive() {
			continue
		}
		w.updateAgent(c, dt, now)
	}
	w.advanceProjectiles(inflight, dt/1000, now)
	w.roster.Sweep(func(c *Combatant) { w.announceDeath(c, 0) })
}

func (w *World) updateAgent(c *Combatant, dt, now float64) {
	c.DecayCooldown(dt)
	if c.Mode == ModeAttacking {
		w.advanceAttack(c, now)
		if c.Mode == ModeAttacking {
			return
		}
	}
	w.decide(c, dt, now)
	c.TickMotion(dt)
	c.EnforceBounds(w.arena)
}

func (w *World) decide(c *Combatant, dt, now float64) {
	sel := w.targeter.Select(c, w.roster, now)
	t := sel.Target
	switch {
	case t != nil && !sel.Global:
		c.clearPatrol()
		if t.ID != c.TargetID {
			c.TargetID = t.ID
			w.emit(Event{T: now, Type: EventTarget, Source: c.ID, Target: t.ID, Pos: c.Pos})
		}
		if sel.Switched {
			c.SwitchLockUntil = now + w.targeter.W.SwitchLock
		}
		c.Face(t.Pos)
		if Dist(c.Pos, t.Pos) <= c.AttackRange {
			c.Stop()
			c.Mode = ModeInCombat
			if c.AttackCooldown <= 0 {
				w.trigger(c, t, now)
			}
			return
		}
		c.SetMoveAngle(AngleTo(c.Pos, t.Pos), ModeSeeking)
	case t != nil && w.behavior.PursueBeyondSearch:
		c.clearPatrol()
		c.TargetID = 0
		c.SetMoveAngle(AngleTo(c.Pos, t.Pos), ModeSeeking)
	default:
		c.TargetID = 0
		w.idle(c, dt, now)
	}
}

func (w *World) trigger(c, t *Combatant, now float64) {
	c.beginAttack(t.ID, now)
	w.emit(Event{T: now, Type: EventAttack, Source: c.ID, Target: t.ID, Pos: c.Pos})
	w.advanceAttack(c, now)
}

func (w *World) advanceAttack(c *Combatant, now float64) {
	pa := c.attack
	if pa == nil {
		c.endAttack()
		return
	}
	if !pa.Fired && now >= pa.FireAt {
		pa.Fired = true
		w.fire(c, pa.TargetID, now)
	}
	if now >= pa.EndAt {
		c.endAttack()
	}
}

// fire lands a melee blow or looses an arrow once the windup is over. The
// target must still be alive and in range; otherwise the attack is dropped.
func (w *World) fire(c *Combatant, targetID EntityID, now float64) {
	t := w.roster.Get(targetID)
	if t == nil || !t.IsAlive() || Dist(c.Pos, t.Pos) > c.AttackRange {
		w.log.Debug("attack dropped", "t", now, "id", c.ID, "target", targetID)
		return
	}
	if c.Arch.Ranged {
		w.launch(c, t, now)
		return
	}
	w.applyDamage(c.ID, t, c.Attack, now)
}

func (w *World) launch(c, t *Combatant, now float64) {
	w.nextID++
	p := NewProjectile(LaunchSpec{
		ID:             w.nextID,
		ShooterID:      c.ID,
		TargetID:       t.ID,
		ShooterFaction: c.Faction,
		Origin:         c.Pos,
		Dest:           t.Pos,
		Damage:         c.Attack,
		Spec:           c.Arch.Projectile,
	})
	w.projectiles = append(w.projectiles, p)
	w.emit(Event{T: now, Type: EventLaunch, Source: c.ID, Target: t.ID, Pos: c.Pos})
}

func (w *World) applyDamage(src EntityID, t *Combatant, amount, now float64) float64 {
	if !t.IsAlive() {
		return 0
	}
	actual := t.TakeDamage(amount)
	w.emit(Event{T: now, Type: EventHit, Source: src, Target: t.ID, Amount: actual, Pos: t.Pos})
	if !t.IsAlive() {
		w.announceDeath(t, src)
	}
	return actual
}

// announceDeath emits the death notification once and destroys the arrows
// the dead agent still has in the air.
func (w *World) announceDeath(c *Combatant, killer EntityID) {
	if c.announced {
		return
	}
	c.announced = true
	for _, p := range w.projectiles {
		if p.ShooterID == c.ID && !p.Done() {
			p.Cancel()
		}
	}
	w.emit(Event{T: w.env.Time, Type: EventDeath, Source: killer, Target: c.ID, Pos: c.Pos})
	w.log.Debug("combatant died", "t", w.env.Time, "id", c.ID, "arch", c.Arch.ID, "faction", c.Faction, "killer", killer)
}

func (w *World) advanceProjectiles(n int, dt, now float64) {
	for i := 0; i < n && i < len(w.projectiles); i++ {
		p := w.projectiles[i]
		if p.Done() || !p.Advance(dt) {
			continue
		}
		landed := p.Position()
		p.Resolve(func(id EntityID, dmg float64) {
			t := w.roster.Get(id)
			if t == nil || !t.IsAlive() {
				w.emit(Event{T: now, Type: EventLand, Source: p.ShooterID, Target: id, Pos: landed})
				return
			}
			w.applyDamage(p.ShooterID, t, dmg, now)
		})
	}
	kept := w.projectiles[:0]
	for _, p := range w.projectiles {
		if !p.Done() {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(w.projectiles); i++ {
		w.projectiles[i] = nil
	}
	w.projectiles = kept
}

func (w *World) idle(c *Combatant, dt, now float64) {
	c.IdleTimer += dt
	if c.PatrolTarget != nil {
		w.patrol(c, now)
		return
	}
	if c.IdleTimer > w.behavior.MaxIdle {
		w.startPatrol(c, now)
		w.patrol(c, now)
		return
	}
	c.Stop()
}

func (w *World) startPatrol(c *Combatant, now float64) {
	rng := w.env.Rng
	angle := float64(util.Between(rng, 0, 360)) * math.Pi / 180
	dist := float64(util.Between(rng, int(w.behavior.PatrolMin), int(w.behavior.PatrolRadius)))
	p := w.arena.Clamp(c.Pos.Add(FromAngle(angle).Scale(dist)))
	c.PatrolTarget = &p
	c.patrolSince = now
	w.log.Debug("patrol", "t", now, "id", c.ID, "x", p.X, "y", p.Y)
}

func (w *World) patrol(c *Combatant, now float64) {
	if c.PatrolTarget == nil || now-c.patrolSince >= w.behavior.PatrolReroll {
		w.startPatrol(c, now)
	}
	dest := *c.PatrolTarget
	if Dist(c.Pos, dest) < w.behavior.PatrolArrive {
		c.clearPatrol()
		c.Stop()
		return
	}
	c.SetMoveAngle(AngleTo(c.Pos, dest), ModePatrolling)
}

// Decided reports whether at most one faction is still standing. The
// faction is zero when nobody survived.
func (w *World) Decided() (Faction, bool) {
	a, b := w.roster.Alive(FactionA), w.roster.Alive(FactionB)
	switch {
	case a > 0 && b > 0:
		return 0, false
	case a > 0:
		return FactionA, true
	case b > 0:
		return FactionB, true
	}
	return 0, true
}

func (w *World) Snapshot() Frame {
	f := Frame{T: w.env.Time, Agents: make([]AgentSnapshot, 0, w.roster.Len())}
	for _, c := range w.roster.All() {
		f.Agents = append(f.Agents, c.Snapshot())
	}
	for _, p := range w.projectiles {
		if !p.Done() {
			f.Projectiles = append(f.Projectiles, p.Snapshot())
		}
	}
	return f
}

type Stats struct {
	AliveA     int `json:"alive_a"`
	AliveB     int `json:"alive_b"`
	Moving     int `json:"moving"`
	Attacking  int `json:"attacking"`
	Patrolling int `json:"patrolling"`
	InFlight   int `json:"in_flight"`
}

func (w *World) Stats() Stats {
	var s Stats
	for _, c := range w.roster.All() {
		if !c.IsAlive() {
			continue
		}
		if c.Faction == FactionA {
			s.AliveA++
		} else {
			s.AliveB++
		}
		if c.Moving() {
			s.Moving++
		}
		switch c.Mode {
		case ModeAttacking:
			s.Attacking++
		case ModePatrolling:
			s.Patrolling++
		}
	}
	for _, p := range w.projectiles {
		if !p.Done() {
			s.InFlight++
		}
	}
	return s
}
