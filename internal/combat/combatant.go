package combat

import (
	"math"
	"math/rand"

	"skirmish/internal/util"
)

// pendingAttack is the windup/action window of one triggered attack.
type pendingAttack struct {
	TargetID EntityID
	FireAt   float64
	EndAt    float64
	Fired    bool
}

// Combatant owns all mutable combat state of one agent. Durations are
// milliseconds, velocities are units per second.
type Combatant struct {
	ID      EntityID
	Arch    *Archetype
	Faction Faction

	Pos         Vec2
	Vel         Vec2
	FacingRight bool

	MaxHP       float64
	HP          float64
	Attack      float64
	Defense     float64
	MoveSpeed   float64
	AttackRange float64
	SearchRange float64

	AttackCooldown  float64
	TargetID        EntityID
	Mode            Mode
	SwitchLockUntil float64

	PatrolTarget *Vec2
	IdleTimer    float64
	patrolSince  float64

	attack    *pendingAttack
	announced bool
}

// NewCombatant instantiates arch at pos; the move speed is drawn from the
// archetype's integer range.
func NewCombatant(id EntityID, arch *Archetype, faction Faction, pos Vec2, rng *rand.Rand) *Combatant {
	speed := float64(arch.SpeedMin)
	if rng != nil && arch.SpeedMax > arch.SpeedMin {
		speed = float64(util.Between(rng, arch.SpeedMin, arch.SpeedMax))
	}
	return &Combatant{
		ID:          id,
		Arch:        arch,
		Faction:     faction,
		Pos:         pos,
		FacingRight: true,
		MaxHP:       arch.MaxHP,
		HP:          arch.MaxHP,
		Attack:      arch.Attack,
		Defense:     arch.Defense,
		MoveSpeed:   speed,
		AttackRange: arch.AttackRange,
		SearchRange: arch.SearchRange,
		Mode:        ModeIdle,
	}
}

func (c *Combatant) IsAlive() bool { return c.HP > 0 }

func (c *Combatant) HealthPercent() float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	return c.HP / c.MaxHP * 100
}

// TakeDamage applies amount reduced by defense, never less than 1, and
// returns the applied value. Dead combatants ignore it and return 0.
func (c *Combatant) TakeDamage(amount float64) float64 {
	if !c.IsAlive() {
		return 0
	}
	actual := math.Max(1, amount-c.Defense)
	c.HP = Clamp(c.HP-actual, 0, c.MaxHP)
	if c.HP == 0 {
		c.die()
	}
	return actual
}

func (c *Combatant) die() {
	c.Vel = Vec2{}
	c.TargetID = 0
	c.attack = nil
	c.PatrolTarget = nil
	c.Mode = ModeDead
}

func (c *Combatant) Heal(amount float64) {
	if !c.IsAlive() || amount <= 0 {
		return
	}
	c.HP = math.Min(c.MaxHP, c.HP+amount)
}

func (c *Combatant) Moving() bool { return c.Vel.X != 0 || c.Vel.Y != 0 }

func (c *Combatant) SetMoveSpeed(speed float64) {
	if speed >= 0 {
		c.MoveSpeed = speed
	}
}

// SetMoveAngle heads the combatant along angle at its move speed. An
// attacking combatant keeps its mode; the velocity is used once the action
// ends.
func (c *Combatant) SetMoveAngle(angle float64, mode Mode) {
	if !c.IsAlive() {
		return
	}
	c.Vel = FromAngle(angle).Scale(c.MoveSpeed)
	c.updateFacing()
	if c.Mode != ModeAttacking {
		c.Mode = mode
	}
}

func (c *Combatant) Stop() {
	if !c.IsAlive() {
		return
	}
	c.Vel = Vec2{}
	if c.Mode != ModeAttacking {
		c.Mode = ModeIdle
	}
}

// TickMotion advances the position by dt milliseconds of travel.
func (c *Combatant) TickMotion(dt float64) {
	if !c.IsAlive() || c.Mode == ModeAttacking || !c.Moving() {
		return
	}
	c.Pos = c.Pos.Add(c.Vel.Scale(dt / 1000))
}

// EnforceBounds clamps the position into the arena and bounces off the wall
// by reversing the velocity. It reports whether a clamp happened.
func (c *Combatant) EnforceBounds(a Arena) bool {
	clamped := false
	if c.Pos.X < a.Margin {
		c.Pos.X, clamped = a.Margin, true
	} else if c.Pos.X > a.Width-a.Margin {
		c.Pos.X, clamped = a.Width-a.Margin, true
	}
	if c.Pos.Y < a.Margin {
		c.Pos.Y, clamped = a.Margin, true
	} else if c.Pos.Y > a.Height-a.Margin {
		c.Pos.Y, clamped = a.Height-a.Margin, true
	}
	if clamped {
		c.Vel = Vec2{-c.Vel.X, -c.Vel.Y}
		c.updateFacing()
	}
	return clamped
}

func (c *Combatant) Face(p Vec2) {
	if dx := p.X - c.Pos.X; dx > 0 {
		c.FacingRight = true
	} else if dx < 0 {
		c.FacingRight = false
	}
}

func (c *Combatant) updateFacing() {
	if c.Vel.X > 0 {
		c.FacingRight = true
	} else if c.Vel.X < 0 {
		c.FacingRight = false
	}
}

func (c *Combatant) DecayCooldown(dt float64) {
	c.AttackCooldown = math.Max(0, c.AttackCooldown-dt)
}

func (c *Combatant) clearPatrol() {
	c.PatrolTarget = nil
	c.IdleTimer = 0
}

func (c *Combatant) Snapshot() AgentSnapshot {
	return AgentSnapshot{
		ID:          c.ID,
		Archetype:   c.Arch.ID,
		Faction:     c.Faction,
		Pos:         c.Pos,
		FacingRight: c.FacingRight,
		HP:          c.HP,
		MaxHP:       c.MaxHP,
		Mode:        c.Mode,
		TargetID:    c.TargetID,
	}
}

// beginAttack commits to an attack on target: stopped, cooldown reset, the
// action window opened.
func (c *Combatant) beginAttack(target EntityID, now float64) {
	c.AttackCooldown = c.Arch.AttackCooldown
	c.Stop()
	c.attack = &pendingAttack{
		TargetID: target,
		FireAt:   now + c.Arch.Windup,
		EndAt:    now + c.Arch.ActionDuration,
	}
	c.Mode = ModeAttacking
}

func (c *Combatant) endAttack() {
	c.attack = nil
	if !c.IsAlive() {
		return
	}
	if c.TargetID != 0 {
		c.Mode = ModeSeeking
	} else {
		c.Mode = ModeIdle
	}
}
