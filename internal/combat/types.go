package combat

import (
	"fmt"
	"math/rand"

	"skirmish/internal/config"
)

// EntityID identifies a combatant or projectile for the lifetime of a World.
// Zero means "none".
type EntityID uint32

type Faction uint8

const (
	FactionA Faction = iota + 1
	FactionB
)

func (f Faction) String() string {
	switch f {
	case FactionA:
		return "A"
	case FactionB:
		return "B"
	}
	return "?"
}

func (f Faction) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func ParseFaction(s string) (Faction, error) {
	switch s {
	case "A", "a":
		return FactionA, nil
	case "B", "b":
		return FactionB, nil
	}
	return 0, fmt.Errorf("%w %q", config.ErrInvalidFaction, s)
}

// Hostile reports whether two factions fight each other.
func Hostile(a, b Faction) bool { return a != b }

type Mode uint8

const (
	ModeIdle Mode = iota
	ModeSeeking
	ModeInCombat
	ModeAttacking
	ModePatrolling
	ModeDead
)

var modeNames = [...]string{"idle", "seeking", "in_combat", "attacking", "patrolling", "dead"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

type EventType string

const (
	EventSpawn  EventType = "Spawn"
	EventTarget EventType = "Target"
	EventAttack EventType = "Attack"
	EventLaunch EventType = "Launch"
	EventHit    EventType = "Hit"
	EventLand   EventType = "Land"
	EventDeath  EventType = "Death"
)

// Event is one notification for the presentation layer. Hit carries the
// applied damage in Amount; Land marks a projectile that resolved without
// damage.
type Event struct {
	T      float64   `json:"t"`
	Type   EventType `json:"type"`
	Source EntityID  `json:"source,omitempty"`
	Target EntityID  `json:"target,omitempty"`
	Amount float64   `json:"amount,omitempty"`
	Pos    Vec2      `json:"pos"`
}

// Env carries the simulation clock (milliseconds) and the run's RNG.
type Env struct {
	Time  float64
	Delta float64
	Rng   *rand.Rand
}

type Arena struct {
	Width, Height, Margin float64
}

func ArenaFrom(def config.ArenaDef) Arena {
	return Arena{Width: def.Width, Height: def.Height, Margin: def.Margin}
}

// Clamp pulls p inside the playable rectangle.
func (a Arena) Clamp(p Vec2) Vec2 {
	return Vec2{
		X: Clamp(p.X, a.Margin, a.Width-a.Margin),
		Y: Clamp(p.Y, a.Margin, a.Height-a.Margin),
	}
}

type AgentSnapshot struct {
	ID          EntityID `json:"id"`
	Archetype   string   `json:"archetype"`
	Faction     Faction  `json:"faction"`
	Pos         Vec2     `json:"pos"`
	FacingRight bool     `json:"facing_right"`
	HP          float64  `json:"hp"`
	MaxHP       float64  `json:"max_hp"`
	Mode        Mode     `json:"mode"`
	TargetID    EntityID `json:"target,omitempty"`
}

type ProjectileSnapshot struct {
	ID       EntityID `json:"id"`
	Pos      Vec2     `json:"pos"`
	Rotation float64  `json:"rotation"`
	Progress float64  `json:"progress"`
}

// Frame is an immutable view of one tick.
type Frame struct {
	T           float64              `json:"t"`
	Agents      []AgentSnapshot      `json:"agents"`
	Projectiles []ProjectileSnapshot `json:"projectiles,omitempty"`
}
