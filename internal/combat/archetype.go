package combat

import (
	"fmt"

	"skirmish/internal/config"
)

// ProjectileSpec describes the arrows a ranged archetype fires.
type ProjectileSpec struct {
	Speed     float64 // units per second
	ArcHeight float64
	Lifetime  float64 // seconds
}

// Archetype is an immutable stat template. Durations are milliseconds.
type Archetype struct {
	ID             string
	Name           string
	MaxHP          float64
	Attack         float64
	Defense        float64
	SpeedMin       int
	SpeedMax       int
	AttackRange    float64
	SearchRange    float64
	AttackCooldown float64
	Windup         float64
	ActionDuration float64
	Ranged         bool
	Projectile     ProjectileSpec
}

type ArchetypeBook struct {
	byID  map[string]*Archetype
	order []string
}

// NewArchetypeBook validates every definition and fails on the first bad
// table; nothing invalid reaches the simulation.
func NewArchetypeBook(cfg *config.ArchetypesConfig) (*ArchetypeBook, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("archetype book: %w", err)
	}
	ab := &ArchetypeBook{byID: map[string]*Archetype{}}
	for _, d := range cfg.Archetypes {
		ab.byID[d.ID] = &Archetype{
			ID:             d.ID,
			Name:           d.Name,
			MaxHP:          d.MaxHP,
			Attack:         d.Attack,
			Defense:        d.Defense,
			SpeedMin:       d.MoveSpeed.Min,
			SpeedMax:       d.MoveSpeed.Max,
			AttackRange:    d.AttackRange,
			SearchRange:    d.SearchRange,
			AttackCooldown: d.AttackCooldown,
			Windup:         d.Windup,
			ActionDuration: d.ActionDuration,
			Ranged:         d.Ranged,
			Projectile: ProjectileSpec{
				Speed:     d.Projectile.Speed,
				ArcHeight: d.Projectile.ArcHeight,
				Lifetime:  d.Projectile.Lifetime / 1000,
			},
		}
		ab.order = append(ab.order, d.ID)
	}
	return ab, nil
}

func (ab *ArchetypeBook) Get(id string) (*Archetype, error) {
	if a, ok := ab.byID[id]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w %q", config.ErrUnknownArchetype, id)
}

// IDs lists archetypes in table order.
func (ab *ArchetypeBook) IDs() []string {
	return append([]string(nil), ab.order...)
}

func (a *Archetype) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}
