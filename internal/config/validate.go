package config

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownArchetype = errors.New("unknown archetype")
	ErrInvalidFaction   = errors.New("invalid faction")
)

// Validate reports every invalid field of the archetype, joined.
func (a ArchetypeDef) Validate() error {
	var errs []error
	bad := func(field string, v any) {
		errs = append(errs, fmt.Errorf("archetype %q: invalid %s %v", a.ID, field, v))
	}
	if a.ID == "" {
		errs = append(errs, errors.New("archetype: missing id"))
	}
	if a.MaxHP <= 0 {
		bad("max_hp", a.MaxHP)
	}
	if a.Attack < 0 {
		bad("attack", a.Attack)
	}
	if a.Defense < 0 {
		bad("defense", a.Defense)
	}
	if a.MoveSpeed.Min < 0 || a.MoveSpeed.Max < a.MoveSpeed.Min {
		bad("move_speed", fmt.Sprintf("[%d,%d]", a.MoveSpeed.Min, a.MoveSpeed.Max))
	}
	if a.AttackRange <= 0 {
		bad("attack_range", a.AttackRange)
	}
	if a.SearchRange <= 0 {
		bad("search_range", a.SearchRange)
	}
	if a.AttackCooldown < 0 {
		bad("attack_cooldown", a.AttackCooldown)
	}
	if a.Windup < 0 {
		bad("windup", a.Windup)
	}
	if a.ActionDuration < a.Windup {
		bad("action_duration", a.ActionDuration)
	}
	if a.Ranged {
		if a.Projectile.Speed <= 0 {
			bad("projectile.speed", a.Projectile.Speed)
		}
		if a.Projectile.ArcHeight < 0 {
			bad("projectile.arc_height", a.Projectile.ArcHeight)
		}
		if a.Projectile.Lifetime <= 0 {
			bad("projectile.lifetime", a.Projectile.Lifetime)
		}
	}
	return errors.Join(errs...)
}

func (c *ArchetypesConfig) Validate() error {
	if c == nil || len(c.Archetypes) == 0 {
		return errors.New("archetypes: empty table")
	}
	var errs []error
	seen := map[string]bool{}
	for _, a := range c.Archetypes {
		if seen[a.ID] {
			errs = append(errs, fmt.Errorf("archetype %q: duplicate id", a.ID))
		}
		seen[a.ID] = true
		if err := a.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate checks the scenario against the archetype table. Call
// ApplyDefaults first.
func (s *ScenarioConfig) Validate(ac *ArchetypesConfig) error {
	var errs []error
	ar := s.Arena
	if ar.Width <= 0 || ar.Height <= 0 || ar.Margin < 0 || 2*ar.Margin >= ar.Width || 2*ar.Margin >= ar.Height {
		errs = append(errs, fmt.Errorf("arena: invalid bounds %vx%v margin %v", ar.Width, ar.Height, ar.Margin))
	}
	t := s.Targeting
	if t.StickFactor < 1 || t.SwitchLock < 0 || t.HealthWeight < 0 || t.CrowdPenalty < 0 || t.Jitter < 0 {
		errs = append(errs, fmt.Errorf("targeting: negative or out-of-range weight %+v", t))
	}
	b := s.Behavior
	if b.MaxIdle < 0 || b.PatrolReroll < 0 || b.PatrolArrive <= 0 || b.PatrolMin < 0 || b.PatrolRadius < b.PatrolMin {
		errs = append(errs, fmt.Errorf("behavior: invalid timing or radius %+v", b))
	}
	if s.Tick.Delta <= 0 || s.Tick.TimeLimit <= 0 {
		errs = append(errs, fmt.Errorf("tick: invalid delta %v limit %v", s.Tick.Delta, s.Tick.TimeLimit))
	}
	for i, sq := range s.Squads {
		if sq.Faction != "A" && sq.Faction != "B" {
			errs = append(errs, fmt.Errorf("squad %d: %w %q", i, ErrInvalidFaction, sq.Faction))
		}
		if ac != nil {
			if _, ok := ac.Find(sq.Archetype); !ok {
				errs = append(errs, fmt.Errorf("squad %d: %w %q", i, ErrUnknownArchetype, sq.Archetype))
			}
		}
		if sq.Count < 0 {
			errs = append(errs, fmt.Errorf("squad %d: negative count %d", i, sq.Count))
		}
		r := sq.Spawn
		if r.MaxX < r.MinX || r.MaxY < r.MinY {
			errs = append(errs, fmt.Errorf("squad %d: empty spawn rect %+v", i, r))
		}
	}
	return errors.Join(errs...)
}
