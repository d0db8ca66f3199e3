package config

type ArchetypesConfig struct {
	Archetypes []ArchetypeDef `yaml:"archetypes"`
}

// ArchetypeDef is one stat template. Durations are milliseconds, speeds are
// units per second.
type ArchetypeDef struct {
	ID             string        `yaml:"id"`
	Name           string        `yaml:"name"`
	MaxHP          float64       `yaml:"max_hp"`
	Attack         float64       `yaml:"attack"`
	Defense        float64       `yaml:"defense"`
	MoveSpeed      SpeedRange    `yaml:"move_speed"`
	AttackRange    float64       `yaml:"attack_range"`
	SearchRange    float64       `yaml:"search_range"`
	AttackCooldown float64       `yaml:"attack_cooldown"`
	Windup         float64       `yaml:"windup"`
	ActionDuration float64       `yaml:"action_duration"`
	Ranged         bool          `yaml:"ranged"`
	Projectile     ProjectileDef `yaml:"projectile"`
	Note           string        `yaml:"note"`
}

type SpeedRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type ProjectileDef struct {
	Speed     float64 `yaml:"speed"`
	ArcHeight float64 `yaml:"arc_height"`
	Lifetime  float64 `yaml:"lifetime"`
}

func (c *ArchetypesConfig) Find(id string) (ArchetypeDef, bool) {
	for _, a := range c.Archetypes {
		if a.ID == id {
			return a, true
		}
	}
	return ArchetypeDef{}, false
}

// DefaultArchetypes is the canonical warrior/archer table.
func DefaultArchetypes() *ArchetypesConfig {
	return &ArchetypesConfig{Archetypes: []ArchetypeDef{
		{
			ID:             "warrior",
			Name:           "Warrior",
			MaxHP:          120,
			Attack:         20,
			Defense:        5,
			MoveSpeed:      SpeedRange{Min: 30, Max: 80},
			AttackRange:    30,
			SearchRange:    400,
			AttackCooldown: 1500,
			Windup:         300,
			ActionDuration: 500,
		},
		{
			ID:             "archer",
			Name:           "Archer",
			MaxHP:          100,
			Attack:         25,
			Defense:        8,
			MoveSpeed:      SpeedRange{Min: 40, Max: 90},
			AttackRange:    250,
			SearchRange:    400,
			AttackCooldown: 2000,
			Windup:         250,
			ActionDuration: 500,
			Ranged:         true,
			Projectile:     ProjectileDef{Speed: 300, ArcHeight: 100, Lifetime: 3000},
		},
	}}
}
