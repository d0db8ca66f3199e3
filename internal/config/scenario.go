package config

type ScenarioConfig struct {
	ID        string       `yaml:"id"`
	Note      string       `yaml:"note"`
	Arena     ArenaDef     `yaml:"arena"`
	Targeting TargetingDef `yaml:"targeting"`
	Behavior  BehaviorDef  `yaml:"behavior"`
	Tick      TickDef      `yaml:"tick"`
	Squads    []SquadDef   `yaml:"squads"`
}

type ArenaDef struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

type TargetingDef struct {
	StickFactor  float64 `yaml:"stick_factor"`
	SwitchLock   float64 `yaml:"switch_lock"`
	BaseScore    float64 `yaml:"base_score"`
	HealthWeight float64 `yaml:"health_weight"`
	CrowdPenalty float64 `yaml:"crowd_penalty"`
	Jitter       float64 `yaml:"jitter"`
}

type BehaviorDef struct {
	MaxIdle      float64 `yaml:"max_idle"`
	PatrolRadius float64 `yaml:"patrol_radius"`
	PatrolMin    float64 `yaml:"patrol_min"`
	PatrolReroll float64 `yaml:"patrol_reroll"`
	PatrolArrive float64 `yaml:"patrol_arrive"`
	// nil means true: chase the nearest hostile even outside search range.
	PursueBeyondSearch *bool `yaml:"pursue_beyond_search"`
}

func (b BehaviorDef) Pursue() bool {
	return b.PursueBeyondSearch == nil || *b.PursueBeyondSearch
}

type TickDef struct {
	Delta     float64 `yaml:"delta"`
	TimeLimit float64 `yaml:"time_limit"`
}

type SquadDef struct {
	Faction   string  `yaml:"faction"`
	Archetype string  `yaml:"archetype"`
	Count     int     `yaml:"count"`
	Spawn     RectDef `yaml:"spawn"`
}

type RectDef struct {
	MinX int `yaml:"min_x"`
	MaxX int `yaml:"max_x"`
	MinY int `yaml:"min_y"`
	MaxY int `yaml:"max_y"`
}

// ApplyDefaults fills every zero field with the stock value.
func (s *ScenarioConfig) ApplyDefaults() {
	if s.Arena.Width == 0 {
		s.Arena.Width = 1280
	}
	if s.Arena.Height == 0 {
		s.Arena.Height = 720
	}
	if s.Arena.Margin == 0 {
		s.Arena.Margin = 50
	}
	t := &s.Targeting
	if t.StickFactor == 0 {
		t.StickFactor = 1.5
	}
	if t.SwitchLock == 0 {
		t.SwitchLock = 3000
	}
	if t.BaseScore == 0 {
		t.BaseScore = 1000
	}
	if t.HealthWeight == 0 {
		t.HealthWeight = 2
	}
	if t.CrowdPenalty == 0 {
		t.CrowdPenalty = 100
	}
	if t.Jitter == 0 {
		t.Jitter = 50
	}
	b := &s.Behavior
	if b.MaxIdle == 0 {
		b.MaxIdle = 3000
	}
	if b.PatrolRadius == 0 {
		b.PatrolRadius = 200
	}
	if b.PatrolMin == 0 {
		b.PatrolMin = 50
	}
	if b.PatrolReroll == 0 {
		b.PatrolReroll = 5000
	}
	if b.PatrolArrive == 0 {
		b.PatrolArrive = 30
	}
	if s.Tick.Delta == 0 {
		s.Tick.Delta = 1000.0 / 60.0
	}
	if s.Tick.TimeLimit == 0 {
		s.Tick.TimeLimit = 180000
	}
}

// DefaultScenario mirrors the stock demo: fifty warriors on the left half
// against fifty archers on the right half.
func DefaultScenario() *ScenarioConfig {
	s := &ScenarioConfig{
		ID: "demo",
		Squads: []SquadDef{
			{Faction: "A", Archetype: "warrior", Count: 50, Spawn: RectDef{MinX: 100, MaxX: 600, MinY: 100, MaxY: 620}},
			{Faction: "B", Archetype: "archer", Count: 50, Spawn: RectDef{MinX: 680, MaxX: 1180, MinY: 100, MaxY: 620}},
		},
	}
	s.ApplyDefaults()
	return s
}
