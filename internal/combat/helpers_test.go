package combat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"skirmish/internal/config"
	"skirmish/internal/util"
)

// testArchetypes extends the stock table with stationary archetypes that
// make single-exchange scenarios easy to set up.
func testArchetypes() *config.ArchetypesConfig {
	ac := config.DefaultArchetypes()
	ac.Archetypes = append(ac.Archetypes,
		config.ArchetypeDef{
			ID: "dummy", MaxHP: 200, AttackRange: 30, SearchRange: 400,
			AttackCooldown: 1500, Windup: 300, ActionDuration: 500,
		},
		config.ArchetypeDef{
			ID: "brute", MaxHP: 200, Defense: 10, AttackRange: 30, SearchRange: 400,
			AttackCooldown: 1500, Windup: 300, ActionDuration: 500,
		},
		config.ArchetypeDef{
			ID: "scout", MaxHP: 50, MoveSpeed: config.SpeedRange{Min: 60, Max: 60},
			AttackRange: 30, SearchRange: 400, ActionDuration: 500,
		},
		config.ArchetypeDef{
			ID: "lobber", MaxHP: 80, Attack: 12, AttackRange: 250, SearchRange: 400,
			AttackCooldown: 5000, Windup: 250, ActionDuration: 500, Ranged: true,
			Projectile: config.ProjectileDef{Speed: 10, Lifetime: 500},
		},
	)
	return ac
}

func defaultSquads() []config.SquadDef {
	return config.DefaultScenario().Squads
}

func testBook(t *testing.T) *ArchetypeBook {
	t.Helper()
	book, err := NewArchetypeBook(testArchetypes())
	require.NoError(t, err)
	return book
}

func testArch(t *testing.T, id string) *Archetype {
	t.Helper()
	a, err := testBook(t).Get(id)
	require.NoError(t, err)
	return a
}

func emptyScenario() *config.ScenarioConfig {
	sc := config.DefaultScenario()
	sc.Squads = nil
	return sc
}

func newTestWorld(t *testing.T, sc *config.ScenarioConfig, opts ...Option) *World {
	t.Helper()
	if sc == nil {
		sc = emptyScenario()
	}
	opts = append([]Option{WithJitter(nil)}, opts...)
	return NewWorld(&Env{Rng: util.New(42)}, sc, testBook(t), opts...)
}

func spawn(t *testing.T, w *World, arch string, f Faction, x, y float64) *Combatant {
	t.Helper()
	c, err := w.Spawn(arch, f, Vec2{x, y})
	require.NoError(t, err)
	return c
}

// stepUntil advances in 10ms ticks until the clock reaches ms and returns
// every event drained on the way.
func stepUntil(w *World, ms float64) []Event {
	var out []Event
	for w.Now() < ms {
		w.Step(10)
		out = append(out, w.Drain()...)
	}
	return out
}

func eventsOf(evs []Event, typ EventType, source EntityID) []Event {
	var out []Event
	for _, ev := range evs {
		if ev.Type == typ && (source == 0 || ev.Source == source) {
			out = append(out, ev)
		}
	}
	return out
}
