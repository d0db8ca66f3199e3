package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const archetypesYAML = `
archetypes:
  - id: warrior
    max_hp: 120
    attack: 20
    defense: 5
    move_speed: {min: 30, max: 80}
    attack_range: 30
    search_range: 400
    attack_cooldown: 1500
    windup: 300
    action_duration: 500
  - id: archer
    max_hp: 100
    attack: 25
    defense: 8
    move_speed: {min: 40, max: 90}
    attack_range: 250
    search_range: 400
    attack_cooldown: 2000
    windup: 250
    action_duration: 500
    ranged: true
    projectile: {speed: 300, arc_height: 100, lifetime: 3000}
`

const scenarioYAML = `
id: test
arena: {width: 800, height: 600, margin: 20}
behavior:
  pursue_beyond_search: false
squads:
  - {faction: A, archetype: warrior, count: 3, spawn: {min_x: 50, max_x: 100, min_y: 50, max_y: 500}}
  - {faction: B, archetype: archer, count: 2, spawn: {min_x: 600, max_x: 700, min_y: 50, max_y: 500}}
`

func writeDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoadAll(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"archetypes.yaml": archetypesYAML,
		"scenario.yaml":   scenarioYAML,
	})
	ac, sc, err := LoadAll(dir)
	require.NoError(t, err)

	require.Len(t, ac.Archetypes, 2)
	archer, ok := ac.Find("archer")
	require.True(t, ok)
	assert.True(t, archer.Ranged)
	assert.Equal(t, 300.0, archer.Projectile.Speed)
	assert.Equal(t, 90, archer.MoveSpeed.Max)

	assert.Equal(t, 800.0, sc.Arena.Width)
	assert.Equal(t, 20.0, sc.Arena.Margin)
	assert.Len(t, sc.Squads, 2)
	assert.False(t, sc.Behavior.Pursue())
	// omitted blocks fall back to stock values
	assert.Equal(t, 1.5, sc.Targeting.StickFactor)
	assert.Equal(t, 3000.0, sc.Behavior.MaxIdle)
	assert.InDelta(t, 16.667, sc.Tick.Delta, 0.001)
}

func TestLoadAllMissingFile(t *testing.T) {
	dir := writeDir(t, map[string]string{"archetypes.yaml": archetypesYAML})
	_, _, err := LoadAll(dir)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadArchetypesRejectsNegativeCooldown(t *testing.T) {
	dir := writeDir(t, map[string]string{"archetypes.yaml": `
archetypes:
  - id: broken
    max_hp: 10
    attack_range: -5
    search_range: 100
    attack_cooldown: -1
`})
	_, err := LoadArchetypes(filepath.Join(dir, "archetypes.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attack_cooldown")
	assert.Contains(t, err.Error(), "attack_range")
}

func TestScenarioValidateUnknownArchetype(t *testing.T) {
	sc := DefaultScenario()
	sc.Squads[0].Archetype = "dragon"
	sc.Squads[1].Faction = "C"
	err := sc.Validate(DefaultArchetypes())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownArchetype))
	assert.True(t, errors.Is(err, ErrInvalidFaction))
}

func TestDefaultsValidate(t *testing.T) {
	require.NoError(t, DefaultArchetypes().Validate())
	require.NoError(t, DefaultScenario().Validate(DefaultArchetypes()))
}

func TestArchetypeValidateRanged(t *testing.T) {
	a, _ := DefaultArchetypes().Find("archer")
	a.Projectile.Speed = 0
	assert.Error(t, a.Validate())

	a, _ = DefaultArchetypes().Find("warrior")
	a.ActionDuration = 100
	assert.Error(t, a.Validate())
}

func TestDuplicateArchetype(t *testing.T) {
	ac := DefaultArchetypes()
	ac.Archetypes = append(ac.Archetypes, ac.Archetypes[0])
	assert.Error(t, ac.Validate())
}

func TestShippedAssetsMatchDefaults(t *testing.T) {
	ac, sc, err := LoadAll(filepath.Join("..", "..", "assets"))
	require.NoError(t, err)

	def := DefaultArchetypes()
	require.Len(t, ac.Archetypes, len(def.Archetypes))
	for i := range def.Archetypes {
		got := ac.Archetypes[i]
		got.Note = def.Archetypes[i].Note
		assert.Equal(t, def.Archetypes[i], got)
	}

	want := DefaultScenario()
	assert.Equal(t, want.Arena, sc.Arena)
	assert.Equal(t, want.Targeting, sc.Targeting)
	assert.Equal(t, want.Squads, sc.Squads)
	assert.InDelta(t, want.Tick.Delta, sc.Tick.Delta, 1e-9)
	assert.True(t, sc.Behavior.Pursue())
}

func TestLoadScenarioKeepsExplicitZeros(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"archetypes.yaml": archetypesYAML,
		"scenario.yaml": `
id: calm
arena: {width: 800, height: 600, margin: 0}
targeting: {jitter: 0, switch_lock: 0}
squads:
  - {faction: A, archetype: warrior, count: 1, spawn: {min_x: 50, max_x: 100, min_y: 50, max_y: 500}}
`,
	})
	_, sc, err := LoadAll(dir)
	require.NoError(t, err)

	assert.Equal(t, 0.0, sc.Arena.Margin)
	assert.Equal(t, 0.0, sc.Targeting.Jitter)
	assert.Equal(t, 0.0, sc.Targeting.SwitchLock)
	// keys left out still get the stock values
	assert.Equal(t, 1.5, sc.Targeting.StickFactor)
	assert.Equal(t, 100.0, sc.Targeting.CrowdPenalty)
	assert.Equal(t, 180000.0, sc.Tick.TimeLimit)
}

func TestLoadScenarioRejectsExplicitZeroDelta(t *testing.T) {
	dir := writeDir(t, map[string]string{"scenario.yaml": "tick: {delta: 0}\n"})
	_, err := LoadScenario(filepath.Join(dir, "scenario.yaml"), DefaultArchetypes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tick")
}
