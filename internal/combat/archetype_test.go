package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skirmish/internal/config"
)

func TestArchetypeBookDefaults(t *testing.T) {
	book, err := NewArchetypeBook(config.DefaultArchetypes())
	require.NoError(t, err)
	assert.Equal(t, []string{"warrior", "archer"}, book.IDs())

	archer, err := book.Get("archer")
	require.NoError(t, err)
	assert.True(t, archer.Ranged)
	assert.Equal(t, 3.0, archer.Projectile.Lifetime)
	assert.Equal(t, "Archer", archer.DisplayName())

	_, err = book.Get("dragon")
	assert.ErrorIs(t, err, config.ErrUnknownArchetype)
}

func TestArchetypeBookRejectsInvalid(t *testing.T) {
	cfg := config.DefaultArchetypes()
	cfg.Archetypes[0].AttackCooldown = -100
	_, err := NewArchetypeBook(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attack_cooldown")

	cfg = config.DefaultArchetypes()
	cfg.Archetypes[1].SearchRange = -1
	_, err = NewArchetypeBook(cfg)
	assert.Error(t, err)
}
