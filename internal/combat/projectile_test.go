package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arrow(dest Vec2, lifetime float64) *Projectile {
	return NewProjectile(LaunchSpec{
		ID:             10,
		ShooterID:      1,
		TargetID:       2,
		ShooterFaction: FactionB,
		Origin:         Vec2{},
		Dest:           dest,
		Damage:         25,
		Spec:           ProjectileSpec{Speed: 300, ArcHeight: 100, Lifetime: lifetime},
	})
}

func TestProjectileFlight(t *testing.T) {
	p := arrow(Vec2{250, 0}, 3)
	require.InDelta(t, 250.0/300.0, p.TravelTime, 1e-12)

	assert.False(t, p.Advance(0.5))
	assert.InDelta(t, 0.6, p.Progress(), 1e-9)
	pos := p.Position()
	assert.InDelta(t, 150, pos.X, 1e-9)
	assert.InDelta(t, -math.Sin(0.6*math.Pi)*100, pos.Y, 1e-9)

	assert.True(t, p.Advance(0.34))
	assert.Equal(t, 1.0, p.Progress())
	assert.InDelta(t, 250, p.Position().X, 1e-9)
	assert.InDelta(t, 0, p.Position().Y, 1e-9)
}

func TestProjectileApex(t *testing.T) {
	p := arrow(Vec2{300, 0}, 3)
	apex := p.PositionAt(0.5)
	assert.InDelta(t, 150, apex.X, 1e-9)
	assert.InDelta(t, -100, apex.Y, 1e-9)
}

func TestProjectileResolvesOnce(t *testing.T) {
	p := arrow(Vec2{100, 0}, 3)
	require.True(t, p.Advance(1))

	calls := 0
	apply := func(id EntityID, dmg float64) {
		calls++
		assert.Equal(t, EntityID(2), id)
		assert.Equal(t, 25.0, dmg)
	}
	assert.True(t, p.Resolve(apply))
	assert.False(t, p.Resolve(apply))
	assert.False(t, p.Advance(1))
	assert.Equal(t, 1, calls)
	assert.True(t, p.Resolved())
	assert.True(t, p.Done())
}

func TestProjectileZeroDistance(t *testing.T) {
	p := arrow(Vec2{}, 3)
	assert.Equal(t, 0.0, p.TravelTime)
	assert.Equal(t, 1.0, p.Progress())
	assert.True(t, p.Advance(1.0/60))
	assert.Equal(t, 0.0, p.Rotation())
}

func TestProjectileLifetimeCap(t *testing.T) {
	p := arrow(Vec2{250, 0}, 0.2)
	assert.False(t, p.Advance(0.1))
	assert.True(t, p.Advance(0.15))
	assert.Less(t, p.Progress(), 1.0)
}

func TestProjectileRotationFollowsArc(t *testing.T) {
	p := arrow(Vec2{300, 0}, 3)
	assert.Equal(t, 0.0, p.Rotation())

	p.Elapsed = 0.25 * p.TravelTime
	up := p.Rotation()
	assert.Less(t, up, 0.0)
	assert.Greater(t, up, -math.Pi/2)

	p.Elapsed = 0.75 * p.TravelTime
	down := p.Rotation()
	assert.Greater(t, down, 0.0)
	assert.Less(t, down, math.Pi/2)
	assert.InDelta(t, -up, down, 0.05)
}

func TestProjectileCancel(t *testing.T) {
	p := arrow(Vec2{250, 0}, 3)
	p.Cancel()
	assert.True(t, p.Done())
	assert.False(t, p.Advance(5))
	assert.False(t, p.Resolve(func(EntityID, float64) { t.Fatal("cancelled arrow applied damage") }))
	assert.False(t, p.Resolved())
}

func TestProjectileSnapshot(t *testing.T) {
	p := arrow(Vec2{300, 0}, 3)
	p.Advance(p.TravelTime / 2)
	s := p.Snapshot()
	assert.Equal(t, EntityID(10), s.ID)
	assert.InDelta(t, 0.5, s.Progress, 1e-9)
	assert.InDelta(t, -100, s.Pos.Y, 1e-9)
}
