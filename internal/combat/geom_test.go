package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVecBasics(t *testing.T) {
	a := Vec2{3, 4}
	assert.Equal(t, 5.0, a.Len())
	assert.Equal(t, Vec2{0.6, 0.8}, a.Norm())
	assert.Equal(t, Vec2{}, Vec2{}.Norm())
	assert.Equal(t, Vec2{4, 6}, a.Add(Vec2{1, 2}))
	assert.Equal(t, Vec2{6, 8}, a.Scale(2))
	assert.Equal(t, 5.0, Dist(Vec2{}, a))
}

func TestAngleAndHeading(t *testing.T) {
	assert.InDelta(t, math.Pi/2, AngleTo(Vec2{1, 1}, Vec2{1, 5}), 1e-9)
	assert.InDelta(t, math.Pi, AngleTo(Vec2{1, 1}, Vec2{-3, 1}), 1e-9)
	u := FromAngle(math.Pi / 2)
	assert.InDelta(t, 0, u.X, 1e-9)
	assert.InDelta(t, 1, u.Y, 1e-9)
}

func TestLerpClamp(t *testing.T) {
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
	assert.Equal(t, Vec2{150, 0}, LerpVec(Vec2{100, 0}, Vec2{200, 0}, 0.5))
	assert.Equal(t, 1.0, Clamp(-2, 1, 3))
	assert.Equal(t, 3.0, Clamp(9, 1, 3))
	assert.Equal(t, 2.0, Clamp(2, 1, 3))
}
