package combat

import "math"

// tangentStep is the progress offset used to estimate the flight direction.
const tangentStep = 0.01

// Projectile is an arrow in flight. It copies the shooter's damage and
// faction at launch; the shooter and target are referenced by id only.
// Times are seconds.
type Projectile struct {
	ID             EntityID
	ShooterID      EntityID
	TargetID       EntityID
	ShooterFaction Faction

	Origin    Vec2
	Dest      Vec2
	Speed     float64
	Damage    float64
	ArcHeight float64

	Elapsed    float64
	TravelTime float64
	Lifetime   float64

	resolved  bool
	cancelled bool
}

type LaunchSpec struct {
	ID             EntityID
	ShooterID      EntityID
	TargetID       EntityID
	ShooterFaction Faction
	Origin         Vec2
	Dest           Vec2
	Damage         float64
	Spec           ProjectileSpec
}

func NewProjectile(l LaunchSpec) *Projectile {
	p := &Projectile{
		ID:             l.ID,
		ShooterID:      l.ShooterID,
		TargetID:       l.TargetID,
		ShooterFaction: l.ShooterFaction,
		Origin:         l.Origin,
		Dest:           l.Dest,
		Speed:          l.Spec.Speed,
		Damage:         l.Damage,
		ArcHeight:      l.Spec.ArcHeight,
		Lifetime:       l.Spec.Lifetime,
	}
	if p.Speed > 0 {
		p.TravelTime = Dist(p.Origin, p.Dest) / p.Speed
	}
	return p
}

// Advance moves the flight clock by dt seconds and reports whether the
// projectile is due to resolve: it reached the end of its arc or outlived
// its lifetime cap.
func (p *Projectile) Advance(dt float64) bool {
	if p.resolved || p.cancelled {
		return false
	}
	p.Elapsed += dt
	return p.Progress() >= 1 || (p.Lifetime > 0 && p.Elapsed >= p.Lifetime)
}

func (p *Projectile) Progress() float64 {
	if p.TravelTime <= 0 {
		return 1
	}
	return Clamp(p.Elapsed/p.TravelTime, 0, 1)
}

// PositionAt is the point on the arc at progress t: straight-line
// interpolation lifted by sin(t·π)·ArcHeight, apex at t = 0.5.
func (p *Projectile) PositionAt(t float64) Vec2 {
	pos := LerpVec(p.Origin, p.Dest, t)
	pos.Y -= math.Sin(t*math.Pi) * p.ArcHeight
	return pos
}

func (p *Projectile) Position() Vec2 { return p.PositionAt(p.Progress()) }

// Rotation is the heading of the arc tangent, estimated from the point a
// small step of progress earlier.
func (p *Projectile) Rotation() float64 {
	if p.TravelTime <= 0 {
		return AngleTo(p.Origin, p.Dest)
	}
	t := p.Progress()
	prev := p.Origin
	if t > tangentStep {
		prev = p.PositionAt(t - tangentStep)
	}
	cur := p.PositionAt(t)
	if cur == prev {
		return AngleTo(p.Origin, p.Dest)
	}
	return AngleTo(prev, cur)
}

// Resolve hands the damage to apply exactly once per projectile. Later calls
// return false without invoking apply.
func (p *Projectile) Resolve(apply func(target EntityID, damage float64)) bool {
	if p.resolved || p.cancelled {
		return false
	}
	p.resolved = true
	if apply != nil {
		apply(p.TargetID, p.Damage)
	}
	return true
}

func (p *Projectile) Resolved() bool { return p.resolved }

// Cancel removes the projectile without effect.
func (p *Projectile) Cancel() { p.cancelled = true }

func (p *Projectile) Done() bool { return p.resolved || p.cancelled }

func (p *Projectile) Snapshot() ProjectileSnapshot {
	return ProjectileSnapshot{
		ID:       p.ID,
		Pos:      p.Position(),
		Rotation: p.Rotation(),
		Progress: p.Progress(),
	}
}
