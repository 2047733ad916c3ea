package stage

import (
	"github.com/milk9111/stage2d/common"
	"github.com/milk9111/stage2d/physics"
)

const defaultProjectileRange = 1000

// ProjectilePool preallocates a fixed set of projectile actors and recycles
// them round-robin, so throwing never allocates mid-level. Pooled actors stay
// in the scene disabled; a throw wakes the next one up.
type ProjectilePool struct {
	scene  *Scene
	actors []*Actor
	next   int

	// Defaults applied to each projectile at throw time.
	Damage             float64
	MaxRange           float64
	DisappearOnCollide bool
}

// NewProjectilePool creates size projectiles of the given dimensions. Round
// projectiles get circle physics with radius max(w,h)/2. Projectiles ignore
// gravity, never rotate, and are stepped in fast-moving mode so high throw
// speeds do not tunnel. Collisions stay disabled until a throw.
func NewProjectilePool(s *Scene, size int, w, h float64, round bool, z int) *ProjectilePool {
	p := &ProjectilePool{
		scene:              s,
		Damage:             1,
		MaxRange:           defaultProjectileRange,
		DisappearOnCollide: true,
	}
	for i := 0; i < size; i++ {
		a := s.addActor(KindProjectile, physics.BodyDef{
			Type:          physics.Dynamic,
			Shape:         shapeFor(round),
			Pos:           common.Vec2{X: -100, Y: -100},
			Width:         w,
			Height:        h,
			FixedRotation: true,
		}, w, h, z)
		a.Proj = &ProjectileState{
			MaxRange:           p.MaxRange,
			DisappearOnCollide: true,
			pool:               p,
		}
		a.Enabled = false
		a.Node.SetVisible(false)
		a.Body.SetGravityScale(0)
		a.Body.SetFastMoving(true)
		a.Body.SetCollisionsEnabled(false)
		p.actors = append(p.actors, a)
	}
	return p
}

// Throw launches the next pooled projectile from the thrower's position plus
// an offset, with the given velocity.
func (p *ProjectilePool) Throw(from *Actor, offX, offY, vx, vy float64) *Actor {
	if p == nil || len(p.actors) == 0 || from == nil || from.Body == nil {
		return nil
	}
	a := p.actors[p.next]
	p.next = (p.next + 1) % len(p.actors)

	origin := from.Body.Position().Add(common.Vec2{X: offX, Y: offY})
	a.Proj.Origin = origin
	a.Proj.Damage = p.Damage
	a.Proj.MaxRange = p.MaxRange
	a.Proj.DisappearOnCollide = p.DisappearOnCollide

	a.Enabled = true
	a.removed = false
	a.Node.SetVisible(true)
	a.Body.SetPosition(origin)
	a.Body.SetCollisionsEnabled(true)
	a.Body.SetVelocity(common.Vec2{X: vx, Y: vy})
	return a
}

// ThrowAt launches toward a world point at the given speed.
func (p *ProjectilePool) ThrowAt(from *Actor, offX, offY, tx, ty, speed float64) *Actor {
	if p == nil || from == nil || from.Body == nil {
		return nil
	}
	origin := from.Body.Position().Add(common.Vec2{X: offX, Y: offY})
	dir := common.Vec2{X: tx, Y: ty}.Sub(origin)
	length := dir.Length()
	if length == 0 {
		return nil
	}
	v := dir.Mult(speed / length)
	return p.Throw(from, offX, offY, v.X, v.Y)
}

// recycle parks a projectile back in the pool instead of destroying it.
func (p *ProjectilePool) recycle(a *Actor) {
	if a == nil {
		return
	}
	a.Enabled = false
	a.Node.SetVisible(false)
	a.Body.SetVelocity(common.Vec2{})
	a.Body.SetCollisionsEnabled(false)
}

// cullOutOfRange removes the projectile silently once it has traveled past
// its maximum range. Returns true when the projectile was culled.
func cullOutOfRange(s *Scene, a *Actor) bool {
	if a.Proj == nil || a.Body == nil {
		return false
	}
	d := a.Body.Position().Sub(a.Proj.Origin)
	if d.LengthSq() <= a.Proj.MaxRange*a.Proj.MaxRange {
		return false
	}
	s.Remove(a, true)
	return true
}
