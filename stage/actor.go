package stage

import (
	"github.com/milk9111/stage2d/common"
	"github.com/milk9111/stage2d/physics"
	"github.com/milk9111/stage2d/render"
)

// Kind tags an actor with its gameplay role. Collision response is selected
// by tag, not by subtype.
type Kind int

const (
	KindHero Kind = iota
	KindEnemy
	KindObstacle
	KindDestination
	KindProjectile
	KindGoodie
)

func (k Kind) String() string {
	switch k {
	case KindHero:
		return "hero"
	case KindEnemy:
		return "enemy"
	case KindObstacle:
		return "obstacle"
	case KindDestination:
		return "destination"
	case KindProjectile:
		return "projectile"
	case KindGoodie:
		return "goodie"
	}
	return "unknown"
}

// Side names the face of a one-sided actor that accepts contacts.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideRight
	SideBottom
	SideLeft
)

// Actor is one placed scene entity: a render node, a physics body, and
// optional per-kind state. Disabled actors are skipped by the render pass and
// by per-frame behaviors but keep all state.
type Actor struct {
	Kind    Kind
	Node    render.Node
	Body    physics.Body
	Enabled bool

	CameraOffset common.Vec2
	OneSided     Side

	Width  float64
	Height float64

	// passThrough suppresses collisions between actors sharing the same
	// nonzero id. 0 always collides.
	passThrough uint

	chaseTarget *Actor
	scene       *Scene
	removed     bool

	Hero   *HeroState
	Enemy  *EnemyState
	Obst   *ObstacleState
	Dest   *DestinationState
	Proj   *ProjectileState
	Goodie *GoodieState
}

// Scene returns the scene this actor was placed into.
func (a *Actor) Scene() *Scene { return a.scene }

// SetCameraOffset shifts the camera focus point when this actor is chased by
// the camera.
func (a *Actor) SetCameraOffset(x, y float64) {
	a.CameraOffset = common.Vec2{X: x, Y: y}
}

// SetOneSided restricts collisions to one face of this actor.
func (a *Actor) SetOneSided(side Side) {
	a.OneSided = side
}

// SetPassThrough tags the actor so it never collides with other actors
// carrying the same nonzero id. The filter lives on the physics layer.
func (a *Actor) SetPassThrough(id uint) {
	a.passThrough = id
	if a.Body != nil {
		a.Body.SetPassThroughGroup(id)
	}
}

// PassThrough returns the current pass-through id.
func (a *Actor) PassThrough() uint { return a.passThrough }

// ChaseActor returns the current chase target, if any.
func (a *Actor) ChaseActor() (*Actor, bool) {
	if a.chaseTarget == nil {
		return nil, false
	}
	return a.chaseTarget, true
}

// SetStopNotifier installs an edge-triggered "just stopped" detector: fn is
// invoked exactly once each time the body transitions from moving to a full
// stop on both axes.
func (a *Actor) SetStopNotifier(s *Scene, fn ActorFunc) *FrameAction {
	if s == nil || fn == nil {
		return nil
	}
	moving := false
	fa := NewFrameAction(func() {
		if !a.Enabled || a.Body == nil {
			return
		}
		v := a.Body.Velocity()
		if !moving {
			if v.X != 0 || v.Y != 0 {
				moving = true
			}
			return
		}
		if v.X == 0 && v.Y == 0 {
			moving = false
			fn(a)
		}
	})
	s.AddRepeating(fa)
	return fa
}

// ChaseFixedMagnitude makes this actor move toward target at a constant
// per-axis speed. An ignored axis preserves the actor's own velocity on that
// axis. Ticks where either actor is disabled are skipped entirely.
func (a *Actor) ChaseFixedMagnitude(s *Scene, target *Actor, xMag, yMag float64, ignoreX, ignoreY bool) *FrameAction {
	if s == nil || target == nil {
		return nil
	}
	a.chaseTarget = target
	fa := NewFrameAction(func() {
		if !a.Enabled || !target.Enabled || a.Body == nil || target.Body == nil {
			return
		}
		self := a.Body.Position()
		dst := target.Body.Position()
		v := a.Body.Velocity()
		if !ignoreX {
			v.X = common.Sign(dst.X-self.X) * xMag
		}
		if !ignoreY {
			v.Y = common.Sign(dst.Y-self.Y) * yMag
		}
		a.Body.SetVelocity(v)
	})
	s.AddRepeating(fa)
	return fa
}

// SetMoveByTilting registers the actor to receive tilt-driven velocity
// updates. Registration is idempotent; the body is coerced to dynamic and
// collisions are enabled.
func (a *Actor) SetMoveByTilting(s *Scene) {
	if s == nil {
		return
	}
	for _, t := range s.tilt {
		if t == a {
			return
		}
	}
	s.tilt = append(s.tilt, a)
	if a.Body != nil {
		if a.Body.Type() != physics.Dynamic {
			a.Body.SetType(physics.Dynamic)
		}
		a.Body.SetCollisionsEnabled(true)
	}
}

// syncNode copies the body position onto the render node.
func (a *Actor) syncNode() {
	if a.Node == nil || a.Body == nil {
		return
	}
	p := a.Body.Position()
	a.Node.SetPosition(p.X, p.Y)
}
