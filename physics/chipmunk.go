package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/stage2d/common"
)

// Every runtime body shares one collision type so a single pair handler
// covers all actor-vs-actor contacts.
const actorCollisionType cp.CollisionType = 1

const fastMovingSubsteps = 4

// ChipmunkWorld implements World on top of the Chipmunk space.
type ChipmunkWorld struct {
	space  *cp.Space
	shapes map[*cp.Shape]*chipBody

	onContact ContactFunc
	filter    FilterFunc
	fastCount int
}

// NewChipmunkWorld creates a world with the given gravity vector.
func NewChipmunkWorld(gravity common.Vec2) *ChipmunkWorld {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: gravity.X, Y: gravity.Y})

	w := &ChipmunkWorld{
		space:  space,
		shapes: make(map[*cp.Shape]*chipBody),
	}
	w.setupHandlers()
	return w
}

func (w *ChipmunkWorld) setupHandlers() {
	handler := w.space.NewCollisionHandler(actorCollisionType, actorCollisionType)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		world, ok := userData.(*ChipmunkWorld)
		if !ok || world == nil {
			return true
		}
		sa, sb := arb.Shapes()
		ba := world.shapes[sa]
		bb := world.shapes[sb]
		if ba == nil || bb == nil {
			return true
		}
		c := contactFromArbiter(arb)
		if world.filter != nil && !world.filter(ba.owner, bb.owner, c) {
			return false
		}
		if world.onContact != nil {
			world.onContact(ba.owner, bb.owner, c)
		}
		return true
	}
	handler.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		world, ok := userData.(*ChipmunkWorld)
		if !ok || world == nil {
			return true
		}
		sa, sb := arb.Shapes()
		ba := world.shapes[sa]
		bb := world.shapes[sb]
		if ba == nil || bb == nil {
			return true
		}
		if world.filter != nil {
			return world.filter(ba.owner, bb.owner, contactFromArbiter(arb))
		}
		return true
	}
}

func contactFromArbiter(arb *cp.Arbiter) Contact {
	n := arb.Normal()
	return Contact{Normal: common.Vec2{X: n.X, Y: n.Y}}
}

// AddBody builds a Chipmunk body and primary shape from the definition.
func (w *ChipmunkWorld) AddBody(def BodyDef, owner any) Body {
	if w == nil || w.space == nil {
		return nil
	}

	mass := def.Mass
	if mass <= 0 {
		mass = 1
	}

	var body *cp.Body
	switch def.Type {
	case Static:
		body = cp.NewStaticBody()
	case Kinematic:
		body = cp.NewKinematicBody()
	default:
		body = cp.NewBody(mass, momentFor(def, mass))
	}
	body.SetPosition(cp.Vector{X: def.Pos.X, Y: def.Pos.Y})
	body.SetAngle(0)
	body.SetAngularVelocity(0)

	var shape *cp.Shape
	if def.Shape == ShapeCircle {
		shape = cp.NewCircle(body, circleRadius(def), cp.Vector{})
	} else {
		shape = cp.NewBox(body, def.Width, def.Height, 0)
	}
	shape.SetFriction(def.Friction)
	shape.SetElasticity(def.Elasticity)
	shape.SetSensor(def.Sensor)
	shape.SetCollisionType(actorCollisionType)

	w.space.AddBody(body)
	w.space.AddShape(shape)

	cb := &chipBody{
		world:    w,
		body:     body,
		shape:    shape,
		owner:    owner,
		btype:    def.Type,
		def:      def,
		enabled:  true,
		sensor:   def.Sensor,
		gravMult: 1,
	}
	if def.FixedRotation {
		cb.SetFixedRotation(true)
	}
	w.shapes[shape] = cb
	return cb
}

func momentFor(def BodyDef, mass float64) float64 {
	if def.FixedRotation {
		return math.Inf(1)
	}
	if def.Shape == ShapeCircle {
		return cp.MomentForCircle(mass, 0, circleRadius(def), cp.Vector{})
	}
	return cp.MomentForBox(mass, def.Width, def.Height)
}

func circleRadius(def BodyDef) float64 {
	if def.Radius > 0 {
		return def.Radius
	}
	return math.Max(def.Width, def.Height) / 2
}

// RemoveBody detaches the body and its shape from the space.
func (w *ChipmunkWorld) RemoveBody(b Body) {
	cb, ok := b.(*chipBody)
	if !ok || cb == nil || w == nil || w.space == nil {
		return
	}
	if cb.shape != nil {
		w.space.RemoveShape(cb.shape)
		delete(w.shapes, cb.shape)
	}
	if cb.body != nil {
		w.space.RemoveBody(cb.body)
	}
	if cb.fast {
		cb.fast = false
		w.fastCount--
	}
}

// Step advances the space. Chipmunk exposes a single solver iteration knob,
// so the velocity and position counts are summed. While any fast-moving body
// exists the step is split into substeps to bound tunneling.
func (w *ChipmunkWorld) Step(dt float64, velocityIterations, positionIterations int) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	iters := velocityIterations + positionIterations
	if iters > 0 {
		w.space.Iterations = uint(iters)
	}
	n := 1
	if w.fastCount > 0 {
		n = fastMovingSubsteps
	}
	sub := dt / float64(n)
	for i := 0; i < n; i++ {
		w.space.Step(sub)
	}
}

func (w *ChipmunkWorld) SetGravity(g common.Vec2) {
	if w == nil || w.space == nil {
		return
	}
	w.space.SetGravity(cp.Vector{X: g.X, Y: g.Y})
}

func (w *ChipmunkWorld) OnContact(fn ContactFunc) {
	w.onContact = fn
}

func (w *ChipmunkWorld) SetContactFilter(fn FilterFunc) {
	w.filter = fn
}

type chipBody struct {
	world *ChipmunkWorld
	body  *cp.Body
	shape *cp.Shape
	owner any

	btype    BodyType
	def      BodyDef
	group    uint
	enabled  bool
	fast     bool
	sensor   bool
	fixedRot bool
	gravMult float64
	gravSet  bool
}

func (b *chipBody) Position() common.Vec2 {
	p := b.body.Position()
	return common.Vec2{X: p.X, Y: p.Y}
}

func (b *chipBody) SetPosition(p common.Vec2) {
	b.body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
}

func (b *chipBody) Velocity() common.Vec2 {
	v := b.body.Velocity()
	return common.Vec2{X: v.X, Y: v.Y}
}

func (b *chipBody) SetVelocity(v common.Vec2) {
	b.body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Y})
}

func (b *chipBody) Type() BodyType {
	return b.btype
}

func (b *chipBody) SetType(t BodyType) {
	if b.btype == t {
		return
	}
	b.btype = t
	switch t {
	case Static:
		b.body.SetType(cp.BODY_STATIC)
	case Kinematic:
		b.body.SetType(cp.BODY_KINEMATIC)
	default:
		b.body.SetType(cp.BODY_DYNAMIC)
		// Chipmunk recomputes mass from shape densities on type changes;
		// our shapes carry none, so restore an explicit mass and moment.
		mass := b.def.Mass
		if mass <= 0 {
			mass = 1
		}
		b.body.SetMass(mass)
		if b.fixedRot {
			b.body.SetMoment(math.Inf(1))
		} else {
			b.body.SetMoment(momentFor(b.def, mass))
		}
	}
}

func (b *chipBody) SetGravityScale(s float64) {
	b.gravMult = s
	if b.gravSet {
		return
	}
	b.gravSet = true
	owner := b
	b.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, gravity.Mult(owner.gravMult), damping, dt)
	})
}

func (b *chipBody) SetFastMoving(fast bool) {
	if b.fast == fast {
		return
	}
	b.fast = fast
	if b.world == nil {
		return
	}
	if fast {
		b.world.fastCount++
	} else {
		b.world.fastCount--
	}
}

func (b *chipBody) SetFixedRotation(fixed bool) {
	b.fixedRot = fixed
	if fixed {
		b.body.SetMoment(math.Inf(1))
		b.body.SetAngularVelocity(0)
		return
	}
	mass := b.def.Mass
	if mass <= 0 {
		mass = 1
	}
	b.body.SetMoment(momentFor(b.def, mass))
}

func (b *chipBody) SetCollisionsEnabled(enabled bool) {
	b.enabled = enabled
	if enabled {
		b.shape.SetFilter(cp.NewShapeFilter(b.group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	} else {
		b.shape.SetFilter(cp.SHAPE_FILTER_NONE)
	}
}

func (b *chipBody) CollisionsEnabled() bool {
	return b.enabled
}

func (b *chipBody) SetPassThroughGroup(group uint) {
	b.group = group
	if b.enabled {
		b.shape.SetFilter(cp.NewShapeFilter(group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	}
}

func (b *chipBody) FirstShapeIsSensor() bool {
	return b.sensor
}

func (b *chipBody) SetSensor(sensor bool) {
	b.sensor = sensor
	b.shape.SetSensor(sensor)
}

func (b *chipBody) Owner() any {
	return b.owner
}
