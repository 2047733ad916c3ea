// Package physics defines the narrow interface the runtime consumes from a
// 2D physics engine, plus the Chipmunk-backed implementation. The core never
// touches the engine types directly; everything goes through World and Body.
package physics

import "github.com/milk9111/stage2d/common"

// BodyType mirrors the usual rigid-body taxonomy.
type BodyType int

const (
	Static BodyType = iota
	Kinematic
	Dynamic
)

// ShapeKind selects the collision shape built for a body.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

// BodyDef describes a body to create. Pos is the shape center.
type BodyDef struct {
	Type       BodyType
	Shape      ShapeKind
	Pos        common.Vec2
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Sensor     bool

	// FixedRotation locks the body's angle.
	FixedRotation bool
}

// Contact describes a reported overlap. Normal points from the first body of
// the pair toward the second.
type Contact struct {
	Normal common.Vec2
}

// Body is a single rigid body with one primary shape.
type Body interface {
	Position() common.Vec2
	SetPosition(p common.Vec2)
	Velocity() common.Vec2
	SetVelocity(v common.Vec2)

	Type() BodyType
	SetType(t BodyType)

	// SetGravityScale scales world gravity for this body only. 0 disables
	// gravity entirely.
	SetGravityScale(s float64)

	// SetFastMoving marks the body as a tunneling risk; the world steps in
	// smaller increments while any such body exists.
	SetFastMoving(fast bool)

	SetFixedRotation(fixed bool)

	// SetCollisionsEnabled toggles whether the body's shape participates in
	// collision detection at all.
	SetCollisionsEnabled(enabled bool)
	CollisionsEnabled() bool

	// SetPassThroughGroup assigns a filter group. Two bodies sharing the same
	// nonzero group never collide with each other; group 0 collides normally.
	SetPassThroughGroup(group uint)

	FirstShapeIsSensor() bool
	SetSensor(sensor bool)

	// Owner returns the opaque value supplied at creation.
	Owner() any
}

// ContactFunc receives the owners of both bodies when a new contact begins.
type ContactFunc func(a, b any, c Contact)

// FilterFunc runs before a contact is resolved; returning false suppresses
// the collision entirely for this overlap.
type FilterFunc func(a, b any, c Contact) bool

// World owns all bodies and advances the simulation.
type World interface {
	AddBody(def BodyDef, owner any) Body
	RemoveBody(b Body)
	Step(dt float64, velocityIterations, positionIterations int)
	SetGravity(g common.Vec2)
	OnContact(fn ContactFunc)
	SetContactFilter(fn FilterFunc)
}
