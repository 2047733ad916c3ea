package physics

import (
	"math"
	"testing"

	"github.com/milk9111/stage2d/common"
)

const testDT = 1.0 / 45.0

func dynamicBox(w *ChipmunkWorld, x, y float64, owner any) Body {
	return w.AddBody(BodyDef{
		Type:   Dynamic,
		Shape:  ShapeBox,
		Pos:    common.Vec2{X: x, Y: y},
		Width:  32,
		Height: 32,
	}, owner)
}

func TestStepIntegratesVelocity(t *testing.T) {
	w := NewChipmunkWorld(common.Vec2{})
	b := dynamicBox(w, 0, 0, nil)
	b.SetVelocity(common.Vec2{X: 45})

	for i := 0; i < 45; i++ {
		w.Step(testDT, 8, 3)
	}

	p := b.Position()
	if math.Abs(p.X-45) > 1e-6 {
		t.Fatalf("position.X = %v after 1s at 45/s, want 45", p.X)
	}
	if math.Abs(p.Y) > 1e-6 {
		t.Fatalf("position.Y = %v, want 0", p.Y)
	}
}

func TestStepRejectsBadDT(t *testing.T) {
	w := NewChipmunkWorld(common.Vec2{})
	b := dynamicBox(w, 0, 0, nil)
	b.SetVelocity(common.Vec2{X: 10})

	w.Step(0, 8, 3)
	w.Step(-1, 8, 3)

	if p := b.Position(); p.X != 0 {
		t.Fatalf("body moved on a non-positive step, x = %v", p.X)
	}
}

func TestGravityScaleZeroDisablesGravity(t *testing.T) {
	w := NewChipmunkWorld(common.Vec2{Y: 100})
	falling := dynamicBox(w, 0, 0, nil)
	floating := dynamicBox(w, 1000, 0, nil)
	floating.SetGravityScale(0)

	w.Step(testDT, 8, 3)

	if v := falling.Velocity(); v.Y <= 0 {
		t.Fatalf("unscaled body did not fall, velocity.Y = %v", v.Y)
	}
	if v := floating.Velocity(); v.Y != 0 {
		t.Fatalf("zero-scale body fell, velocity.Y = %v", v.Y)
	}
}

func TestGravityScaleUpdatesInPlace(t *testing.T) {
	w := NewChipmunkWorld(common.Vec2{Y: 100})
	b := dynamicBox(w, 0, 0, nil)
	b.SetGravityScale(0)
	w.Step(testDT, 8, 3)
	if v := b.Velocity(); v.Y != 0 {
		t.Fatalf("velocity.Y = %v with scale 0, want 0", v.Y)
	}

	b.SetGravityScale(2)
	w.Step(testDT, 8, 3)
	want := 2 * 100 * testDT
	if v := b.Velocity(); math.Abs(v.Y-want) > 1e-6 {
		t.Fatalf("velocity.Y = %v with scale 2, want %v", v.Y, want)
	}
}

func TestContactReportedOnce(t *testing.T) {
	w := NewChipmunkWorld(common.Vec2{})
	contacts := 0
	w.OnContact(func(a, b any, c Contact) { contacts++ })

	dynamicBox(w, 0, 0, "a")
	dynamicBox(w, 10, 0, "b")

	for i := 0; i < 5; i++ {
		w.Step(testDT, 8, 3)
	}

	if contacts != 1 {
		t.Fatalf("contacts = %d for one persistent overlap, want 1", contacts)
	}
}

func TestContactCarriesOwners(t *testing.T) {
	w := NewChipmunkWorld(common.Vec2{})
	var gotA, gotB any
	w.OnContact(func(a, b any, c Contact) { gotA, gotB = a, b })

	dynamicBox(w, 0, 0, "left")
	dynamicBox(w, 10, 0, "right")
	w.Step(testDT, 8, 3)

	owners := map[any]bool{gotA: true, gotB: true}
	if !owners["left"] || !owners["right"] {
		t.Fatalf("contact owners = (%v, %v), want left and right", gotA, gotB)
	}
}

func TestContactFilterSuppressesCollision(t *testing.T) {
	w := NewChipmunkWorld(common.Vec2{})
	contacts := 0
	w.OnContact(func(a, b any, c Contact) { contacts++ })
	w.SetContactFilter(func(a, b any, c Contact) bool { return false })

	dynamicBox(w, 0, 0, nil)
	dynamicBox(w, 10, 0, nil)

	for i := 0; i < 5; i++ {
		w.Step(testDT, 8, 3)
	}

	if contacts != 0 {
		t.Fatalf("filtered contact was still reported %d times", contacts)
	}
}

func TestPassThroughGroupSuppressesCollision(t *testing.T) {
	w := NewChipmunkWorld(common.Vec2{})
	contacts := 0
	w.OnContact(func(a, b any, c Contact) { contacts++ })

	a := dynamicBox(w, 0, 0, nil)
	b := dynamicBox(w, 10, 0, nil)
	a.SetPassThroughGroup(7)
	b.SetPassThroughGroup(7)

	for i := 0; i < 5; i++ {
		w.Step(testDT, 8, 3)
	}

	if contacts != 0 {
		t.Fatalf("same-group bodies collided, contacts = %d", contacts)
	}
}

func TestCollisionsDisabledSuppressesCollision(t *testing.T) {
	w := NewChipmunkWorld(common.Vec2{})
	contacts := 0
	w.OnContact(func(a, b any, c Contact) { contacts++ })

	a := dynamicBox(w, 0, 0, nil)
	dynamicBox(w, 10, 0, nil)
	a.SetCollisionsEnabled(false)

	w.Step(testDT, 8, 3)
	if contacts != 0 {
		t.Fatalf("disabled body collided")
	}
	if a.CollisionsEnabled() {
		t.Fatalf("CollisionsEnabled = true after disable")
	}

	a.SetCollisionsEnabled(true)
	w.Step(testDT, 8, 3)
	if contacts == 0 {
		t.Fatalf("re-enabled body never collided")
	}
}

func TestRemoveBodyStopsContacts(t *testing.T) {
	w := NewChipmunkWorld(common.Vec2{})
	contacts := 0
	w.OnContact(func(a, b any, c Contact) { contacts++ })

	a := dynamicBox(w, 0, 0, nil)
	dynamicBox(w, 10, 0, nil)

	w.RemoveBody(a)
	for i := 0; i < 5; i++ {
		w.Step(testDT, 8, 3)
	}

	if contacts != 0 {
		t.Fatalf("removed body still produced %d contacts", contacts)
	}
}

func TestSensorFlagRoundTrip(t *testing.T) {
	w := NewChipmunkWorld(common.Vec2{})
	b := w.AddBody(BodyDef{
		Type:   Static,
		Shape:  ShapeBox,
		Width:  32,
		Height: 32,
		Sensor: true,
	}, nil)

	if !b.FirstShapeIsSensor() {
		t.Fatalf("sensor def lost")
	}
	b.SetSensor(false)
	if b.FirstShapeIsSensor() {
		t.Fatalf("sensor not cleared")
	}
}

func TestSetTypeStaticToDynamic(t *testing.T) {
	w := NewChipmunkWorld(common.Vec2{})
	b := w.AddBody(BodyDef{
		Type:   Static,
		Shape:  ShapeBox,
		Width:  32,
		Height: 32,
	}, nil)

	b.SetType(Dynamic)
	if b.Type() != Dynamic {
		t.Fatalf("type = %v after switch, want Dynamic", b.Type())
	}

	b.SetVelocity(common.Vec2{X: 45})
	w.Step(testDT, 8, 3)
	if p := b.Position(); p.X == 0 {
		t.Fatalf("converted body did not move")
	}
}

func TestCircleRadiusDefaultsToHalfMaxExtent(t *testing.T) {
	cases := []struct {
		name string
		def  BodyDef
		want float64
	}{
		{"explicit radius", BodyDef{Shape: ShapeCircle, Radius: 7, Width: 100, Height: 100}, 7},
		{"from width", BodyDef{Shape: ShapeCircle, Width: 20, Height: 10}, 10},
		{"from height", BodyDef{Shape: ShapeCircle, Width: 10, Height: 24}, 12},
	}
	for _, c := range cases {
		if got := circleRadius(c.def); got != c.want {
			t.Errorf("%s: radius = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestOwnerRoundTrip(t *testing.T) {
	w := NewChipmunkWorld(common.Vec2{})
	owner := &struct{ name string }{name: "crate"}
	b := dynamicBox(w, 0, 0, owner)
	if b.Owner() != owner {
		t.Fatalf("owner not preserved")
	}
}
