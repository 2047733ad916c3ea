package stage

import (
	"log"
	"sort"

	"github.com/milk9111/stage2d/common"
	"github.com/milk9111/stage2d/physics"
	"github.com/milk9111/stage2d/render"
)

// Fixed simulation step. The host drives one Step per tick at ~45 Hz; the
// physics advance never varies with host frame-rate jitter.
const (
	StepDT             = 1.0 / 45.0
	VelocityIterations = 8
	PositionIterations = 3
)

// TiltConfig controls how the host tilt vector moves registered actors.
type TiltConfig struct {
	// Multiplier scales the raw tilt vector.
	Multiplier float64
	// AsVelocity writes the scaled tilt as the actor velocity each tick;
	// otherwise it accumulates like a force.
	AsVelocity bool
}

// Facts are the running level tallies game code reads.
type Facts struct {
	Score            int
	GoodiesCollected int
	HeroesArrived    int
	EnemiesDefeated  int
}

type removal struct {
	actor *Actor
	quiet bool
}

// Scene owns the physics world, the layered actor list, the camera, the
// event queues, and the tilt set for one active level. Everything is driven
// by Step from a single goroutine.
type Scene struct {
	world  physics.World
	camera *render.Camera

	layers map[int][]*Actor
	zs     []int
	hud    []render.Node

	oneTime   []*FrameAction
	repeating []*FrameAction

	touchHandlers  []*TouchHandler
	toggleHandlers []*ToggleHandler

	tilt    []*Actor
	Tilt    TiltConfig
	tiltVec common.Vec2

	chaseCam *Actor

	pending []removal
	inStep  bool
	tick    int64

	Facts Facts

	// OnRemove, when set, runs for every non-silent removal so the host can
	// play removal feedback.
	OnRemove ActorFunc
}

// NewScene wires a scene to its physics world and camera. Contact dispatch
// and the pass-through/one-sided pre-filters are registered here.
func NewScene(world physics.World, camera *render.Camera) *Scene {
	s := &Scene{
		world:  world,
		camera: camera,
		layers: make(map[int][]*Actor),
		Tilt:   TiltConfig{Multiplier: 1, AsVelocity: true},
	}
	world.SetContactFilter(s.contactAllowed)
	world.OnContact(s.dispatchContact)
	return s
}

// World returns the physics world the scene owns.
func (s *Scene) World() physics.World { return s.world }

// Camera returns the scene camera.
func (s *Scene) Camera() *render.Camera { return s.camera }

// Tick returns the number of completed steps.
func (s *Scene) Tick() int64 { return s.tick }

func (s *Scene) addActor(kind Kind, def physics.BodyDef, w, h float64, z int) *Actor {
	a := &Actor{
		Kind:    kind,
		Enabled: true,
		Width:   w,
		Height:  h,
		scene:   s,
	}
	node := render.NewSpriteNode(w, h)
	node.SetPosition(def.Pos.X, def.Pos.Y)
	a.Node = node
	a.Body = s.world.AddBody(def, a)
	s.addToLayer(a, z)
	return a
}

func (s *Scene) addToLayer(a *Actor, z int) {
	if _, ok := s.layers[z]; !ok {
		s.zs = append(s.zs, z)
		sort.Ints(s.zs)
	}
	s.layers[z] = append(s.layers[z], a)
}

// EachActor visits every placed actor in draw order.
func (s *Scene) EachActor(fn func(z int, a *Actor)) {
	if fn == nil {
		return
	}
	for _, z := range s.zs {
		for _, a := range s.layers[z] {
			if a != nil {
				fn(z, a)
			}
		}
	}
}

// AddHUD attaches a node rendered in screen space after all world layers.
func (s *Scene) AddHUD(n render.Node) {
	if n == nil {
		return
	}
	s.hud = append(s.hud, n)
}

// SetCameraChase makes the camera track the actor each tick, shifted by the
// actor's camera offset. Pass nil to stop following.
func (s *Scene) SetCameraChase(a *Actor) {
	s.chaseCam = a
}

// SetTiltVector stores the host-supplied tilt reading applied on the next
// Step.
func (s *Scene) SetTiltVector(x, y float64) {
	s.tiltVec = common.Vec2{X: x, Y: y}
}

// AddOneTime enqueues an action run exactly once. Actions enqueued while the
// queue is draining run on the next tick, never the current one.
func (s *Scene) AddOneTime(fa *FrameAction) {
	if fa == nil {
		return
	}
	s.oneTime = append(s.oneTime, fa)
}

// AddRepeating enqueues an action run every tick until deactivated.
func (s *Scene) AddRepeating(fa *FrameAction) {
	if fa == nil {
		return
	}
	s.repeating = append(s.repeating, fa)
}

// After runs fn once, ticks steps from now.
func (s *Scene) After(ticks int, fn func()) *FrameAction {
	remaining := ticks
	var fa *FrameAction
	fa = NewFrameAction(func() {
		remaining--
		if remaining <= 0 {
			fa.Active = false
			fn()
		}
	})
	s.AddRepeating(fa)
	return fa
}

// AddTouchHandler registers a touch handler checked by Touch.
func (s *Scene) AddTouchHandler(h *TouchHandler) {
	if h == nil {
		return
	}
	s.touchHandlers = append(s.touchHandlers, h)
}

// AddToggleHandler registers a press/release handler.
func (s *Scene) AddToggleHandler(h *ToggleHandler) {
	if h == nil {
		return
	}
	s.toggleHandlers = append(s.toggleHandlers, h)
}

// Touch offers a world-space touch to the active handlers; the first one to
// consume it wins.
func (s *Scene) Touch(x, y float64) bool {
	for _, h := range s.touchHandlers {
		if h == nil || !h.Active || h.Handle == nil {
			continue
		}
		if h.Handle(x, y) {
			return true
		}
	}
	return false
}

// TouchDown starts the active toggle handlers holding.
func (s *Scene) TouchDown(x, y float64) bool {
	consumed := false
	for _, h := range s.toggleHandlers {
		if h == nil || !h.Active || h.Holding {
			continue
		}
		if h.Press != nil && h.Press(x, y) {
			h.Holding = true
			consumed = true
		}
	}
	return consumed
}

// TouchUp releases any holding toggle handlers.
func (s *Scene) TouchUp(x, y float64) {
	for _, h := range s.toggleHandlers {
		if h == nil || !h.Holding {
			continue
		}
		h.Holding = false
		if h.Release != nil {
			h.Release(x, y)
		}
	}
}

// Remove takes an actor out of play. Quiet removals skip the OnRemove
// feedback hook. During a physics step the removal is deferred until the
// step completes; the world cannot be mutated mid-step.
func (s *Scene) Remove(a *Actor, quiet bool) {
	if a == nil || a.removed {
		return
	}
	a.removed = true
	if s.inStep {
		s.pending = append(s.pending, removal{actor: a, quiet: quiet})
		return
	}
	s.applyRemoval(removal{actor: a, quiet: quiet})
}

func (s *Scene) applyRemoval(r removal) {
	a := r.actor
	if !r.quiet && s.OnRemove != nil {
		s.OnRemove(a)
	}
	if a.Proj != nil && a.Proj.pool != nil {
		a.Proj.pool.recycle(a)
		return
	}
	a.Enabled = false
	if a.Node != nil {
		a.Node.SetVisible(false)
	}
	if a.Body != nil {
		s.world.RemoveBody(a.Body)
		a.Body = nil
	}
	s.removeFromLayers(a)
}

func (s *Scene) removeFromLayers(a *Actor) {
	for z, actors := range s.layers {
		for i, other := range actors {
			if other == a {
				s.layers[z] = append(actors[:i], actors[i+1:]...)
				return
			}
		}
	}
}

func (s *Scene) flushRemovals() {
	if len(s.pending) == 0 {
		return
	}
	pending := s.pending
	s.pending = nil
	for _, r := range pending {
		s.applyRemoval(r)
	}
}

// Step advances the scene one tick:
//
//  1. tilt is applied to registered actors, then the physics world advances
//     one fixed step (contact dispatch fires inside);
//  2. deferred removals flush;
//  3. the camera re-centers on its chase actor;
//  4. the render pass walks layers in ascending z, culling out-of-range
//     projectiles and syncing nodes to bodies;
//  5. the one-time queue drains (enqueues during the drain run next tick);
//  6. the repeating queue runs over a snapshot of its current length.
func (s *Scene) Step() {
	s.applyTilt()

	s.inStep = true
	s.world.Step(StepDT, VelocityIterations, PositionIterations)
	s.inStep = false
	s.flushRemovals()

	s.updateCamera()
	s.renderPass()

	pending := s.oneTime
	s.oneTime = nil
	for _, fa := range pending {
		if fa != nil && fa.Active && fa.Run != nil {
			fa.Run()
		}
	}

	n := len(s.repeating)
	for i := 0; i < n; i++ {
		fa := s.repeating[i]
		if fa != nil && fa.Active && fa.Run != nil {
			fa.Run()
		}
	}

	s.tick++
}

func (s *Scene) applyTilt() {
	// In velocity mode a zero reading still writes through, so releasing the
	// tilt stops the actor instead of coasting. Force mode adds nothing at
	// zero and can skip the walk.
	if s.tiltVec.X == 0 && s.tiltVec.Y == 0 && !s.Tilt.AsVelocity {
		return
	}
	scaled := s.tiltVec.Mult(s.Tilt.Multiplier)
	for _, a := range s.tilt {
		if a == nil || !a.Enabled || a.Body == nil {
			continue
		}
		if s.Tilt.AsVelocity {
			a.Body.SetVelocity(scaled)
			continue
		}
		a.Body.SetVelocity(a.Body.Velocity().Add(scaled.Mult(StepDT)))
	}
}

func (s *Scene) updateCamera() {
	if s.camera == nil || s.chaseCam == nil || !s.chaseCam.Enabled || s.chaseCam.Body == nil {
		return
	}
	p := s.chaseCam.Body.Position().Add(s.chaseCam.CameraOffset)
	s.camera.CenterOn(p.X, p.Y)
}

// renderPass runs per-actor frame hooks and syncs nodes. Disabled actors are
// skipped but keep their state.
func (s *Scene) renderPass() {
	for _, z := range s.zs {
		for _, a := range s.layers[z] {
			if a == nil || !a.Enabled {
				continue
			}
			if a.Proj != nil && cullOutOfRange(s, a) {
				continue
			}
			a.syncNode()
		}
	}
}

// Draw renders all layers in ascending z through the camera view, then the
// HUD nodes in screen space.
func (s *Scene) Draw(c render.Canvas) {
	if c == nil || s.camera == nil {
		return
	}
	view := s.camera.View()
	for _, z := range s.zs {
		for _, a := range s.layers[z] {
			if a == nil || !a.Enabled || a.Node == nil {
				continue
			}
			a.Node.Draw(c, view)
		}
	}
	screen := render.View{Zoom: 1}
	for _, n := range s.hud {
		n.Draw(c, screen)
	}
}

// Reset tears down per-level state while keeping the world and camera, for
// level restarts.
func (s *Scene) Reset() {
	for _, z := range s.zs {
		for _, a := range s.layers[z] {
			if a != nil && a.Body != nil {
				s.world.RemoveBody(a.Body)
			}
		}
	}
	log.Printf("stage: scene reset after %d ticks", s.tick)
	s.layers = make(map[int][]*Actor)
	s.zs = nil
	s.hud = nil
	s.oneTime = nil
	s.repeating = nil
	s.touchHandlers = nil
	s.toggleHandlers = nil
	s.tilt = nil
	s.pending = nil
	s.chaseCam = nil
	s.tick = 0
	s.Facts = Facts{}
}
