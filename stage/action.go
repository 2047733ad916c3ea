package stage

// ActorFunc is an actor-event callback.
type ActorFunc func(a *Actor)

// FrameAction is a queued callback run by the scene tick. Clearing Active
// prevents future invocations; it never interrupts one in progress.
type FrameAction struct {
	Active bool
	Run    func()
}

func NewFrameAction(fn func()) *FrameAction {
	return &FrameAction{Active: true, Run: fn}
}

// TouchHandler reacts to a touch at a world coordinate. Handle returns true
// when the touch was consumed.
type TouchHandler struct {
	Active bool
	Source *Actor
	Handle func(x, y float64) bool
}

func NewTouchHandler(source *Actor, fn func(x, y float64) bool) *TouchHandler {
	return &TouchHandler{Active: true, Source: source, Handle: fn}
}

// ToggleHandler reacts to press/release pairs. Holding is maintained by the
// scene between the press and the matching release.
type ToggleHandler struct {
	Active  bool
	Holding bool
	Source  *Actor
	Press   func(x, y float64) bool
	Release func(x, y float64) bool
}

func NewToggleHandler(source *Actor, press, release func(x, y float64) bool) *ToggleHandler {
	return &ToggleHandler{Active: true, Source: source, Press: press, Release: release}
}
