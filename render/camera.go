package render

// Camera is a pure viewport transform: an absolute position offset, a pivot
// the view centers on, and a zoom factor stored as its reciprocal on the
// owned node's scale.
type Camera struct {
	node   Node
	width  float64
	height float64
}

// NewCamera creates a camera for a logical screen size with zoom 1.
func NewCamera(width, height float64) *Camera {
	return &Camera{node: NewBaseNode(), width: width, height: height}
}

// SetPosition applies an absolute viewport translation in screen pixels.
func (c *Camera) SetPosition(x, y float64) {
	c.node.SetPosition(x, y)
}

// CenterOn sets the world coordinate mapped to the screen center.
func (c *Camera) CenterOn(x, y float64) {
	c.node.SetPivot(x, y)
}

// SetZoom replaces the zoom factor. Values <= 0 are ignored.
func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.node.SetScale(1/z, 1/z)
}

// Zoom returns the current zoom factor.
func (c *Camera) Zoom() float64 {
	sx, _ := c.node.Scale()
	if sx == 0 {
		return 1
	}
	return 1 / sx
}

// ZoomBy composes a zoom factor multiplicatively with the current one.
func (c *Camera) ZoomBy(z float64) {
	if z <= 0 {
		return
	}
	sx, sy := c.node.Scale()
	c.node.SetScale(sx*(1/z), sy*(1/z))
}

func (c *Camera) Width() float64  { return c.width }
func (c *Camera) Height() float64 { return c.height }

// Node exposes the owned viewport node.
func (c *Camera) Node() Node { return c.node }

// View resolves the camera transform: the pivot lands on the screen center,
// shifted by the position offset.
func (c *Camera) View() View {
	z := c.Zoom()
	px, py := c.node.Pivot()
	ox, oy := c.node.Position()
	return View{
		X:    px - (c.width/2+ox)/z,
		Y:    py - (c.height/2+oy)/z,
		Zoom: z,
	}
}
