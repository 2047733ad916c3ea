// Package render provides the minimal scene-graph the runtime draws through:
// a Node with position, pivot, scale, and children, a Canvas draw target, and
// a Camera that turns a node transform into a screen view.
package render

import "image/color"

// Canvas is the surface nodes draw onto.
type Canvas interface {
	DrawSprite(s *Sprite, x, y, w, h float64)
	FillRect(x, y, w, h float64, col color.Color)
}

// View maps world coordinates to screen coordinates. X and Y are the world
// point at the screen origin.
type View struct {
	X    float64
	Y    float64
	Zoom float64
}

// Apply transforms a world point to screen space.
func (v View) Apply(wx, wy float64) (float64, float64) {
	return (wx - v.X) * v.Zoom, (wy - v.Y) * v.Zoom
}

// Translated returns a view shifted so coordinates local to a node at
// (dx, dy) resolve correctly.
func (v View) Translated(dx, dy float64) View {
	v.X -= dx
	v.Y -= dy
	return v
}

// Node is one element of the draw hierarchy.
type Node interface {
	Position() (x, y float64)
	SetPosition(x, y float64)
	Pivot() (x, y float64)
	SetPivot(x, y float64)
	Scale() (sx, sy float64)
	SetScale(sx, sy float64)
	Visible() bool
	SetVisible(visible bool)
	Attach(child Node)
	Detach(child Node)
	Children() []Node
	Draw(c Canvas, v View)
}

// BaseNode is a plain transform node with children and no visual of its own.
type BaseNode struct {
	x, y     float64
	px, py   float64
	sx, sy   float64
	hidden   bool
	children []Node
}

func NewBaseNode() *BaseNode {
	return &BaseNode{sx: 1, sy: 1}
}

func (n *BaseNode) Position() (float64, float64) { return n.x, n.y }

func (n *BaseNode) SetPosition(x, y float64) {
	n.x = x
	n.y = y
}

func (n *BaseNode) Pivot() (float64, float64) { return n.px, n.py }

func (n *BaseNode) SetPivot(x, y float64) {
	n.px = x
	n.py = y
}

func (n *BaseNode) Scale() (float64, float64) { return n.sx, n.sy }

func (n *BaseNode) SetScale(sx, sy float64) {
	n.sx = sx
	n.sy = sy
}

func (n *BaseNode) Visible() bool { return !n.hidden }

func (n *BaseNode) SetVisible(visible bool) { n.hidden = !visible }

func (n *BaseNode) Attach(child Node) {
	if child == nil {
		return
	}
	n.children = append(n.children, child)
}

func (n *BaseNode) Detach(child Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *BaseNode) Children() []Node { return n.children }

func (n *BaseNode) Draw(c Canvas, v View) {
	if n.hidden {
		return
	}
	child := v.Translated(n.x, n.y)
	for _, ch := range n.children {
		ch.Draw(c, child)
	}
}

// SpriteNode draws a sprite (or a solid rectangle when no sprite is set)
// centered on its position.
type SpriteNode struct {
	BaseNode
	Sprite *Sprite
	Color  color.Color
	W, H   float64
}

func NewSpriteNode(w, h float64) *SpriteNode {
	n := &SpriteNode{W: w, H: h}
	n.sx, n.sy = 1, 1
	return n
}

func (n *SpriteNode) Draw(c Canvas, v View) {
	if n.hidden || c == nil {
		return
	}
	sx, sy := v.Apply(n.x-n.W/2, n.y-n.H/2)
	w := n.W * v.Zoom * n.sx
	h := n.H * v.Zoom * n.sy
	if n.Sprite != nil {
		c.DrawSprite(n.Sprite, sx, sy, w, h)
	} else if n.Color != nil {
		c.FillRect(sx, sy, w, h, n.Color)
	}
	child := v.Translated(n.x, n.y)
	for _, ch := range n.children {
		ch.Draw(c, child)
	}
}
