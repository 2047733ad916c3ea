package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Sprite wraps a drawable image.
type Sprite struct {
	Image *ebiten.Image
}

// ImageCanvas renders onto an Ebiten image with nearest-neighbor filtering.
type ImageCanvas struct {
	dst *ebiten.Image
}

func NewImageCanvas(dst *ebiten.Image) *ImageCanvas {
	return &ImageCanvas{dst: dst}
}

func (c *ImageCanvas) DrawSprite(s *Sprite, x, y, w, h float64) {
	if c == nil || c.dst == nil || s == nil || s.Image == nil {
		return
	}
	bounds := s.Image.Bounds()
	iw, ih := bounds.Dx(), bounds.Dy()
	if iw <= 0 || ih <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(iw), h/float64(ih))
	op.GeoM.Translate(math.Round(x), math.Round(y))
	op.Filter = ebiten.FilterNearest
	c.dst.DrawImage(s.Image, op)
}

func (c *ImageCanvas) FillRect(x, y, w, h float64, col color.Color) {
	if c == nil || c.dst == nil || w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), col, false)
}
