package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/stage2d/render"
)

// Input polls the keyboard as a stand-in accelerometer and maps the mouse to
// world coordinates.
type Input struct {
	// TiltX/TiltY emulate a device tilt reading in [-1, 1].
	TiltX float64
	TiltY float64

	MouseWorldX   float64
	MouseWorldY   float64
	ClickPressed  bool
	ClickReleased bool
	ClickHeld     bool
	ClickPrev     bool

	PauseToggled bool

	camera *render.Camera
}

func NewInput(camera *render.Camera) *Input {
	return &Input{camera: camera}
}

// Update polls input devices once per tick.
func (i *Input) Update() {
	i.TiltX = 0
	i.TiltY = 0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		i.TiltX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		i.TiltX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		i.TiltY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		i.TiltY += 1
	}

	mx, my := ebiten.CursorPosition()
	if i.camera != nil {
		v := i.camera.View()
		i.MouseWorldX = v.X + float64(mx)/v.Zoom
		i.MouseWorldY = v.Y + float64(my)/v.Zoom
	}

	held := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	i.ClickPressed = held && !i.ClickPrev
	i.ClickReleased = !held && i.ClickPrev
	i.ClickPrev = held
	i.ClickHeld = held

	i.PauseToggled = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
