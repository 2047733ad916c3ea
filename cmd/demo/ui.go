package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/stage2d/stage"
)

// PauseMenu is the pause overlay: the level name, the running tallies, and
// resume/reload controls. The tallies refresh every frame while paused so a
// reload's effect is visible without unpausing.
type PauseMenu struct {
	ui    *ebitenui.UI
	tally *widget.Text
	facts func() stage.Facts
}

func NewPauseMenu(levelName string, facts func() stage.Facts, resume, reload func()) *PauseMenu {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	backdrop := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x14, B: 0x20, A: 0xe0})
	buttonBg := imageui.NewNineSliceColor(color.NRGBA{R: 0x2a, G: 0x3b, B: 0x55, A: 0xff})
	bright := color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	dim := color.NRGBA{R: 0x9a, G: 0xa4, B: 0xb8, A: 0xff}

	m := &PauseMenu{facts: facts}

	title := widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("paused — %s", levelName), &face, bright),
		widget.TextOpts.WidgetOpts(centeredRow()),
	)
	m.tally = widget.NewText(
		widget.TextOpts.Text(tallyLine(facts()), &face, bright),
		widget.TextOpts.WidgetOpts(centeredRow()),
	)
	hint := widget.NewText(
		widget.TextOpts.Text("esc resumes · saved specs and scripts reload live", &face, dim),
		widget.TextOpts.WidgetOpts(centeredRow()),
	)

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(18),
		)),
		widget.ContainerOpts.WidgetOpts(centeredRow()),
	)
	buttons.AddChild(menuButton("Resume", &face, buttonBg, bright, resume))
	buttons.AddChild(menuButton("Reload level", &face, buttonBg, bright, reload))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(backdrop),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(14),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 26, Bottom: 26, Left: 40, Right: 40}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(m.tally)
	panel.AddChild(hint)
	panel.AddChild(buttons)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	m.ui = &ebitenui.UI{Container: root}
	return m
}

func (m *PauseMenu) Update() {
	m.refreshTally()
	m.ui.Update()
}

func (m *PauseMenu) refreshTally() {
	m.tally.Label = tallyLine(m.facts())
}

func (m *PauseMenu) Draw(screen *ebiten.Image) {
	m.ui.Draw(screen)
}

func tallyLine(f stage.Facts) string {
	return fmt.Sprintf("score %d · goodies %d · arrived %d · defeated %d",
		f.Score, f.GoodiesCollected, f.HeroesArrived, f.EnemiesDefeated)
}

func centeredRow() widget.WidgetOpt {
	return widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})
}

func menuButton(label string, face *ebtext.Face, bg *imageui.NineSlice, col color.Color, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: bg, Pressed: bg}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: col}),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}
