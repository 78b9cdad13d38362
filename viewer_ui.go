package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// ViewerUI is the control panel on the right edge of the viewer: a pause
// toggle, one button per sequence and the copy action.
type ViewerUI struct {
	*ebitenui.UI

	pause *widget.Button
	title *widget.Text
}

// NewViewerUI builds the panel from colored nine-slices and the built-in
// basic font so no theme assets are needed.
func NewViewerUI(g *Game) *ViewerUI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	stretch := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})
	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(stretch),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	ui := &ViewerUI{}
	ui.title = widget.NewText(
		widget.TextOpts.Text(g.prefab, &face, white),
		widget.TextOpts.WidgetOpts(stretch),
	)
	ui.pause = button("Pause", g.togglePause)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(160, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(ui.title)
	panel.AddChild(ui.pause)
	for _, name := range g.sequenceNames() {
		panel.AddChild(button(name, func() { g.play(name) }))
	}
	panel.AddChild(button("Copy frame", g.copyFrame))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	ui.UI = &ebitenui.UI{Container: root}
	return ui
}

// SetPaused relabels the pause toggle.
func (u *ViewerUI) SetPaused(paused bool) {
	if u == nil || u.pause == nil {
		return
	}
	label := "Pause"
	if paused {
		label = "Resume"
	}
	u.pause.Text().Label = label
}
