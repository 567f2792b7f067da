package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	euiimage "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
)

// -- menu

// Menu is the welcome / level-select screen: a title and one button per
// level, built on ebitenui so mouse hover/click handling comes for free.
type Menu struct {
	ui *ebitenui.UI
}

func NewMenu(face font.Face, levels []*Level, onSelect func(index int)) *Menu {
	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(
			euiimage.NewNineSliceColor(color.NRGBA{18, 16, 10, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(14),
		)),
	)
	root.AddChild(panel)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("B A C K R O O M S", face, color.NRGBA{235, 220, 150, 255}),
	))
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Find the keys. Reach the exit. Mind the traps.", face,
			color.NRGBA{170, 165, 140, 255}),
	))

	idle := euiimage.NewNineSliceColor(color.NRGBA{60, 55, 35, 255})
	hover := euiimage.NewNineSliceColor(color.NRGBA{90, 82, 50, 255})
	pressed := euiimage.NewNineSliceColor(color.NRGBA{40, 36, 24, 255})

	for i, lvl := range levels {
		index := i
		label := fmt.Sprintf("Level %d  (%s)", lvl.Index, lvl.Difficulty)
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{
				Idle:    idle,
				Hover:   hover,
				Pressed: pressed,
			}),
			widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{
				Idle: color.NRGBA{230, 230, 230, 255},
			}),
			widget.ButtonOpts.TextPadding(widget.Insets{Top: 10, Bottom: 10, Left: 24, Right: 24}),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onSelect(index)
			}),
		))
	}

	return &Menu{ui: &ebitenui.UI{Container: root}}
}

func (m *Menu) Update() {
	m.ui.Update()
}

func (m *Menu) Draw(screen *ebiten.Image) {
	m.ui.Draw(screen)
}
