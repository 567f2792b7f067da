// minimap.go
package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	minimapScale  = 4
	minimapMargin = 10
)

func minimapWallColor(t Tile) color.RGBA {
	switch t {
	case TileWallRed:
		return color.RGBA{140, 60, 55, 255}
	case TileWallBlue:
		return color.RGBA{60, 75, 140, 255}
	case TileWallGreen:
		return color.RGBA{65, 120, 65, 255}
	case TileExitDoor:
		return color.RGBA{120, 220, 160, 255}
	}
	return color.RGBA{60, 60, 50, 255}
}

func minimapObjectColor(k ObjectKind) color.RGBA {
	switch k {
	case ObjectKey:
		return color.RGBA{235, 200, 60, 255}
	case ObjectCheckpoint:
		return color.RGBA{80, 160, 240, 255}
	case ObjectPortal:
		return color.RGBA{160, 120, 255, 255}
	case ObjectExtraLife:
		return color.RGBA{230, 60, 80, 255}
	case ObjectTrap:
		return color.RGBA{170, 170, 180, 255}
	}
	return color.RGBA{255, 255, 255, 255}
}

// Minimap renders a corner map of the level. The wall layer is static per
// level, so it is baked into an image once and only the player marker and
// object dots redraw each frame.
type Minimap struct {
	static *ebiten.Image
	w, h   int
}

func NewMinimap(grid *Grid) *Minimap {
	m := &Minimap{
		w: grid.Width() * minimapScale,
		h: grid.Height() * minimapScale,
	}
	m.static = ebiten.NewImage(m.w, m.h)
	m.static.Fill(color.RGBA{25, 25, 20, 220})
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			t := grid.At(x, y)
			if !t.Opaque() {
				continue
			}
			vector.DrawFilledRect(m.static,
				float32(x*minimapScale), float32(y*minimapScale),
				minimapScale, minimapScale, minimapWallColor(t), false)
		}
	}
	return m
}

// Draw places the minimap in the top-right corner with player and objects.
func (m *Minimap) Draw(screen *ebiten.Image, player *Player, sprites []*Sprite) {
	ox := float64(screen.Bounds().Dx() - m.w - minimapMargin)
	oy := float64(minimapMargin)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(ox, oy)
	screen.DrawImage(m.static, op)

	for _, s := range sprites {
		vector.DrawFilledCircle(screen,
			float32(ox+s.Pos.X*minimapScale), float32(oy+s.Pos.Y*minimapScale),
			float32(minimapScale)/2, minimapObjectColor(s.Kind), false)
	}

	m.drawPlayer(screen, ox, oy, player)
}

func (m *Minimap) drawPlayer(screen *ebiten.Image, ox, oy float64, player *Player) {
	px := float32(ox + player.Pos.X*minimapScale)
	py := float32(oy + player.Pos.Y*minimapScale)
	size := float32(minimapScale) * 1.4

	x1 := px + size*float32(math.Cos(player.Angle))
	y1 := py + size*float32(math.Sin(player.Angle))
	x2 := px + size*float32(math.Cos(player.Angle+2.5))
	y2 := py + size*float32(math.Sin(player.Angle+2.5))
	x3 := px + size*float32(math.Cos(player.Angle-2.5))
	y3 := py + size*float32(math.Sin(player.Angle-2.5))

	vertices := []ebiten.Vertex{
		{DstX: x1, DstY: y1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: x2, DstY: y2, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: x3, DstY: y3, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}
	indices := []uint16{0, 1, 2}

	marker := ebiten.NewImage(1, 1)
	marker.Fill(color.RGBA{0, 255, 255, 255})
	screen.DrawTriangles(vertices, indices, marker, nil)
}
