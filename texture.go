package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"

	"github.com/fogleman/gg"
)

// -- textures

const texSize = 64

// TextureProvider resolves wall and sprite textures for the software
// renderer. Implementations must return texSize x texSize images.
type TextureProvider interface {
	Wall(t Tile) *image.RGBA
	SpriteTex(kind ObjectKind) *image.RGBA
	FallbackColor(t Tile) color.RGBA
}

func wallBaseColor(t Tile) color.RGBA {
	switch t {
	case TileWallRed:
		return color.RGBA{150, 60, 50, 255}
	case TileWallBlue:
		return color.RGBA{60, 80, 150, 255}
	case TileWallGreen:
		return color.RGBA{70, 130, 70, 255}
	case TileExitDoor:
		return color.RGBA{40, 40, 55, 255}
	}
	// the backrooms yellow
	return color.RGBA{190, 175, 110, 255}
}

// TextureManager loads wall and sprite art from assets/textures when a PNG
// exists there and otherwise generates a stand-in procedurally, so a missing
// asset degrades to a drawn texture instead of an error.
type TextureManager struct {
	walls   map[Tile]*image.RGBA
	sprites map[ObjectKind]*image.RGBA
}

func NewTextureManager(assetDir string) *TextureManager {
	m := &TextureManager{
		walls:   make(map[Tile]*image.RGBA),
		sprites: make(map[ObjectKind]*image.RGBA),
	}

	wallNames := map[Tile]string{
		TileWallYellow: "wall_yellow",
		TileWallRed:    "wall_red",
		TileWallBlue:   "wall_blue",
		TileWallGreen:  "wall_green",
		TileExitDoor:   "exit_door",
	}
	for tile, name := range wallNames {
		if img := loadPNG(assetDir, name); img != nil {
			m.walls[tile] = img
			continue
		}
		if tile == TileExitDoor {
			m.walls[tile] = genExitDoor()
		} else {
			m.walls[tile] = genWall(wallBaseColor(tile))
		}
	}

	spriteNames := map[ObjectKind]string{
		ObjectKey:        "key",
		ObjectCheckpoint: "checkpoint",
		ObjectPortal:     "portal",
		ObjectExtraLife:  "heart",
		ObjectTrap:       "spikes",
	}
	for kind, name := range spriteNames {
		if img := loadPNG(assetDir, name); img != nil {
			m.sprites[kind] = img
			continue
		}
		m.sprites[kind] = genSprite(kind)
	}

	return m
}

func (m *TextureManager) Wall(t Tile) *image.RGBA            { return m.walls[t] }
func (m *TextureManager) SpriteTex(k ObjectKind) *image.RGBA { return m.sprites[k] }

func (m *TextureManager) FallbackColor(t Tile) color.RGBA { return wallBaseColor(t) }

func loadPNG(dir, name string) *image.RGBA {
	if dir == "" {
		return nil
	}
	path := fmt.Sprintf("%s/%s.png", dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("texture %s: %v, using generated art", path, err)
		}
		return nil
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("texture %s: %v, using generated art", path, err)
		return nil
	}
	rgba := image.NewRGBA(image.Rect(0, 0, texSize, texSize))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

func toRGBA(dc *gg.Context) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, texSize, texSize))
	draw.Draw(rgba, rgba.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return rgba
}

// genWall draws a wallpaper panel: base color, darker panel seams, a faint
// horizontal stain band.
func genWall(base color.RGBA) *image.RGBA {
	dc := gg.NewContext(texSize, texSize)
	dc.SetRGBA255(int(base.R), int(base.G), int(base.B), 255)
	dc.Clear()

	seam := func(c color.RGBA, f float64) (int, int, int) {
		return int(float64(c.R) * f), int(float64(c.G) * f), int(float64(c.B) * f)
	}

	r, g, b := seam(base, 0.72)
	dc.SetRGB255(r, g, b)
	dc.SetLineWidth(2)
	for _, x := range []float64{0, texSize / 2, texSize - 1} {
		dc.DrawLine(x, 0, x, texSize)
		dc.Stroke()
	}
	dc.DrawLine(0, texSize-2, texSize, texSize-2)
	dc.Stroke()

	r, g, b = seam(base, 0.88)
	dc.SetRGB255(r, g, b)
	dc.DrawRectangle(0, texSize*0.55, texSize, texSize*0.12)
	dc.Fill()

	return toRGBA(dc)
}

func genExitDoor() *image.RGBA {
	dc := gg.NewContext(texSize, texSize)
	dc.SetRGB255(40, 40, 55)
	dc.Clear()

	dc.SetRGB255(20, 20, 30)
	dc.SetLineWidth(3)
	dc.DrawRectangle(6, 4, texSize-12, texSize-8)
	dc.Stroke()

	// glowing seam down the middle
	dc.SetRGB255(120, 220, 160)
	dc.SetLineWidth(2)
	dc.DrawLine(texSize/2, 6, texSize/2, texSize-6)
	dc.Stroke()

	dc.SetRGB255(120, 220, 160)
	dc.DrawCircle(texSize/2, texSize/2, 5)
	dc.Fill()

	return toRGBA(dc)
}

// genSprite draws the billboard art for an object kind on a transparent
// background.
func genSprite(kind ObjectKind) *image.RGBA {
	dc := gg.NewContext(texSize, texSize)
	c := texSize / 2.0

	switch kind {
	case ObjectKey:
		dc.SetRGB255(235, 200, 60)
		dc.SetLineWidth(5)
		dc.DrawCircle(c, c-10, 9)
		dc.Stroke()
		dc.DrawLine(c, c-1, c, c+18)
		dc.Stroke()
		dc.DrawLine(c, c+12, c+7, c+12)
		dc.Stroke()
		dc.DrawLine(c, c+18, c+7, c+18)
		dc.Stroke()

	case ObjectCheckpoint:
		dc.SetRGB255(80, 160, 240)
		dc.MoveTo(c, c-20)
		dc.LineTo(c+16, c)
		dc.LineTo(c, c+20)
		dc.LineTo(c-16, c)
		dc.ClosePath()
		dc.Fill()
		dc.SetRGB255(220, 240, 255)
		dc.DrawCircle(c, c, 5)
		dc.Fill()

	case ObjectPortal:
		for i, r := range []float64{24, 17, 10} {
			shade := 120 + i*50
			dc.SetRGBA255(90, shade, 200, 230)
			dc.SetLineWidth(4)
			dc.DrawCircle(c, c, r)
			dc.Stroke()
		}
		dc.SetRGBA255(230, 240, 255, 255)
		dc.DrawCircle(c, c, 4)
		dc.Fill()

	case ObjectExtraLife:
		dc.SetRGB255(230, 60, 80)
		dc.DrawCircle(c-7, c-6, 9)
		dc.Fill()
		dc.DrawCircle(c+7, c-6, 9)
		dc.Fill()
		dc.MoveTo(c-15, c-2)
		dc.LineTo(c+15, c-2)
		dc.LineTo(c, c+18)
		dc.ClosePath()
		dc.Fill()

	case ObjectTrap:
		dc.SetRGB255(150, 150, 160)
		for i := 0; i < 4; i++ {
			x := 8 + float64(i)*14
			dc.MoveTo(x, texSize-8)
			dc.LineTo(x+12, texSize-8)
			dc.LineTo(x+6, texSize-34)
			dc.ClosePath()
			dc.Fill()
		}
	}

	return toRGBA(dc)
}

// texelAt samples a texture at normalized coordinates, clamped to the edge.
func texelAt(img *image.RGBA, u, v float64) color.RGBA {
	x := clampInt(int(u*texSize), 0, texSize-1)
	y := clampInt(int(v*texSize), 0, texSize-1)
	return img.RGBAAt(x, y)
}
