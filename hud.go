package main

import (
	"fmt"
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// -- HUD

// HUDSnapshot is the read-only session summary the overlay draws from. The
// simulation fills it; the HUD never touches live game state.
type HUDSnapshot struct {
	LevelIndex          int
	LevelCount          int
	Difficulty          string
	Lives               int
	LivesCap            int
	Keys                int
	KeysRequired        int
	Checkpoints         int
	CheckpointsRequired int
	ExitUnlocked        bool
	FPS                 float64
}

type HUD struct {
	face    font.Face
	bigFace font.Face
}

func NewHUD() (*HUD, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing HUD font: %w", err)
	}
	return &HUD{
		face:    truetype.NewFace(ttf, &truetype.Options{Size: 16}),
		bigFace: truetype.NewFace(ttf, &truetype.Options{Size: 36}),
	}, nil
}

// Face exposes the HUD font for menu widgets.
func (h *HUD) Face() font.Face { return h.face }

func livesColor(lives int) color.RGBA {
	switch {
	case lives >= 3:
		return color.RGBA{90, 220, 110, 255}
	case lives == 2:
		return color.RGBA{240, 200, 60, 255}
	default:
		return color.RGBA{230, 70, 70, 255}
	}
}

// Draw renders the play-mode overlay: session stats top-left, FPS top-right,
// notifications stacked under the stats.
func (h *HUD) Draw(screen *ebiten.Image, snap HUDSnapshot, notices []*Notice) {
	white := color.RGBA{230, 230, 230, 255}

	y := 24
	line := func(s string, c color.Color) {
		text.Draw(screen, s, h.face, 12, y, c)
		y += 20
	}

	line(fmt.Sprintf("Level %d/%d (%s)", snap.LevelIndex, snap.LevelCount, snap.Difficulty), white)
	line(fmt.Sprintf("Lives: %d/%d", snap.Lives, snap.LivesCap), livesColor(snap.Lives))
	line(fmt.Sprintf("Keys: %d/%d", snap.Keys, snap.KeysRequired), white)
	if snap.CheckpointsRequired > 0 {
		line(fmt.Sprintf("Checkpoints: %d/%d", snap.Checkpoints, snap.CheckpointsRequired), white)
	}
	if snap.ExitUnlocked {
		line("Exit: OPEN", color.RGBA{120, 220, 160, 255})
	} else {
		line("Exit: LOCKED", color.RGBA{200, 140, 80, 255})
	}

	fps := fmt.Sprintf("FPS %.0f", snap.FPS)
	w := screen.Bounds().Dx()
	text.Draw(screen, fps, h.face, w-80, 24, color.RGBA{160, 160, 160, 255})

	y += 8
	for _, n := range notices {
		c := n.Type.Color()
		c.A = uint8(255 * n.Alpha())
		// premultiply so faded text doesn't bloom
		c.R = uint8(float64(c.R) * n.Alpha())
		c.G = uint8(float64(c.G) * n.Alpha())
		c.B = uint8(float64(c.B) * n.Alpha())
		text.Draw(screen, n.Text, h.face, 12, y, c)
		y += 20
	}
}

// DrawBanner centers a title and subtitle for the mode screens (level
// complete, game over, victory).
func (h *HUD) DrawBanner(screen *ebiten.Image, title, subtitle string, c color.Color) {
	w := screen.Bounds().Dx()
	hgt := screen.Bounds().Dy()

	tb := text.BoundString(h.bigFace, title)
	text.Draw(screen, title, h.bigFace, (w-tb.Dx())/2, hgt/2-20, c)

	if subtitle != "" {
		sb := text.BoundString(h.face, subtitle)
		text.Draw(screen, subtitle, h.face, (w-sb.Dx())/2, hgt/2+20, color.RGBA{200, 200, 200, 255})
	}
}
