package main

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// -- game

// dt is the fixed simulation step. Ebiten ticks at 60 TPS, so every Update
// advances the world by exactly this much.
const dt = 1.0 / 60.0

type Game struct {
	cfg    *Config
	levels []*Level

	mode       GameMode
	levelIndex int

	session  *Session
	player   *Player
	camera   *Camera
	renderer *Renderer
	minimap  *Minimap

	tex     *TextureManager
	hud     *HUD
	menu    *Menu
	notices NotificationQueue
	audio   CueSink
	input   *KeyboardInput

	scene            *ebiten.Image
	renderW, renderH int
	fov              float64
}

func NewGame(cfg *Config) (*Game, error) {
	levels, err := LoadLevels()
	if err != nil {
		return nil, fmt.Errorf("loading levels: %w", err)
	}

	hud, err := NewHUD()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		levels:  levels,
		mode:    ModeWelcome,
		tex:     NewTextureManager(cfg.AssetDir),
		hud:     hud,
		input:   NewKeyboardInput(cfg.CaptureMouse),
		fov:     radians(cfg.FOVDegrees),
		renderW: int(float64(cfg.ScreenWidth) * cfg.RenderScale),
		renderH: int(float64(cfg.ScreenHeight) * cfg.RenderScale),
	}
	g.renderer = NewRenderer(g.renderW, g.renderH, g.tex)
	g.scene = ebiten.NewImage(g.renderW, g.renderH)

	if cfg.AudioEnabled {
		g.audio = NewBeepSink(cfg.Volume)
	} else {
		g.audio = &NopSink{}
	}
	g.audio.SetAmbient(AmbientMenu)

	g.menu = NewMenu(hud.Face(), levels, func(index int) {
		if err := g.startSession(index, cfg.LivesStart); err != nil {
			log.Printf("starting level %d: %v", index+1, err)
			return
		}
		g.setMode(ModePlaying)
	})

	ebiten.SetWindowTitle("Backrooms")
	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetFullscreen(cfg.Fullscreen)
	ebiten.SetVsyncEnabled(cfg.Vsync)

	return g, nil
}

// setMode switches the game mode and keeps the ambient layer in step:
// the menu hums its own drone, gameplay a lower one, the end screens none.
func (g *Game) setMode(m GameMode) {
	if g.mode == m {
		return
	}
	g.mode = m
	g.audio.SetAmbient(ambientFor(m))
}

func ambientFor(m GameMode) AmbientTier {
	switch m {
	case ModeWelcome:
		return AmbientMenu
	case ModePlaying:
		return AmbientGameplay
	}
	return AmbientNone
}

// startSession begins an attempt at the given level, keeping the supplied
// lives so clears carry lives forward and restarts can reset them.
func (g *Game) startSession(index, lives int) error {
	if index < 0 || index >= len(g.levels) {
		return fmt.Errorf("no level %d", index+1)
	}
	session, err := NewSession(g.levels[index], lives, g.cfg.LivesCap)
	if err != nil {
		return err
	}
	g.levelIndex = index
	g.session = session
	g.player = NewPlayer(session.Level.PlayerStart, session.Level.PlayerStartAngle)
	g.camera = NewCamera(g.player.Pos, g.player.Angle, g.fov)
	g.minimap = NewMinimap(&session.Level.Grid)
	g.notices = NotificationQueue{}
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.ScreenWidth, g.cfg.ScreenHeight
}

func (g *Game) Update() error {
	switch g.mode {
	case ModeWelcome:
		g.input.ReleaseCursor()
		g.menu.Update()
	case ModePlaying:
		g.updatePlaying()
	case ModeLevelComplete:
		in := g.input.Poll()
		if in.Confirm {
			if err := g.startSession(g.levelIndex+1, g.session.Lives); err != nil {
				return err
			}
			g.setMode(ModePlaying)
		}
	case ModeGameOver:
		in := g.input.Poll()
		switch {
		case in.Restart:
			if err := g.startSession(g.levelIndex, g.cfg.LivesStart); err != nil {
				return err
			}
			g.setMode(ModePlaying)
		case in.Confirm:
			g.setMode(ModeWelcome)
		}
	case ModeVictory:
		in := g.input.Poll()
		if in.Confirm {
			g.setMode(ModeWelcome)
		}
	}
	return nil
}

func (g *Game) updatePlaying() {
	in := g.input.Poll()

	if in.Quit {
		os.Exit(0)
	}
	g.handleVolumeKeys(in)

	if in.Restart {
		// fresh grid and objects, lives carry over
		if err := g.startSession(g.levelIndex, g.session.Lives); err != nil {
			log.Printf("restarting level %d: %v", g.levelIndex+1, err)
		} else {
			g.notices.Push("Level restarted", NoticeInfo)
		}
		return
	}

	if g.player.Update(in, &g.session.Level.Grid, g.cfg.MouseSensitivity, dt) {
		g.audio.Play(CueStep)
	}

	for _, ev := range g.session.Step(g.player.Pos) {
		g.notices.PushEvent(ev)
		if cue, ok := cueFor(ev.Kind); ok {
			g.audio.Play(cue)
		}
		switch ev.Kind {
		case EventTrap:
			g.player.Knockback(ev.Pos, &g.session.Level.Grid)
		case EventLevelComplete:
			if g.levelIndex == len(g.levels)-1 {
				g.setMode(ModeVictory)
				g.audio.Play(CueVictory)
			} else {
				g.setMode(ModeLevelComplete)
			}
		case EventGameOver:
			g.setMode(ModeGameOver)
		}
	}

	g.camera.Pos = g.player.Pos
	g.camera.SetAngle(g.player.Angle, g.fov)

	g.session.Sprites.Advance(dt)
	g.notices.Advance(dt)
}

func (g *Game) handleVolumeKeys(in InputState) {
	switch {
	case in.VolumeUp:
		g.audio.SetVolume(g.audio.Volume() + 0.1)
		g.notices.Push(fmt.Sprintf("Volume %d%%", int(g.audio.Volume()*100)), NoticeInfo)
	case in.VolumeDown:
		g.audio.SetVolume(g.audio.Volume() - 0.1)
		g.notices.Push(fmt.Sprintf("Volume %d%%", int(g.audio.Volume()*100)), NoticeInfo)
	}
}

func cueFor(k EventKind) (Cue, bool) {
	switch k {
	case EventKeyPickup, EventAllKeys:
		return CueKey, true
	case EventCheckpoint:
		return CueCheckpoint, true
	case EventExtraLife:
		return CueExtraLife, true
	case EventTrap:
		return CueTrap, true
	case EventExitBlocked:
		return CueExitBlocked, true
	case EventExitUnlocked:
		return CueExitUnlocked, true
	case EventLevelComplete:
		return CueLevelComplete, true
	case EventGameOver:
		return CueGameOver, true
	}
	return 0, false
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.mode == ModeWelcome {
		g.menu.Draw(screen)
		return
	}

	g.renderer.Draw(&g.session.Level.Grid, g.camera, g.session.Sprites)
	g.scene.WritePixels(g.renderer.Frame().Pix)

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	if g.cfg.RenderScale != 1.0 {
		op.GeoM.Scale(1/g.cfg.RenderScale, 1/g.cfg.RenderScale)
	}
	screen.DrawImage(g.scene, op)

	switch g.mode {
	case ModePlaying:
		g.minimap.Draw(screen, g.player, g.session.Sprites.Active())
		g.hud.Draw(screen, g.snapshot(), g.notices.Visible())
	case ModeLevelComplete:
		g.dim(screen)
		g.hud.DrawBanner(screen, fmt.Sprintf("LEVEL %d CLEAR", g.levelIndex+1),
			"Press Enter for the next level", color.RGBA{120, 220, 160, 255})
	case ModeGameOver:
		g.dim(screen)
		g.hud.DrawBanner(screen, "GAME OVER",
			"R to retry this level, Enter for the menu", color.RGBA{230, 70, 70, 255})
	case ModeVictory:
		g.dim(screen)
		g.hud.DrawBanner(screen, "YOU ESCAPED",
			"Press Enter to return to the menu", color.RGBA{235, 220, 150, 255})
	}
}

func (g *Game) dim(screen *ebiten.Image) {
	overlay := ebiten.NewImage(screen.Bounds().Dx(), screen.Bounds().Dy())
	overlay.Fill(color.RGBA{0, 0, 0, 150})
	screen.DrawImage(overlay, nil)
}

// snapshot flattens the live session into the read-only struct the HUD
// draws from.
func (g *Game) snapshot() HUDSnapshot {
	s := g.session
	return HUDSnapshot{
		LevelIndex:          g.levelIndex + 1,
		LevelCount:          len(g.levels),
		Difficulty:          s.Level.Difficulty,
		Lives:               s.Lives,
		LivesCap:            s.LivesCap,
		Keys:                s.KeysCollected,
		KeysRequired:        s.Level.RequiredKeys,
		Checkpoints:         len(s.Visited),
		CheckpointsRequired: s.Level.RequiredCheckpoints,
		ExitUnlocked:        s.ExitUnlocked(),
		FPS:                 ebiten.ActualFPS(),
	}
}
