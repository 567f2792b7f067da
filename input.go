package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// -- input

// InputState is a pure-read snapshot of one frame's input. The simulation
// only ever sees this struct, never the ebiten key state directly.
type InputState struct {
	Forward     bool
	Backward    bool
	StrafeLeft  bool
	StrafeRight bool
	TurnLeft    bool
	TurnRight   bool
	Sprint      bool

	MouseDX float64

	Restart    bool // edge-triggered
	Confirm    bool // edge-triggered
	VolumeUp   bool // edge-triggered
	VolumeDown bool // edge-triggered
	Quit       bool
}

// InputSource produces one InputState per frame. The keyboard source is the
// real one; tests drive the simulation with scripted states instead.
type InputSource interface {
	Poll() InputState
}

// KeyboardInput samples ebiten's keyboard and mouse, tracking the cursor
// between frames to derive a look delta while the cursor is captured.
type KeyboardInput struct {
	mouseX, mouseY int
	capture        bool
}

func NewKeyboardInput(captureMouse bool) *KeyboardInput {
	return &KeyboardInput{
		mouseX:  math.MinInt32,
		mouseY:  math.MinInt32,
		capture: captureMouse,
	}
}

func (k *KeyboardInput) Poll() InputState {
	in := InputState{
		Forward:     ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		Backward:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		StrafeLeft:  ebiten.IsKeyPressed(ebiten.KeyA),
		StrafeRight: ebiten.IsKeyPressed(ebiten.KeyD),
		TurnLeft:    ebiten.IsKeyPressed(ebiten.KeyLeft),
		TurnRight:   ebiten.IsKeyPressed(ebiten.KeyRight),
		Sprint:      ebiten.IsKeyPressed(ebiten.KeyShift),
		Restart:     inpututil.IsKeyJustPressed(ebiten.KeyR),
		Confirm:     inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		VolumeUp:    inpututil.IsKeyJustPressed(ebiten.KeyEqual),
		VolumeDown:  inpututil.IsKeyJustPressed(ebiten.KeyMinus),
		Quit:        ebiten.IsKeyPressed(ebiten.KeyEscape),
	}

	if k.capture {
		if ebiten.CursorMode() != ebiten.CursorModeCaptured {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
			k.mouseX, k.mouseY = math.MinInt32, math.MinInt32
		}
		x, y := ebiten.CursorPosition()
		if k.mouseX == math.MinInt32 {
			// first captured frame, establish the delta origin
			if x != 0 || y != 0 {
				k.mouseX, k.mouseY = x, y
			}
		} else {
			in.MouseDX = float64(x - k.mouseX)
			k.mouseX, k.mouseY = x, y
		}
	}

	return in
}

// ReleaseCursor hands the cursor back to the desktop for menu screens.
func (k *KeyboardInput) ReleaseCursor() {
	if k.capture && ebiten.CursorMode() == ebiten.CursorModeCaptured {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		k.mouseX, k.mouseY = math.MinInt32, math.MinInt32
	}
}
