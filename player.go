package main

import "math"

// -- player

const (
	playerMoveSpeed   = 3.0 // tiles per second
	playerStrafeSpeed = 2.5
	playerRotateSpeed = 2.6 // radians per second
	sprintModifier    = 1.6

	trapKnockback = 0.35 // tiles pushed away from a triggered trap

	stepInterval       = 0.45 // seconds between footstep cues
	sprintStepInterval = 0.3
)

// Player is the first-person avatar: a point with a square collision
// footprint and a heading.
type Player struct {
	Pos   Vec2
	Angle float64

	moving    bool
	stepTimer float64
}

func NewPlayer(pos Vec2, angle float64) *Player {
	return &Player{Pos: pos, Angle: normalizeAngle(angle)}
}

// Update applies one frame of input against the grid and reports whether a
// footstep cue fires this frame. Movement resolves through the sliding
// collision pass, so walking into a wall at an angle glides along it.
func (p *Player) Update(in InputState, grid *Grid, sensitivity, dt float64) (stepped bool) {
	turn := 0.0
	if in.TurnLeft {
		turn -= playerRotateSpeed * dt
	}
	if in.TurnRight {
		turn += playerRotateSpeed * dt
	}
	turn += in.MouseDX * sensitivity
	if turn != 0 {
		p.Angle = normalizeAngle(p.Angle + turn)
	}

	speed := playerMoveSpeed
	strafe := playerStrafeSpeed
	interval := stepInterval
	if in.Sprint {
		speed *= sprintModifier
		strafe *= sprintModifier
		interval = sprintStepInterval
	}

	dir := Vec2{X: math.Cos(p.Angle), Y: math.Sin(p.Angle)}
	right := Vec2{X: -dir.Y, Y: dir.X}

	var delta Vec2
	if in.Forward {
		delta = delta.Add(dir.Scale(speed * dt))
	}
	if in.Backward {
		delta = delta.Sub(dir.Scale(speed * dt))
	}
	if in.StrafeLeft {
		delta = delta.Sub(right.Scale(strafe * dt))
	}
	if in.StrafeRight {
		delta = delta.Add(right.Scale(strafe * dt))
	}

	if delta.X == 0 && delta.Y == 0 {
		p.moving = false
		p.stepTimer = 0
		return false
	}

	next := resolveMove(grid, p.Pos, delta, collisionRadius)
	moved := next.DistTo(p.Pos) > 1e-9
	p.Pos = next

	if !moved {
		p.moving = false
		p.stepTimer = 0
		return false
	}
	if !p.moving {
		// first frame of motion steps immediately
		p.moving = true
		p.stepTimer = 0
		return true
	}
	p.stepTimer += dt
	if p.stepTimer >= interval {
		p.stepTimer -= interval
		return true
	}
	return false
}

// Knockback shoves the player away from a trap, sliding along walls so the
// push can never leave the walkable area.
func (p *Player) Knockback(from Vec2, grid *Grid) {
	away := p.Pos.Sub(from)
	if away.Len() < 1e-9 {
		away = Vec2{X: 1, Y: 0}
	}
	away = away.Scale(trapKnockback / away.Len())
	p.Pos = resolveMove(grid, p.Pos, away, collisionRadius)
}
