package main

import (
	"math"
	"testing"
)

func TestMoveClampsFlushAgainstWall(t *testing.T) {
	grid := gridFrom(
		"###",
		"# #",
		"###",
	)
	pos := Vec2{X: 1.5, Y: 1.5}

	got := resolveMove(grid, pos, Vec2{X: 0.4, Y: 0}, 0.2)
	if got.X != 1.8 {
		t.Fatalf("pushed into east wall: x=%v, want exactly 1.8", got.X)
	}
	if got.Y != 1.5 {
		t.Fatalf("y drifted to %v", got.Y)
	}

	// exactly tangent is a valid position, and pushing further stays put
	again := resolveMove(grid, got, Vec2{X: 0.4, Y: 0}, 0.2)
	if again.X != 1.8 {
		t.Fatalf("tangent position moved to x=%v", again.X)
	}

	got = resolveMove(grid, pos, Vec2{X: -0.4, Y: 0}, 0.2)
	if got.X != 1.2 {
		t.Fatalf("pushed into west wall: x=%v, want exactly 1.2", got.X)
	}
	got = resolveMove(grid, pos, Vec2{X: 0, Y: 0.4}, 0.2)
	if got.Y != 1.8 {
		t.Fatalf("pushed into south wall: y=%v, want exactly 1.8", got.Y)
	}
}

func TestDiagonalMoveSlidesAlongWall(t *testing.T) {
	grid := gridFrom(
		"#####",
		"#   #",
		"#   #",
		"#####",
	)
	pos := Vec2{X: 2, Y: 1.5}

	// pushing up-right: y axis blocks, x axis keeps moving
	got := resolveMove(grid, pos, Vec2{X: 0.3, Y: -0.4}, 0.2)
	if got.X != 2.3 {
		t.Fatalf("slide lost x motion: x=%v, want 2.3", got.X)
	}
	if got.Y != 1.2 {
		t.Fatalf("y not clamped to wall face: y=%v, want 1.2", got.Y)
	}
}

func TestDisplacementCap(t *testing.T) {
	grid := gridFrom(
		"##########",
		"#        #",
		"##########",
	)
	pos := Vec2{X: 1.5, Y: 1.5}

	got := resolveMove(grid, pos, Vec2{X: 5, Y: 0}, 0.2)
	moved := got.DistTo(pos)
	if moved > maxMovePerStep+1e-9 {
		t.Fatalf("moved %v in one step, cap is %v", moved, maxMovePerStep)
	}
	if math.Abs(got.X-2.0) > 1e-9 {
		t.Fatalf("capped move landed at x=%v, want 2.0", got.X)
	}
}

func TestCanOccupyTangency(t *testing.T) {
	grid := gridFrom(
		"###",
		"# #",
		"###",
	)
	if !canOccupy(grid, 1.8, 1.5, 0.2) {
		t.Error("footprint touching a wall boundary must be valid")
	}
	if canOccupy(grid, 1.81, 1.5, 0.2) {
		t.Error("footprint overlapping a wall must be rejected")
	}
	if !canOccupy(grid, 1.5, 1.5, 0.2) {
		t.Error("room center must be valid")
	}
}

func TestKnockbackStaysWalkable(t *testing.T) {
	grid := gridFrom(
		"#####",
		"#   #",
		"#####",
	)
	p := NewPlayer(Vec2{X: 3.3, Y: 1.5}, 0)
	p.Knockback(Vec2{X: 2.5, Y: 1.5}, grid)

	if !canOccupy(grid, p.Pos.X, p.Pos.Y, collisionRadius) {
		t.Fatalf("knockback left the walkable area: %+v", p.Pos)
	}
	if p.Pos.X <= 3.3 {
		t.Fatalf("knockback did not push away from the trap: x=%v", p.Pos.X)
	}
}
