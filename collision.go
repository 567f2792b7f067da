package main

import "math"

// -- collision

const (
	// collisionRadius is the half-width of the player's square footprint
	// in tile units.
	collisionRadius = 0.2

	// maxMovePerStep caps a single frame's displacement so a long stall
	// (window drag, debugger pause) cannot tunnel the player through a wall.
	maxMovePerStep = 0.5
)

// canOccupy reports whether a square footprint of the given radius centered
// at (x, y) overlaps no blocking tile. Touching a tile boundary exactly does
// not count as overlap, so a position flush against a wall is valid.
func canOccupy(grid *Grid, x, y, radius float64) bool {
	minX := int(math.Floor(x - radius))
	maxX := int(math.Ceil(x+radius)) - 1
	minY := int(math.Floor(y - radius))
	maxY := int(math.Ceil(y+radius)) - 1
	for ty := minY; ty <= maxY; ty++ {
		for tx := minX; tx <= maxX; tx++ {
			if !grid.At(tx, ty).Walkable() {
				return false
			}
		}
	}
	return true
}

// resolveMove advances pos by delta against the grid with per-axis sliding:
// each axis is applied independently, and a blocked axis clamps flush to the
// obstructing tile face instead of stopping short. The returned position is
// always one canOccupy accepts.
func resolveMove(grid *Grid, pos, delta Vec2, radius float64) Vec2 {
	if d := delta.Len(); d > maxMovePerStep {
		delta = delta.Scale(maxMovePerStep / d)
	}

	out := pos

	if delta.X != 0 {
		nx := out.X + delta.X
		if canOccupy(grid, nx, out.Y, radius) {
			out.X = nx
		} else {
			if delta.X > 0 {
				nx = math.Floor(nx+radius) - radius
			} else {
				nx = math.Floor(nx-radius) + 1 + radius
			}
			if canOccupy(grid, nx, out.Y, radius) {
				out.X = nx
			}
		}
	}

	if delta.Y != 0 {
		ny := out.Y + delta.Y
		if canOccupy(grid, out.X, ny, radius) {
			out.Y = ny
		} else {
			if delta.Y > 0 {
				ny = math.Floor(ny+radius) - radius
			} else {
				ny = math.Floor(ny-radius) + 1 + radius
			}
			if canOccupy(grid, out.X, ny, radius) {
				out.Y = ny
			}
		}
	}

	return out
}
