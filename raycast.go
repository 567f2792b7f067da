package main

import (
	"math"
	"sync"
)

// -- raycasting

// maxViewDist bounds the DDA walk. A ray that travels this far without
// touching an opaque tile is a void hit and draws nothing.
const maxViewDist = 64.0

// Camera holds the direction/plane vector pair that maps screen columns to
// rays. The plane is perpendicular to the direction and its length relative
// to the direction sets the field of view.
type Camera struct {
	Pos   Vec2
	Dir   Vec2
	Plane Vec2
}

// NewCamera builds a camera at pos looking along angle with the given
// horizontal field of view in radians.
func NewCamera(pos Vec2, angle, fov float64) *Camera {
	c := &Camera{Pos: pos}
	c.SetAngle(angle, fov)
	return c
}

// SetAngle points the camera along angle, rebuilding the plane for fov.
func (c *Camera) SetAngle(angle, fov float64) {
	c.Dir = Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
	planeLen := math.Tan(fov / 2)
	c.Plane = Vec2{X: -c.Dir.Y * planeLen, Y: c.Dir.X * planeLen}
}

// Angle returns the camera's current heading.
func (c *Camera) Angle() float64 {
	return math.Atan2(c.Dir.Y, c.Dir.X)
}

// RayHit is the result of casting one screen column into the grid.
type RayHit struct {
	Valid bool    // false for a void hit at max range
	Dist  float64 // perpendicular distance, fisheye-free
	Tile  Tile
	TileX int
	TileY int
	Side  int     // 0 hit a north/south face, 1 an east/west face
	TexU  float64 // horizontal texture coordinate in [0, 1)
}

// CastColumn walks the DDA for screen column x of w and returns the first
// opaque tile the ray touches. A zero ray component yields an infinite
// delta distance, so that axis simply never advances.
func (c *Camera) CastColumn(grid *Grid, x, w int) RayHit {
	cameraX := 2*float64(x)/float64(w) - 1
	rayDir := Vec2{
		X: c.Dir.X + c.Plane.X*cameraX,
		Y: c.Dir.Y + c.Plane.Y*cameraX,
	}
	return castRay(grid, c.Pos, rayDir)
}

func castRay(grid *Grid, pos, rayDir Vec2) RayHit {
	mapX := int(math.Floor(pos.X))
	mapY := int(math.Floor(pos.Y))

	deltaDistX := math.Abs(1 / rayDir.X)
	deltaDistY := math.Abs(1 / rayDir.Y)

	var stepX, stepY int
	var sideDistX, sideDistY float64
	if rayDir.X < 0 {
		stepX = -1
		sideDistX = (pos.X - float64(mapX)) * deltaDistX
	} else {
		stepX = 1
		sideDistX = (float64(mapX) + 1 - pos.X) * deltaDistX
	}
	if rayDir.Y < 0 {
		stepY = -1
		sideDistY = (pos.Y - float64(mapY)) * deltaDistY
	} else {
		stepY = 1
		sideDistY = (float64(mapY) + 1 - pos.Y) * deltaDistY
	}

	side := 0
	for {
		if sideDistX < sideDistY {
			if sideDistX > maxViewDist {
				return RayHit{Dist: maxViewDist}
			}
			sideDistX += deltaDistX
			mapX += stepX
			side = 0
		} else {
			if sideDistY > maxViewDist {
				return RayHit{Dist: maxViewDist}
			}
			sideDistY += deltaDistY
			mapY += stepY
			side = 1
		}
		if grid.At(mapX, mapY).Opaque() {
			break
		}
	}

	var perpDist float64
	if side == 0 {
		perpDist = sideDistX - deltaDistX
	} else {
		perpDist = sideDistY - deltaDistY
	}

	var wallX float64
	if side == 0 {
		wallX = pos.Y + perpDist*rayDir.Y
	} else {
		wallX = pos.X + perpDist*rayDir.X
	}
	wallX -= math.Floor(wallX)

	texU := wallX
	if (side == 0 && rayDir.X > 0) || (side == 1 && rayDir.Y < 0) {
		texU = 1 - wallX
		if texU >= 1 {
			texU = 0
		}
	}

	return RayHit{
		Valid: true,
		Dist:  perpDist,
		Tile:  grid.At(mapX, mapY),
		TileX: mapX,
		TileY: mapY,
		Side:  side,
		TexU:  texU,
	}
}

// CastAll fills hits with one ray per screen column, splitting the columns
// into contiguous bands cast concurrently. Each band writes a disjoint slice
// so no synchronization beyond the WaitGroup is needed.
func (c *Camera) CastAll(grid *Grid, hits []RayHit, workers int) {
	w := len(hits)
	if workers < 1 {
		workers = 1
	}
	band := (w + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < w; start += band {
		end := start + band
		if end > w {
			end = w
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for x := start; x < end; x++ {
				hits[x] = c.CastColumn(grid, x, w)
			}
		}(start, end)
	}
	wg.Wait()
}
