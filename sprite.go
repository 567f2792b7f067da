package main

import (
	"math"
	"sort"
)

// -- sprites

// Sprite is one world object rendered as a camera-facing billboard. Pickups
// deactivate when consumed; the portal never deactivates.
type Sprite struct {
	Kind   ObjectKind
	Pos    Vec2
	Active bool

	// phase drives the idle bob/pulse animation, advanced by dt so the
	// motion is deterministic for a given sequence of steps.
	phase float64
}

// BobOffset is the sprite's current vertical bob in screen-height fractions.
func (s *Sprite) BobOffset() float64 {
	switch s.Kind {
	case ObjectKey, ObjectExtraLife:
		return 0.06 * math.Sin(s.phase)
	case ObjectPortal:
		return 0.03 * math.Sin(s.phase*0.5)
	}
	return 0
}

// Pulse is a [0,1] animation value for glow effects.
func (s *Sprite) Pulse() float64 {
	return 0.5 + 0.5*math.Sin(s.phase)
}

// SpriteManager owns the live object list for the current level.
type SpriteManager struct {
	sprites []*Sprite
}

// NewSpriteManager instantiates sprites at the centers of their spawn tiles.
// Phases are staggered by spawn order so a row of pickups doesn't bob in
// lockstep.
func NewSpriteManager(spawns []ObjectSpawn) *SpriteManager {
	m := &SpriteManager{sprites: make([]*Sprite, 0, len(spawns))}
	for i, sp := range spawns {
		m.sprites = append(m.sprites, &Sprite{
			Kind:   sp.Kind,
			Pos:    tileCenter(sp.Tile),
			Active: true,
			phase:  float64(i) * 0.7,
		})
	}
	return m
}

// Advance steps every active sprite's animation by dt seconds.
func (m *SpriteManager) Advance(dt float64) {
	for _, s := range m.sprites {
		if !s.Active {
			continue
		}
		switch s.Kind {
		case ObjectPortal:
			s.phase += dt * 2.0
		default:
			s.phase += dt * 3.5
		}
	}
}

// pickupRadius is how close the player center must be to a sprite center to
// trigger a contact, in tile units.
const pickupRadius = 0.45

// QueryCollisions returns the active sprites within pickup range of pos.
// Portals are excluded: exit contact is a tile test, not a pickup. Sprites
// already consumed are inactive and can never be returned twice.
func (m *SpriteManager) QueryCollisions(pos Vec2) []*Sprite {
	var hits []*Sprite
	for _, s := range m.sprites {
		if !s.Active || s.Kind == ObjectPortal {
			continue
		}
		if s.Pos.DistTo(pos) <= pickupRadius {
			hits = append(hits, s)
		}
	}
	return hits
}

// Consume deactivates a sprite. Calling it again on the same sprite is a
// no-op; consumption is idempotent.
func (m *SpriteManager) Consume(s *Sprite) bool {
	if !s.Active {
		return false
	}
	s.Active = false
	return true
}

// Active returns the live sprites, portal included, for rendering and the
// minimap.
func (m *SpriteManager) Active() []*Sprite {
	var out []*Sprite
	for _, s := range m.sprites {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}

// SpriteProjection is a sprite transformed into camera space, ready for
// column-wise compositing against the wall z-buffer.
type SpriteProjection struct {
	Sprite *Sprite
	// Depth is the forward camera-space distance, comparable with wall
	// RayHit.Dist for per-column occlusion.
	Depth   float64
	ScreenX int
	Height  int
	Width   int
}

// Project transforms the active sprites into screen space and orders them
// far to near, so the renderer can composite back to front. Sprites behind
// the camera plane or beyond the view distance are dropped.
func (m *SpriteManager) Project(cam *Camera, screenW, screenH int) []SpriteProjection {
	invDet := 1.0 / (cam.Plane.X*cam.Dir.Y - cam.Dir.X*cam.Plane.Y)

	var out []SpriteProjection
	for _, s := range m.sprites {
		if !s.Active {
			continue
		}
		relX := s.Pos.X - cam.Pos.X
		relY := s.Pos.Y - cam.Pos.Y

		transformX := invDet * (cam.Dir.Y*relX - cam.Dir.X*relY)
		transformY := invDet * (-cam.Plane.Y*relX + cam.Plane.X*relY)
		if transformY <= 0.05 || transformY > maxViewDist {
			continue
		}

		screenX := int(float64(screenW) / 2 * (1 + transformX/transformY))
		height := int(math.Abs(float64(screenH) / transformY))
		if height <= 0 {
			continue
		}
		out = append(out, SpriteProjection{
			Sprite:  s,
			Depth:   transformY,
			ScreenX: screenX,
			Height:  height,
			Width:   height,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Depth > out[j].Depth
	})
	return out
}
