package main

import (
	"math"
	"testing"
)

func testSpawns() []ObjectSpawn {
	return []ObjectSpawn{
		{Kind: ObjectKey, Tile: TilePos{X: 2, Y: 1}},
		{Kind: ObjectTrap, Tile: TilePos{X: 4, Y: 1}},
		{Kind: ObjectPortal, Tile: TilePos{X: 6, Y: 1}},
	}
}

func TestQueryCollisionsExcludesPortalAndConsumed(t *testing.T) {
	m := NewSpriteManager(testSpawns())

	hits := m.QueryCollisions(Vec2{X: 6.5, Y: 1.5})
	if len(hits) != 0 {
		t.Fatalf("portal returned as a pickup: %d hits", len(hits))
	}

	hits = m.QueryCollisions(Vec2{X: 2.5, Y: 1.5})
	if len(hits) != 1 || hits[0].Kind != ObjectKey {
		t.Fatalf("expected the key, got %d hits", len(hits))
	}

	if !m.Consume(hits[0]) {
		t.Fatal("first consume returned false")
	}
	if m.Consume(hits[0]) {
		t.Fatal("second consume of the same sprite returned true")
	}
	if again := m.QueryCollisions(Vec2{X: 2.5, Y: 1.5}); len(again) != 0 {
		t.Fatalf("consumed sprite still collides: %d hits", len(again))
	}
}

func TestQueryCollisionsRadius(t *testing.T) {
	m := NewSpriteManager(testSpawns())

	if hits := m.QueryCollisions(Vec2{X: 2.5 + pickupRadius + 0.01, Y: 1.5}); len(hits) != 0 {
		t.Fatal("hit outside the pickup radius")
	}
	if hits := m.QueryCollisions(Vec2{X: 2.5 + pickupRadius - 0.01, Y: 1.5}); len(hits) != 1 {
		t.Fatal("no hit just inside the pickup radius")
	}
}

func TestAdvanceIsDeterministic(t *testing.T) {
	a := NewSpriteManager(testSpawns())
	b := NewSpriteManager(testSpawns())

	for i := 0; i < 120; i++ {
		a.Advance(1.0 / 60.0)
		b.Advance(1.0 / 60.0)
	}
	for i := range a.sprites {
		if a.sprites[i].phase != b.sprites[i].phase {
			t.Fatalf("sprite %d: phases diverged (%v vs %v)", i, a.sprites[i].phase, b.sprites[i].phase)
		}
	}
}

func TestProjectOrdersFarToNear(t *testing.T) {
	spawns := []ObjectSpawn{
		{Kind: ObjectKey, Tile: TilePos{X: 3, Y: 2}},
		{Kind: ObjectTrap, Tile: TilePos{X: 8, Y: 2}},
		{Kind: ObjectExtraLife, Tile: TilePos{X: 5, Y: 2}},
	}
	m := NewSpriteManager(spawns)
	cam := NewCamera(Vec2{X: 0.5, Y: 2.5}, 0, radians(66))

	projs := m.Project(cam, 320, 200)
	if len(projs) != 3 {
		t.Fatalf("projected %d sprites, want 3", len(projs))
	}
	for i := 1; i < len(projs); i++ {
		if projs[i].Depth > projs[i-1].Depth {
			t.Fatalf("projection %d nearer than %d but drawn later", i-1, i)
		}
	}

	// camera looks along +x, so all three sit near the screen center line
	for _, p := range projs {
		if p.ScreenX < 100 || p.ScreenX > 220 {
			t.Errorf("%v projected to column %d, want near center", p.Sprite.Kind, p.ScreenX)
		}
	}
}

func TestProjectDropsSpritesBehindCamera(t *testing.T) {
	m := NewSpriteManager([]ObjectSpawn{
		{Kind: ObjectKey, Tile: TilePos{X: 1, Y: 2}},
	})
	cam := NewCamera(Vec2{X: 5.5, Y: 2.5}, 0, radians(66))

	if projs := m.Project(cam, 320, 200); len(projs) != 0 {
		t.Fatalf("sprite behind the camera projected %d times", len(projs))
	}
}

func TestProjectionDepthMatchesDistanceAhead(t *testing.T) {
	m := NewSpriteManager([]ObjectSpawn{
		{Kind: ObjectKey, Tile: TilePos{X: 6, Y: 2}},
	})
	cam := NewCamera(Vec2{X: 1.5, Y: 2.5}, 0, radians(66))

	projs := m.Project(cam, 320, 200)
	if len(projs) != 1 {
		t.Fatalf("projected %d sprites, want 1", len(projs))
	}
	if math.Abs(projs[0].Depth-5.0) > 1e-9 {
		t.Fatalf("depth %v, want 5.0", projs[0].Depth)
	}
}
