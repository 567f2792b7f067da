package main

import "testing"

// blueDominant counts pixels that can only come from the checkpoint sprite:
// every wall, floor and ceiling color in the procedural set is red/yellow
// leaning, the checkpoint diamond is strongly blue.
func blueDominant(r *Renderer) int {
	n := 0
	img := r.Frame()
	for i := 0; i < len(img.Pix); i += 4 {
		if int(img.Pix[i+2]) > int(img.Pix[i])+50 {
			n++
		}
	}
	return n
}

func TestSpritesOccludedByWalls(t *testing.T) {
	grid := gridFrom(
		"#######",
		"#  #  #",
		"#######",
	)
	tex := NewTextureManager("")
	r := NewRenderer(160, 100, tex)
	cam := NewCamera(Vec2{X: 1.5, Y: 1.5}, 0, radians(66))

	hidden := NewSpriteManager([]ObjectSpawn{
		{Kind: ObjectCheckpoint, Tile: TilePos{X: 5, Y: 1}},
	})
	r.Draw(grid, cam, hidden)
	if n := blueDominant(r); n != 0 {
		t.Fatalf("sprite behind a wall leaked %d pixels", n)
	}

	visible := NewSpriteManager([]ObjectSpawn{
		{Kind: ObjectCheckpoint, Tile: TilePos{X: 2, Y: 1}},
	})
	r.Draw(grid, cam, visible)
	if n := blueDominant(r); n == 0 {
		t.Fatal("sprite in the open drew no pixels")
	}
}

func TestZBufferMatchesWallDistances(t *testing.T) {
	grid := gridFrom(
		"#####",
		"#   #",
		"#####",
	)
	tex := NewTextureManager("")
	r := NewRenderer(120, 80, tex)
	cam := NewCamera(Vec2{X: 1.5, Y: 1.5}, 0, radians(66))

	r.Draw(grid, cam, NewSpriteManager(nil))
	for x := 0; x < 120; x++ {
		if r.zbuf[x] != r.hits[x].Dist {
			t.Fatalf("column %d: zbuf %v != hit distance %v", x, r.zbuf[x], r.hits[x].Dist)
		}
	}
}

func TestShadingNeverFullyBlack(t *testing.T) {
	if b := brightness(1000); b != ambientMin {
		t.Fatalf("far brightness %v, want clamped to %v", b, ambientMin)
	}
	if b := brightness(0); b != 1 {
		t.Fatalf("near brightness %v, want 1", b)
	}
}
