package main

import (
	"image"
	"image/color"
	"runtime"
	"sync"
)

// -- rendering

const (
	// shadeDist is the distance at which wall brightness bottoms out.
	shadeDist = 14.0
	// ambientMin keeps distant geometry readable; nothing ever shades to
	// full black.
	ambientMin = 0.3
	// ySideShade darkens east/west faces slightly so corners read.
	ySideShade = 0.85
)

var (
	ceilingColor = color.RGBA{105, 95, 60, 255}
	floorColor   = color.RGBA{125, 110, 70, 255}
)

// Renderer draws one frame into a CPU pixel buffer: floor/ceiling gradient,
// textured wall columns from the ray hits, then sprites composited against
// the per-column z-buffer.
type Renderer struct {
	w, h    int
	frame   *image.RGBA
	zbuf    []float64
	hits    []RayHit
	tex     TextureProvider
	workers int
}

func NewRenderer(w, h int, tex TextureProvider) *Renderer {
	return &Renderer{
		w:       w,
		h:       h,
		frame:   image.NewRGBA(image.Rect(0, 0, w, h)),
		zbuf:    make([]float64, w),
		hits:    make([]RayHit, w),
		tex:     tex,
		workers: runtime.NumCPU(),
	}
}

// Frame exposes the last rendered pixel buffer for presenting.
func (r *Renderer) Frame() *image.RGBA { return r.frame }

// Draw renders the scene for the given camera into the frame buffer.
func (r *Renderer) Draw(grid *Grid, cam *Camera, sprites *SpriteManager) {
	r.drawBackground()

	cam.CastAll(grid, r.hits, r.workers)

	band := (r.w + r.workers - 1) / r.workers
	var wg sync.WaitGroup
	for start := 0; start < r.w; start += band {
		end := start + band
		if end > r.w {
			end = r.w
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for x := start; x < end; x++ {
				r.drawWallColumn(x)
			}
		}(start, end)
	}
	wg.Wait()

	r.drawSprites(cam, sprites)
}

// drawBackground fills ceiling and floor with a vertical gradient darkening
// toward the horizon, which sells depth without a floor caster.
func (r *Renderer) drawBackground() {
	half := r.h / 2
	for y := 0; y < r.h; y++ {
		var base color.RGBA
		var depth float64
		if y < half {
			base = ceilingColor
			depth = float64(half-y) / float64(half)
		} else {
			base = floorColor
			depth = float64(y-half) / float64(half)
		}
		b := ambientMin + (1-ambientMin)*depth
		c := shade(base, b)
		row := r.frame.Pix[y*r.frame.Stride : y*r.frame.Stride+r.w*4]
		for x := 0; x < r.w*4; x += 4 {
			row[x] = c.R
			row[x+1] = c.G
			row[x+2] = c.B
			row[x+3] = 255
		}
	}
}

func (r *Renderer) drawWallColumn(x int) {
	hit := r.hits[x]
	r.zbuf[x] = hit.Dist
	if !hit.Valid {
		// void hit, background shows through
		return
	}

	dist := hit.Dist
	if dist < 1e-4 {
		dist = 1e-4
	}
	lineHeight := int(float64(r.h) / dist)
	drawStart := clampInt(-lineHeight/2+r.h/2, 0, r.h-1)
	drawEnd := clampInt(lineHeight/2+r.h/2, 0, r.h-1)

	bright := brightness(dist)
	if hit.Side == 1 {
		bright *= ySideShade
	}

	tex := r.tex.Wall(hit.Tile)
	if tex == nil {
		c := shade(r.tex.FallbackColor(hit.Tile), bright)
		for y := drawStart; y <= drawEnd; y++ {
			r.setPix(x, y, c)
		}
		return
	}

	step := 1.0 / float64(lineHeight)
	texV := float64(drawStart-r.h/2+lineHeight/2) * step
	for y := drawStart; y <= drawEnd; y++ {
		c := texelAt(tex, hit.TexU, texV)
		texV += step
		r.setPix(x, y, shade(c, bright))
	}
}

func (r *Renderer) drawSprites(cam *Camera, sprites *SpriteManager) {
	for _, proj := range sprites.Project(cam, r.w, r.h) {
		tex := r.tex.SpriteTex(proj.Sprite.Kind)
		if tex == nil {
			continue
		}

		bright := brightness(proj.Depth)
		if proj.Sprite.Kind == ObjectPortal {
			// the portal glows on its own
			bright = clamp(bright+0.4*proj.Sprite.Pulse(), 0, 1)
		}

		bob := int(proj.Sprite.BobOffset() * float64(proj.Height))
		top := r.h/2 - proj.Height/2 + bob
		left := proj.ScreenX - proj.Width/2

		for sx := 0; sx < proj.Width; sx++ {
			x := left + sx
			if x < 0 || x >= r.w || proj.Depth >= r.zbuf[x] {
				continue
			}
			u := float64(sx) / float64(proj.Width)
			for sy := 0; sy < proj.Height; sy++ {
				y := top + sy
				if y < 0 || y >= r.h {
					continue
				}
				v := float64(sy) / float64(proj.Height)
				c := texelAt(tex, u, v)
				if c.A < 128 {
					continue
				}
				r.setPix(x, y, shade(c, bright))
			}
		}
	}
}

func (r *Renderer) setPix(x, y int, c color.RGBA) {
	i := y*r.frame.Stride + x*4
	r.frame.Pix[i] = c.R
	r.frame.Pix[i+1] = c.G
	r.frame.Pix[i+2] = c.B
	r.frame.Pix[i+3] = 255
}

func brightness(dist float64) float64 {
	return clamp(1-dist/shadeDist, ambientMin, 1)
}

func shade(c color.RGBA, b float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * b),
		G: uint8(float64(c.G) * b),
		B: uint8(float64(c.B) * b),
		A: c.A,
	}
}
