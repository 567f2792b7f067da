// level.go
package main

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

//go:embed assets/levels/*.txt
var levelFS embed.FS

// Tile is one cell of the maze grid. Immutable after load.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileWallYellow
	TileWallRed
	TileWallBlue
	TileWallGreen
	TileExitDoor
)

// Wall reports whether the tile blocks movement.
func (t Tile) Wall() bool {
	return t >= TileWallYellow && t <= TileWallGreen
}

// Opaque reports whether the tile stops a ray. The exit door renders as a
// wall face but stays walkable so stepping onto it triggers the exit check.
func (t Tile) Opaque() bool {
	return t.Wall() || t == TileExitDoor
}

func (t Tile) Walkable() bool {
	return t == TileEmpty || t == TileExitDoor
}

// Grid is the static tile grid of a level, indexed by column and row.
type Grid struct {
	Tiles [][]Tile
}

func (g *Grid) Width() int {
	if len(g.Tiles) == 0 {
		return 0
	}
	return len(g.Tiles[0])
}

func (g *Grid) Height() int { return len(g.Tiles) }

// At returns the tile at column x, row y. Out-of-bounds coordinates read as
// solid wall so rays and movement can never leave the grid.
func (g *Grid) At(x, y int) Tile {
	if y < 0 || y >= len(g.Tiles) || x < 0 || x >= len(g.Tiles[y]) {
		return TileWallYellow
	}
	return g.Tiles[y][x]
}

// AtWorld returns the tile containing a continuous world position.
func (g *Grid) AtWorld(x, y float64) Tile {
	return g.At(int(math.Floor(x)), int(math.Floor(y)))
}

type ObjectKind int

const (
	ObjectKey ObjectKind = iota
	ObjectCheckpoint
	ObjectPortal
	ObjectExtraLife
	ObjectTrap
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectKey:
		return "key"
	case ObjectCheckpoint:
		return "checkpoint"
	case ObjectPortal:
		return "portal"
	case ObjectExtraLife:
		return "extra-life"
	case ObjectTrap:
		return "trap"
	}
	return "unknown"
}

// ObjectSpawn places one world object at the center of a tile.
type ObjectSpawn struct {
	Kind ObjectKind
	Tile TilePos
}

// Level owns the grid plus everything a session needs to start playing it.
type Level struct {
	Index               int
	Difficulty          string
	Grid                Grid
	RequiredKeys        int
	RequiredCheckpoints int
	Checkpoints         []TilePos
	Spawns              []ObjectSpawn
	PlayerStart         Vec2
	PlayerStartAngle    float64
	ExitTile            TilePos
}

// ParseLevel reads a level descriptor: "key: value" header lines, a blank
// line, then the character grid. A malformed descriptor is fatal at load
// time; gameplay never starts on a broken level.
func ParseLevel(r io.Reader, index int) (*Level, error) {
	lvl := &Level{
		Index:            index,
		Difficulty:       "normal",
		RequiredKeys:     1,
		PlayerStartAngle: math.Pi / 4,
	}

	scanner := bufio.NewScanner(r)
	var rows []string
	inGrid := false
	for scanner.Scan() {
		line := scanner.Text()
		if !inGrid {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				if len(rows) > 0 {
					break
				}
				continue
			}
			if key, value, ok := strings.Cut(trimmed, ":"); ok {
				if err := lvl.setHeader(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
					return nil, err
				}
				continue
			}
			inGrid = true
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		rows = append(rows, strings.TrimRight(line, "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading level %d: %w", index, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("level %d: descriptor has no grid", index)
	}

	if err := lvl.buildGrid(rows); err != nil {
		return nil, err
	}
	if err := lvl.validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}

func (l *Level) setHeader(key, value string) error {
	switch key {
	case "difficulty":
		l.Difficulty = value
	case "keys":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("level %d: bad keys count %q", l.Index, value)
		}
		l.RequiredKeys = n
	case "checkpoints":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("level %d: bad checkpoints count %q", l.Index, value)
		}
		l.RequiredCheckpoints = n
	default:
		return fmt.Errorf("level %d: unknown header %q", l.Index, key)
	}
	return nil
}

func (l *Level) buildGrid(rows []string) error {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	tiles := make([][]Tile, len(rows))
	haveStart := false
	for y, row := range rows {
		tiles[y] = make([]Tile, width)
		for x := 0; x < width; x++ {
			ch := byte(' ')
			if x < len(row) {
				ch = row[x]
			}
			pos := TilePos{X: x, Y: y}
			switch ch {
			case ' ', '.':
				tiles[y][x] = TileEmpty
			case '#', '+', '-', '|':
				tiles[y][x] = TileWallYellow
			case 'r':
				tiles[y][x] = TileWallRed
			case 'b':
				tiles[y][x] = TileWallBlue
			case 'g':
				tiles[y][x] = TileWallGreen
			case 'e':
				tiles[y][x] = TileExitDoor
				l.ExitTile = pos
				l.Spawns = append(l.Spawns, ObjectSpawn{Kind: ObjectPortal, Tile: pos})
			case 'k':
				tiles[y][x] = TileEmpty
				l.Spawns = append(l.Spawns, ObjectSpawn{Kind: ObjectKey, Tile: pos})
			case 'c':
				tiles[y][x] = TileEmpty
				l.Checkpoints = append(l.Checkpoints, pos)
				l.Spawns = append(l.Spawns, ObjectSpawn{Kind: ObjectCheckpoint, Tile: pos})
			case 'l':
				tiles[y][x] = TileEmpty
				l.Spawns = append(l.Spawns, ObjectSpawn{Kind: ObjectExtraLife, Tile: pos})
			case 't':
				tiles[y][x] = TileEmpty
				l.Spawns = append(l.Spawns, ObjectSpawn{Kind: ObjectTrap, Tile: pos})
			case 's':
				tiles[y][x] = TileEmpty
				l.PlayerStart = tileCenter(pos)
				haveStart = true
			default:
				return fmt.Errorf("level %d: unknown grid character %q at %d,%d", l.Index, ch, x, y)
			}
		}
	}
	l.Grid = Grid{Tiles: tiles}

	if !haveStart {
		start, ok := l.findClearStart()
		if !ok {
			return fmt.Errorf("level %d: no walkable start position", l.Index)
		}
		l.PlayerStart = start
	}
	return nil
}

// findClearStart picks the first empty tile with no wall in its 3x3
// neighborhood, so the player never spawns wedged against a wall.
func (l *Level) findClearStart() (Vec2, bool) {
	for y := 0; y < l.Grid.Height(); y++ {
		for x := 0; x < l.Grid.Width(); x++ {
			if l.Grid.At(x, y) != TileEmpty {
				continue
			}
			open := true
			for dy := -1; dy <= 1 && open; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if l.Grid.At(x+dx, y+dy).Wall() {
						open = false
						break
					}
				}
			}
			if open {
				return tileCenter(TilePos{X: x, Y: y}), true
			}
		}
	}
	for y := 0; y < l.Grid.Height(); y++ {
		for x := 0; x < l.Grid.Width(); x++ {
			if l.Grid.At(x, y) == TileEmpty {
				return tileCenter(TilePos{X: x, Y: y}), true
			}
		}
	}
	return Vec2{}, false
}

func (l *Level) validate() error {
	placedKeys := 0
	haveExit := false
	for _, s := range l.Spawns {
		switch s.Kind {
		case ObjectKey:
			placedKeys++
		case ObjectPortal:
			haveExit = true
		}
	}
	if !haveExit {
		return fmt.Errorf("level %d: no exit door", l.Index)
	}
	if l.RequiredKeys > placedKeys {
		return fmt.Errorf("level %d: requires %d keys but only %d placed", l.Index, l.RequiredKeys, placedKeys)
	}
	if l.RequiredCheckpoints > len(l.Checkpoints) {
		return fmt.Errorf("level %d: requires %d checkpoints but only %d placed", l.Index, l.RequiredCheckpoints, len(l.Checkpoints))
	}
	return nil
}

func tileCenter(p TilePos) Vec2 {
	return Vec2{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5}
}

// LoadLevels parses every embedded level descriptor, ordered by filename.
func LoadLevels() ([]*Level, error) {
	entries, err := levelFS.ReadDir("assets/levels")
	if err != nil {
		return nil, fmt.Errorf("listing embedded levels: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".txt") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no embedded level descriptors")
	}

	levels := make([]*Level, 0, len(names))
	for i, name := range names {
		f, err := levelFS.Open("assets/levels/" + name)
		if err != nil {
			return nil, fmt.Errorf("opening level %s: %w", name, err)
		}
		lvl, err := ParseLevel(f, i+1)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}
