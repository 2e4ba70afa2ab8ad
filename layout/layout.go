// Package layout places physical matrix tiles onto one logical canvas and
// routes canvas coordinates to the owning tile's local frame.
package layout

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfCanvas = errors.New("layout: coordinate outside canvas")
	ErrTileSize    = errors.New("layout: tile dimensions must be positive")
	ErrTilePlace   = errors.New("layout: tile extends outside canvas")
	ErrTileOverlap = errors.New("layout: tiles overlap")
	ErrCoverage    = errors.New("layout: tiles do not cover the canvas")
)

// Rotation is the clockwise rotation applied to a tile when it was mounted.
type Rotation int

const (
	Rot0 Rotation = iota
	Rot90
	Rot180
	Rot270
)

// Tile describes one physical matrix module: its native size, the canvas
// position of its bounding box, its mounting rotation and the name of its
// wiring pattern. Tiles are constructed once and never mutated.
type Tile struct {
	W, H   int // native width/height, pre-rotation
	X, Y   int // bounding-box offset within the canvas
	Rot    Rotation
	Wiring string
}

// bbox returns the tile's footprint on the canvas; 90/270 mounts swap axes.
func (t Tile) bbox() (w, h int) {
	if t.Rot == Rot90 || t.Rot == Rot270 {
		return t.H, t.W
	}
	return t.W, t.H
}

// Pixels is the tile's LED count.
func (t Tile) Pixels() int { return t.W * t.H }

// Layout is an immutable arrangement of tiles over a w×h canvas. Slice
// order is the transmission order: tile i's LEDs occupy physical indices
// [Base(i), Base(i)+Pixels(i)) in the output frame.
type Layout struct {
	w, h  int
	tiles []Tile
	base  []int
}

// New validates the arrangement: positive tile sizes, every tile inside the
// canvas, no two tiles overlapping, and no gap (tile areas sum to the canvas
// area). All of these are configuration errors caught here, never at draw
// time.
func New(w, h int, tiles []Tile) (*Layout, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrTileSize, w, h)
	}
	if len(tiles) == 0 {
		return nil, fmt.Errorf("%w: no tiles", ErrCoverage)
	}
	area := 0
	for i, t := range tiles {
		if t.W <= 0 || t.H <= 0 {
			return nil, fmt.Errorf("%w: tile %d is %dx%d", ErrTileSize, i, t.W, t.H)
		}
		bw, bh := t.bbox()
		if t.X < 0 || t.Y < 0 || t.X+bw > w || t.Y+bh > h {
			return nil, fmt.Errorf("%w: tile %d at (%d,%d) size %dx%d on %dx%d canvas",
				ErrTilePlace, i, t.X, t.Y, bw, bh, w, h)
		}
		for j := 0; j < i; j++ {
			if overlaps(tiles[j], t) {
				return nil, fmt.Errorf("%w: tiles %d and %d", ErrTileOverlap, j, i)
			}
		}
		area += t.Pixels()
	}
	if area != w*h {
		return nil, fmt.Errorf("%w: tiles cover %d of %d pixels", ErrCoverage, area, w*h)
	}
	base := make([]int, len(tiles))
	off := 0
	for i, t := range tiles {
		base[i] = off
		off += t.Pixels()
	}
	l := &Layout{w: w, h: h, tiles: append([]Tile(nil), tiles...), base: base}
	return l, nil
}

func overlaps(a, b Tile) bool {
	aw, ah := a.bbox()
	bw, bh := b.bbox()
	return a.X < b.X+bw && b.X < a.X+aw && a.Y < b.Y+bh && b.Y < a.Y+ah
}

// Grid builds a cols×rows arrangement of identical tw×th tiles sharing one
// wiring, transmitted row by row.
func Grid(cols, rows, tw, th int, wiring string) (*Layout, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrTileSize, cols, rows)
	}
	tiles := make([]Tile, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			tiles = append(tiles, Tile{W: tw, H: th, X: c * tw, Y: r * th, Wiring: wiring})
		}
	}
	return New(cols*tw, rows*th, tiles)
}

// Width of the logical canvas in pixels.
func (l *Layout) Width() int { return l.w }

// Height of the logical canvas in pixels.
func (l *Layout) Height() int { return l.h }

// Tiles returns the tile descriptors in transmission order.
func (l *Layout) Tiles() []Tile { return l.tiles }

// Pixels is the total LED count across all tiles.
func (l *Layout) Pixels() int {
	return l.base[len(l.base)-1] + l.tiles[len(l.tiles)-1].Pixels()
}

// Base is the physical index of tile i's first LED in the output frame.
func (l *Layout) Base(i int) int { return l.base[i] }

// Locate finds the tile containing canvas coordinate (x, y) and transforms
// the point into that tile's native frame, undoing the mounting rotation.
func (l *Layout) Locate(x, y int) (tile, lx, ly int, err error) {
	if x < 0 || y < 0 || x >= l.w || y >= l.h {
		return 0, 0, 0, fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfCanvas, x, y, l.w, l.h)
	}
	for i, t := range l.tiles {
		bw, bh := t.bbox()
		if x < t.X || y < t.Y || x >= t.X+bw || y >= t.Y+bh {
			continue
		}
		u, v := x-t.X, y-t.Y
		switch t.Rot {
		case Rot0:
			lx, ly = u, v
		case Rot90:
			// native (x,y) lands at bbox (H-1-y, x)
			lx, ly = v, t.H-1-u
		case Rot180:
			lx, ly = t.W-1-u, t.H-1-v
		case Rot270:
			// native (x,y) lands at bbox (y, W-1-x)
			lx, ly = t.W-1-v, u
		}
		return i, lx, ly, nil
	}
	// Validation guarantees full coverage, so this is unreachable for a
	// constructed Layout.
	return 0, 0, 0, fmt.Errorf("%w: (%d,%d) not in any tile", ErrOutOfCanvas, x, y)
}
