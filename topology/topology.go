// Package topology maps local matrix coordinates onto the position each LED
// occupies in its tile's wiring chain.
package topology

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds reports a local coordinate outside the tile. Callers
	// are expected to clip before resolving; seeing this error at runtime
	// means the clipping layer is broken, not that input was bad.
	ErrOutOfBounds = errors.New("topology: local coordinate out of bounds")

	// ErrNotBijective reports a resolver whose mapping misses or repeats
	// a physical index. Detected when the lookup table is built.
	ErrNotBijective = errors.New("topology: wiring is not a bijection")
)

// Resolver maps a local (x, y) inside a w×h tile to the LED's position in
// the tile's chain, in [0, w*h). Implementations must be bijections; the
// table builder verifies this for every resolver, built-in or third-party.
type Resolver interface {
	Index(w, h, x, y int) (int, error)
}

func checkLocal(w, h, x, y int) error {
	if x < 0 || x >= w || y < 0 || y >= h {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, w, h)
	}
	return nil
}

// RowMajor chains LEDs row by row, every row left to right.
type RowMajor struct{}

func (RowMajor) Index(w, h, x, y int) (int, error) {
	if err := checkLocal(w, h, x, y); err != nil {
		return 0, err
	}
	return y*w + x, nil
}

// Corner names the tile corner holding the first LED of a serpentine chain.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// Serpentine chains LEDs boustrophedon: consecutive rows alternate
// direction, starting from the declared corner.
type Serpentine struct {
	Start Corner
}

func (s Serpentine) Index(w, h, x, y int) (int, error) {
	if err := checkLocal(w, h, x, y); err != nil {
		return 0, err
	}
	row, col := y, x
	switch s.Start {
	case BottomLeft, BottomRight:
		row = h - 1 - y
	}
	flip := row%2 == 1
	switch s.Start {
	case TopRight, BottomRight:
		flip = !flip
	}
	if flip {
		col = w - 1 - x
	}
	return row*w + col, nil
}

// ColumnMajor chains LEDs column by column, every column top to bottom.
// Matches panels strung as vertical strips.
type ColumnMajor struct{}

func (ColumnMajor) Index(w, h, x, y int) (int, error) {
	if err := checkLocal(w, h, x, y); err != nil {
		return 0, err
	}
	return x*h + y, nil
}

// ColumnSerpentine chains vertical strips that alternate direction, first
// strip running top to bottom.
type ColumnSerpentine struct{}

func (ColumnSerpentine) Index(w, h, x, y int) (int, error) {
	if err := checkLocal(w, h, x, y); err != nil {
		return 0, err
	}
	row := y
	if x%2 == 1 {
		row = h - 1 - y
	}
	return x*h + row, nil
}
