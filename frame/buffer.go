// Package frame owns the linear output buffer transmitted to the LEDs.
package frame

import (
	"errors"
	"fmt"

	"github.com/coreman2200/ledgrid/pixel"
)

var ErrIndexOutOfRange = errors.New("frame: physical index out of range")

// Buffer holds one color per physical LED in transmission order. Its length
// is fixed at construction and every index is always defined, so a snapshot
// is well-formed even before the first draw.
type Buffer struct {
	pix []pixel.Color
}

// New allocates a buffer of n LEDs filled with the background color.
func New(n int, background pixel.Color) (*Buffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("frame: invalid LED count %d", n)
	}
	b := &Buffer{pix: make([]pixel.Color, n)}
	b.Fill(background)
	return b, nil
}

// Len is the LED count.
func (b *Buffer) Len() int { return len(b.pix) }

// Set writes the color at a physical index.
func (b *Buffer) Set(i int, c pixel.Color) error {
	if i < 0 || i >= len(b.pix) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(b.pix))
	}
	b.pix[i] = c
	return nil
}

// At reads the color at a physical index.
func (b *Buffer) At(i int) (pixel.Color, error) {
	if i < 0 || i >= len(b.pix) {
		return pixel.Color{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(b.pix))
	}
	return b.pix[i], nil
}

// Fill sets every LED to c in one pass.
func (b *Buffer) Fill(c pixel.Color) {
	for i := range b.pix {
		b.pix[i] = c
	}
}

// Snapshot copies the full frame. The copy never aliases the live buffer,
// so a caller can hold it across subsequent draws.
func (b *Buffer) Snapshot() []pixel.Color {
	out := make([]pixel.Color, len(b.pix))
	copy(out, b.pix)
	return out
}
