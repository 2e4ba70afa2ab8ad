// Package led provides transports that move finished frames to hardware or
// to previews. Every type here satisfies matrix.Transport.
package led

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/ledgrid/pixel"
)

// Drawer adapts any periph display.Drawer into a frame transport by drawing
// the frame as a 1×N image. The drawer owns channel ordering and low-level
// encoding, so surfaces feeding a Drawer should use RGB passthrough order.
type Drawer struct {
	d      display.Drawer
	closer func() error
}

// NewDrawer wraps an existing drawer. closer may be nil.
func NewDrawer(d display.Drawer, closer func() error) *Drawer {
	return &Drawer{d: d, closer: closer}
}

// NewSPI opens an SPI port by its registry name (e.g. "/dev/spidev0.0") and
// attaches an NRZ LED chain of the given pixel count. channels is 3 for RGB
// chips, 4 when the chain has a white channel.
func NewSPI(portname string, pixels, channels int, freq physic.Frequency) (*Drawer, error) {
	if freq == 0 {
		freq = 2500 * physic.KiloHertz
	}
	port, err := spireg.Open(portname)
	if err != nil {
		return nil, fmt.Errorf("led: open spi port %q: %w", portname, err)
	}
	dev, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: pixels,
		Channels:  channels,
		Freq:      freq,
	})
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("led: nrzled on %q: %w", portname, err)
	}
	return &Drawer{d: dev, closer: port.Close}, nil
}

// NewScreen renders frames as ANSI colors on the terminal, the no-hardware
// fallback.
func NewScreen(pixels int) *Drawer {
	return &Drawer{d: screen.New(pixels)}
}

// Transmit draws the frame as a single row.
func (t *Drawer) Transmit(frame []pixel.Color) error {
	img := image.NewNRGBA(image.Rect(0, 0, len(frame), 1))
	for i, c := range frame {
		img.SetNRGBA(i, 0, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	}
	if err := t.d.Draw(t.d.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("led: draw frame: %w", err)
	}
	return nil
}

// Close halts the device and releases the underlying port.
func (t *Drawer) Close() error {
	err := t.d.Halt()
	if t.closer != nil {
		if cerr := t.closer(); err == nil {
			err = cerr
		}
	}
	return err
}
