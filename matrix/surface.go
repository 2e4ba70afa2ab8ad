// Package matrix exposes the drawing target for wired LED matrices. A
// Surface accepts (x, y, color) writes against the logical canvas, runs
// them through the color pipeline and the tile/wiring mapping into a linear
// frame buffer, and hands frame snapshots to a transport on flush.
package matrix

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/coreman2200/ledgrid/frame"
	"github.com/coreman2200/ledgrid/layout"
	"github.com/coreman2200/ledgrid/pixel"
	"github.com/coreman2200/ledgrid/topology"
)

var ErrNoTransport = errors.New("matrix: no transport configured")

// Options configures a Surface. Everything here is validated by New;
// nothing is re-checked per draw call.
type Options struct {
	Layout *layout.Layout
	// Wirings resolves tile wiring names. Nil means the built-ins.
	Wirings *topology.Registry
	// Order is the transport's channel order. Zero value is RGB passthrough.
	Order pixel.Order
	// Gamma, when nonzero, adds a gamma stage after brightness scaling.
	Gamma float64
	// Brightness is the initial global level, 0..255.
	Brightness byte
	// Background prefills the frame buffer (pre-pipeline color).
	Background pixel.Color
	// Transport receives frame snapshots on Flush. May be nil for purely
	// offscreen use; Flush then fails with ErrNoTransport.
	Transport Transport
	// FlushOnDraw transmits after every write, matching displays that
	// latch on each draw rather than on an explicit flush.
	FlushOnDraw bool
}

// Surface is the public drawing target. It exclusively owns its frame
// buffer and brightness level; confine each instance to one goroutine.
type Surface struct {
	lay         *layout.Layout
	tables      []topology.Table
	pipe        pixel.Pipeline
	buf         *frame.Buffer
	tr          Transport
	brightness  byte
	flushOnDraw bool
}

// New resolves every tile's wiring into a cached lookup table and allocates
// the frame buffer. Configuration problems (unknown wiring, non-bijective
// resolver, bad geometry) all fail here.
func New(opts Options) (*Surface, error) {
	if opts.Layout == nil {
		return nil, errors.New("matrix: layout is required")
	}
	reg := opts.Wirings
	if reg == nil {
		reg = topology.NewRegistry()
	}
	pipe := pixel.NewPipeline(opts.Order)
	if opts.Gamma != 0 {
		pipe = pipe.WithGamma(opts.Gamma)
	}
	tiles := opts.Layout.Tiles()
	tables := make([]topology.Table, len(tiles))
	for i, t := range tiles {
		r, err := reg.Get(t.Wiring)
		if err != nil {
			return nil, fmt.Errorf("matrix: tile %d: %w", i, err)
		}
		tbl, err := topology.BuildTable(r, t.W, t.H)
		if err != nil {
			return nil, fmt.Errorf("matrix: tile %d: %w", i, err)
		}
		tables[i] = tbl
	}
	bg := pipe.Transform(opts.Background, opts.Brightness)
	buf, err := frame.New(opts.Layout.Pixels(), bg)
	if err != nil {
		return nil, fmt.Errorf("matrix: %w", err)
	}
	return &Surface{
		lay:         opts.Layout,
		tables:      tables,
		pipe:        pipe,
		buf:         buf,
		tr:          opts.Transport,
		brightness:  opts.Brightness,
		flushOnDraw: opts.FlushOnDraw,
	}, nil
}

// index maps an in-canvas coordinate to its physical LED index. The caller
// must have clipped already; any error past that point is a mapping defect,
// not user input.
func (s *Surface) index(x, y int) (int, error) {
	tile, lx, ly, err := s.lay.Locate(x, y)
	if err != nil {
		return 0, err
	}
	i, err := s.tables[tile].Lookup(lx, ly)
	if err != nil {
		return 0, err
	}
	return s.lay.Base(tile) + i, nil
}

// DrawPixel writes one pixel. Coordinates outside the canvas are silently
// clipped so shapes may hang off the edge, the usual drawing-target
// contract. In-bounds coordinates cannot fail: the mapping was proven total
// and bijective at construction.
func (s *Surface) DrawPixel(x, y int, c pixel.Color) {
	if x < 0 || y < 0 || x >= s.lay.Width() || y >= s.lay.Height() {
		return
	}
	i, err := s.index(x, y)
	if err != nil {
		// Unreachable after the clip above; a failure here is a bug in
		// the mapping layers, not a recoverable condition.
		panic(err)
	}
	if err := s.buf.Set(i, s.pipe.Transform(c, s.brightness)); err != nil {
		panic(err)
	}
	if s.flushOnDraw && s.tr != nil {
		_ = s.tr.Transmit(s.buf.Snapshot())
	}
}

// Fill draws a solid rectangle, clipped to the canvas.
func (s *Surface) Fill(r image.Rectangle, c pixel.Color) {
	r = r.Intersect(s.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.DrawPixel(x, y, c)
		}
	}
}

// Clear sets every LED to c in one pass through the pipeline.
func (s *Surface) Clear(c pixel.Color) {
	s.buf.Fill(s.pipe.Transform(c, s.brightness))
	if s.flushOnDraw && s.tr != nil {
		_ = s.tr.Transmit(s.buf.Snapshot())
	}
}

// SetBrightness changes the global level for subsequent writes only;
// already-buffered values keep the brightness they were written with.
func (s *Surface) SetBrightness(b byte) { s.brightness = b }

// Brightness returns the current global level.
func (s *Surface) Brightness() byte { return s.brightness }

// Snapshot copies the current frame in transmission order.
func (s *Surface) Snapshot() []pixel.Color { return s.buf.Snapshot() }

// Pixels is the total LED count.
func (s *Surface) Pixels() int { return s.buf.Len() }

// Flush transmits the current frame. On failure the buffer is left intact:
// the hardware may have latched part of the frame anyway, and keeping the
// last-requested state lets the caller retry the same flush.
func (s *Surface) Flush() error {
	if s.tr == nil {
		return ErrNoTransport
	}
	if err := s.tr.Transmit(s.buf.Snapshot()); err != nil {
		return fmt.Errorf("matrix: flush: %w", err)
	}
	return nil
}

// Close releases the transport.
func (s *Surface) Close() error {
	if s.tr == nil {
		return nil
	}
	return s.tr.Close()
}

// ColorModel implements image.Image.
func (s *Surface) ColorModel() color.Model { return pixel.Model }

// Bounds implements image.Image.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.lay.Width(), s.lay.Height())
}

// At implements image.Image. It reads back the buffered, pipeline-
// transformed value; out-of-canvas reads return the zero color.
func (s *Surface) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= s.lay.Width() || y >= s.lay.Height() {
		return pixel.Color{}
	}
	i, err := s.index(x, y)
	if err != nil {
		panic(err)
	}
	c, err := s.buf.At(i)
	if err != nil {
		panic(err)
	}
	return c
}

// Set implements draw.Image so stdlib drawing primitives can target the
// surface directly.
func (s *Surface) Set(x, y int, c color.Color) {
	s.DrawPixel(x, y, pixel.FromColor(c))
}
