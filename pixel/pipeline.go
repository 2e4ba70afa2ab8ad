package pixel

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// FullBrightness leaves channel values untouched by the scaling stage.
const FullBrightness byte = 255

var ErrBadOrder = errors.New("pixel: unsupported channel order")

// Order is a channel permutation declared by the transport profile,
// e.g. "RGB", "GRB" or "GRBW".
type Order struct {
	chans []byte
}

// ParseOrder validates a channel-order string. Three-letter orders must be a
// permutation of RGB; four-letter orders additionally place a W channel.
func ParseOrder(s string) (Order, error) {
	up := strings.ToUpper(s)
	if len(up) != 3 && len(up) != 4 {
		return Order{}, fmt.Errorf("%w: %q", ErrBadOrder, s)
	}
	seen := map[byte]bool{}
	for i := 0; i < len(up); i++ {
		c := up[i]
		switch c {
		case 'R', 'G', 'B':
		case 'W':
			if len(up) != 4 {
				return Order{}, fmt.Errorf("%w: %q", ErrBadOrder, s)
			}
		default:
			return Order{}, fmt.Errorf("%w: %q", ErrBadOrder, s)
		}
		if seen[c] {
			return Order{}, fmt.Errorf("%w: %q", ErrBadOrder, s)
		}
		seen[c] = true
	}
	if !seen['R'] || !seen['G'] || !seen['B'] {
		return Order{}, fmt.Errorf("%w: %q", ErrBadOrder, s)
	}
	if len(up) == 4 && !seen['W'] {
		return Order{}, fmt.Errorf("%w: %q", ErrBadOrder, s)
	}
	return Order{chans: []byte(up)}, nil
}

// MustOrder is ParseOrder for orders known good at compile time.
func MustOrder(s string) Order {
	o, err := ParseOrder(s)
	if err != nil {
		panic(err)
	}
	return o
}

// Channels reports the wire width of the profile, 3 or 4.
func (o Order) Channels() int {
	if len(o.chans) == 0 {
		return 3 // zero value behaves as RGB passthrough
	}
	return len(o.chans)
}

func (o Order) String() string { return string(o.chans) }

// permute rearranges c's channels into wire positions. The result reuses the
// Color fields positionally: R holds wire channel 0, G channel 1, and so on.
func (o Order) permute(c Color) Color {
	if len(o.chans) == 0 {
		return c
	}
	var out [4]byte
	for i, ch := range o.chans {
		switch ch {
		case 'R':
			out[i] = c.R
		case 'G':
			out[i] = c.G
		case 'B':
			out[i] = c.B
		case 'W':
			out[i] = c.W
		}
	}
	return Color{R: out[0], G: out[1], B: out[2], W: out[3]}
}

// Pipeline transforms drawn colors into transport-ready values:
// brightness scaling, then the optional gamma stage, then channel reordering.
type Pipeline struct {
	order Order
	gamma *[256]byte
}

// NewPipeline builds a pipeline with RGB(W) channels emitted per order.
func NewPipeline(order Order) Pipeline {
	return Pipeline{order: order}
}

// WithGamma composes a gamma-correction stage after brightness scaling.
func (p Pipeline) WithGamma(g float64) Pipeline {
	var lut [256]byte
	for i := 0; i < 256; i++ {
		lut[i] = byte(math.Round(math.Pow(float64(i)/255.0, g) * 255.0))
	}
	p.gamma = &lut
	return p
}

// Order returns the declared channel order.
func (p Pipeline) Order() Order { return p.order }

// scale applies brightness with round-half-up so that 255 is the identity
// and 0 yields zero on every channel.
func scale(v, b byte) byte {
	return byte((uint32(v)*uint32(b) + 127) / 255)
}

// Transform runs one color through every stage.
func (p Pipeline) Transform(c Color, brightness byte) Color {
	out := Color{
		R: scale(c.R, brightness),
		G: scale(c.G, brightness),
		B: scale(c.B, brightness),
		W: scale(c.W, brightness),
	}
	if p.gamma != nil {
		out.R = p.gamma[out.R]
		out.G = p.gamma[out.G]
		out.B = p.gamma[out.B]
		out.W = p.gamma[out.W]
	}
	return p.order.permute(out)
}

// AppendWire appends c's channels to dst in wire order. The pipeline
// already permuted the channels at Transform time, so this is a positional
// copy, channels wide (3 or 4).
func AppendWire(dst []byte, c Color, channels int) []byte {
	dst = append(dst, c.R, c.G, c.B)
	if channels == 4 {
		dst = append(dst, c.W)
	}
	return dst
}
