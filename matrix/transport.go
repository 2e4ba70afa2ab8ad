package matrix

import "github.com/coreman2200/ledgrid/pixel"

// Transport clocks a full frame out to hardware in transmission order.
// A reported failure is informational: the LEDs may have latched part or
// all of the frame anyway, so the surface keeps its buffer as-is and the
// caller decides whether to retry the flush.
type Transport interface {
	Transmit(frame []pixel.Color) error
	Close() error
}
