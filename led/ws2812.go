package led

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/coreman2200/ledgrid/pixel"
)

// WS2812 clocks WS2812-style NRZ frames over a plain SPI connection by
// expanding every data bit to three SPI bits: 0 -> 100, 1 -> 110. At
// 2.4-3.2 MHz the resulting pulse widths land inside the chip's timing
// windows. Channel ordering is the surface pipeline's job; this transport
// writes the wire bytes exactly as buffered.
type WS2812 struct {
	conn     spi.Conn
	channels int
	latch    []byte
	lut      [256][3]byte
	closer   func() error
}

// NewWS2812 connects on the given port. channels is the wire width per LED
// (3 or 4). latchBytes zero bytes are appended after each frame to hold the
// line low past the chip's reset time; 128 is a safe default at 2.4 MHz.
func NewWS2812(port spi.PortCloser, channels, latchBytes int, freq physic.Frequency) (*WS2812, error) {
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("led: ws2812 supports 3 or 4 channels, got %d", channels)
	}
	if freq == 0 {
		freq = 2400 * physic.KiloHertz
	}
	if latchBytes <= 0 {
		latchBytes = 128
	}
	conn, err := port.Connect(freq, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("led: ws2812 connect: %w", err)
	}
	w := &WS2812{
		conn:     conn,
		channels: channels,
		latch:    make([]byte, latchBytes),
		closer:   port.Close,
	}
	// Each input byte expands MSB-first into 24 bits, packed as 3 bytes.
	for v := 0; v < 256; v++ {
		out := uint32(0)
		for i := 7; i >= 0; i-- {
			if (v>>i)&1 == 1 {
				out = out<<3 | 0b110
			} else {
				out = out<<3 | 0b100
			}
		}
		w.lut[v] = [3]byte{byte(out >> 16), byte(out >> 8), byte(out)}
	}
	return w, nil
}

// Transmit encodes and writes one frame plus the latch tail.
func (w *WS2812) Transmit(frame []pixel.Color) error {
	wire := make([]byte, 0, len(frame)*w.channels)
	for _, c := range frame {
		wire = pixel.AppendWire(wire, c, w.channels)
	}
	enc := make([]byte, 0, len(wire)*3+len(w.latch))
	for _, v := range wire {
		e := w.lut[v]
		enc = append(enc, e[0], e[1], e[2])
	}
	enc = append(enc, w.latch...)
	if err := w.conn.Tx(enc, nil); err != nil {
		return fmt.Errorf("led: ws2812 tx: %w", err)
	}
	return nil
}

// Close releases the SPI port.
func (w *WS2812) Close() error {
	if w.closer != nil {
		return w.closer()
	}
	return nil
}
