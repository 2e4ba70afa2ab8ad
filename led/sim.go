package led

import "github.com/coreman2200/ledgrid/pixel"

// Sim is a headless transport that counts frames and retains a copy of the
// most recent one. Used by the demo binary when no hardware is present and
// by tests that need to observe what a flush sent.
type Sim struct {
	Frames int
	Last   []pixel.Color
	// Err, when set, is returned by Transmit after recording the frame,
	// mimicking a bus that reports overrun while the LEDs still latch.
	Err error
}

func (s *Sim) Transmit(frame []pixel.Color) error {
	s.Frames++
	s.Last = append(s.Last[:0], frame...)
	return s.Err
}

func (s *Sim) Close() error { return nil }
