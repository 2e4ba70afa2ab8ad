package frame_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/ledgrid/frame"
	"github.com/coreman2200/ledgrid/pixel"
)

func TestNewPrefillsBackground(t *testing.T) {
	bg := pixel.Color{R: 9, G: 9, B: 9}
	b, err := frame.New(12, bg)
	require.NoError(t, err)
	assert.Equal(t, 12, b.Len())
	for _, c := range b.Snapshot() {
		assert.Equal(t, bg, c)
	}

	_, err = frame.New(0, bg)
	assert.Error(t, err)
}

func TestSetAtBounds(t *testing.T) {
	b, err := frame.New(4, pixel.Color{})
	require.NoError(t, err)

	red := pixel.Color{R: 255}
	require.NoError(t, b.Set(3, red))
	got, err := b.At(3)
	require.NoError(t, err)
	assert.Equal(t, red, got)

	assert.ErrorIs(t, b.Set(4, red), frame.ErrIndexOutOfRange)
	assert.ErrorIs(t, b.Set(-1, red), frame.ErrIndexOutOfRange)
	_, err = b.At(4)
	assert.ErrorIs(t, err, frame.ErrIndexOutOfRange)
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	b, err := frame.New(4, pixel.Color{})
	require.NoError(t, err)

	snap := b.Snapshot()
	require.NoError(t, b.Set(0, pixel.Color{R: 1}))
	assert.Equal(t, pixel.Color{}, snap[0], "snapshot must not track later writes")
}

func TestFill(t *testing.T) {
	b, err := frame.New(64, pixel.Color{})
	require.NoError(t, err)
	require.NoError(t, b.Set(19, pixel.Color{R: 255}))

	c := pixel.Color{G: 70}
	b.Fill(c)
	for i, got := range b.Snapshot() {
		assert.Equal(t, c, got, "index %d", i)
	}
}
