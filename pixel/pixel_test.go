package pixel_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/coreman2200/ledgrid/pixel"
)

func TestBrightnessEndpoints(t *testing.T) {
	p := NewPipeline(Order{})
	in := Color{R: 200, G: 17, B: 255, W: 4}

	assert.Equal(t, in, p.Transform(in, 255), "full brightness is the identity")
	assert.Equal(t, Color{}, p.Transform(in, 0), "zero brightness is the zero color")
}

var brightnessCases = []struct {
	in     byte
	level  byte
	expect byte
}{
	{255, 128, 128}, // 255*128/255 = 128 exactly
	{1, 128, 1},     // 0.502 rounds up
	{1, 127, 0},     // 0.498 rounds down
	{100, 51, 20},   // 100*51/255 = 20 exactly
	{3, 128, 2},     // 1.506 rounds up
	{0, 255, 0},
}

func TestBrightnessRoundHalfUp(t *testing.T) {
	p := NewPipeline(Order{})
	for _, c := range brightnessCases {
		got := p.Transform(Color{R: c.in}, c.level)
		assert.Equal(t, c.expect, got.R, "%d at level %d", c.in, c.level)
	}
}

func TestOrderPermutation(t *testing.T) {
	in := Color{R: 1, G: 2, B: 3, W: 4}

	cases := []struct {
		order  string
		expect Color
	}{
		{"RGB", Color{R: 1, G: 2, B: 3}},
		{"GRB", Color{R: 2, G: 1, B: 3}},
		{"BGR", Color{R: 3, G: 2, B: 1}},
		{"GRBW", Color{R: 2, G: 1, B: 3, W: 4}},
		{"WRGB", Color{R: 4, G: 1, B: 2, W: 3}},
	}
	for _, c := range cases {
		t.Run(c.order, func(t *testing.T) {
			o, err := ParseOrder(c.order)
			require.NoError(t, err)
			got := NewPipeline(o).Transform(in, 255)
			assert.Equal(t, c.expect, got)
		})
	}
}

func TestParseOrderRejectsBadProfiles(t *testing.T) {
	for _, s := range []string{"", "RG", "RGG", "RGBA", "RGWW", "RGBWX", "WGB"} {
		_, err := ParseOrder(s)
		assert.ErrorIs(t, err, ErrBadOrder, "%q", s)
	}
}

func TestOrderChannels(t *testing.T) {
	assert.Equal(t, 3, MustOrder("rgb").Channels())
	assert.Equal(t, 4, MustOrder("grbw").Channels())
	assert.Equal(t, 3, Order{}.Channels())
}

func TestGammaStageEndpoints(t *testing.T) {
	p := NewPipeline(Order{}).WithGamma(2.2)
	assert.Equal(t, Color{}, p.Transform(Color{}, 255))
	assert.Equal(t, Color{R: 255}, p.Transform(Color{R: 255}, 255))

	// gamma 2.2 darkens midtones
	mid := p.Transform(Color{R: 128}, 255)
	assert.Less(t, mid.R, byte(128))
	assert.Greater(t, mid.R, byte(0))
}

func TestAppendWireWidth(t *testing.T) {
	c := Color{R: 10, G: 20, B: 30, W: 40}

	assert.Equal(t, []byte{10, 20, 30}, AppendWire(nil, c, 3))
	assert.Equal(t, []byte{10, 20, 30, 40}, AppendWire(nil, c, 4))
}

func TestColorModelRoundTrip(t *testing.T) {
	c := Color{R: 12, G: 34, B: 56}
	got := Model.Convert(color.NRGBA{R: 12, G: 34, B: 56, A: 255})
	assert.Equal(t, c, got)
	assert.Equal(t, c, Model.Convert(c))
}
