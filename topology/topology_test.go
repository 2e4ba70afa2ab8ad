package topology_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/coreman2200/ledgrid/topology"
)

var wirings = map[string]Resolver{
	"row-major":         RowMajor{},
	"serpentine-tl":     Serpentine{Start: TopLeft},
	"serpentine-tr":     Serpentine{Start: TopRight},
	"serpentine-bl":     Serpentine{Start: BottomLeft},
	"serpentine-br":     Serpentine{Start: BottomRight},
	"column-major":      ColumnMajor{},
	"column-serpentine": ColumnSerpentine{},
}

var tileSizes = []struct{ W, H int }{
	{1, 1}, {8, 8}, {16, 8}, {5, 7}, {1, 9}, {9, 1},
}

// Every wiring must hit every index in [0, W*H) exactly once.
func TestWiringsAreBijections(t *testing.T) {
	for name, r := range wirings {
		for _, sz := range tileSizes {
			t.Run(fmt.Sprintf("%s %dx%d", name, sz.W, sz.H), func(t *testing.T) {
				seen := make([]bool, sz.W*sz.H)
				for y := 0; y < sz.H; y++ {
					for x := 0; x < sz.W; x++ {
						i, err := r.Index(sz.W, sz.H, x, y)
						require.NoError(t, err)
						require.GreaterOrEqual(t, i, 0)
						require.Less(t, i, len(seen))
						assert.False(t, seen[i], "index %d hit twice", i)
						seen[i] = true
					}
				}
			})
		}
	}
}

func TestSerpentineRowEndpoints(t *testing.T) {
	const w, h = 8, 4
	s := Serpentine{Start: TopLeft}

	cases := []struct {
		x, y   int
		expect int
	}{
		{0, 0, 0},         // row 0 left to right
		{w - 1, 0, w - 1}, //
		{w - 1, 1, w},     // row 1 right to left
		{0, 1, 2*w - 1},   //
	}
	for _, c := range cases {
		i, err := s.Index(w, h, c.x, c.y)
		require.NoError(t, err)
		assert.Equal(t, c.expect, i, "(%d,%d)", c.x, c.y)
	}
}

func TestSerpentineStartCorners(t *testing.T) {
	const w, h = 4, 3
	cases := []struct {
		start  Corner
		x, y   int
		expect int
	}{
		{TopLeft, 0, 0, 0},
		{TopRight, w - 1, 0, 0},
		{BottomLeft, 0, h - 1, 0},
		{BottomRight, w - 1, h - 1, 0},
	}
	for _, c := range cases {
		i, err := Serpentine{Start: c.start}.Index(w, h, c.x, c.y)
		require.NoError(t, err)
		assert.Equal(t, c.expect, i, "corner %v", c.start)
	}
}

func TestColumnSerpentine(t *testing.T) {
	const w, h = 3, 4
	cs := ColumnSerpentine{}

	i, err := cs.Index(w, h, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	// second strip runs bottom to top
	i, err = cs.Index(w, h, 1, h-1)
	require.NoError(t, err)
	assert.Equal(t, h, i)
}

func TestOutOfBoundsIsError(t *testing.T) {
	for name, r := range wirings {
		t.Run(name, func(t *testing.T) {
			for _, p := range []struct{ x, y int }{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
				_, err := r.Index(8, 8, p.x, p.y)
				assert.ErrorIs(t, err, ErrOutOfBounds, "(%d,%d)", p.x, p.y)
			}
		})
	}
}

func TestBuildTableMatchesResolver(t *testing.T) {
	r := Serpentine{Start: TopRight}
	tbl, err := BuildTable(r, 6, 5)
	require.NoError(t, err)
	assert.Equal(t, 30, tbl.Len())

	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			want, err := r.Index(6, 5, x, y)
			require.NoError(t, err)
			got, err := tbl.Lookup(x, y)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}

	_, err = tbl.Lookup(6, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

// clamping resolver: maps everything in the last row onto one index
type clamping struct{}

func (clamping) Index(w, h, x, y int) (int, error) {
	if y == h-1 {
		return (h - 1) * w, nil
	}
	return y*w + x, nil
}

func TestBuildTableRejectsNonBijection(t *testing.T) {
	_, err := BuildTable(clamping{}, 4, 4)
	assert.ErrorIs(t, err, ErrNotBijective)

	_, err = BuildTable(RowMajor{}, 0, 4)
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	for name := range wirings {
		r, err := reg.Get(name)
		require.NoError(t, err, name)
		assert.NotNil(t, r)
	}

	_, err := reg.Get("moebius")
	assert.ErrorIs(t, err, ErrUnknownWiring)

	// third-party wirings plug in by name
	reg.Register("clamping", clamping{})
	r, err := reg.Get("clamping")
	require.NoError(t, err)
	assert.NotNil(t, r)
}
