package topology

import "fmt"

// Table is a resolver's mapping baked into a flat lookup, computed once per
// tile at construction and read-only afterwards.
type Table struct {
	w, h int
	idx  []int
}

// BuildTable evaluates r over the whole tile and verifies the result is a
// bijection onto [0, w*h). A resolver that clamps, repeats or skips an index
// would silently corrupt an unrelated pixel, so it is rejected here.
func BuildTable(r Resolver, w, h int) (Table, error) {
	if w <= 0 || h <= 0 {
		return Table{}, fmt.Errorf("topology: invalid tile size %dx%d", w, h)
	}
	n := w * h
	idx := make([]int, n)
	seen := make([]bool, n)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i, err := r.Index(w, h, x, y)
			if err != nil {
				return Table{}, fmt.Errorf("topology: resolve (%d,%d): %w", x, y, err)
			}
			if i < 0 || i >= n {
				return Table{}, fmt.Errorf("%w: (%d,%d) -> %d outside [0,%d)", ErrNotBijective, x, y, i, n)
			}
			if seen[i] {
				return Table{}, fmt.Errorf("%w: index %d hit twice", ErrNotBijective, i)
			}
			seen[i] = true
			idx[y*w+x] = i
		}
	}
	return Table{w: w, h: h, idx: idx}, nil
}

// Lookup returns the chain position of local (x, y). Same contract as
// Resolver.Index, without re-running the wiring math.
func (t Table) Lookup(x, y int) (int, error) {
	if err := checkLocal(t.w, t.h, x, y); err != nil {
		return 0, err
	}
	return t.idx[y*t.w+x], nil
}

// Len is the tile's pixel count.
func (t Table) Len() int { return len(t.idx) }
