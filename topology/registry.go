package topology

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownWiring = errors.New("topology: unknown wiring")

// Registry holds resolvers by name so configuration can reference wirings
// as strings and third parties can plug in their own without core changes.
type Registry struct{ m map[string]Resolver }

// NewRegistry returns a registry pre-populated with the built-in wirings.
func NewRegistry() *Registry {
	r := &Registry{m: map[string]Resolver{}}
	r.Register("row-major", RowMajor{})
	r.Register("serpentine-tl", Serpentine{Start: TopLeft})
	r.Register("serpentine-tr", Serpentine{Start: TopRight})
	r.Register("serpentine-bl", Serpentine{Start: BottomLeft})
	r.Register("serpentine-br", Serpentine{Start: BottomRight})
	r.Register("column-major", ColumnMajor{})
	r.Register("column-serpentine", ColumnSerpentine{})
	return r
}

func (r *Registry) Register(name string, rr Resolver) {
	if rr == nil {
		return
	}
	r.m[name] = rr
}

func (r *Registry) Get(name string) (Resolver, error) {
	rr, ok := r.m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWiring, name)
	}
	return rr, nil
}

func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
