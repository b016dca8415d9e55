// Package ephemeris supplies initial body states, either from a built-in
// catalog or from the JPL Horizons service. Values are always in SI units;
// unit conversion is this package's job, never the core's.
package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/orbit"
)

// ErrUnknownBody indicates a body name no provider knows about.
var ErrUnknownBody = errors.New("ephemeris: unknown body")

// State is one body's initial condition: position (m), velocity (m/s),
// radius (m), mass (kg), plus the display color.
type State struct {
	Name  string
	Color string
	X     orbit.Vec
	V     orbit.Vec
	R     float64
	M     float64
}

// Source resolves a body name to its state at a reference epoch.
type Source interface {
	Lookup(ctx context.Context, name string, epoch time.Time) (State, error)
}

// Build resolves every name through src and assembles the bodies. Any
// lookup failure aborts the whole build; a system is never constructed
// with bodies missing.
func Build(ctx context.Context, src Source, names []string, epoch time.Time) ([]*orbit.Body, error) {
	bodies := make([]*orbit.Body, 0, len(names))
	for _, name := range names {
		st, err := src.Lookup(ctx, name, epoch)
		if err != nil {
			return nil, fmt.Errorf("lookup %q: %w", name, err)
		}
		bodies = append(bodies, &orbit.Body{
			Name:  st.Name,
			Color: st.Color,
			X:     st.X,
			V:     st.V,
			R:     st.R,
			M:     st.M,
		})
	}
	return bodies, nil
}
