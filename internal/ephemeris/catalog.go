package ephemeris

import (
	"context"
	"time"

	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/orbit"
)

// Catalog serves fixed heliocentric states for the Sun and nine planets.
// Positions put every planet on the +y axis with a tangential velocity, a
// crude but stable configuration; the epoch argument is ignored. Radii and
// masses are the standard values and are also used to backfill physical
// parameters when states come from Horizons instead.
type Catalog struct{}

func NewCatalog() *Catalog { return &Catalog{} }

var catalog = map[string]State{
	"sun":     {Name: "sun", Color: "yellow", X: orbit.Vec{X: 0, Y: 0}, V: orbit.Vec{X: 0, Y: 0}, R: 696340e3, M: 1.989e30},
	"mercury": {Name: "mercury", Color: "grey", X: orbit.Vec{X: 0, Y: 57909175e3}, V: orbit.Vec{X: 47000, Y: 0}, R: 2439.7e3, M: 3.285e23},
	"venus":   {Name: "venus", Color: "orange", X: orbit.Vec{X: 0, Y: 108208930e3}, V: orbit.Vec{X: 35000, Y: 0}, R: 6051.8e3, M: 4.867e24},
	"earth":   {Name: "earth", Color: "blue", X: orbit.Vec{X: 0, Y: 149598261e3}, V: orbit.Vec{X: 30000, Y: 0}, R: 6371e3, M: 5.972e24},
	"mars":    {Name: "mars", Color: "red", X: orbit.Vec{X: 0, Y: 227939100e3}, V: orbit.Vec{X: 24000, Y: 0}, R: 3389.5e3, M: 6.39e23},
	"jupiter": {Name: "jupiter", Color: "orange", X: orbit.Vec{X: 0, Y: 778547200e3}, V: orbit.Vec{X: 13000, Y: 0}, R: 69911e3, M: 1.898e27},
	"saturn":  {Name: "saturn", Color: "yellow", X: orbit.Vec{X: 0, Y: 1433449370e3}, V: orbit.Vec{X: 9000, Y: 0}, R: 58232e3, M: 5.683e26},
	"uranus":  {Name: "uranus", Color: "cyan", X: orbit.Vec{X: 0, Y: 2876679082e3}, V: orbit.Vec{X: 6835, Y: 0}, R: 25362e3, M: 8.681e25},
	"neptune": {Name: "neptune", Color: "blue", X: orbit.Vec{X: 0, Y: 4503443661e3}, V: orbit.Vec{X: 5477, Y: 0}, R: 24622e3, M: 1.024e26},
	"pluto":   {Name: "pluto", Color: "grey", X: orbit.Vec{X: 0, Y: 5913520000e3}, V: orbit.Vec{X: 4748, Y: 0}, R: 1188.3e3, M: 1.303e22},
}

// Names lists the catalog bodies in distance order from the sun.
func Names() []string {
	return []string{
		"sun", "mercury", "venus", "earth", "mars",
		"jupiter", "saturn", "uranus", "neptune", "pluto",
	}
}

func (c *Catalog) Lookup(ctx context.Context, name string, epoch time.Time) (State, error) {
	st, ok := catalog[name]
	if !ok {
		return State{}, ErrUnknownBody
	}
	return st, nil
}
