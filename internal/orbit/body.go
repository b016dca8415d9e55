package orbit

// G is the Newtonian gravitational constant, N·m²/kg².
const G = 6.674e-11

// Body is one gravitating point mass. X and V are mutated by System.Step;
// R and Color only matter to renderers.
type Body struct {
	Name  string
	Color string
	X     Vec     // position, m
	V     Vec     // velocity, m/s
	R     float64 // physical radius, m
	M     float64 // mass, kg
}

// Force returns the net gravitational force acting on b, summed over the
// given bodies. others must not contain b itself; coincident positions are
// a precondition violation and divide by zero (New rejects them up front).
func (b *Body) Force(others []*Body) Vec {
	var f Vec
	for _, o := range others {
		d := b.X.Sub(o.X)
		r := d.Norm()
		f = f.Add(d.Scale(-G * b.M * o.M / (r * r * r)))
	}
	return f
}
