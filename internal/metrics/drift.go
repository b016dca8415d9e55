// Package metrics provides conservation diagnostics for simulation runs.
// Forward Euler is not symplectic, so drift in these quantities is the
// main indicator of a too-large time step.
package metrics

import (
	"math"

	"github.com/ElliottSullingeFarrall/Solar-Sym/internal/orbit"
)

// EnergyDrift tracks the maximum relative deviation of total mechanical
// energy from its initial value.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(sys *orbit.System) {
	energy := sys.Energy()
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the maximum deviation of total linear momentum from
// its initial value, normalized by the system's initial momentum scale.
// Internal forces cancel pairwise, so anything beyond rounding noise here
// is an integrator bug.
type MomentumDrift struct {
	initial  orbit.Vec
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(sys *orbit.System) {
	p := sys.Momentum()
	if m.samples == 0 {
		m.initial = p
		m.scale = momentumScale(sys)
	}
	m.samples++

	if m.scale != 0 {
		m.maxDrift = math.Max(m.maxDrift, p.Sub(m.initial).Norm()/m.scale)
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = orbit.Vec{}
	m.scale = 0
	m.maxDrift = 0
	m.samples = 0
}

// momentumScale sums |m*v| over all bodies, a scale the drift can be
// meaningfully normalized by even when the net momentum starts near zero.
func momentumScale(sys *orbit.System) float64 {
	total := 0.0
	for _, st := range sys.Positions() {
		b := sys.Body(st.Name)
		total += b.M * b.V.Norm()
	}
	return total
}
