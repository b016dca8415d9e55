package orbit

import (
	"math"
	"testing"
)

func TestForceEmpty(t *testing.T) {
	b := &Body{Name: "lonely", M: 1e24, X: Vec{1e10, -3e10}}

	f := b.Force(nil)
	if f.X != 0 || f.Y != 0 {
		t.Errorf("expected zero force on isolated body, got (%g, %g)", f.X, f.Y)
	}
}

func TestForceSymmetry(t *testing.T) {
	cases := []struct {
		name   string
		xa, xb Vec
	}{
		{"along x", Vec{0, 0}, Vec{1e11, 0}},
		{"along y", Vec{0, 0}, Vec{0, 2.3e10}},
		{"diagonal", Vec{-5e9, 7e10}, Vec{3e11, -1e10}},
		{"close", Vec{1, 1}, Vec{2, 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &Body{Name: "a", M: 1.989e30, X: tc.xa}
			b := &Body{Name: "b", M: 5.972e24, X: tc.xb}

			fab := a.Force([]*Body{b})
			fba := b.Force([]*Body{a})

			scale := fab.Norm()
			if scale == 0 {
				t.Fatal("expected non-zero force")
			}
			if math.Abs(fab.X+fba.X)/scale > 1e-12 || math.Abs(fab.Y+fba.Y)/scale > 1e-12 {
				t.Errorf("third law violated: F_ab=(%g,%g) F_ba=(%g,%g)",
					fab.X, fab.Y, fba.X, fba.Y)
			}
		})
	}
}

func TestForceAttractive(t *testing.T) {
	a := &Body{Name: "a", M: 1e30, X: Vec{0, 0}}
	b := &Body{Name: "b", M: 1e24, X: Vec{1e11, 0}}

	f := b.Force([]*Body{a})
	if f.X >= 0 {
		t.Errorf("force on b should point toward a (negative x), got %g", f.X)
	}
	if f.Y != 0 {
		t.Errorf("expected no y component, got %g", f.Y)
	}

	want := G * 1e30 * 1e24 / (1e11 * 1e11)
	if math.Abs(-f.X-want)/want > 1e-12 {
		t.Errorf("expected |F|=%g, got %g", want, -f.X)
	}
}

func TestForceSumsPairs(t *testing.T) {
	// Two equal masses placed symmetrically about b: x components cancel.
	b := &Body{Name: "b", M: 1e24, X: Vec{0, 0}}
	l := &Body{Name: "l", M: 1e30, X: Vec{-1e11, 1e11}}
	r := &Body{Name: "r", M: 1e30, X: Vec{1e11, 1e11}}

	f := b.Force([]*Body{l, r})
	if math.Abs(f.X) > f.Norm()*1e-12 {
		t.Errorf("symmetric pair should cancel in x, got %g", f.X)
	}
	if f.Y <= 0 {
		t.Errorf("net force should pull toward the pair (+y), got %g", f.Y)
	}
}
