package orbit

import "math"

// Vec is a 2D vector in simulation space (SI units).
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }
func (v Vec) Norm() float64       { return math.Hypot(v.X, v.Y) }

// Cross returns the z component of the 3D cross product, treating both
// vectors as lying in the xy plane.
func (v Vec) Cross(o Vec) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
