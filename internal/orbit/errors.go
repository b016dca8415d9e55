package orbit

import "errors"

// Construction errors. All are precondition violations of the input data;
// a System is never built around them.
var (
	// ErrNoBodies indicates an empty body set.
	ErrNoBodies = errors.New("orbit: system needs at least one body")

	// ErrDuplicateName indicates two bodies sharing a name.
	ErrDuplicateName = errors.New("orbit: duplicate body name")

	// ErrNonPositiveMass indicates a zero or negative mass.
	ErrNonPositiveMass = errors.New("orbit: mass must be positive")

	// ErrCoincident indicates two bodies at the same position, for which
	// the force law is undefined.
	ErrCoincident = errors.New("orbit: coincident body positions")
)
