package predprey

import "github.com/san-kum/predprey/internal/dynamo"

// State indices.
const (
	PreyIdx     = 0
	PredatorIdx = 1
)

// System is the Lotka-Volterra right-hand side.
type System struct {
	a, b, c, d float64
}

func NewSystem(p Params) *System {
	return &System{
		a: p.PreyBirthRate,
		b: p.PredationRate,
		c: p.PredatorEfficiency,
		d: p.PredatorLossRate,
	}
}

func (s *System) StateDim() int { return 2 }

func (s *System) Derive(x dynamo.State, _ float64) dynamo.State {
	prey, pred := x[PreyIdx], x[PredatorIdx]
	return dynamo.State{
		s.a*prey - s.b*prey*pred,
		s.c*prey*pred - s.d*pred,
	}
}

// Equilibrium returns the non-trivial fixed point (d/c, a/b). ok is false
// when either denominator is zero.
func (s *System) Equilibrium() (prey, predators float64, ok bool) {
	if s.b == 0 || s.c == 0 {
		return 0, 0, false
	}
	return s.d / s.c, s.a / s.b, true
}
