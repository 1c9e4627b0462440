package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is an autonomous or time-dependent ODE dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Integrator advances a state by one fixed step.
type Integrator interface {
	Name() string
	Step(sys System, x State, t float64, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
}

// Validate rejects configurations no fixed-step run can honor.
func (c Config) Validate() error {
	if math.IsNaN(c.Dt) || math.IsInf(c.Dt, 0) || c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", ErrInvalidParameter, c.Dt)
	}
	if math.IsNaN(c.Duration) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("%w: duration must be finite, got %v", ErrInvalidParameter, c.Duration)
	}
	if c.Dt > c.Duration {
		return fmt.Errorf("%w: dt %v exceeds duration %v", ErrInvalidParameter, c.Dt, c.Duration)
	}
	if c.Duration/c.Dt+stepEpsilon >= MaxSteps {
		return fmt.Errorf("%w: duration/dt = %g exceeds the %d step limit",
			ErrInvalidParameter, c.Duration/c.Dt, MaxSteps)
	}
	return nil
}

// MaxSteps bounds a single run so the pre-sized result stays addressable.
const MaxSteps = math.MaxInt32 - 1

// stepEpsilon absorbs representation error in Duration/Dt, e.g. 0.3/0.1.
const stepEpsilon = 1e-9

// Steps is the number of integration steps covering the horizon. The run
// produces Steps()+1 samples including the initial condition.
func (c Config) Steps() int {
	return int(math.Floor(c.Duration/c.Dt + stepEpsilon))
}

type Result struct {
	States  []State
	Times   []float64
	Metrics map[string]float64
}

// Column extracts state component idx across all samples. Samples shorter
// than idx+1 contribute 0.
func (r *Result) Column(idx int) []float64 {
	col := make([]float64, len(r.States))
	for i, s := range r.States {
		if idx < len(s) {
			col[i] = s[idx]
		}
	}
	return col
}
