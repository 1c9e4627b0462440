package predprey

import (
	"context"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/integrators"
)

// Trajectory holds three equal-length series sampled at every step from
// t=0 through the horizon.
type Trajectory struct {
	Time      []float64
	Prey      []float64
	Predators []float64
}

func (t Trajectory) Len() int { return len(t.Time) }

// Outcomes returns the trajectory keyed by outcome name. The slices are
// copies, so callers may modify them freely.
func (t Trajectory) Outcomes() Outcomes {
	return Outcomes{
		OutcomeTime:      append([]float64(nil), t.Time...),
		OutcomePrey:      append([]float64(nil), t.Prey...),
		OutcomePredators: append([]float64(nil), t.Predators...),
	}
}

// Diverged reports whether any sample overflowed to Inf or NaN. Divergence
// is a valid outcome of unbounded growth, not an error.
func (t Trajectory) Diverged() bool {
	for i := range t.Time {
		if !(dynamo.State{t.Prey[i], t.Predators[i]}).IsValid() {
			return true
		}
	}
	return false
}

// Simulate integrates p with forward Euler.
func Simulate(p Params) (Trajectory, error) {
	return SimulateWith(p, integrators.NewEuler())
}

// SimulateWith integrates p with the given scheme. The integrator must not be
// shared with a concurrent caller.
func SimulateWith(p Params, integ dynamo.Integrator) (Trajectory, error) {
	res, err := run(context.Background(), p, integ, nil, nil)
	if err != nil {
		return Trajectory{}, err
	}
	return fromResult(res), nil
}

func run(ctx context.Context, p Params, integ dynamo.Integrator, metrics []dynamo.Metric, observers []dynamo.Observer) (*dynamo.Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	sim := dynamo.New(NewSystem(p), integ)
	for _, m := range metrics {
		sim.AddMetric(m)
	}
	for _, o := range observers {
		sim.AddObserver(o)
	}
	return sim.Run(ctx, p.initialState(), p.simConfig())
}

func fromResult(res *dynamo.Result) Trajectory {
	return Trajectory{
		Time:      append([]float64(nil), res.Times...),
		Prey:      res.Column(PreyIdx),
		Predators: res.Column(PredatorIdx),
	}
}
