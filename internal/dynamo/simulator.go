package dynamo

import (
	"context"
	"fmt"
)

type Simulator struct {
	sys        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(sys System, integrator Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 over cfg.Duration and returns Steps()+1 samples.
// Sample times are i*Dt, capped at Duration, so they do not accumulate
// rounding error.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(x0) != s.sys.StateDim() {
		return nil, fmt.Errorf("%w: state has %d components, system expects %d",
			ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}

	steps := cfg.Steps()
	result := &Result{
		States:  make([]State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64, len(s.metrics)),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	s.record(result, x, t)

	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, &SimulationError{
				Step:    i,
				Time:    t,
				Wrapped: fmt.Errorf("%w: %v", ErrCanceled, ctx.Err()),
			}
		default:
		}

		x = s.integrator.Step(s.sys, x, t, cfg.Dt)
		// the epsilon in Steps can round the count up; never step past the horizon
		t = min(float64(i)*cfg.Dt, cfg.Duration)
		s.record(result, x, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) record(result *Result, x State, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)
}
