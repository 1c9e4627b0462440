package predprey

import (
	"context"
	"fmt"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/integrators"
)

// Outcome names produced by Model.Run.
const (
	OutcomeTime      = "TIME"
	OutcomePrey      = "prey"
	OutcomePredators = "predators"
)

// OutcomeNames lists the outcomes in their canonical order.
var OutcomeNames = []string{OutcomeTime, OutcomePredators, OutcomePrey}

// Outcomes maps outcome name to series. All series have equal length.
type Outcomes map[string][]float64

// Len is the common series length, or 0 if empty.
func (o Outcomes) Len() int {
	return len(o[OutcomeTime])
}

// Select keeps the named outcomes. An empty names list keeps all of them.
func (o Outcomes) Select(names []string) (Outcomes, error) {
	if len(names) == 0 {
		return o, nil
	}
	out := make(Outcomes, len(names))
	for _, name := range names {
		series, ok := o[name]
		if !ok {
			return nil, fmt.Errorf("unknown outcome: %s", name)
		}
		out[name] = series
	}
	return out, nil
}

// Model runs the simulator behind a named-value mapping. Each call builds
// its own integrator, so a Model may be shared across goroutines.
type Model struct {
	name       string
	integrator string
	base       Params
	metrics    func() []dynamo.Metric
}

type ModelOption func(*Model)

// WithIntegrator selects the stepping scheme by registry name.
func WithIntegrator(name string) ModelOption {
	return func(m *Model) { m.integrator = name }
}

// WithBase sets the values used for names absent from a call.
func WithBase(p Params) ModelOption {
	return func(m *Model) { m.base = p }
}

// WithMetrics attaches per-call metrics. The factory runs once per call.
func WithMetrics(factory func() []dynamo.Metric) ModelOption {
	return func(m *Model) { m.metrics = factory }
}

func NewModel(name string, opts ...ModelOption) (*Model, error) {
	m := &Model{
		name:       name,
		integrator: integrators.Default,
		base:       DefaultParams(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if _, err := integrators.New(m.integrator); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) Name() string       { return m.name }
func (m *Model) Integrator() string { return m.integrator }

// Run overlays values on the model's base parameters and simulates.
func (m *Model) Run(ctx context.Context, values map[string]float64) (Outcomes, error) {
	traj, _, err := m.RunDetailed(ctx, values)
	if err != nil {
		return nil, err
	}
	return traj.Outcomes(), nil
}

// RunDetailed is Run plus the metric values of the configured metrics.
// Observers see every sample of this call only.
func (m *Model) RunDetailed(ctx context.Context, values map[string]float64, observers ...dynamo.Observer) (Trajectory, map[string]float64, error) {
	p, err := FromMap(m.base, values)
	if err != nil {
		return Trajectory{}, nil, fmt.Errorf("model %s: %w", m.name, err)
	}

	integ, err := integrators.New(m.integrator)
	if err != nil {
		return Trajectory{}, nil, err
	}

	var metrics []dynamo.Metric
	if m.metrics != nil {
		metrics = m.metrics()
	}

	res, err := run(ctx, p, integ, metrics, observers)
	if err != nil {
		return Trajectory{}, nil, fmt.Errorf("model %s: %w", m.name, err)
	}
	return fromResult(res), res.Metrics, nil
}
