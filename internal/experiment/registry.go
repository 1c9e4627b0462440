package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/integrators"
	"github.com/san-kum/predprey/internal/metrics"
	"github.com/san-kum/predprey/internal/predprey"
)

// ModelFactory builds a model over base parameters with the named integrator.
type ModelFactory func(base predprey.Params, integrator string) (*predprey.Model, error)

type Registry struct {
	models map[string]ModelFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]ModelFactory),
	}

	r.models["native"] = func(base predprey.Params, integrator string) (*predprey.Model, error) {
		return predprey.NewModel("native",
			predprey.WithBase(base),
			predprey.WithIntegrator(integrator),
			predprey.WithMetrics(DefaultMetrics),
		)
	}

	return r
}

// Register adds or replaces a model factory.
func (r *Registry) Register(name string, fn ModelFactory) {
	r.models[name] = fn
}

func (r *Registry) GetModel(name string, base predprey.Params, integrator string) (*predprey.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s (available: %v)", name, r.ListModels())
	}
	return fn(base, integrator)
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	return integrators.New(name)
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListIntegrators() []string {
	return integrators.Names()
}

// DefaultMetrics is the per-run metric set for both species.
func DefaultMetrics() []dynamo.Metric {
	ms := metrics.Population("prey", predprey.PreyIdx)
	return append(ms, metrics.Population("predators", predprey.PredatorIdx)...)
}
