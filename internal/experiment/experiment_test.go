package experiment

import (
	"context"
	"testing"

	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/predprey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBeforeSetup(t *testing.T) {
	_, err := New(Config{Model: "native"}).Run(context.Background())
	assert.Error(t, err)
}

func TestExperimentRun(t *testing.T) {
	p, ok := config.GetPreset("oscillating")
	require.True(t, ok)

	exp := New(Config{Model: "native", Integrator: "rk4", Params: p})
	require.NoError(t, exp.Setup(NewRegistry()))
	assert.Equal(t, "rk4", exp.Model().Integrator())

	res, err := exp.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1461, res.Trajectory.Len())
	assert.GreaterOrEqual(t, res.Metrics["peak_prey"], 50.0)
	assert.Greater(t, res.Metrics["peak_predators"], 20.0)
	assert.GreaterOrEqual(t, res.Metrics["turning_points_prey"], 2.0)
	assert.GreaterOrEqual(t, res.Metrics["turning_points_predators"], 2.0)
	assert.Less(t, res.Metrics["trough_prey"], res.Metrics["mean_prey"])
	assert.Len(t, res.Outcomes(), 3)
}

func TestExperimentInvalidParams(t *testing.T) {
	p := predprey.DefaultParams()
	p.Dt = -1

	exp := New(Config{Model: "native", Params: p})
	require.NoError(t, exp.Setup(NewRegistry()))

	_, err := exp.Run(context.Background())
	assert.ErrorIs(t, err, predprey.ErrInvalidParameter)
}

func TestRegistryUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.GetModel("spreadsheet", predprey.DefaultParams(), "euler")
	assert.Error(t, err)

	_, err = r.GetModel("native", predprey.DefaultParams(), "verlet")
	assert.Error(t, err)

	_, err = r.GetIntegrator("verlet")
	assert.Error(t, err)
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("native-rk4", func(base predprey.Params, _ string) (*predprey.Model, error) {
		return predprey.NewModel("native-rk4", predprey.WithBase(base), predprey.WithIntegrator("rk4"))
	})

	assert.Equal(t, []string{"native", "native-rk4"}, r.ListModels())
	assert.Equal(t, []string{"euler", "heun", "rk4"}, r.ListIntegrators())

	m, err := r.GetModel("native-rk4", predprey.DefaultParams(), "euler")
	require.NoError(t, err)
	assert.Equal(t, "rk4", m.Integrator())
}

func TestDefaultMetricsNames(t *testing.T) {
	names := map[string]bool{}
	for _, m := range DefaultMetrics() {
		names[m.Name()] = true
	}
	for _, want := range []string{
		"peak_prey", "trough_prey", "mean_prey", "turning_points_prey",
		"peak_predators", "trough_predators", "mean_predators", "turning_points_predators",
	} {
		assert.True(t, names[want], want)
	}
}

type lastSample struct {
	calls int
	t     float64
}

func (l *lastSample) OnStep(x dynamo.State, t float64) {
	l.calls++
	l.t = t
}

func TestExperimentObserver(t *testing.T) {
	p := predprey.DefaultParams()
	p.FinalTime = 20

	exp := New(Config{Model: "native", Params: p})
	require.NoError(t, exp.Setup(NewRegistry()))

	obs := &lastSample{}
	exp.AddObserver(obs)

	res, err := exp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res.Trajectory.Len(), obs.calls)
	assert.Equal(t, 20.0, obs.t)
}
