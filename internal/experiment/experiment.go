package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/predprey"
)

type Config struct {
	Model      string
	Integrator string
	Params     predprey.Params
}

type Result struct {
	Config     Config
	Trajectory predprey.Trajectory
	Metrics    map[string]float64
	Elapsed    time.Duration
}

func (r *Result) Outcomes() predprey.Outcomes {
	return r.Trajectory.Outcomes()
}

type Experiment struct {
	cfg       Config
	model     *predprey.Model
	observers []dynamo.Observer
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(registry *Registry) error {
	model, err := registry.GetModel(e.cfg.Model, e.cfg.Params, e.cfg.Integrator)
	if err != nil {
		return err
	}
	e.model = model
	return nil
}

// AddObserver attaches an observer to every subsequent Run.
func (e *Experiment) AddObserver(o dynamo.Observer) {
	e.observers = append(e.observers, o)
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.model == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	start := time.Now()
	traj, values, err := e.model.RunDetailed(ctx, nil, e.observers...)
	if err != nil {
		return nil, err
	}

	return &Result{
		Config:     e.cfg,
		Trajectory: traj,
		Metrics:    values,
		Elapsed:    time.Since(start),
	}, nil
}

// Model returns the configured model, nil before Setup.
func (e *Experiment) Model() *predprey.Model {
	return e.model
}
