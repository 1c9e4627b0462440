package predprey

import (
	"fmt"
	"math"

	"github.com/san-kum/predprey/internal/dynamo"
)

// ErrInvalidParameter is returned for non-finite inputs, a non-positive
// step size or a step size larger than the horizon.
var ErrInvalidParameter = dynamo.ErrInvalidParameter

// Parameter names accepted by Model.Run and the config files.
const (
	PreyBirthRate      = "prey_birth_rate"
	PredationRate      = "predation_rate"
	PredatorEfficiency = "predator_efficiency"
	PredatorLossRate   = "predator_loss_rate"
	InitialPrey        = "initial_prey"
	InitialPredators   = "initial_predators"
	FinalTime          = "final_time"
	Dt                 = "dt"
)

const (
	DefaultPreyBirthRate      = 0.025
	DefaultPredationRate      = 0.0015
	DefaultPredatorEfficiency = 0.002
	DefaultPredatorLossRate   = 0.06
	DefaultInitialPrey        = 50.0
	DefaultInitialPredators   = 20.0
	DefaultFinalTime          = 365.0
	DefaultDt                 = 0.25
)

// Params is an immutable-by-value description of one run.
type Params struct {
	PreyBirthRate      float64 `yaml:"prey_birth_rate" json:"prey_birth_rate"`
	PredationRate      float64 `yaml:"predation_rate" json:"predation_rate"`
	PredatorEfficiency float64 `yaml:"predator_efficiency" json:"predator_efficiency"`
	PredatorLossRate   float64 `yaml:"predator_loss_rate" json:"predator_loss_rate"`
	InitialPrey        float64 `yaml:"initial_prey" json:"initial_prey"`
	InitialPredators   float64 `yaml:"initial_predators" json:"initial_predators"`
	FinalTime          float64 `yaml:"final_time" json:"final_time"`
	Dt                 float64 `yaml:"dt" json:"dt"`
}

func DefaultParams() Params {
	return Params{
		PreyBirthRate:      DefaultPreyBirthRate,
		PredationRate:      DefaultPredationRate,
		PredatorEfficiency: DefaultPredatorEfficiency,
		PredatorLossRate:   DefaultPredatorLossRate,
		InitialPrey:        DefaultInitialPrey,
		InitialPredators:   DefaultInitialPredators,
		FinalTime:          DefaultFinalTime,
		Dt:                 DefaultDt,
	}
}

// Validate checks the numeric preconditions of a run. Rates are not bounds
// checked; any finite value is accepted.
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{PreyBirthRate, p.PreyBirthRate},
		{PredationRate, p.PredationRate},
		{PredatorEfficiency, p.PredatorEfficiency},
		{PredatorLossRate, p.PredatorLossRate},
		{InitialPrey, p.InitialPrey},
		{InitialPredators, p.InitialPredators},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, f.name, f.value)
		}
	}
	return p.simConfig().Validate()
}

// Samples is the trajectory length: floor(FinalTime/Dt) + 1.
func (p Params) Samples() int {
	return p.simConfig().Steps() + 1
}

// Map returns the parameters keyed by their canonical names.
func (p Params) Map() map[string]float64 {
	return map[string]float64{
		PreyBirthRate:      p.PreyBirthRate,
		PredationRate:      p.PredationRate,
		PredatorEfficiency: p.PredatorEfficiency,
		PredatorLossRate:   p.PredatorLossRate,
		InitialPrey:        p.InitialPrey,
		InitialPredators:   p.InitialPredators,
		FinalTime:          p.FinalTime,
		Dt:                 p.Dt,
	}
}

// With returns a copy of p with the named value replaced.
func (p Params) With(name string, value float64) (Params, error) {
	switch name {
	case PreyBirthRate:
		p.PreyBirthRate = value
	case PredationRate:
		p.PredationRate = value
	case PredatorEfficiency:
		p.PredatorEfficiency = value
	case PredatorLossRate:
		p.PredatorLossRate = value
	case InitialPrey:
		p.InitialPrey = value
	case InitialPredators:
		p.InitialPredators = value
	case FinalTime:
		p.FinalTime = value
	case Dt:
		p.Dt = value
	default:
		return p, fmt.Errorf("%w: unknown parameter %q", ErrInvalidParameter, name)
	}
	return p, nil
}

// FromMap overlays values onto base. Unknown names are rejected.
func FromMap(base Params, values map[string]float64) (Params, error) {
	p := base
	for name, v := range values {
		var err error
		if p, err = p.With(name, v); err != nil {
			return base, err
		}
	}
	return p, nil
}

func (p Params) simConfig() dynamo.Config {
	return dynamo.Config{Dt: p.Dt, Duration: p.FinalTime}
}

func (p Params) initialState() dynamo.State {
	return dynamo.State{p.InitialPrey, p.InitialPredators}
}
