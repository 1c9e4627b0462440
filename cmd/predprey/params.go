package main

import (
	"fmt"

	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/predprey"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// paramFlags binds one flag per model parameter. Only flags the user set
// override the config file and preset.
type paramFlags struct {
	preset     string
	integrator string
	model      string
	values     predprey.Params
}

func (pf *paramFlags) register(fs *pflag.FlagSet) {
	d := predprey.DefaultParams()
	fs.StringVar(&pf.preset, "preset", "", "use preset parameters")
	fs.StringVar(&pf.integrator, "integrator", "", "integrator (euler, heun, rk4)")
	fs.StringVar(&pf.model, "model", "", "model name")
	fs.Float64Var(&pf.values.PreyBirthRate, "prey-birth-rate", d.PreyBirthRate, "prey birth rate")
	fs.Float64Var(&pf.values.PredationRate, "predation-rate", d.PredationRate, "predation rate")
	fs.Float64Var(&pf.values.PredatorEfficiency, "predator-efficiency", d.PredatorEfficiency, "predator efficiency")
	fs.Float64Var(&pf.values.PredatorLossRate, "predator-loss-rate", d.PredatorLossRate, "predator loss rate")
	fs.Float64Var(&pf.values.InitialPrey, "prey", d.InitialPrey, "initial prey")
	fs.Float64Var(&pf.values.InitialPredators, "predators", d.InitialPredators, "initial predators")
	fs.Float64Var(&pf.values.FinalTime, "time", d.FinalTime, "final time")
	fs.Float64Var(&pf.values.Dt, "dt", d.Dt, "timestep")
}

var flagParams = map[string]string{
	"prey-birth-rate":     predprey.PreyBirthRate,
	"predation-rate":      predprey.PredationRate,
	"predator-efficiency": predprey.PredatorEfficiency,
	"predator-loss-rate":  predprey.PredatorLossRate,
	"prey":                predprey.InitialPrey,
	"predators":           predprey.InitialPredators,
	"time":                predprey.FinalTime,
	"dt":                  predprey.Dt,
}

// resolve layers config file, preset and explicit flags, in that order.
func (pf *paramFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	if pf.preset != "" {
		p, ok := config.GetPreset(pf.preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", pf.preset, config.ListPresets())
		}
		cfg.Params = p
	}

	set := pf.values.Map()
	for flag, name := range flagParams {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		if cfg.Params, err = cfg.Params.With(name, set[name]); err != nil {
			return nil, err
		}
	}

	if pf.integrator != "" {
		cfg.Integrator = pf.integrator
	}
	if pf.model != "" {
		cfg.Model = pf.model
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, w := range cfg.CheckBounds(cfg.Params) {
		logger.Warn("rate outside uncertainty range", "detail", w)
	}
	logger.Debug("resolved parameters", "model", cfg.Model, "integrator", cfg.Integrator, "params", cfg.Params)
	return cfg, nil
}
