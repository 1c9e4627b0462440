package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/experiment"
	"github.com/san-kum/predprey/internal/predprey"
	"github.com/san-kum/predprey/internal/storage"
	"github.com/san-kum/predprey/internal/viz"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		pf     paramFlags
		noSave bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pf.resolve(cmd)
			if err != nil {
				return err
			}
			return runSimulation(cmd.Context(), cfg, !noSave)
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")
	return cmd
}

func runSimulation(ctx context.Context, cfg *config.Config, save bool) error {
	exp := experiment.New(experiment.Config{
		Model:      cfg.Model,
		Integrator: cfg.Integrator,
		Params:     cfg.Params,
	})
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}
	if verbose {
		exp.AddObserver(newProgress(cfg.Params.Samples()))
	}

	fmt.Printf("running %s simulation (%s)...\n", cfg.Model, cfg.Integrator)
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("samples: %d\n", result.Trajectory.Len())
	if result.Trajectory.Diverged() {
		logger.Warn("populations overflowed to Inf/NaN; rates produce unbounded growth")
	}

	if save {
		st, err := storage.Open(dataDir, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		runID, err := st.Save(storage.RunMetadata{
			Model:      cfg.Model,
			Integrator: cfg.Integrator,
			Params:     cfg.Params,
			Metrics:    result.Metrics,
		}, result.Trajectory)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	names := cfg.Outcomes
	if len(names) == 0 {
		names = predprey.OutcomeNames
	}
	outcomes, err := result.Outcomes().Select(names)
	if err != nil {
		return err
	}
	fmt.Println()
	for _, name := range names {
		if name == predprey.OutcomeTime {
			continue
		}
		style := styles.Prey
		if name == predprey.OutcomePredators {
			style = styles.Predator
		}
		fmt.Printf("%-10s %s\n", name, style.Render(viz.Sparkline(outcomes[name], 60)))
	}
	fmt.Println(styles.Separator(71))

	fmt.Println(styles.Header.Render("metrics:"))
	names = make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Println("  " + styles.Metric(name, result.Metrics[name], 26))
	}

	return nil
}

// progress logs every tenth of a run at debug level.
type progress struct {
	total, seen, next int
}

func newProgress(total int) *progress {
	return &progress{total: total, next: total / 10}
}

func (p *progress) OnStep(x dynamo.State, t float64) {
	p.seen++
	if p.seen < p.next && p.seen != p.total {
		return
	}
	p.next += max(p.total/10, 1)
	logger.Debug("simulating", "sample", p.seen, "of", p.total, "t", t,
		predprey.OutcomePrey, x[predprey.PreyIdx], predprey.OutcomePredators, x[predprey.PredatorIdx])
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available parameter presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBIRTH\tPREDATION\tEFFICIENCY\tLOSS\tPREY\tPREDATORS\tTIME\tDT")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%.4g\t%g\t%g\n",
					name, p.PreyBirthRate, p.PredationRate, p.PredatorEfficiency, p.PredatorLossRate,
					p.InitialPrey, p.InitialPredators, p.FinalTime, p.Dt)
			}
			return w.Flush()
		},
	}
}

func newBenchCmd() *cobra.Command {
	var reps int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark integrators across step sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return benchIntegrators(reps)
		},
	}
	cmd.Flags().IntVar(&reps, "reps", 20, "repetitions per cell")
	return cmd
}

func benchIntegrators(reps int) error {
	if reps < 1 {
		return fmt.Errorf("reps must be positive, got %d", reps)
	}

	registry := experiment.NewRegistry()
	dts := []float64{1, 0.25, 0.01}

	fmt.Println(styles.Title.Render("benchmarking native model"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tDT\tSAMPLES\tTIME/RUN\tSAMPLES/SEC")

	for _, name := range registry.ListIntegrators() {
		for _, dt := range dts {
			p := predprey.DefaultParams()
			p.Dt = dt

			integ, err := registry.GetIntegrator(name)
			if err != nil {
				return err
			}

			var samples int
			start := time.Now()
			for i := 0; i < reps; i++ {
				traj, err := predprey.SimulateWith(p, integ)
				if err != nil {
					return err
				}
				samples = traj.Len()
			}
			perRun := time.Since(start) / time.Duration(reps)

			fmt.Fprintf(w, "%s\t%.4g\t%d\t%v\t%.0f\n",
				name, dt, samples, perRun, float64(samples)/perRun.Seconds())
		}
	}

	return w.Flush()
}
