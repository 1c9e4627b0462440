package main

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/predprey/internal/analysis"
	"github.com/san-kum/predprey/internal/predprey"
	"github.com/san-kum/predprey/internal/storage"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var spectrum bool

	cmd := &cobra.Command{
		Use:   "analyze [run-id]",
		Short: "oscillation and frequency analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRun(args[0], func(meta *storage.RunMetadata, traj predprey.Trajectory) error {
				return analyzeRun(meta, traj, spectrum)
			})
		},
	}
	cmd.Flags().BoolVar(&spectrum, "spectrum", false, "plot prey power spectrum")
	return cmd
}

func analyzeRun(meta *storage.RunMetadata, traj predprey.Trajectory, spectrum bool) error {
	if traj.Len() < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Println(styles.Title.Render("analysis: " + meta.ID))
	fmt.Printf("model: %s (%s)\n", meta.Model, meta.Integrator)
	if prey, pred, ok := predprey.NewSystem(meta.Params).Equilibrium(); ok {
		fmt.Printf("equilibrium: prey %.4f, predators %.4f\n", prey, pred)
	}
	if traj.Diverged() {
		fmt.Println(styles.Warn.Render("populations overflowed to Inf/NaN"))
	}
	fmt.Println()

	series := []struct {
		name string
		data []float64
	}{
		{predprey.OutcomePrey, traj.Prey},
		{predprey.OutcomePredators, traj.Predators},
	}

	for _, s := range series {
		lo, hi := analysis.Extrema(s.data)
		fmt.Println(styles.Header.Render(s.name))
		fmt.Printf("  range:          [%.4f, %.4f]\n", lo, hi)
		fmt.Printf("  turning points: %d\n", analysis.TurningPoints(s.data))
		fmt.Printf("  oscillatory:    %v\n", analysis.IsOscillatory(s.data))
		if period, ok := analysis.DominantPeriod(s.data, meta.Params.Dt); ok {
			fmt.Printf("  period:         %.2f\n", period)
		} else {
			fmt.Println(styles.Warn.Render("  period:         none"))
		}
	}

	if spectrum {
		ps := analysis.PowerSpectrum(traj.Prey)
		if len(ps) < 8 {
			return fmt.Errorf("too few samples for a spectrum: %d", traj.Len())
		}
		plotData := ps[1 : len(ps)/4+1]
		fmt.Println()
		fmt.Println(asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (prey)"),
		))
	}

	return nil
}
