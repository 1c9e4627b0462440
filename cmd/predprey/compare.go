package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/predprey/internal/analysis"
	"github.com/san-kum/predprey/internal/automation"
	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/experiment"
	"github.com/san-kum/predprey/internal/metrics"
	"github.com/san-kum/predprey/internal/predprey"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newCompareCmd() *cobra.Command {
	var (
		pf    paramFlags
		integ []string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "run one parameter set under several integrators and diff them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pf.resolve(cmd)
			if err != nil {
				return err
			}
			return compareIntegrators(cmd.Context(), cfg, integ)
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().StringSliceVar(&integ, "with", []string{"euler", "heun", "rk4"},
		"integrators to compare; the first is the reference")
	return cmd
}

func compareIntegrators(ctx context.Context, cfg *config.Config, names []string) error {
	if len(names) < 2 {
		return fmt.Errorf("compare needs at least two integrators, got %d", len(names))
	}

	registry := experiment.NewRegistry()
	results := make([]*experiment.Result, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			exp := experiment.New(experiment.Config{
				Model:      cfg.Model,
				Integrator: name,
				Params:     cfg.Params,
			})
			if err := exp.Setup(registry); err != nil {
				return err
			}
			res, err := exp.Run(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			logger.Debug("integrator finished", "name", name, "elapsed", res.Elapsed)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Println(styles.Title.Render(fmt.Sprintf("reference: %s", names[0])))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tOUTCOME\tMAX ABS\tRMS\tFINAL REL")

	ref := results[0].Outcomes()
	for i := 1; i < len(results); i++ {
		diffs, err := analysis.CompareOutcomes(ref, results[i].Outcomes())
		if err != nil {
			return fmt.Errorf("compare %s: %w", names[i], err)
		}
		writeDifferences(w, names[i], diffs)
	}
	return w.Flush()
}

func writeDifferences(w *tabwriter.Writer, name string, diffs []analysis.Difference) {
	for _, d := range diffs {
		fmt.Fprintf(w, "%s\t%s\t%.6g\t%.6g\t%.3f%%\n", name, d.Outcome, d.MaxAbs, d.RMS, 100*d.FinalRel)
	}
}

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a comparison scenario from a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}

			report, err := automation.RunScenario(cmd.Context(), scenario, experiment.NewRegistry(), logger)
			if err != nil {
				return err
			}
			return printReport(report)
		},
	}
}

func metricCell(values map[string]float64, name string) string {
	v, err := metrics.Lookup(values, name)
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%.4g", v)
}

func printReport(report *automation.Report) error {
	fmt.Println(styles.Title.Render("scenario: " + report.Scenario))
	fmt.Printf("reference: %s\n\n", report.Reference)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "IMPLEMENTATION\tINTEGRATOR\tSAMPLES\tELAPSED\tOSCILLATORY\tPEAK PREY\tPEAK PREDATORS")
	for _, run := range report.Runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%v\t%s\t%s\n",
			run.Implementation.Name,
			run.Implementation.Integrator,
			run.Result.Trajectory.Len(),
			run.Result.Elapsed,
			analysis.IsOscillatory(run.Result.Trajectory.Prey),
			metricCell(run.Result.Metrics, "peak_"+predprey.OutcomePrey),
			metricCell(run.Result.Metrics, "peak_"+predprey.OutcomePredators),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(styles.Header.Render("differences"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "IMPLEMENTATION\tOUTCOME\tMAX ABS\tRMS\tFINAL REL")
	for _, run := range report.Runs {
		if run.Differences == nil {
			continue
		}
		writeDifferences(w, run.Implementation.Name, run.Differences)
	}
	return w.Flush()
}
