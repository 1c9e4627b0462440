package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/export"
	"github.com/san-kum/predprey/internal/predprey"
	"github.com/san-kum/predprey/internal/storage"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
}

func newPlotCmd() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot prey and predators of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return plotRun(args[0], width, height)
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "plot width")
	cmd.Flags().IntVar(&height, "height", 15, "plot height")
	return cmd
}

func newExportCSVCmd() *cobra.Command {
	var outcomes []string

	cmd := &cobra.Command{
		Use:   "export-csv [run-id]",
		Short: "write a run's outcomes as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := outcomeNames(cmd, outcomes)
			if err != nil {
				return err
			}
			return withRun(args[0], func(meta *storage.RunMetadata, traj predprey.Trajectory) error {
				return storage.WriteOutcomes(csv.NewWriter(cmd.OutOrStdout()), traj.Outcomes(), names)
			})
		},
	}
	cmd.Flags().StringSliceVar(&outcomes, "outcomes", nil, "outcomes to export (default from config)")
	return cmd
}

func newExportJSONCmd() *cobra.Command {
	var outcomes []string

	cmd := &cobra.Command{
		Use:   "export-json [run-id]",
		Short: "write a run's metadata and outcomes as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := outcomeNames(cmd, outcomes)
			if err != nil {
				return err
			}
			return withRun(args[0], func(meta *storage.RunMetadata, traj predprey.Trajectory) error {
				return storage.ExportJSON(cmd.OutOrStdout(), *meta, traj, names)
			})
		},
	}
	cmd.Flags().StringSliceVar(&outcomes, "outcomes", nil, "outcomes to export (default from config)")
	return cmd
}

// outcomeNames returns the --outcomes flag when set, else the config's list.
func outcomeNames(cmd *cobra.Command, flagValue []string) ([]string, error) {
	if cmd.Flags().Changed("outcomes") {
		return flagValue, nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	return cfg.Outcomes, nil
}

func newExportSVGCmd() *cobra.Command {
	var (
		phase bool
		out   string
		opts  = export.DefaultOptions()
	)

	cmd := &cobra.Command{
		Use:   "export-svg [run-id]",
		Short: "render a run as an SVG chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRun(args[0], func(meta *storage.RunMetadata, traj predprey.Trajectory) error {
				series := export.TimeSeries(traj)
				if phase {
					series = export.Phase(traj)
				}

				if out == "" {
					return export.WriteSVG(os.Stdout, series, opts)
				}
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := export.WriteSVG(f, series, opts); err != nil {
					return err
				}
				logger.Info("svg written", "path", out, "run", meta.ID)
				return f.Close()
			})
		},
	}
	cmd.Flags().BoolVar(&phase, "phase", false, "draw predators against prey instead of time series")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().IntVar(&opts.Height, "height", opts.Height, "canvas height")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [run-id]",
		Short: "delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := storage.Open(dataDir, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}
}

// withRun opens the store and hands the run's metadata and trajectory to fn.
func withRun(runID string, fn func(*storage.RunMetadata, predprey.Trajectory) error) error {
	st, err := storage.Open(dataDir, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	return fn(meta, traj)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tHORIZON\tDT\tINTEG\tSAMPLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%s\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.FinalTime,
			run.Params.Dt,
			run.Integrator,
			run.Samples,
		)
	}

	return w.Flush()
}

func plotRun(runID string, width, height int) error {
	return withRun(runID, func(meta *storage.RunMetadata, traj predprey.Trajectory) error {
		if traj.Len() == 0 {
			return fmt.Errorf("no data to plot")
		}

		fmt.Printf("run: %s\n", meta.ID)
		fmt.Printf("model: %s (%s)\n", meta.Model, meta.Integrator)
		fmt.Printf("samples: %d\n\n", traj.Len())

		graph := asciigraph.PlotMany([][]float64{withGaps(traj.Prey), withGaps(traj.Predators)},
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
			asciigraph.Caption(fmt.Sprintf("prey (green) / predators (red), t = 0..%g", traj.Time[traj.Len()-1])),
		)
		fmt.Println(graph)
		return nil
	})
}

// withGaps replaces ±Inf with NaN, which asciigraph leaves blank.
func withGaps(series []float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		if math.IsInf(v, 0) {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}
