package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/predprey/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	verbose    bool
	themeName  string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "predprey",
		Level:  log.InfoLevel,
	})

	styles = viz.NewStyles(viz.DefaultTheme)
)

// main is the entry point for the predprey CLI; it registers commands and
// exits with status 1 if command execution returns an error.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "predprey",
		Short:         "predator-prey simulation lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.SetLevel(log.InfoLevel)
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
			theme, ok := viz.GetTheme(themeName)
			if !ok {
				return fmt.Errorf("unknown theme: %s (available: %v)", themeName, viz.ListThemes())
			}
			styles = viz.NewStyles(theme)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".predprey", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", viz.DefaultTheme.Name, "output color theme")

	rootCmd.AddCommand(
		newRunCmd(),
		newListCmd(),
		newPlotCmd(),
		newExportCSVCmd(),
		newExportJSONCmd(),
		newExportSVGCmd(),
		newDeleteCmd(),
		newAnalyzeCmd(),
		newCompareCmd(),
		newScenarioCmd(),
		newPresetsCmd(),
		newBenchCmd(),
	)
	return rootCmd
}
