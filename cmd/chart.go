package cmd

import (
	"github.com/spf13/cobra"

	"github.com/foredeck/foredeck/core"
	"github.com/foredeck/foredeck/internal/contract"
)

// chartCmd renders a view to PNG files.
var chartCmd = &cobra.Command{
	Use:   "chart [dataset-dir]",
	Short: "Render a prepared view as PNG charts.",
	Long: `Build the configured view and render it to PNG: one chart for the combined
series (handoff bridges drawn dashed) and one chart per driver signal, bars
or lines per its classification.

Examples:
  # Render the projection view into the current directory
  foredeck chart ./data --view projection

  # Render larger charts into a dedicated directory
  foredeck chart ./data --chart-dir ./charts --chart-width 1600 --chart-height 700`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChart(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot render charts", err)
		}
	},
}
