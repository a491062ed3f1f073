package cmd

import (
	"github.com/spf13/cobra"

	"github.com/foredeck/foredeck/core"
	"github.com/foredeck/foredeck/internal/contract"
)

// prepareCmd builds a chart-ready view from a dataset directory.
var prepareCmd = &cobra.Command{
	Use:   "prepare [dataset-dir]",
	Short: "Reconcile a dataset into a chart-ready view.",
	Long: `Extract, combine and window the series of a dataset directory into one
chart-ready bundle: aligned rows, a normalized window, a padded axis domain
and classified driver signals.

The directory may contain historical, test_predictions, forecast and drivers
files in CSV or JSON form. Missing files are simply skipped.

Examples:
  # Evaluation view: history plus held-out test predictions
  foredeck prepare ./data --view evaluation

  # Projection view with the forecast handoff bridge
  foredeck prepare ./data --view projection

  # Restrict to a window and clamp the axis to zero
  foredeck prepare ./data --start 2024-01-01 --end 2024-06-30 --clamp-zero

  # Export the aligned rows for downstream tooling
  foredeck prepare ./data --output parquet --output-file view.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePrepare(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot prepare view", err)
		}
	},
}
