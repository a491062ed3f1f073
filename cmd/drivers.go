package cmd

import (
	"github.com/spf13/cobra"

	"github.com/foredeck/foredeck/core"
	"github.com/foredeck/foredeck/internal/contract"
)

// driversCmd classifies the exogenous signals of a dataset.
var driversCmd = &cobra.Command{
	Use:   "drivers [dataset-dir]",
	Short: "Classify exogenous driver signals as bar or line.",
	Long: `Extract each driver column from the dataset's drivers file and decide how
it should render: small all-integer signals (holiday flags, promo counts)
become bars, continuous signals become lines. Each driver also gets its own
padded axis domain; bar drivers are clamped to start at zero.

Examples:
  # Discover and classify every driver column
  foredeck drivers ./data

  # Classify only the named signals
  foredeck drivers ./data --drivers holiday,temperature`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDrivers(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot classify drivers", err)
		}
	},
}
