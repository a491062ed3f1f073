package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of foredeck.",
	Long: `Display the release version along with the commit, build timestamp and Go
runtime the binary was produced with. Include this output when reporting a
bug or checking that an install picked up the release you expect.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("foredeck %s (commit %s, built %s, %s)\n", version, commit, date, runtime.Version())
	},
}
