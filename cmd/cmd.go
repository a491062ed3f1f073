// Package cmd defines the command-line interface for foredeck.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/foredeck/foredeck/internal/contract"
	"github.com/foredeck/foredeck/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(driversCmd)
	rootCmd.AddCommand(storiesCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the stories subcommands to the parent stories command
	storiesCmd.AddCommand(storiesPublishCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("view", string(schema.EvaluationView), "View kind: evaluation or projection")
	rootCmd.PersistentFlags().String("start", "", "Inclusive window start date in ISO8601")
	rootCmd.PersistentFlags().String("end", "", "Inclusive window end date in ISO8601")
	rootCmd.PersistentFlags().String("fields", "", "Comma-separated list of fields the axis domain scans")
	rootCmd.PersistentFlags().String("drivers", "", "Comma-separated list of driver columns (empty = discover)")
	rootCmd.PersistentFlags().Bool("clamp-zero", false, "Force the value axis to start at zero for non-negative series")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("feed-url", "", "Comma-separated RSS/Atom feed URLs for the live story stream")
	rootCmd.PersistentFlags().Bool("offline", false, "Skip the live story fetch")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Story cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("chart-dir", ".", "Directory to write rendered PNG charts into")
	rootCmd.PersistentFlags().Int("chart-width", contract.DefaultChartWidth, "Rendered chart width in pixels")
	rootCmd.PersistentFlags().Int("chart-height", contract.DefaultChartHeight, "Rendered chart height in pixels")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
