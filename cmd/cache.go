package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/foredeck/foredeck/core"
	"github.com/foredeck/foredeck/internal/contract"
	"github.com/foredeck/foredeck/schema"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.CacheBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	switch backend {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend, schema.NoneBackend:
	default:
		return fmt.Errorf("invalid cache backend %q: must be sqlite, mysql, postgresql or none", backend)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on story cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by dataset commands. This avoids dataset parsing
// and window validation for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local story cache",
	Long: `Manage the database that backs the "local" story source.

Published stories live here and outrank live or bundled duplicates during
reconciliation.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show cache backend and story count
  clear   - Remove all cached stories
  migrate - Run cache schema migrations

Examples:
  # Check cache status
  foredeck cache status

  # Clear the cache after republishing everything
  foredeck cache clear`,
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display story cache backend and row count",
	Long: `Show the configured cache backend and how many stories it holds.

Examples:
  # Check the default SQLite cache
  foredeck cache status

  # Check a shared MySQL cache
  FOREDECK_CACHE_BACKEND=mysql FOREDECK_CACHE_DB_CONNECT="..." foredeck cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCacheStatus(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to read cache status", err)
		}
	},
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached stories",
	Long: `Delete every story from the configured cache backend.

Use this when:
- A published batch should be withdrawn entirely
- The cache may hold stale or corrupted rows
- Testing reconciliation without local overrides

Examples:
  # Clear the SQLite cache (default)
  foredeck cache clear

  # Clear a PostgreSQL cache (set connection string via env variable)
  FOREDECK_CACHE_BACKEND=postgresql FOREDECK_CACHE_DB_CONNECT="..." foredeck cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCacheClear(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
	},
}

// cacheMigrateCmd runs cache schema migrations.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run story cache schema migrations",
	Long: `Apply the embedded schema migrations to the story cache database.

Examples:
  # Migrate to the latest version
  foredeck cache migrate

  # Roll back to the initial state
  foredeck cache migrate --target-version 0`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := core.ExecuteCacheMigrate(rootCtx, cfg, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate cache", err)
		}
	},
}
