package cmd

import (
	"fmt"

	"github.com/arboclima/arboclima/internal/contract"
	"github.com/arboclima/arboclima/internal/iocache"
	"github.com/arboclima/arboclima/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize persistence with the loaded config
	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by the analyze command. This avoids series
// ingestion and request validation for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the correlation result cache",
	Long: `Manage the cache of memoized correlation results.

Arboclima caches each computed correlation by its request fingerprint,
so repeating an analysis never recomputes a lag it has already seen.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (in-memory)

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached results
  export  - Export cached results to a Parquet file
  migrate - Apply schema migrations to the cache database

Examples:
  # Check cache status
  arboclima cache status

  # Clear cache after reloading source data
  arboclima cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached correlation results",
	Long: `Delete all memoized correlation results from the configured backend.

Use this when:
- Source series files were corrected or reloaded
- Cache may be stale or corrupted
- Testing performance without cache

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the results table

Examples:
  # Clear SQLite cache (default)
  arboclima cache clear

  # Clear MySQL cache (set connection string via env variable)
  ARBOCLIMA_CACHE_BACKEND=mysql ARBOCLIMA_CACHE_DB_CONNECT="..." arboclima cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearResults(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the correlation result cache.

Displays:
- Backend type and connection status
- Total number of cached results
- Last and oldest cache entry timestamps
- Cache database size

Examples:
  # Check cache status
  arboclima cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetResultStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}

// cacheExportCmd exports cached results to Parquet.
var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export cached correlation results to a Parquet file",
	Long: `Write every cached correlation result to a Parquet file for
downstream analysis in notebooks or warehouses.

Requires --output-file.

Examples:
  # Export all cached results
  arboclima cache export --output-file results.parquet`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteResultExport(viper.GetString("output-file")); err != nil {
			contract.LogFatal("Failed to export results", err)
		}
	},
}

// cacheMigrateCmd applies schema migrations to the cache database.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations to the cache database",
	Long: `Run embedded schema migrations against the configured cache backend.

By default migrates to the latest version. Use --target-version to pin
a specific version, or 0 to roll back to an empty schema.

Examples:
  # Migrate to the latest schema
  arboclima cache migrate

  # Roll back everything
  arboclima cache migrate --target-version 0`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.MigrateResults(cfg.CacheBackend, cfg.CacheDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to migrate cache database", err)
		}
	},
}
