package main

import (
	"fmt"
	"os"

	"mini-storefront/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Mini storefront with a filterable catalogue and a persistent cart",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
	flags.String("store", "", "cart store backend (memory, sqlite, postgres); overrides STORE_BACKEND")
	flags.String("sqlite-path", "", "sqlite database file; overrides STORE_SQLITE_PATH")
	flags.String("catalog", "", "catalogue source (static, file, s3); overrides CATALOG_SOURCE")
	flags.String("catalog-file", "", "catalogue file or object name; overrides CATALOG_FILE")

	root.AddCommand(newServeCmd(), newTUICmd(), newMigrateCmd())

	return root
}

// loadConfig reads the environment, applies explicitly set flags and validates the result.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.FromEnv()

	if err := applyFlags(flags, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyFlags copies the flags the user set onto cfg. Unset flags leave the
// environment values alone.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	stringFlags := map[string]*string{
		"host":         &cfg.Server.Host,
		"log-level":    &cfg.Logger.Level,
		"store":        &cfg.Store.Backend,
		"sqlite-path":  &cfg.Store.SQLitePath,
		"catalog":      &cfg.Catalog.Source,
		"catalog-file": &cfg.Catalog.File,
	}

	for name, dst := range stringFlags {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return fmt.Errorf("failed to read --%s: %w", name, err)
		}
		*dst = v
	}

	if flags.Lookup("port") != nil && flags.Changed("port") {
		port, err := flags.GetInt("port")
		if err != nil {
			return fmt.Errorf("failed to read --port: %w", err)
		}
		cfg.Server.Port = port
	}

	return nil
}
