package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tphakala/cocatalog/cmd/audit"
	"github.com/tphakala/cocatalog/cmd/dump"
	"github.com/tphakala/cocatalog/cmd/version"
	"github.com/tphakala/cocatalog/internal/app"
)

// RootCommand creates and returns the root command
func RootCommand(ctx *app.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cocatalog",
		Short:         "Read Capture One catalogs",
		Long:          "Dump and audit the contents of a Capture One catalog without modifying it.",
		Version:       ctx.Build.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up the global flags for the root command.
	if err := setupFlags(rootCmd, ctx); err != nil {
		// Flag binding only fails on a programming error.
		panic(err)
	}

	// Add sub-commands to the root command.
	rootCmd.AddCommand(
		dump.Command(ctx),
		audit.Command(ctx),
		version.Command(ctx),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return ctx.Initialize()
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, ctx *app.Context) error {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.ConfigFile, "config", "c", "", "Path to config.yaml (default: search ., ~/.config/cocatalog, /etc/cocatalog)")
	flags.BoolP("debug", "d", false, "Enable debug output")
	flags.StringP("format", "f", "table", "Output format: table, json, yaml")
	flags.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	flags.String("metrics-textfile", "", "Write prometheus metrics to this file on exit")

	bindings := map[string]string{
		"debug":            "debug",
		"format":           "output.format",
		"log-level":        "logging.level",
		"metrics-textfile": "metrics.textfile",
	}
	for flag, key := range bindings {
		if err := ctx.Viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("error binding flag %s: %w", flag, err)
		}
	}

	return nil
}
