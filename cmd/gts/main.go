/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/entityregistry/gts/internal/logconfig"
)

var (
	globalPath   string
	globalConfig string
	logCfg       = logconfig.NewConfig()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "gts",
		Short:         "GTS helpers CLI",
		Long:          "gts inspects, validates, casts, and queries Global Type System entities and schemas.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&globalPath, "path", "", "path(s) to JSON/schema files or directories (comma-separated)")
	rootCmd.PersistentFlags().StringVar(&globalConfig, "config", "", "path to optional GTS config JSON overriding default id-field lists")
	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		slog.Warn("failed to register log flag completions", "error", err)
	}

	rootCmd.AddCommand(
		newValidateIDCmd(),
		newParseIDCmd(),
		newMatchIDPatternCmd(),
		newUUIDCmd(),
		newValidateInstanceCmd(),
		newResolveRelationshipsCmd(),
		newCompatibilityCmd(),
		newCastCmd(),
		newQueryCmd(),
		newAttrCmd(),
		newListCmd(),
		newServerCmd(),
		newOpenAPISpecCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
