/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"

	"github.com/entityregistry/gts/gts"
)

func newParseIDCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:     "parse-id",
		Short:   "parse a GTS ID into its components",
		Example: `  gts parse-id --gts-id gts.vendor.pkg.ns.type.v1.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(gts.ParseGtsID(id))
		},
	}

	cmd.Flags().StringVar(&id, "gts-id", "", "GTS ID to parse (required)")
	cmd.MarkFlagRequired("gts-id")
	return cmd
}
