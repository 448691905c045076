/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"

	"github.com/entityregistry/gts/gts"
)

func newValidateIDCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "validate-id",
		Short: "validate a GTS ID format",
		Example: `  gts validate-id --gts-id gts.vendor.pkg.ns.type.v1~`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(gts.ValidateGtsID(id))
		},
	}

	cmd.Flags().StringVar(&id, "gts-id", "", "GTS ID to validate (required)")
	cmd.MarkFlagRequired("gts-id")
	return cmd
}
