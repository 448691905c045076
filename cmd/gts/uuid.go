/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"

	"github.com/entityregistry/gts/gts"
)

func newUUIDCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:     "uuid",
		Short:   "generate a deterministic UUID from a GTS ID",
		Example: `  gts uuid --gts-id gts.vendor.pkg.ns.type.v1~`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(gts.IDToUUID(id))
		},
	}

	cmd.Flags().StringVar(&id, "gts-id", "", "GTS ID (required)")
	cmd.MarkFlagRequired("gts-id")
	return cmd
}
