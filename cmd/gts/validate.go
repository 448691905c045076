/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

func newValidateInstanceCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:     "validate-instance",
		Short:   "validate an instance against its schema",
		Example: `  gts --path ./examples validate-instance --gts-id gts.vendor.pkg.ns.type.v1.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := createStore()
			return writeJSON(store.ValidateInstance(id))
		},
	}

	cmd.Flags().StringVar(&id, "gts-id", "", "GTS ID of the instance (required)")
	cmd.MarkFlagRequired("gts-id")
	return cmd
}
