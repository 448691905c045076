/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

func newCompatibilityCmd() *cobra.Command {
	var oldID, newID string

	cmd := &cobra.Command{
		Use:     "compatibility",
		Short:   "check compatibility between two schema versions",
		Example: `  gts --path ./examples compatibility --old-schema-id gts.v.p.n.t.v1~ --new-schema-id gts.v.p.n.t.v2~`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := createStore()
			return writeJSON(store.CheckCompatibility(oldID, newID))
		},
	}

	cmd.Flags().StringVar(&oldID, "old-schema-id", "", "GTS ID of old schema (required)")
	cmd.Flags().StringVar(&newID, "new-schema-id", "", "GTS ID of new schema (required)")
	cmd.MarkFlagRequired("old-schema-id")
	cmd.MarkFlagRequired("new-schema-id")
	return cmd
}
