/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCastCmd() *cobra.Command {
	var fromID, toSchemaID string

	cmd := &cobra.Command{
		Use:     "cast",
		Short:   "cast an instance to a target schema",
		Example: `  gts --path ./examples cast --from-id gts.v.p.n.t.v1.0 --to-schema-id gts.v.p.n.t.v2~`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := createStore()
			result, err := store.Cast(fromID, toSchemaID)
			if err != nil {
				return fmt.Errorf("cast failed: %w", err)
			}
			return writeJSON(result)
		},
	}

	cmd.Flags().StringVar(&fromID, "from-id", "", "GTS ID of the instance to cast; IDs ending in '~' are rejected (required)")
	cmd.Flags().StringVar(&toSchemaID, "to-schema-id", "", "GTS ID of target schema (required)")
	cmd.MarkFlagRequired("from-id")
	cmd.MarkFlagRequired("to-schema-id")
	return cmd
}
