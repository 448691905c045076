/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

func newResolveRelationshipsCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:     "resolve-relationships",
		Short:   "resolve the schema reference graph for an entity",
		Example: `  gts --path ./examples resolve-relationships --gts-id gts.vendor.pkg.ns.type.v1~`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := createStore()
			return writeJSON(store.BuildSchemaGraph(id))
		},
	}

	cmd.Flags().StringVar(&id, "gts-id", "", "GTS ID of the entity (required)")
	cmd.MarkFlagRequired("gts-id")
	return cmd
}
