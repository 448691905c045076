/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var expr string
	var limit int

	cmd := &cobra.Command{
		Use:     "query",
		Short:   "query entities using a GTS query expression",
		Example: `  gts --path ./examples query --expr "gts.vendor.pkg.*" --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := createStore()
			return writeJSON(store.Query(expr, limit))
		},
	}

	cmd.Flags().StringVar(&expr, "expr", "", "query expression (required)")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of entities to return")
	cmd.MarkFlagRequired("expr")
	return cmd
}
