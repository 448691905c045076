/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "list entities currently held by the store",
		Example: `  gts --path ./examples list --limit 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := createStore()
			return writeJSON(store.List(limit))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of entities to return")
	return cmd
}
