/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

func newAttrCmd() *cobra.Command {
	var gtsWithPath string

	cmd := &cobra.Command{
		Use:     "attr",
		Short:   "get an attribute value from a GTS entity via @path notation",
		Example: `  gts --path ./examples attr --gts-with-path gts.vendor.pkg.ns.type.v1.0@name`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := createStore()
			return writeJSON(store.GetAttribute(gtsWithPath))
		},
	}

	cmd.Flags().StringVar(&gtsWithPath, "gts-with-path", "", "GTS ID with attribute path (required)")
	cmd.MarkFlagRequired("gts-with-path")
	return cmd
}
