/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"

	"github.com/entityregistry/gts/gts"
)

func newMatchIDPatternCmd() *cobra.Command {
	var pattern, candidate string

	cmd := &cobra.Command{
		Use:     "match-id-pattern",
		Short:   "match a GTS ID against a pattern",
		Example: `  gts match-id-pattern --pattern "gts.vendor.pkg.*" --candidate gts.vendor.pkg.ns.type.v1.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(gts.MatchIDPattern(candidate, pattern))
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "pattern to match against (required)")
	cmd.Flags().StringVar(&candidate, "candidate", "", "candidate GTS ID (required)")
	cmd.MarkFlagRequired("pattern")
	cmd.MarkFlagRequired("candidate")
	return cmd
}
