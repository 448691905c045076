/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entityregistry/gts/server"
)

func newOpenAPISpecCmd() *cobra.Command {
	var out, host string
	var port int

	cmd := &cobra.Command{
		Use:     "openapi-spec",
		Short:   "generate the OpenAPI specification for the GTS server",
		Example: `  gts openapi-spec --out openapi.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := createStore()
			srv := server.NewServer(store, host, port, 0)
			spec := srv.GetOpenAPISpec()

			if err := writeJSONFile(out, spec); err != nil {
				return fmt.Errorf("writing OpenAPI spec: %w", err)
			}

			return writeJSON(map[string]any{"ok": true, "out": out})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "destination file path for OpenAPI spec JSON (required)")
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "server host")
	cmd.Flags().IntVar(&port, "port", 8000, "server port")
	cmd.MarkFlagRequired("out")
	return cmd
}
