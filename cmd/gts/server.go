/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/entityregistry/gts/server"
)

func newServerCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:     "server",
		Short:   "start the GTS HTTP server",
		Example: `  gts --path ./examples server --host 127.0.0.1 --port 8000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := createStore()

			fmt.Printf("starting the server @ http://%s:%d\n", host, port)
			verbose := 0
			if slog.Default().Enabled(cmd.Context(), slog.LevelDebug) {
				verbose = 1
			}

			srv := server.NewServer(store, host, port, verbose)
			return srv.Start()
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "host to bind to")
	cmd.Flags().IntVar(&port, "port", 8000, "port to listen on")
	return cmd
}
