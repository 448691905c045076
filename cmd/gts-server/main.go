/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/entityregistry/gts/gts"
	"github.com/entityregistry/gts/internal/logconfig"
	"github.com/entityregistry/gts/server"
)

func main() {
	host := pflag.String("host", "127.0.0.1", "host to bind to")
	port := pflag.Int("port", 8000, "port to listen on")
	path := pflag.String("path", "", "path(s) to JSON/schema files or directories (comma-separated)")

	logCfg := logconfig.NewConfig()
	logCfg.RegisterFlags(pflag.CommandLine)
	pflag.Parse()

	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		slog.Error("invalid log configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(handler))

	var reader gts.GtsReader
	if *path != "" {
		var paths []string
		for _, p := range strings.Split(*path, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		reader = gts.NewGtsFileReader(paths, nil)
	}

	store := gts.NewGtsStore(reader)

	verbose := 0
	if logCfg.Level == "debug" {
		verbose = 1
	}

	srv := server.NewServer(store, *host, *port, verbose)
	if err := srv.Start(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
