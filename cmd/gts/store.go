/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/entityregistry/gts/gts"
)

// createStore builds a GtsStore from the --path/--config persistent flags.
func createStore() *gts.GtsStore {
	var reader gts.GtsReader

	if globalPath != "" {
		paths := make([]string, 0)
		for _, p := range strings.Split(globalPath, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}

		var cfg *gts.GtsConfig
		if globalConfig != "" {
			cfg = loadIDFieldConfig(globalConfig)
		}

		reader = gts.NewGtsFileReader(paths, cfg)
	}

	return gts.NewGtsStore(reader)
}

// loadIDFieldConfig loads entity/schema id-field overrides from a JSON config
// file; a list the file omits keeps its default.
func loadIDFieldConfig(path string) *gts.GtsConfig {
	f, err := os.Open(path)
	if err != nil {
		slog.Warn("could not open config file", "path", path, "error", err)
		return gts.DefaultGtsConfig()
	}
	defer f.Close()

	var data struct {
		EntityIDFields []string `json:"entity_id_fields"`
		SchemaIDFields []string `json:"schema_id_fields"`
	}

	if err := json.NewDecoder(f).Decode(&data); err != nil {
		slog.Warn("could not parse config file", "path", path, "error", err)
		return gts.DefaultGtsConfig()
	}

	cfg := gts.DefaultGtsConfig()
	if data.EntityIDFields != nil {
		cfg.EntityIDFields = data.EntityIDFields
	}
	if data.SchemaIDFields != nil {
		cfg.SchemaIDFields = data.SchemaIDFields
	}
	return cfg
}

// writeJSON writes v as indented JSON to stdout.
func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writeJSONFile writes v as indented JSON to the file at path.
func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
