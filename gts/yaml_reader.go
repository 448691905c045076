/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

var yamlValidExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
}

// GtsYAMLFileReader enumerates JSON entities out of YAML documents
// (".yaml"/".yml"), decoding each into the same map[string]any/[]any shape
// the JSON reader produces so extraction never needs to know the source
// format. It shares its directory-walk and exclude-list behavior with
// GtsFileReader through collectFilesByExt/entitiesFromDecoded and differs
// only in the decode step.
type GtsYAMLFileReader struct {
	paths  []string
	cfg    *GtsConfig
	cursor fileReaderCursor
}

// NewGtsYAMLFileReader builds a YAML-capable file reader over the given paths.
func NewGtsYAMLFileReader(paths []string, cfg *GtsConfig) *GtsYAMLFileReader {
	if cfg == nil {
		cfg = DefaultGtsConfig()
	}
	return &GtsYAMLFileReader{paths: expandHomePaths(paths), cfg: cfg}
}

// NewGtsYAMLFileReaderFromPath builds a YAML-capable file reader over a single path.
func NewGtsYAMLFileReaderFromPath(path string, cfg *GtsConfig) *GtsYAMLFileReader {
	return NewGtsYAMLFileReader([]string{path}, cfg)
}

func (r *GtsYAMLFileReader) collectFiles() {
	r.cursor.files = collectFilesByExt(r.paths, yamlValidExtensions)
}

func (r *GtsYAMLFileReader) processFile(filePath string) []*JsonEntity {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	var content any
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil
	}
	source := &JsonFile{Path: filePath, Name: filepath.Base(filePath), Content: content}
	return entitiesFromDecoded(content, r.cfg, source)
}

// Next returns the next JsonEntity, or nil once every collected file has
// been exhausted.
func (r *GtsYAMLFileReader) Next() *JsonEntity {
	return r.cursor.advance(r.collectFiles, r.processFile)
}

// ReadByID always returns nil: GtsYAMLFileReader has no random-access index.
func (r *GtsYAMLFileReader) ReadByID(entityID string) *JsonEntity {
	return nil
}

// Reset rewinds the reader to re-scan from the beginning.
func (r *GtsYAMLFileReader) Reset() {
	r.cursor.reset()
}
