/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// ExcludeList holds directory names skipped entirely during a recursive scan.
var ExcludeList = []string{"node_modules", "dist", "build"}

var jsonValidExtensions = map[string]bool{
	".json":  true,
	".jsonc": true,
	".gts":   true,
}

// expandHomePaths rewrites any "~/"-prefixed path to sit under the current
// user's home directory, leaving paths that fail to expand untouched.
func expandHomePaths(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if strings.HasPrefix(p, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				p = filepath.Join(home, p[2:])
			}
		}
		out[i] = p
	}
	return out
}

// collectFilesByExt walks paths (files or directories) and returns the
// de-duplicated, symlink-resolved set of files whose extension is in exts.
// Directories named in ExcludeList are pruned entirely during the walk.
func collectFilesByExt(paths []string, exts map[string]bool) []string {
	seen := make(map[string]bool)
	var collected []string

	addIfMatch := func(path string) {
		if !exts[strings.ToLower(filepath.Ext(path))] {
			return
		}
		real, err := filepath.EvalSymlinks(path)
		if err != nil {
			real = path
		}
		if !seen[real] {
			seen[real] = true
			collected = append(collected, real)
		}
	}

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		info, err := os.Stat(absPath)
		if err != nil {
			continue
		}

		if !info.IsDir() {
			addIfMatch(absPath)
			continue
		}

		_ = filepath.Walk(absPath, func(walkPath string, walkInfo os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return nil
			}
			if walkInfo.IsDir() {
				for _, exclude := range ExcludeList {
					if walkInfo.Name() == exclude {
						return filepath.SkipDir
					}
				}
				return nil
			}
			addIfMatch(walkPath)
			return nil
		})
	}

	return collected
}

// entitiesFromDecoded turns a file's decoded content (a single object or an
// array of objects, as produced by either JSON or YAML decoding) into the
// JsonEntity values that carry a resolvable GTS ID.
func entitiesFromDecoded(content any, cfg *GtsConfig, source *JsonFile) []*JsonEntity {
	var entities []*JsonEntity

	switch v := content.(type) {
	case []any:
		for idx, item := range v {
			itemMap, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if e := NewJsonEntityWithFile(itemMap, cfg, source, &idx); e.GtsID != nil {
				entities = append(entities, e)
			}
		}
	case map[string]any:
		if e := NewJsonEntityWithFile(v, cfg, source, nil); e.GtsID != nil {
			entities = append(entities, e)
		}
	}

	return entities
}

// fileReaderCursor is the shared next()/reset() bookkeeping for a reader that
// lazily enumerates files then entities within each file in turn.
type fileReaderCursor struct {
	files               []string
	currentIndex        int
	currentFileEntities []*JsonEntity
	currentEntityIndex  int
	initialized         bool
}

// advance returns the cursor's next entity, loading files via collect (run
// once) and entities per-file via loadEntities, or nil once exhausted.
func (c *fileReaderCursor) advance(collect func(), loadEntities func(path string) []*JsonEntity) *JsonEntity {
	if !c.initialized {
		collect()
		c.initialized = true
	}

	if c.currentEntityIndex < len(c.currentFileEntities) {
		e := c.currentFileEntities[c.currentEntityIndex]
		c.currentEntityIndex++
		return e
	}

	for c.currentIndex < len(c.files) {
		c.currentFileEntities = loadEntities(c.files[c.currentIndex])
		c.currentIndex++
		c.currentEntityIndex = 0

		if len(c.currentFileEntities) > 0 {
			e := c.currentFileEntities[c.currentEntityIndex]
			c.currentEntityIndex++
			return e
		}
	}

	return nil
}

func (c *fileReaderCursor) reset() {
	*c = fileReaderCursor{}
}

// GtsFileReader enumerates JSON entities (".json", ".jsonc", ".gts") found
// under a set of file or directory paths.
type GtsFileReader struct {
	paths  []string
	cfg    *GtsConfig
	cursor fileReaderCursor
}

// NewGtsFileReader builds a file reader over the given paths.
func NewGtsFileReader(paths []string, cfg *GtsConfig) *GtsFileReader {
	if cfg == nil {
		cfg = DefaultGtsConfig()
	}
	return &GtsFileReader{paths: expandHomePaths(paths), cfg: cfg}
}

// NewGtsFileReaderFromPath builds a file reader over a single path.
func NewGtsFileReaderFromPath(path string, cfg *GtsConfig) *GtsFileReader {
	return NewGtsFileReader([]string{path}, cfg)
}

func (r *GtsFileReader) collectFiles() {
	r.cursor.files = collectFilesByExt(r.paths, jsonValidExtensions)
}

func (r *GtsFileReader) processFile(filePath string) []*JsonEntity {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	var content any
	if err := json.Unmarshal(data, &content); err != nil {
		return nil
	}
	source := &JsonFile{Path: filePath, Name: filepath.Base(filePath), Content: content}
	return entitiesFromDecoded(content, r.cfg, source)
}

// Next returns the next JsonEntity, or nil once every collected file has
// been exhausted.
func (r *GtsFileReader) Next() *JsonEntity {
	return r.cursor.advance(r.collectFiles, r.processFile)
}

// ReadByID always returns nil: GtsFileReader has no random-access index.
func (r *GtsFileReader) ReadByID(entityID string) *JsonEntity {
	return nil
}

// Reset rewinds the reader to re-scan from the beginning.
func (r *GtsFileReader) Reset() {
	r.cursor.reset()
}
