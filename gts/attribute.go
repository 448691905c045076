/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"strconv"
	"strings"
)

// AttributeResult is the outcome of resolving a "gts_id@path.to.field" selector.
type AttributeResult struct {
	GtsID           string   `json:"gts_id"`
	Path            string   `json:"path"`
	Value           any      `json:"value,omitempty"`
	Resolved        bool     `json:"resolved"`
	Error           string   `json:"error,omitempty"`
	AvailableFields []string `json:"available_fields,omitempty"`
}

// GetAttribute resolves a "gts_id@path" selector against the entity named by
// gts_id, where path may use dots for object fields and "[N]" for array
// indices (e.g. "items[0].name").
func (s *GtsStore) GetAttribute(gtsWithPath string) *AttributeResult {
	gtsID, path, hasPath := cutAttributePath(gtsWithPath)
	if !hasPath {
		return &AttributeResult{GtsID: gtsID, Error: "Attribute selector requires '@path' in the identifier"}
	}

	entity := s.Get(gtsID)
	if entity == nil {
		return &AttributeResult{GtsID: gtsID, Path: path, Error: fmt.Sprintf("Entity not found: %s", gtsID)}
	}

	resolver := &pathResolver{gtsID: gtsID, path: path}
	return resolver.resolve(entity.Content)
}

// cutAttributePath splits "gts_id@path" into its two halves; hasPath is false
// when no '@' was present at all, distinguishing "no selector" from "empty
// selector after '@'".
func cutAttributePath(gtsWithPath string) (gtsID, path string, hasPath bool) {
	before, after, found := strings.Cut(gtsWithPath, "@")
	if !found {
		return gtsWithPath, "", false
	}
	return before, after, true
}

// pathResolver walks a decoded JSON value one path segment at a time,
// reporting either the resolved value or the point and reason it got stuck.
type pathResolver struct {
	gtsID string
	path  string
}

func (r *pathResolver) resolve(content map[string]any) *AttributeResult {
	result := &AttributeResult{GtsID: r.gtsID, Path: r.path, AvailableFields: []string{}}

	var current any = content
	for _, part := range splitAttributePath(r.path) {
		next, err := stepInto(current, part)
		if err != nil {
			result.Error = err.Error()
			result.AvailableFields = availableFieldsAt(current)
			return result
		}
		current = next
	}

	result.Value = current
	result.Resolved = true
	return result
}

// stepInto descends one path segment into current, which must be either a
// map (segment names a field) or a slice (segment names an index).
func stepInto(current any, part string) (any, error) {
	switch node := current.(type) {
	case map[string]any:
		if isBracketedIndex(part) {
			return nil, fmt.Errorf("Path not found at segment '%s', see available fields", part)
		}
		val, ok := node[part]
		if !ok {
			return nil, fmt.Errorf("Path not found at segment '%s', see available fields", part)
		}
		return val, nil

	case []any:
		idx, err := arrayIndex(part)
		if err != nil {
			return nil, fmt.Errorf("Expected list index at segment '%s'", part)
		}
		if idx < 0 || idx >= len(node) {
			return nil, fmt.Errorf("Index out of range at segment '%s'", part)
		}
		return node[idx], nil

	default:
		return nil, fmt.Errorf("Cannot descend into %T at segment '%s'", current, part)
	}
}

func isBracketedIndex(part string) bool {
	return strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]")
}

func arrayIndex(part string) (int, error) {
	if isBracketedIndex(part) {
		return strconv.Atoi(part[1 : len(part)-1])
	}
	return strconv.Atoi(part)
}

// splitAttributePath tokenizes a path into field-name and "[N]"-index
// segments, accepting '/' as an alternate separator to '.'.
func splitAttributePath(path string) []string {
	var parts []string
	for _, seg := range strings.Split(strings.ReplaceAll(path, "/", "."), ".") {
		if seg != "" {
			parts = append(parts, splitIndexSuffixes(seg)...)
		}
	}
	return parts
}

// splitIndexSuffixes breaks a single dot-delimited token like "items[0][1]"
// into "items", "[0]", "[1]".
func splitIndexSuffixes(seg string) []string {
	var out []string
	buf := strings.Builder{}

	i := 0
	for i < len(seg) {
		if seg[i] != '[' {
			buf.WriteByte(seg[i])
			i++
			continue
		}
		if buf.Len() > 0 {
			out = append(out, buf.String())
			buf.Reset()
		}
		end := strings.Index(seg[i+1:], "]")
		if end == -1 {
			buf.WriteString(seg[i:])
			break
		}
		end += i + 1
		out = append(out, seg[i:end+1])
		i = end + 1
	}
	if buf.Len() > 0 {
		out = append(out, buf.String())
	}
	return out
}

// availableFieldsAt lists the field paths a caller could have used instead,
// so a failed lookup can suggest what actually exists at that level.
func availableFieldsAt(node any) []string {
	switch v := node.(type) {
	case map[string]any:
		return collectFieldPaths(v, "")
	case []any:
		return collectIndexPaths(v, "")
	default:
		return nil
	}
}

func collectFieldPaths(node map[string]any, prefix string) []string {
	var fields []string
	for key, val := range node {
		path := joinFieldPath(prefix, key)
		fields = append(fields, path)
		fields = append(fields, nestedFieldPaths(val, path)...)
	}
	return fields
}

func collectIndexPaths(node []any, prefix string) []string {
	var fields []string
	for i, val := range node {
		path := joinIndexPath(prefix, i)
		fields = append(fields, path)
		fields = append(fields, nestedFieldPaths(val, path)...)
	}
	return fields
}

func nestedFieldPaths(val any, path string) []string {
	switch v := val.(type) {
	case map[string]any:
		return collectFieldPaths(v, path)
	case []any:
		return collectIndexPaths(v, path)
	default:
		return nil
	}
}
