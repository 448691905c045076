/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import "fmt"

// GtsReference is a GTS identifier found somewhere inside a JSON document,
// together with the dotted/bracketed path it was found at.
type GtsReference struct {
	ID         string
	SourcePath string
}

// refCollector accumulates de-duplicated GtsReference values while walking a
// decoded JSON tree.
type refCollector struct {
	refs []*GtsReference
	seen map[string]bool
}

func (c *refCollector) add(id, path string) {
	if path == "" {
		path = "root"
	}
	key := id + "|" + path
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.refs = append(c.refs, &GtsReference{ID: id, SourcePath: path})
}

// extractGtsReferences walks content and returns every distinct (GTS ID,
// path) pair found within it, in first-seen order.
func extractGtsReferences(content any) []*GtsReference {
	c := &refCollector{refs: make([]*GtsReference, 0), seen: make(map[string]bool)}
	c.walk(content, "")
	return c.refs
}

// walk recurses through a decoded JSON value, recording any string node that
// parses as a valid GTS ID.
func (c *refCollector) walk(node any, path string) {
	switch v := node.(type) {
	case nil:
		return
	case string:
		if IsValidGtsID(v) {
			c.add(v, path)
		}
	case map[string]any:
		for k, child := range v {
			c.walk(child, joinFieldPath(path, k))
		}
	case []any:
		for i, child := range v {
			c.walk(child, joinIndexPath(path, i))
		}
	}
}

func joinFieldPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

func joinIndexPath(path string, idx int) string {
	return path + fmt.Sprintf("[%d]", idx)
}
