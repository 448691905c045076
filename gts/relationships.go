/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import "strings"

// SchemaGraphNode is one node of the reference graph reachable from a GTS
// entity: its own ID, the entities it references, the schema that governs
// it, and any structural errors found along the way.
type SchemaGraphNode struct {
	ID       string                      `json:"id"`
	Refs     map[string]*SchemaGraphNode `json:"refs,omitempty"`
	SchemaID *SchemaGraphNode            `json:"schema_id,omitempty"`
	Errors   []string                    `json:"errors,omitempty"`
}

// graphBuilder tracks which IDs have already been visited while recursively
// expanding a schema graph, so cyclic references terminate instead of recursing forever.
type graphBuilder struct {
	store *GtsStore
	seen  map[string]bool
}

// BuildSchemaGraph expands gtsID into its full reference graph: every GTS ID
// it references, transitively, plus the schema chain governing each one.
func (s *GtsStore) BuildSchemaGraph(gtsID string) *SchemaGraphNode {
	b := &graphBuilder{store: s, seen: make(map[string]bool)}
	return b.node(gtsID)
}

func (b *graphBuilder) node(gtsID string) *SchemaGraphNode {
	n := &SchemaGraphNode{ID: gtsID}

	if b.seen[gtsID] {
		return n
	}
	b.seen[gtsID] = true

	entity := b.store.Get(gtsID)
	if entity == nil {
		n.Errors = append(n.Errors, "Entity not found")
		return n
	}

	if refs := b.expandRefs(gtsID, entity.GtsRefs); len(refs) > 0 {
		n.Refs = refs
	}
	b.attachSchema(n, entity)

	return n
}

// expandRefs recurses into every reference on the entity except
// self-references and JSON Schema meta-schema URLs, keyed by the JSON path
// the reference was found at.
func (b *graphBuilder) expandRefs(ownID string, refs []*GtsReference) map[string]*SchemaGraphNode {
	out := make(map[string]*SchemaGraphNode)
	for _, ref := range refs {
		if ref.ID == ownID || isJSONSchemaURL(ref.ID) {
			continue
		}
		out[ref.SourcePath] = b.node(ref.ID)
	}
	return out
}

// attachSchema sets n.SchemaID to the governing schema's own subgraph, or
// records an error when an instance has no recognized schema.
func (b *graphBuilder) attachSchema(n *SchemaGraphNode, entity *JsonEntity) {
	switch {
	case entity.SchemaID == "":
		if !entity.IsSchema {
			n.Errors = append(n.Errors, "Schema not recognized")
		}
	case !isJSONSchemaURL(entity.SchemaID):
		n.SchemaID = b.node(entity.SchemaID)
	}
}

// jsonSchemaOrgPrefixes are the meta-schema hosts excluded from graph
// expansion: they describe JSON Schema itself, not a GTS entity.
var jsonSchemaOrgPrefixes = []string{"http://json-schema.org", "https://json-schema.org"}

func isJSONSchemaURL(s string) bool {
	for _, prefix := range jsonSchemaOrgPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
