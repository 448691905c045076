/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"strings"
)

// schemaMarkerFields are the content keys that can mark a JSON document as a
// schema rather than an instance: it is a schema when one of them holds a
// string starting with one of schemaMarkerPrefixes. `$$schema` is an
// alternate spelling accepted alongside the standard `$schema`.
var schemaMarkerFields = []string{"$schema", "$$schema"}

var schemaMarkerPrefixes = []string{"http://json-schema.org/", "https://json-schema.org/", "gts://", "gts."}

// JsonFile is a file-backed source a JsonEntity was read from.
type JsonFile struct {
	Path    string
	Name    string
	Content any
}

// JsonEntity is a JSON object together with its extracted GTS identity.
type JsonEntity struct {
	GtsID                 *GtsID
	SchemaID              string
	SelectedEntityField   string
	SelectedSchemaIDField string
	IsSchema              bool
	Content               map[string]any
	File                  *JsonFile
	ListSequence          *int
	Label                 string
	GtsRefs               []*GtsReference
}

// ExtractIDResult is the serializable outcome of an ID extraction operation.
type ExtractIDResult struct {
	ID                    string  `json:"id"`
	SchemaID              *string `json:"schema_id"`
	SelectedEntityField   *string `json:"selected_entity_field"`
	SelectedSchemaIDField *string `json:"selected_schema_id_field"`
	IsSchema              bool    `json:"is_schema"`
}

// NewJsonEntity builds a JsonEntity from standalone JSON content.
func NewJsonEntity(content map[string]any, cfg *GtsConfig) *JsonEntity {
	return NewJsonEntityWithFile(content, cfg, nil, nil)
}

// NewJsonEntityWithFile builds a JsonEntity, additionally recording which
// file and (for multi-document files) which sequence position it came from.
func NewJsonEntityWithFile(content map[string]any, cfg *GtsConfig, file *JsonFile, listSequence *int) *JsonEntity {
	if cfg == nil {
		cfg = DefaultGtsConfig()
	}

	e := &JsonEntity{
		Content:      content,
		IsSchema:     isJSONSchema(content),
		File:         file,
		ListSequence: listSequence,
	}

	entityID := e.resolveEntityID(cfg)
	e.SchemaID = e.resolveSchemaID(cfg, entityID)
	e.resolveGtsID(cfg, entityID)
	e.GtsRefs = extractGtsReferences(content)
	e.Label = e.buildLabel()

	return e
}

// resolveGtsID populates GtsID for schemas and well-known instances; an
// anonymous instance (non-GTS value in its id field) leaves GtsID nil and
// relies on SchemaID having been set from a type field instead.
func (e *JsonEntity) resolveGtsID(cfg *GtsConfig, entityID string) {
	if entityID == "" || !IsValidGtsID(entityID) {
		return
	}
	gtsID, err := NewGtsID(entityID)
	if err != nil {
		return
	}
	e.GtsID = gtsID

	if !e.IsSchema && e.SchemaID == "" && e.SelectedEntityField != "" {
		e.SchemaID = e.resolveSchemaID(cfg, entityID)
	}
}

// buildLabel derives a human-readable label: file+sequence, then bare file
// name, then the GTS ID, falling back to empty for anonymous, file-less entities.
func (e *JsonEntity) buildLabel() string {
	switch {
	case e.File != nil && e.ListSequence != nil:
		return fmt.Sprintf("%s#%d", e.File.Name, *e.ListSequence)
	case e.File != nil:
		return e.File.Name
	case e.GtsID != nil:
		return e.GtsID.ID
	default:
		return ""
	}
}

// isJSONSchema reports whether content should be treated as a schema
// document: true iff one of schemaMarkerFields holds a string starting with
// one of schemaMarkerPrefixes.
func isJSONSchema(content map[string]any) bool {
	if content == nil {
		return false
	}
	for _, field := range schemaMarkerFields {
		s, ok := content[field].(string)
		if !ok {
			continue
		}
		for _, prefix := range schemaMarkerPrefixes {
			if strings.HasPrefix(s, prefix) {
				return true
			}
		}
	}
	return false
}

// fieldValue reads field as a trimmed string, stripping the "gts://" URI
// prefix when field is "$id" (the only place that prefix is meaningful).
func (e *JsonEntity) fieldValue(field string) string {
	if e.Content == nil {
		return ""
	}
	raw, ok := e.Content[field]
	if !ok {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if field == "$id" {
		s = strings.TrimPrefix(s, GtsURIPrefix)
	}
	return s
}

// firstMatchingField scans fields for a valid GTS ID first, then falls back
// to the first non-empty value of any kind, returning the field name chosen
// alongside its value.
func (e *JsonEntity) firstMatchingField(fields []string) (field, value string) {
	for _, f := range fields {
		if v := e.fieldValue(f); v != "" && IsValidGtsID(v) {
			return f, v
		}
	}
	for _, f := range fields {
		if v := e.fieldValue(f); v != "" {
			return f, v
		}
	}
	return "", ""
}

// resolveEntityID picks the entity's own identifier from cfg.EntityIDFields.
func (e *JsonEntity) resolveEntityID(cfg *GtsConfig) string {
	field, value := e.firstMatchingField(cfg.EntityIDFields)
	e.SelectedEntityField = field
	return value
}

// resolveSchemaID derives the owning schema's identifier. Schemas and
// instances use different chains: a schema's schema ID is its base type
// (the prefix through its first tilde) or the literal $schema field; an
// instance's schema ID comes from an explicit schema-ID field, falling back
// to everything in its own ID up to and including the last tilde (the whole
// ID when it ends in a tilde).
func (e *JsonEntity) resolveSchemaID(cfg *GtsConfig, entityID string) string {
	if e.IsSchema {
		return e.resolveDerivedSchemaID(entityID)
	}
	return e.resolveInstanceSchemaID(cfg, entityID)
}

func (e *JsonEntity) resolveDerivedSchemaID(entityID string) string {
	if parent, ok := parentTypeID(entityID); ok {
		e.SelectedSchemaIDField = e.SelectedEntityField
		return parent
	}
	if v := e.fieldValue("$schema"); v != "" {
		e.SelectedSchemaIDField = "$schema"
		return v
	}
	return ""
}

func (e *JsonEntity) resolveInstanceSchemaID(cfg *GtsConfig, entityID string) string {
	if field, value := e.firstMatchingField(cfg.SchemaIDFields); value != "" {
		e.SelectedSchemaIDField = field
		return value
	}
	if schemaID, ok := ownTypeID(entityID); ok {
		e.SelectedSchemaIDField = e.SelectedEntityField
		return schemaID
	}
	if IsValidGtsID(entityID) && strings.HasSuffix(entityID, "~") {
		return entityID
	}
	return ""
}

// parentTypeID returns the parent type of a derived schema ID: the prefix up
// to and including its first tilde, but only when a second tilde exists
// further along (i.e. id genuinely derives from another type).
func parentTypeID(id string) (string, bool) {
	if id == "" || !IsValidGtsID(id) || !strings.HasSuffix(id, "~") {
		return "", false
	}
	first := strings.Index(id, "~")
	if first <= 0 {
		return "", false
	}
	if second := strings.Index(id[first+1:], "~"); second <= 0 {
		return "", false
	}
	return id[:first+1], true
}

// ownTypeID returns the schema ID implied by an instance ID: everything up
// to and including its last tilde. An ID ending in '~' is itself a type, not
// an instance, and is rejected here.
func ownTypeID(id string) (string, bool) {
	if id == "" || !IsValidGtsID(id) || strings.HasSuffix(id, "~") {
		return "", false
	}
	last := strings.LastIndex(id, "~")
	if last <= 0 {
		return "", false
	}
	return id[:last+1], true
}

// ExtractID runs full entity extraction over content and reports the result
// in the operation-table shape used by ExtractGtsID / the HTTP layer.
func ExtractID(content map[string]any, cfg *GtsConfig) *ExtractIDResult {
	e := NewJsonEntity(content, cfg)

	result := &ExtractIDResult{IsSchema: e.IsSchema}
	if e.SchemaID != "" {
		result.SchemaID = &e.SchemaID
	}
	if e.SelectedEntityField != "" {
		result.SelectedEntityField = &e.SelectedEntityField
	}
	if e.SelectedSchemaIDField != "" {
		result.SelectedSchemaIDField = &e.SelectedSchemaIDField
	}

	switch {
	case e.IsSchema || e.GtsID != nil:
		if e.GtsID != nil {
			result.ID = e.GtsID.ID
		}
	case e.SelectedEntityField != "":
		if v, ok := content[e.SelectedEntityField]; ok {
			if s, ok := v.(string); ok {
				result.ID = s
			}
		}
	}

	return result
}
