/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

// defaultEntityIDFields lists, in priority order, the content keys searched
// for an entity's own GTS identifier.
var defaultEntityIDFields = []string{
	"$id", "$$id",
	"gtsId", "gtsIid", "gtsOid", "gtsI",
	"gts_id", "gts_oid", "gts_iid",
	"id",
}

// defaultSchemaIDFields lists, in priority order, the content keys searched
// for an instance's governing schema identifier.
var defaultSchemaIDFields = []string{
	"$schema", "$$schema",
	"gtsTid", "gtsT", "gts_t", "gts_tid",
	"type", "schema",
}

// GtsConfig controls which JSON fields extraction treats as carrying a GTS
// entity ID or schema ID.
type GtsConfig struct {
	EntityIDFields []string
	SchemaIDFields []string
}

// DefaultGtsConfig returns a config over the field names used across the
// GTS ecosystem, starting with the JSON Schema `$id`/`$schema` convention.
// Each call returns an independent copy so callers may mutate it freely.
func DefaultGtsConfig() *GtsConfig {
	return &GtsConfig{
		EntityIDFields: append([]string(nil), defaultEntityIDFields...),
		SchemaIDFields: append([]string(nil), defaultSchemaIDFields...),
	}
}
