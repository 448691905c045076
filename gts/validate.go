/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// gtsURLLoader resolves schema references that name a GTS ID rather than a
// conventional URL, so "$ref": "gts.x.core...v1~" works inside a compiled schema.
type gtsURLLoader struct {
	store *GtsStore
}

func (l *gtsURLLoader) Load(url string) (any, error) {
	if !IsValidGtsID(url) {
		return nil, fmt.Errorf("unsupported URL: %s", url)
	}
	entity := l.store.Get(url)
	if entity == nil {
		return nil, fmt.Errorf("unresolvable GTS reference: %s", url)
	}
	if !entity.IsSchema {
		return nil, fmt.Errorf("GTS reference is not a schema: %s", url)
	}
	return entity.Content, nil
}

// ValidationResult is the outcome of validating a stored instance against
// the schema it declares.
type ValidationResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func invalidResult(gtsID, format string, args ...any) *ValidationResult {
	return &ValidationResult{ID: gtsID, OK: false, Error: fmt.Sprintf(format, args...)}
}

// resolvedInstance bundles an instance and the schema entity governing it,
// looked up and sanity-checked together so ValidateInstance reads as one
// linear chain of checks rather than repeated store lookups.
type resolvedInstance struct {
	obj    *JsonEntity
	schema *JsonEntity
}

func (s *GtsStore) resolveInstanceForValidation(gid *GtsID) (*resolvedInstance, *ValidationResult) {
	obj := s.Get(gid.ID)
	if obj == nil {
		return nil, invalidResult(gid.ID, "%s", (&StoreGtsObjectNotFoundError{EntityID: gid.ID}).Error())
	}
	if obj.SchemaID == "" {
		return nil, invalidResult(gid.ID, "%s", (&StoreGtsSchemaForInstanceNotFoundError{EntityID: gid.ID}).Error())
	}
	schemaEntity := s.Get(obj.SchemaID)
	if schemaEntity == nil {
		return nil, invalidResult(gid.ID, "%s", (&StoreGtsSchemaNotFoundError{EntityID: obj.SchemaID}).Error())
	}
	if !schemaEntity.IsSchema {
		return nil, invalidResult(gid.ID, "entity '%s' is not a schema", obj.SchemaID)
	}
	return &resolvedInstance{obj: obj, schema: schemaEntity}, nil
}

// ValidateInstance checks a stored instance against its declared schema,
// resolving any GTS-ID references the schema makes along the way.
func (s *GtsStore) ValidateInstance(gtsID string) *ValidationResult {
	gid, err := NewGtsID(gtsID)
	if err != nil {
		return invalidResult(gtsID, "Invalid GTS ID: %v", err)
	}

	resolved, failure := s.resolveInstanceForValidation(gid)
	if failure != nil {
		return failure
	}

	if err := s.validateWithSchema(resolved.obj.Content, resolved.schema.Content); err != nil {
		return invalidResult(gtsID, "%s", err.Error())
	}
	return &ValidationResult{ID: gtsID, OK: true}
}

// lenientFormats lists the JSON Schema "format" keywords accepted without
// enforcement: the store's schemas declare them for documentation purposes
// but instances aren't rejected on format mismatches alone.
var lenientFormats = []string{
	"uuid", "date-time", "date", "time", "email", "hostname",
	"ipv4", "ipv6", "uri", "uri-reference", "iri", "iri-reference",
	"uri-template", "json-pointer", "relative-json-pointer", "regex",
}

func newSchemaCompiler(s *GtsStore) *jsonschema.Compiler {
	compiler := jsonschema.NewCompiler()
	noop := func(v any) error { return nil }
	for _, name := range lenientFormats {
		compiler.RegisterFormat(&jsonschema.Format{Name: name, Validate: noop})
	}
	compiler.UseLoader(&gtsURLLoader{store: s})
	return compiler
}

// preloadStoredSchemas registers every other schema already in the store as
// a compiler resource, so cross-references among stored schemas resolve
// without a round trip through gtsURLLoader. Resources that fail to add are
// skipped; gtsURLLoader resolves them lazily if actually referenced.
func (s *GtsStore) preloadStoredSchemas(compiler *jsonschema.Compiler, excludeID string) {
	for id, entity := range s.Items() {
		if entity.IsSchema && id != excludeID {
			_ = compiler.AddResource(id, entity.Content)
		}
	}
}

func (s *GtsStore) validateWithSchema(instance map[string]any, schema map[string]any) error {
	schemaID, ok := schema["$id"].(string)
	if !ok || schemaID == "" {
		return fmt.Errorf("schema must have a valid $id field")
	}

	compiler := newSchemaCompiler(s)
	if err := compiler.AddResource(schemaID, schema); err != nil {
		return fmt.Errorf("add schema resource: %v", err)
	}
	s.preloadStoredSchemas(compiler, schemaID)

	compiled, err := compiler.Compile(schemaID)
	if err != nil {
		return fmt.Errorf("compile schema: %v", err)
	}
	if err := compiled.Validate(instance); err != nil {
		return fmt.Errorf("validation error: %v", err)
	}
	return nil
}
