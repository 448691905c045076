/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// CastResult is a CompatibilityResult enriched with the instance produced by
// the cast, when casting succeeded in producing one.
type CastResult struct {
	*CompatibilityResult
	CastedEntity map[string]any `json:"casted_entity,omitempty"`
}

// Cast transforms the instance named instanceID so it conforms to the
// schema named toSchemaID, resolving the instance's current schema along
// the way.
func (s *GtsStore) Cast(instanceID, toSchemaID string) (*CastResult, error) {
	instance := s.Get(instanceID)
	if instance == nil {
		return nil, &StoreGtsObjectNotFoundError{EntityID: instanceID}
	}
	if strings.HasSuffix(instanceID, "~") {
		return nil, &StoreGtsCastFromSchemaNotAllowedError{FromID: instanceID}
	}

	toSchema := s.Get(toSchemaID)
	if toSchema == nil {
		return nil, &StoreGtsSchemaNotFoundError{EntityID: toSchemaID}
	}

	if instance.SchemaID == "" {
		return nil, &StoreGtsSchemaForInstanceNotFoundError{EntityID: instanceID}
	}
	fromSchema := s.Get(instance.SchemaID)
	if fromSchema == nil {
		return nil, &StoreGtsSchemaNotFoundError{EntityID: instance.SchemaID}
	}

	return runCast(instanceID, toSchemaID, instance.Content, fromSchema.Content, toSchema.Content, s)
}

// runCast applies the target schema's defaults/required/additionalProperties
// rules to a copy of the instance, then validates the result against the
// unflattened target schema to decide full compatibility.
func runCast(fromInstanceID, toSchemaID string, instanceContent, fromSchemaContent, toSchemaContent map[string]any, store *GtsStore) (*CastResult, error) {
	targetSchema := flattenSchema(toSchemaContent)
	direction := inferDirection(fromInstanceID, toSchemaID)
	oldSchema, newSchema := orderSchemasByDirection(direction, fromSchemaContent, toSchemaContent)

	isBackward, backwardErrors := (&compatChecker{backward: true}).check(oldSchema, newSchema)
	isForward, forwardErrors := (&compatChecker{backward: false}).check(oldSchema, newSchema)

	outcome := newCastOutcome()
	casted := outcome.apply(copyMap(instanceContent), targetSchema, "")

	isFullyCompatible := false
	if casted != nil {
		if err := validateWithGtsIDTolerance(casted, toSchemaContent, store); err != nil {
			outcome.incompatible = append(outcome.incompatible, err.Error())
		} else {
			isFullyCompatible = true
		}
	}

	return &CastResult{
		CompatibilityResult: &CompatibilityResult{
			FromID:                 fromInstanceID,
			ToID:                   toSchemaID,
			OldID:                  fromInstanceID,
			NewID:                  toSchemaID,
			Direction:              direction,
			AddedProperties:        sortedUnique(outcome.added),
			RemovedProperties:      sortedUnique(outcome.removed),
			ChangedProperties:      []map[string]string{},
			IsFullyCompatible:      isFullyCompatible,
			IsBackwardCompatible:   isBackward,
			IsForwardCompatible:    isForward,
			IncompatibilityReasons: outcome.incompatible,
			BackwardErrors:         backwardErrors,
			ForwardErrors:          forwardErrors,
		},
		CastedEntity: casted,
	}, nil
}

// orderSchemasByDirection orders (from, to) as (old, new) for the
// compatibility checker, which always expects old-then-new regardless of
// which way the cast itself is moving.
func orderSchemasByDirection(direction string, fromSchema, toSchema map[string]any) (oldSchema, newSchema map[string]any) {
	if direction == "down" {
		return toSchema, fromSchema
	}
	return fromSchema, toSchema
}

// castOutcome accumulates the side effects of walking an instance into a
// target schema shape: which paths gained a default, which were dropped,
// and which couldn't be reconciled at all.
type castOutcome struct {
	added        []string
	removed      []string
	incompatible []string
}

func newCastOutcome() *castOutcome {
	return &castOutcome{added: []string{}, removed: []string{}, incompatible: []string{}}
}

// apply recursively reshapes instance to conform to schema, rooted at
// basePath for path-qualified added/removed/incompatible entries.
func (o *castOutcome) apply(instance, schema map[string]any, basePath string) map[string]any {
	if instance == nil {
		o.incompatible = append(o.incompatible, "Instance must be an object for casting")
		return nil
	}

	targetProps := getPropertiesMap(schema)
	required := getRequiredSet(schema)
	result := copyMap(instance)

	o.fillRequiredDefaults(result, targetProps, required, basePath)
	o.fillOptionalDefaults(result, targetProps, required, basePath)
	o.reconcileGtsIDConsts(result, targetProps)
	if !getAdditionalProperties(schema) {
		o.dropUnknownProperties(result, targetProps, basePath)
	}
	o.recurseIntoNested(result, targetProps, basePath)

	return result
}

func (o *castOutcome) fillRequiredDefaults(result map[string]any, targetProps map[string]any, required map[string]bool, basePath string) {
	for prop := range required {
		if _, exists := result[prop]; exists {
			continue
		}
		propSchema := getMap(targetProps, prop)
		if propSchema == nil {
			continue
		}
		if def, ok := propSchema["default"]; ok {
			result[prop] = copyValue(def)
			o.added = append(o.added, buildPath(basePath, prop))
		} else {
			o.incompatible = append(o.incompatible, fmt.Sprintf("Missing required property '%s' and no default is defined", buildPath(basePath, prop)))
		}
	}
}

func (o *castOutcome) fillOptionalDefaults(result map[string]any, targetProps map[string]any, required map[string]bool, basePath string) {
	for prop, raw := range targetProps {
		if required[prop] {
			continue
		}
		propSchema, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if _, exists := result[prop]; exists {
			continue
		}
		if def, ok := propSchema["default"]; ok {
			result[prop] = copyValue(def)
			o.added = append(o.added, buildPath(basePath, prop))
		}
	}
}

// reconcileGtsIDConsts updates a property's value to the schema's const when
// both the const and the existing value are GTS IDs but disagree — e.g. a
// $schema/type field that should now point at the target schema version.
func (o *castOutcome) reconcileGtsIDConsts(result map[string]any, targetProps map[string]any) {
	for prop, raw := range targetProps {
		propSchema, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		constVal, hasConst := propSchema["const"]
		if !hasConst {
			continue
		}
		existingVal, exists := result[prop]
		if !exists {
			continue
		}
		constStr, constIsStr := constVal.(string)
		existingStr, existingIsStr := existingVal.(string)
		if constIsStr && existingIsStr && IsValidGtsID(constStr) && IsValidGtsID(existingStr) && existingStr != constStr {
			result[prop] = constStr
		}
	}
}

func (o *castOutcome) dropUnknownProperties(result map[string]any, targetProps map[string]any, basePath string) {
	for prop := range result {
		if _, inTarget := targetProps[prop]; !inTarget {
			delete(result, prop)
			o.removed = append(o.removed, buildPath(basePath, prop))
		}
	}
}

func (o *castOutcome) recurseIntoNested(result map[string]any, targetProps map[string]any, basePath string) {
	for prop, raw := range targetProps {
		val, exists := result[prop]
		if !exists {
			continue
		}
		propSchema, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		switch getString(propSchema, "type") {
		case "object":
			if valMap, isMap := val.(map[string]any); isMap {
				result[prop] = o.apply(valMap, effectiveObjectSchema(propSchema), buildPath(basePath, prop))
			}
		case "array":
			if valArray, isArray := val.([]any); isArray {
				result[prop] = o.applyToArray(valArray, propSchema, buildPath(basePath, prop))
			}
		}
	}
}

func (o *castOutcome) applyToArray(items []any, propSchema map[string]any, basePath string) []any {
	itemsSchema := getMap(propSchema, "items")
	if itemsSchema == nil || getString(itemsSchema, "type") != "object" {
		return items
	}
	nestedSchema := effectiveObjectSchema(itemsSchema)

	newList := make([]any, 0, len(items))
	for idx, item := range items {
		itemMap, isMap := item.(map[string]any)
		if !isMap {
			newList = append(newList, item)
			continue
		}
		newList = append(newList, o.apply(itemMap, nestedSchema, fmt.Sprintf("%s[%d]", basePath, idx)))
	}
	return newList
}

// effectiveObjectSchema finds the sub-schema actually carrying
// properties/required for schema, following into allOf when schema itself
// is a bare composition wrapper.
func effectiveObjectSchema(schema map[string]any) map[string]any {
	if schema == nil {
		return make(map[string]any)
	}
	if hasAny(schema, "properties", "required") {
		return schema
	}

	if allOf, ok := schema["allOf"].([]any); ok {
		for _, raw := range allOf {
			if part, ok := raw.(map[string]any); ok && hasAny(part, "properties", "required") {
				return part
			}
		}
	}

	return schema
}

func hasAny(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// validateWithGtsIDTolerance validates instance against schema after
// stripping const constraints on GTS ID fields, so a cast that legitimately
// changed a $schema/type const doesn't fail validation over that alone.
func validateWithGtsIDTolerance(instance, schema map[string]any, store *GtsStore) error {
	modifiedSchema := removeGtsConstConstraints(schema)

	compiler := jsonschema.NewCompiler()
	compiler.UseLoader(&gtsURLLoader{store: store})
	for id, entity := range store.Items() {
		if entity.IsSchema {
			compiler.AddResource(id, entity.Content)
		}
	}

	const scratchID = "_cast_validation"
	if err := compiler.AddResource(scratchID, modifiedSchema); err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	compiled, err := compiler.Compile(scratchID)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}
	if err := compiled.Validate(instance); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// removeGtsConstConstraints recursively rewrites "const": "<gts id>" into
// "type": "string", so a schema that previously pinned an exact GTS ID no
// longer rejects a cast that legitimately changed it.
func removeGtsConstConstraints(schema any) any {
	switch v := schema.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, value := range v {
			if key == "const" {
				if s, ok := value.(string); ok && IsValidGtsID(s) {
					result["type"] = "string"
					continue
				}
			}
			result[key] = removeGtsConstConstraints(value)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = removeGtsConstConstraints(item)
		}
		return result
	default:
		return v
	}
}

// getAdditionalProperties reports a schema's additionalProperties setting,
// defaulting to true (JSON Schema's own default) when absent or non-boolean.
func getAdditionalProperties(schema map[string]any) bool {
	if v, ok := schema["additionalProperties"].(bool); ok {
		return v
	}
	return true
}

// buildPath appends prop to base with a '.' separator, except when prop is
// already a bracketed array index (e.g. "[2]"), which attaches directly.
func buildPath(base, prop string) string {
	if base == "" {
		return prop
	}
	if strings.HasPrefix(prop, "[") {
		return base + prop
	}
	return base + "." + prop
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = copyValue(v)
	}
	return result
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyMap(val)
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = copyValue(item)
		}
		return result
	default:
		return v
	}
}

// sortedUnique de-duplicates slice and sorts it for deterministic output.
func sortedUnique(slice []string) []string {
	seen := make(map[string]bool, len(slice))
	result := make([]string, 0, len(slice))
	for _, item := range slice {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	sort.Strings(result)
	return result
}
