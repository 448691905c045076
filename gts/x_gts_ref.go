/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"strings"
)

// XGtsRefValidationError reports a single "x-gts-ref" keyword that failed to
// resolve or a value that failed to satisfy one.
type XGtsRefValidationError struct {
	FieldPath  string
	Value      interface{}
	RefPattern string
	Reason     string
}

func (e *XGtsRefValidationError) Error() string {
	return fmt.Sprintf("x-gts-ref validation failed for field '%s': %s", e.FieldPath, e.Reason)
}

func xRefErr(fieldPath string, value any, pattern, reason string, args ...any) *XGtsRefValidationError {
	return &XGtsRefValidationError{
		FieldPath:  fieldPath,
		Value:      value,
		RefPattern: pattern,
		Reason:     fmt.Sprintf(reason, args...),
	}
}

// XGtsRefValidator walks an instance or schema tree checking the non-standard
// "x-gts-ref" keyword, which constrains a string field to name a GTS entity
// matching a given ID or wildcard pattern.
type XGtsRefValidator struct {
	store *GtsStore
}

func NewXGtsRefValidator(store *GtsStore) *XGtsRefValidator {
	return &XGtsRefValidator{store: store}
}

// ValidateInstance checks every "x-gts-ref"-constrained field of instance
// against the corresponding schema node.
func (v *XGtsRefValidator) ValidateInstance(instance map[string]interface{}, schema map[string]interface{}, instancePath string) []*XGtsRefValidationError {
	var errs []*XGtsRefValidationError
	v.walkInstance(instance, schema, instancePath, schema, &errs)
	return errs
}

// ValidateSchema checks that every "x-gts-ref" keyword in schema names a
// resolvable GTS pattern.
func (v *XGtsRefValidator) ValidateSchema(schema map[string]interface{}, schemaPath string, rootSchema map[string]interface{}) []*XGtsRefValidationError {
	if rootSchema == nil {
		rootSchema = schema
	}
	var errs []*XGtsRefValidationError
	v.walkSchema(schema, schemaPath, rootSchema, &errs)
	return errs
}

func (v *XGtsRefValidator) walkInstance(instance interface{}, schema map[string]interface{}, path string, rootSchema map[string]interface{}, errs *[]*XGtsRefValidationError) {
	if schema == nil {
		return
	}

	if xGtsRef, hasRef := schema["x-gts-ref"]; hasRef {
		if str, ok := instance.(string); ok {
			if err := v.checkRefValue(str, xGtsRef, path, rootSchema); err != nil {
				*errs = append(*errs, err)
			}
		}
	}

	switch schema["type"] {
	case "object":
		v.walkInstanceProperties(instance, schema, path, rootSchema, errs)
	case "array":
		v.walkInstanceItems(instance, schema, path, rootSchema, errs)
	}
}

func (v *XGtsRefValidator) walkInstanceProperties(instance interface{}, schema map[string]interface{}, path string, rootSchema map[string]interface{}, errs *[]*XGtsRefValidationError) {
	properties, ok := schema["properties"].(map[string]interface{})
	if !ok {
		return
	}
	instanceMap, ok := instance.(map[string]interface{})
	if !ok {
		return
	}
	for name, propSchema := range properties {
		value, present := instanceMap[name]
		if !present {
			continue
		}
		propSchemaMap, ok := propSchema.(map[string]interface{})
		if !ok {
			continue
		}
		v.walkInstance(value, propSchemaMap, joinFieldPath(path, name), rootSchema, errs)
	}
}

func (v *XGtsRefValidator) walkInstanceItems(instance interface{}, schema map[string]interface{}, path string, rootSchema map[string]interface{}, errs *[]*XGtsRefValidationError) {
	items, ok := schema["items"].(map[string]interface{})
	if !ok {
		return
	}
	instanceArray, ok := instance.([]interface{})
	if !ok {
		return
	}
	for idx, item := range instanceArray {
		v.walkInstance(item, items, joinIndexPath(path, idx), rootSchema, errs)
	}
}

func (v *XGtsRefValidator) walkSchema(schema map[string]interface{}, path string, rootSchema map[string]interface{}, errs *[]*XGtsRefValidationError) {
	if schema == nil {
		return
	}

	if xGtsRef, hasRef := schema["x-gts-ref"]; hasRef {
		refPath := "x-gts-ref"
		if path != "" {
			refPath = path + "/x-gts-ref"
		}
		if err := v.checkRefPattern(xGtsRef, refPath, rootSchema); err != nil {
			*errs = append(*errs, err)
		}
	}

	for key, value := range schema {
		if key == "x-gts-ref" {
			continue
		}
		nestedPath := key
		if path != "" {
			nestedPath = path + "/" + key
		}
		switch val := value.(type) {
		case map[string]interface{}:
			v.walkSchema(val, nestedPath, rootSchema, errs)
		case []interface{}:
			for idx, item := range val {
				if itemMap, ok := item.(map[string]interface{}); ok {
					v.walkSchema(itemMap, fmt.Sprintf("%s[%d]", nestedPath, idx), rootSchema, errs)
				}
			}
		}
	}
}

// checkRefValue validates an instance's string value against the
// "x-gts-ref" constraint declared by its schema node, resolving a relative
// (JSON-pointer) pattern against the root schema first if needed.
func (v *XGtsRefValidator) checkRefValue(value string, refPattern interface{}, fieldPath string, schema map[string]interface{}) *XGtsRefValidationError {
	pattern, ok := refPattern.(string)
	if !ok {
		return xRefErr(fieldPath, value, fmt.Sprintf("%v", refPattern), "Value must be a string, got %T", refPattern)
	}

	if strings.HasPrefix(pattern, "/") {
		resolved, err := v.resolveRelativePattern(schema, pattern, fieldPath, value)
		if err != nil {
			return err
		}
		pattern = resolved
	}

	return v.checkGtsPattern(value, pattern, fieldPath)
}

func (v *XGtsRefValidator) resolveRelativePattern(schema map[string]interface{}, pattern, fieldPath string, value string) (string, *XGtsRefValidationError) {
	resolved := v.resolvePointer(schema, pattern)
	if resolved == "" {
		return "", xRefErr(fieldPath, value, pattern, "Cannot resolve reference path '%s'", pattern)
	}
	if strings.HasPrefix(resolved, "/") {
		further := v.resolvePointer(schema, resolved)
		if further == "" {
			return "", xRefErr(fieldPath, value, pattern, "Cannot resolve nested reference '%s' -> '%s'", pattern, resolved)
		}
		resolved = further
	}
	if !strings.HasPrefix(resolved, "gts.") {
		return "", xRefErr(fieldPath, value, pattern, "Resolved reference '%s' -> '%s' is not a GTS pattern", pattern, resolved)
	}
	return resolved, nil
}

// checkRefPattern validates that a schema's "x-gts-ref" value is itself a
// well-formed absolute GTS pattern or a resolvable relative pointer.
func (v *XGtsRefValidator) checkRefPattern(refPattern interface{}, fieldPath string, rootSchema map[string]interface{}) *XGtsRefValidationError {
	pattern, ok := refPattern.(string)
	if !ok {
		return xRefErr(fieldPath, refPattern, "", "x-gts-ref value must be a string, got %T", refPattern)
	}

	switch {
	case strings.HasPrefix(pattern, "gts."):
		return v.checkGtsIDOrPattern(pattern, fieldPath)
	case strings.HasPrefix(pattern, "/"):
		resolved := v.resolvePointer(rootSchema, pattern)
		if resolved == "" {
			return xRefErr(fieldPath, refPattern, pattern, "Cannot resolve reference path '%s'", pattern)
		}
		if !IsValidGtsID(resolved) {
			return xRefErr(fieldPath, refPattern, pattern, "Resolved reference '%s' -> '%s' is not a valid GTS identifier", pattern, resolved)
		}
		return nil
	default:
		return xRefErr(fieldPath, refPattern, pattern, "Invalid x-gts-ref value: '%s' must start with 'gts.' or '/'", pattern)
	}
}

func (v *XGtsRefValidator) checkGtsIDOrPattern(pattern, fieldPath string) *XGtsRefValidationError {
	if pattern == "gts.*" {
		return nil
	}
	if strings.Contains(pattern, "*") {
		prefix := strings.TrimSuffix(pattern, "*")
		if !strings.HasPrefix(prefix, "gts.") {
			return xRefErr(fieldPath, pattern, pattern, "Invalid GTS wildcard pattern: %s", pattern)
		}
		return nil
	}
	if !IsValidGtsID(pattern) {
		return xRefErr(fieldPath, pattern, pattern, "Invalid GTS identifier: %s", pattern)
	}
	return nil
}

// checkGtsPattern validates that value is itself a valid GTS ID, matches
// pattern, and — when a store is attached — names a registered entity.
func (v *XGtsRefValidator) checkGtsPattern(value, pattern, fieldPath string) *XGtsRefValidationError {
	if !IsValidGtsID(value) {
		return xRefErr(fieldPath, value, pattern, "Value '%s' is not a valid GTS identifier", value)
	}

	switch {
	case pattern == "gts.*":
		// any valid GTS ID matches
	case strings.HasSuffix(pattern, "*"):
		if prefix := pattern[:len(pattern)-1]; !strings.HasPrefix(value, prefix) {
			return xRefErr(fieldPath, value, pattern, "Value '%s' does not match pattern '%s'", value, pattern)
		}
	default:
		if !strings.HasPrefix(value, pattern) {
			return xRefErr(fieldPath, value, pattern, "Value '%s' does not match pattern '%s'", value, pattern)
		}
	}

	if v.store != nil && v.store.Get(value) == nil {
		return xRefErr(fieldPath, value, pattern, "Referenced entity '%s' not found in registry", value)
	}
	return nil
}

// resolvePointer follows a JSON Pointer through schema, chasing a further
// "x-gts-ref" indirection if the pointed-at node carries one.
func (v *XGtsRefValidator) resolvePointer(schema map[string]interface{}, pointer string) string {
	path := strings.TrimPrefix(pointer, "/")
	if path == "" {
		return ""
	}

	var current interface{} = schema
	for _, part := range strings.Split(path, "/") {
		currentMap, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}
		current = currentMap[part]
		if current == nil {
			return ""
		}
	}

	if str, ok := current.(string); ok {
		return str
	}
	if currentMap, ok := current.(map[string]interface{}); ok {
		if xGtsRef, hasRef := currentMap["x-gts-ref"]; hasRef {
			if refStr, ok := xGtsRef.(string); ok {
				if strings.HasPrefix(refStr, "/") {
					return v.resolvePointer(schema, refStr)
				}
				return refStr
			}
		}
	}
	return ""
}
