/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"strings"
)

// RefValidationError reports a "$ref" value that isn't a local JSON Pointer
// or a "gts://" URI.
type RefValidationError struct {
	FieldPath string
	RefValue  string
	Reason    string
}

func (e *RefValidationError) Error() string {
	return fmt.Sprintf("$ref validation failed for field '%s': %s", e.FieldPath, e.Reason)
}

func refErr(fieldPath, refValue, reason string, args ...any) *RefValidationError {
	return &RefValidationError{FieldPath: fieldPath, RefValue: refValue, Reason: fmt.Sprintf(reason, args...)}
}

const refFormatReason = "must be a local ref (starting with '#') or a GTS URI (starting with 'gts://')"

// RefValidator checks that every "$ref" keyword in a schema is either a
// local JSON Pointer or a "gts://"-prefixed reference to a GTS entity —
// bare GTS IDs and plain HTTP(S) URLs are rejected even when otherwise
// well-formed, since GTS schemas never reference external hosts.
type RefValidator struct{}

func NewRefValidator() *RefValidator {
	return &RefValidator{}
}

// ValidateSchemaRefs checks every "$ref" keyword found anywhere in schema.
func (v *RefValidator) ValidateSchemaRefs(schema map[string]interface{}, schemaPath string) []*RefValidationError {
	var errs []*RefValidationError
	v.walk(schema, schemaPath, &errs)
	return errs
}

func (v *RefValidator) walk(schema map[string]interface{}, path string, errs *[]*RefValidationError) {
	if schema == nil {
		return
	}

	if refValue, hasRef := schema["$ref"]; hasRef {
		refPath := "$ref"
		if path != "" {
			refPath = path + "/$ref"
		}
		if err := v.checkRef(refValue, refPath); err != nil {
			*errs = append(*errs, err)
		}
	}

	for key, value := range schema {
		if key == "$ref" {
			continue
		}
		nestedPath := key
		if path != "" {
			nestedPath = path + "/" + key
		}
		switch val := value.(type) {
		case map[string]interface{}:
			v.walk(val, nestedPath, errs)
		case []interface{}:
			for idx, item := range val {
				if itemMap, ok := item.(map[string]interface{}); ok {
					v.walk(itemMap, fmt.Sprintf("%s[%d]", nestedPath, idx), errs)
				}
			}
		}
	}
}

// checkRef classifies a single "$ref" value: a local JSON Pointer ("#...")
// and a "gts://"-prefixed GTS reference are accepted; everything else,
// including a bare GTS ID missing its URI prefix, is rejected.
func (v *RefValidator) checkRef(refValue interface{}, fieldPath string) *RefValidationError {
	refStr, ok := refValue.(string)
	if !ok {
		return refErr(fieldPath, fmt.Sprintf("%v", refValue), "$ref value must be a string, got %T", refValue)
	}

	refStr = strings.TrimSpace(refStr)
	switch {
	case refStr == "":
		return refErr(fieldPath, refStr, "$ref value cannot be empty")
	case strings.HasPrefix(refStr, "#"):
		return nil
	case strings.HasPrefix(refStr, "gts://"):
		gtsID := strings.TrimPrefix(refStr, GtsURIPrefix)
		if !IsValidGtsID(gtsID) {
			return refErr(fieldPath, refStr, "contains invalid GTS identifier '%s'", gtsID)
		}
		return nil
	default:
		return refErr(fieldPath, refStr, refFormatReason)
	}
}
