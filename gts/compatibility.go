/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

// CompatibilityResult is the outcome of comparing two schema versions for
// backward/forward compatibility.
type CompatibilityResult struct {
	FromID                 string              `json:"from"`
	ToID                   string              `json:"to"`
	OldID                  string              `json:"old"`
	NewID                  string              `json:"new"`
	Direction              string              `json:"direction"`
	AddedProperties        []string            `json:"added_properties"`
	RemovedProperties      []string            `json:"removed_properties"`
	ChangedProperties      []map[string]string `json:"changed_properties"`
	IsFullyCompatible      bool                `json:"is_fully_compatible"`
	IsBackwardCompatible   bool                `json:"is_backward_compatible"`
	IsForwardCompatible    bool                `json:"is_forward_compatible"`
	IncompatibilityReasons []string            `json:"incompatibility_reasons"`
	BackwardErrors         []string            `json:"backward_errors"`
	ForwardErrors          []string            `json:"forward_errors"`
	Error                  string              `json:"error,omitempty"`
}

// compatibilityFailure builds a CompatibilityResult for a request that never
// got to run the actual diff (missing schema, nil content, ...); both error
// slots carry the same reason since neither direction could be evaluated.
func compatibilityFailure(oldSchemaID, newSchemaID, reason string) *CompatibilityResult {
	return &CompatibilityResult{
		FromID:                 oldSchemaID,
		ToID:                   newSchemaID,
		OldID:                  oldSchemaID,
		NewID:                  newSchemaID,
		Direction:              "unknown",
		AddedProperties:        []string{},
		RemovedProperties:      []string{},
		ChangedProperties:      []map[string]string{},
		IncompatibilityReasons: []string{},
		BackwardErrors:         []string{reason},
		ForwardErrors:          []string{reason},
	}
}

// CheckCompatibility compares the schemas named by oldSchemaID and
// newSchemaID and reports whether moving from old to new is backward
// compatible (new readers can read old data), forward compatible (old
// readers can read new data), or both.
func (s *GtsStore) CheckCompatibility(oldSchemaID, newSchemaID string) *CompatibilityResult {
	oldEntity := s.Get(oldSchemaID)
	newEntity := s.Get(newSchemaID)
	if oldEntity == nil || newEntity == nil {
		return compatibilityFailure(oldSchemaID, newSchemaID, "Schema not found")
	}
	if oldEntity.Content == nil || newEntity.Content == nil {
		return compatibilityFailure(oldSchemaID, newSchemaID, "Invalid schema content")
	}

	isBackward, backwardErrors := (&compatChecker{backward: true}).check(oldEntity.Content, newEntity.Content)
	isForward, forwardErrors := (&compatChecker{backward: false}).check(oldEntity.Content, newEntity.Content)

	return &CompatibilityResult{
		FromID:                 oldSchemaID,
		ToID:                   newSchemaID,
		OldID:                  oldSchemaID,
		NewID:                  newSchemaID,
		Direction:              inferDirection(oldSchemaID, newSchemaID),
		AddedProperties:        []string{},
		RemovedProperties:      []string{},
		ChangedProperties:      []map[string]string{},
		IsFullyCompatible:      isBackward && isForward,
		IsBackwardCompatible:   isBackward,
		IsForwardCompatible:    isForward,
		IncompatibilityReasons: []string{},
		BackwardErrors:         backwardErrors,
		ForwardErrors:          forwardErrors,
	}
}

// inferDirection reports whether toID's minor version sits above, below, or
// level with fromID's, using each identifier's final (version-bearing) segment.
func inferDirection(fromID, toID string) string {
	from, err1 := NewGtsID(fromID)
	to, err2 := NewGtsID(toID)
	if err1 != nil || err2 != nil || len(from.Segments) == 0 || len(to.Segments) == 0 {
		return "unknown"
	}

	fromMinor := from.Segments[len(from.Segments)-1].VerMinor
	toMinor := to.Segments[len(to.Segments)-1].VerMinor
	if fromMinor == nil || toMinor == nil {
		return "unknown"
	}

	switch {
	case *toMinor > *fromMinor:
		return "up"
	case *toMinor < *fromMinor:
		return "down"
	default:
		return "none"
	}
}

// flattenSchema inlines every allOf branch's properties/required/
// additionalProperties into a single flat schema, so downstream comparison
// doesn't need to special-case composition.
func flattenSchema(schema map[string]any) map[string]any {
	result := map[string]any{
		"properties": make(map[string]any),
		"required":   []any{},
	}

	if allOf, ok := schema["allOf"].([]any); ok {
		for _, sub := range allOf {
			subSchema, ok := sub.(map[string]any)
			if !ok {
				continue
			}
			mergeFlatInto(result, flattenSchema(subSchema))
		}
	}
	mergeFlatInto(result, schema)

	return result
}

// mergeFlatInto folds src's properties/required/additionalProperties into
// dst, with src's additionalProperties (if set) always winning.
func mergeFlatInto(dst, src map[string]any) {
	if props, ok := src["properties"].(map[string]any); ok {
		if dstProps, ok := dst["properties"].(map[string]any); ok {
			for k, v := range props {
				dstProps[k] = v
			}
		}
	}
	if req, ok := src["required"].([]any); ok {
		if dstReq, ok := dst["required"].([]any); ok {
			dst["required"] = append(dstReq, req...)
		}
	}
	if addProps, ok := src["additionalProperties"]; ok {
		dst["additionalProperties"] = addProps
	}
}

// compatChecker evaluates one direction of compatibility (backward when new
// readers must accept old data, forward when old readers must accept new
// data) between a pair of schemas.
type compatChecker struct {
	backward bool
}

// check reports whether newSchema is compatible with oldSchema in the
// checker's direction, along with every violation found.
func (c *compatChecker) check(oldSchema, newSchema map[string]any) (bool, []string) {
	oldFlat := flattenSchema(oldSchema)
	newFlat := flattenSchema(newSchema)

	oldProps := getPropertiesMap(oldFlat)
	newProps := getPropertiesMap(newFlat)

	var errors []string
	errors = append(errors, c.checkRequiredChanges(getRequiredSet(oldFlat), getRequiredSet(newFlat))...)

	for _, prop := range setIntersection(getKeys(oldProps), getKeys(newProps)) {
		oldPropSchema := oldProps[prop].(map[string]any)
		newPropSchema := newProps[prop].(map[string]any)
		errors = append(errors, c.checkProperty(prop, oldPropSchema, newPropSchema)...)
	}

	return len(errors) == 0, errors
}

// checkRequiredChanges flags the direction-specific illegal change to the
// required set: backward checks forbid newly-required properties (old data
// may lack them); forward checks forbid removed ones (old readers may rely on them).
func (c *compatChecker) checkRequiredChanges(oldRequired, newRequired map[string]bool) []string {
	if c.backward {
		if added := setDifference(newRequired, oldRequired); len(added) > 0 {
			return []string{"Added required properties: " + joinStrings(added)}
		}
		return nil
	}
	if removed := setDifference(oldRequired, newRequired); len(removed) > 0 {
		return []string{"Removed required properties: " + joinStrings(removed)}
	}
	return nil
}

// checkProperty compares one property present in both schemas: its type,
// enum, numeric/length/size constraints, and (recursively) its nested shape.
func (c *compatChecker) checkProperty(prop string, oldPropSchema, newPropSchema map[string]any) []string {
	var errors []string

	oldType := getString(oldPropSchema, "type")
	newType := getString(newPropSchema, "type")
	if oldType != "" && newType != "" && oldType != newType {
		errors = append(errors, "Property '"+prop+"' type changed from "+oldType+" to "+newType)
	}

	errors = append(errors, c.checkEnumChanges(prop, oldPropSchema, newPropSchema)...)
	errors = append(errors, checkConstraintCompatibility(prop, oldType, oldPropSchema, newPropSchema, c.backward)...)
	errors = append(errors, c.checkNested(prop, oldType, newType, oldPropSchema, newPropSchema)...)

	return errors
}

func (c *compatChecker) checkEnumChanges(prop string, oldPropSchema, newPropSchema map[string]any) []string {
	oldEnum := stringSliceToSet(getStringSlice(oldPropSchema, "enum"))
	newEnum := stringSliceToSet(getStringSlice(newPropSchema, "enum"))
	if len(oldEnum) == 0 || len(newEnum) == 0 {
		return nil
	}

	if c.backward {
		if added := setDifference(newEnum, oldEnum); len(added) > 0 {
			return []string{"Property '" + prop + "' added enum values: " + joinStrings(added)}
		}
		return nil
	}
	if removed := setDifference(oldEnum, newEnum); len(removed) > 0 {
		return []string{"Property '" + prop + "' removed enum values: " + joinStrings(removed)}
	}
	return nil
}

// checkNested recurses into object properties and array item schemas, both
// of which carry their own nested property/required structure.
func (c *compatChecker) checkNested(prop, oldType, newType string, oldPropSchema, newPropSchema map[string]any) []string {
	var errors []string

	if oldType == "object" && newType == "object" {
		if ok, nested := c.check(oldPropSchema, newPropSchema); !ok {
			for _, e := range nested {
				errors = append(errors, "Property '"+prop+"': "+e)
			}
		}
	}

	if oldType == "array" && newType == "array" {
		oldItems := getMap(oldPropSchema, "items")
		newItems := getMap(newPropSchema, "items")
		if oldItems != nil && newItems != nil {
			if ok, nested := c.check(oldItems, newItems); !ok {
				for _, e := range nested {
					errors = append(errors, "Property '"+prop+"' array items: "+e)
				}
			}
		}
	}

	return errors
}

// checkConstraintCompatibility checks the type-appropriate min/max
// constraint pair (numeric range, string length, array size) for prop.
func checkConstraintCompatibility(prop, propType string, oldPropSchema, newPropSchema map[string]any, checkTightening bool) []string {
	switch propType {
	case "number", "integer":
		return checkMinMaxConstraint(prop, oldPropSchema, newPropSchema, "minimum", "maximum", checkTightening)
	case "string":
		return checkMinMaxConstraint(prop, oldPropSchema, newPropSchema, "minLength", "maxLength", checkTightening)
	case "array":
		return checkMinMaxConstraint(prop, oldPropSchema, newPropSchema, "minItems", "maxItems", checkTightening)
	default:
		return nil
	}
}

// checkMinMaxConstraint reports illegal tightening (checkTightening=true, the
// backward-compatibility direction) or illegal relaxing/removal
// (checkTightening=false, forward) of a schema's minKey/maxKey bounds.
func checkMinMaxConstraint(prop string, oldSchema, newSchema map[string]any, minKey, maxKey string, checkTightening bool) []string {
	var errors []string

	oldMin, newMin := getNumber(oldSchema, minKey), getNumber(newSchema, minKey)
	oldMax, newMax := getNumber(oldSchema, maxKey), getNumber(newSchema, maxKey)

	if checkTightening {
		if oldMin != nil && newMin != nil && *newMin > *oldMin {
			errors = append(errors, "Property '"+prop+"' "+minKey+" increased from "+floatToString(*oldMin)+" to "+floatToString(*newMin))
		} else if oldMin == nil && newMin != nil {
			errors = append(errors, "Property '"+prop+"' added "+minKey+" constraint: "+floatToString(*newMin))
		}
		if oldMax != nil && newMax != nil && *newMax < *oldMax {
			errors = append(errors, "Property '"+prop+"' "+maxKey+" decreased from "+floatToString(*oldMax)+" to "+floatToString(*newMax))
		} else if oldMax == nil && newMax != nil {
			errors = append(errors, "Property '"+prop+"' added "+maxKey+" constraint: "+floatToString(*newMax))
		}
		return errors
	}

	if oldMin != nil && newMin != nil && *newMin < *oldMin {
		errors = append(errors, "Property '"+prop+"' "+minKey+" decreased from "+floatToString(*oldMin)+" to "+floatToString(*newMin))
	} else if oldMin != nil && newMin == nil {
		errors = append(errors, "Property '"+prop+"' removed "+minKey+" constraint")
	}
	if oldMax != nil && newMax != nil && *newMax > *oldMax {
		errors = append(errors, "Property '"+prop+"' "+maxKey+" increased from "+floatToString(*oldMax)+" to "+floatToString(*newMax))
	} else if oldMax != nil && newMax == nil {
		errors = append(errors, "Property '"+prop+"' removed "+maxKey+" constraint")
	}
	return errors
}
