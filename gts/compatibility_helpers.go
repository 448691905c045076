/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"sort"
	"strings"
)

// schemaMap is a decoded JSON Schema object, with typed accessors for the
// handful of keywords compatibility checking and casting care about.
type schemaMap map[string]any

func getPropertiesMap(schema map[string]any) map[string]any {
	return schemaMap(schema).mapOf("properties")
}

func getRequiredSet(schema map[string]any) map[string]bool {
	set := make(map[string]bool)
	for _, s := range schemaMap(schema).strs("required") {
		set[s] = true
	}
	return set
}

func getString(m map[string]any, key string) string {
	return schemaMap(m).str(key)
}

func getMap(m map[string]any, key string) map[string]any {
	return schemaMap(m).mapOf(key)
}

func getStringSlice(m map[string]any, key string) []string {
	return schemaMap(m).strs(key)
}

func getNumber(m map[string]any, key string) *float64 {
	return schemaMap(m).num(key)
}

func (s schemaMap) str(key string) string {
	v, _ := s[key].(string)
	return v
}

func (s schemaMap) mapOf(key string) map[string]any {
	v, ok := s[key].(map[string]any)
	if !ok {
		return nil
	}
	return v
}

func (s schemaMap) strs(key string) []string {
	raw, ok := s[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

func (s schemaMap) num(key string) *float64 {
	switch v := s[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

// getKeys returns every key of m as a membership set.
func getKeys(m map[string]any) map[string]bool {
	keys := make(map[string]bool, len(m))
	for k := range m {
		keys[k] = true
	}
	return keys
}

// stringSliceToSet builds a membership set out of slice.
func stringSliceToSet(slice []string) map[string]bool {
	set := make(map[string]bool, len(slice))
	for _, s := range slice {
		set[s] = true
	}
	return set
}

// setDifference returns, sorted, the elements of a absent from b.
func setDifference(a, b map[string]bool) []string {
	return sortedKeysWhere(a, func(k string) bool { return !b[k] })
}

// setIntersection returns, sorted, the elements present in both a and b.
func setIntersection(a, b map[string]bool) []string {
	return sortedKeysWhere(a, func(k string) bool { return b[k] })
}

func sortedKeysWhere(set map[string]bool, keep func(string) bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		if keep(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func joinStrings(strs []string) string {
	return strings.Join(strs, ", ")
}

// setToString renders set as a sorted, comma-separated string, for
// diagnostics where reporting a whole set reads better than listing a diff.
func setToString(set map[string]bool) string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

// floatToString renders f without a trailing ".0000000000" when it's a
// whole number, so compatibility diagnostics read "5" rather than "5.0".
func floatToString(f float64) string {
	s := fmt.Sprintf("%.10f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
