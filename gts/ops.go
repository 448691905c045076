/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

// IDValidationResult is the outcome of validating a single GTS identifier.
type IDValidationResult struct {
	ID    string `json:"id"`
	Valid bool   `json:"valid"`
	Error string `json:"error"`
}

// ValidateGtsID parses gtsID and reports whether it is well-formed.
func ValidateGtsID(gtsID string) *IDValidationResult {
	result := &IDValidationResult{ID: gtsID, Valid: true}
	if _, err := NewGtsID(gtsID); err != nil {
		result.Valid = false
		result.Error = err.Error()
	}
	return result
}

// ExtractGtsID is the operation-table entry point for identifier extraction
// from arbitrary JSON content; it delegates to the entity constructor so
// extraction semantics live in a single place (extract.go).
func ExtractGtsID(content map[string]any, cfg *GtsConfig) *ExtractIDResult {
	return ExtractID(content, cfg)
}

// ParseGtsID is the operation-table entry point for segment-level parsing.
func ParseGtsID(gtsID string) ParseIDResult {
	return ParseID(gtsID)
}

// UUIDResult is the outcome of deriving a GTS identifier's UUID.
type UUIDResult struct {
	ID    string `json:"id"`
	UUID  string `json:"uuid"`
	Error string `json:"error"`
}

// IDToUUID derives the deterministic v5 UUID for gtsID, or reports why it could not.
func IDToUUID(gtsID string) *UUIDResult {
	id, err := NewGtsID(gtsID)
	if err != nil {
		return &UUIDResult{ID: gtsID, Error: err.Error()}
	}
	return &UUIDResult{ID: gtsID, UUID: id.ToUUID().String()}
}
