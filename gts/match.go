/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"strings"
)

// MatchIDResult is the outcome of matching a candidate identifier against a
// (possibly wildcarded) pattern.
type MatchIDResult struct {
	Candidate string `json:"candidate"`
	Pattern   string `json:"pattern"`
	Match     bool   `json:"match"`
	Error     string `json:"error"`
}

// InvalidWildcardError reports a malformed wildcard pattern.
type InvalidWildcardError struct {
	Pattern string
	Cause   string
}

func (e *InvalidWildcardError) Error() string {
	if e.Cause == "" {
		return fmt.Sprintf("invalid GTS wildcard pattern: %s", e.Pattern)
	}
	return fmt.Sprintf("invalid GTS wildcard pattern: %s: %s", e.Pattern, e.Cause)
}

// MatchIDPattern reports whether candidate matches pattern, where pattern may
// end a segment's token list with a single trailing '*' wildcard.
func MatchIDPattern(candidate, pattern string) MatchIDResult {
	result := MatchIDResult{Candidate: candidate, Pattern: pattern}

	candidateID, err := NewGtsID(candidate)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	patternID, err := parseWildcardPattern(pattern)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Match = segmentsMatch(patternID.Segments, candidateID.Segments)
	return result
}

// parseWildcardPattern validates the wildcard-specific constraints (at most
// one '*', and only as the final token of a segment) before parsing the
// pattern as an ordinary GtsID.
func parseWildcardPattern(pattern string) (*GtsID, error) {
	p := strings.TrimSpace(pattern)

	if !strings.HasPrefix(p, GtsPrefix) {
		return nil, &InvalidWildcardError{Pattern: pattern, Cause: fmt.Sprintf("Does not start with '%s'", GtsPrefix)}
	}

	switch strings.Count(p, "*") {
	case 0:
	case 1:
		if !strings.HasSuffix(p, ".*") && !strings.HasSuffix(p, "~*") {
			return nil, &InvalidWildcardError{Pattern: pattern, Cause: "The wildcard '*' token is allowed only at the end of the pattern"}
		}
	default:
		return nil, &InvalidWildcardError{Pattern: pattern, Cause: "The wildcard '*' token is allowed only once"}
	}

	id, err := NewGtsID(p)
	if err != nil {
		return nil, &InvalidWildcardError{Pattern: pattern, Cause: err.Error()}
	}
	return id, nil
}

// segmentsMatch walks pattern and candidate segments pairwise. A candidate
// with fewer segments than the pattern never matches; a wildcard segment in
// the pattern matches the remaining candidate segments once its own
// non-empty fields agree with the candidate's.
func segmentsMatch(patternSegs, candidateSegs []*GtsIDSegment) bool {
	if len(patternSegs) > len(candidateSegs) {
		return false
	}
	for i, pSeg := range patternSegs {
		if pSeg.IsWildcard {
			return segmentFieldsCompatible(pSeg, candidateSegs[i])
		}
		if !segmentFieldsEqual(pSeg, candidateSegs[i]) {
			return false
		}
	}
	return true
}

// segmentFieldsEqual requires every field to match exactly (used for
// concrete, non-wildcard segments).
func segmentFieldsEqual(a, b *GtsIDSegment) bool {
	if a.Vendor != b.Vendor || a.Package != b.Package || a.Namespace != b.Namespace || a.Type != b.Type {
		return false
	}
	if a.VerMajor != b.VerMajor || a.IsType != b.IsType {
		return false
	}
	return minorVersionCompatible(a.VerMinor, b.VerMinor)
}

// segmentFieldsCompatible requires only the fields explicitly set on the
// wildcard segment w to match candidate c; zero-valued fields on w are
// wildcards themselves and impose no constraint.
func segmentFieldsCompatible(w, c *GtsIDSegment) bool {
	if w.Vendor != "" && w.Vendor != c.Vendor {
		return false
	}
	if w.Package != "" && w.Package != c.Package {
		return false
	}
	if w.Namespace != "" && w.Namespace != c.Namespace {
		return false
	}
	if w.Type != "" && w.Type != c.Type {
		return false
	}
	if w.VerMajor != 0 && w.VerMajor != c.VerMajor {
		return false
	}
	if w.IsType && w.IsType != c.IsType {
		return false
	}
	return minorVersionCompatible(w.VerMinor, c.VerMinor)
}

// minorVersionCompatible applies the shared minor-version rule: an absent
// minor on the matched-against side ("want") imposes no constraint; a
// present one must equal the candidate's, which must itself be present.
func minorVersionCompatible(want, have *int) bool {
	if want == nil {
		return true
	}
	if have == nil {
		return false
	}
	return *want == *have
}
