/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// GtsPrefix is the required prefix for all GTS identifiers.
	GtsPrefix = "gts."
	// GtsURIPrefix is the URI-compatible prefix used when a GTS identifier
	// is serialized into a JSON Schema $id field (e.g. "gts://gts.x.y...").
	// It never appears in a parsed GtsID and plays no role in parsing.
	GtsURIPrefix = "gts://"
	// MaxIDLength bounds the length of a raw identifier string before parsing.
	MaxIDLength = 1024

	minSegmentTokens = 5
	maxSegmentTokens = 6
)

// GtsNamespace is the UUID namespace every GTS identifier's v5 UUID is
// derived against: uuid5(NAMESPACE_URL, "gts").
var GtsNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("gts"))

// segmentTokenRegex matches a bare token: lowercase letter/underscore start,
// followed by lowercase letters, digits, or underscores.
var segmentTokenRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// InvalidGtsIDError reports a malformed identifier at the top level
// (prefix, casing, length) rather than within a specific segment.
type InvalidGtsIDError struct {
	GtsID string
	Cause string
}

func (e *InvalidGtsIDError) Error() string {
	if e.Cause == "" {
		return fmt.Sprintf("invalid GTS identifier: %s", e.GtsID)
	}
	return fmt.Sprintf("invalid GTS identifier: %s: %s", e.GtsID, e.Cause)
}

// InvalidSegmentError reports a malformed segment, identified by its
// 1-based position and byte offset within the owning identifier.
type InvalidSegmentError struct {
	Num     int
	Offset  int
	Segment string
	Cause   string
}

func (e *InvalidSegmentError) Error() string {
	if e.Cause == "" {
		return fmt.Sprintf("invalid GTS segment #%d @ offset %d: '%s'", e.Num, e.Offset, e.Segment)
	}
	return fmt.Sprintf("invalid GTS segment #%d @ offset %d: '%s': %s", e.Num, e.Offset, e.Segment, e.Cause)
}

func (e *InvalidSegmentError) withCause(cause string) *InvalidSegmentError {
	return &InvalidSegmentError{Num: e.Num, Offset: e.Offset, Segment: e.Segment, Cause: cause}
}

// GtsIDSegment is one dot/tilde-delimited component of a GTS identifier,
// broken into its vendor/package/namespace/type tokens and optional version.
type GtsIDSegment struct {
	Num        int
	Offset     int
	Segment    string
	Vendor     string
	Package    string
	Namespace  string
	Type       string
	VerMajor   int
	VerMinor   *int
	IsType     bool
	IsWildcard bool
}

// GtsID is a parsed and validated GTS identifier.
type GtsID struct {
	ID       string
	Segments []*GtsIDSegment
}

// NewGtsID parses and validates id, returning the first structural error
// encountered: whole-string checks first, then segment-by-segment left to right.
func NewGtsID(id string) (*GtsID, error) {
	raw := strings.TrimSpace(id)
	if err := checkRawID(id, raw); err != nil {
		return nil, err
	}

	segStrs := splitSegments(raw[len(GtsPrefix):])
	segments := make([]*GtsIDSegment, 0, len(segStrs))

	offset := len(GtsPrefix)
	for i, s := range segStrs {
		if s == "" {
			return nil, &InvalidGtsIDError{GtsID: id, Cause: fmt.Sprintf("GTS segment #%d @ offset %d is empty", i+1, offset)}
		}
		seg, err := parseSegment(i+1, offset, s)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
		offset += len(s)
	}

	return &GtsID{ID: raw, Segments: segments}, nil
}

// checkRawID validates the whole-string constraints that apply before any
// segment splitting happens: casing, forbidden characters, prefix, length.
func checkRawID(original, raw string) error {
	switch {
	case raw != strings.ToLower(raw):
		return &InvalidGtsIDError{GtsID: original, Cause: "Must be lower case"}
	case strings.Contains(raw, "-"):
		return &InvalidGtsIDError{GtsID: original, Cause: "Must not contain '-'"}
	case !strings.HasPrefix(raw, GtsPrefix):
		return &InvalidGtsIDError{GtsID: original, Cause: fmt.Sprintf("Does not start with '%s'", GtsPrefix)}
	case len(raw) > MaxIDLength:
		return &InvalidGtsIDError{GtsID: original, Cause: "Too long"}
	default:
		return nil
	}
}

// IsValidGtsID reports whether s parses as a well-formed GTS identifier.
func IsValidGtsID(s string) bool {
	if !strings.HasPrefix(s, GtsPrefix) {
		return false
	}
	_, err := NewGtsID(s)
	return err == nil
}

// IsType reports whether the identifier names a type (ends in '~') rather
// than an instance.
func (g *GtsID) IsType() bool {
	return strings.HasSuffix(g.ID, "~")
}

// ToUUID derives the identifier's deterministic v5 UUID: uuid5(GtsNamespace, id).
func (g *GtsID) ToUUID() uuid.UUID {
	return uuid.NewSHA1(GtsNamespace, []byte(g.ID))
}

// splitSegments splits a tilde-delimited remainder into segments, keeping
// the '~' attached to the segment it terminates and preserving a trailing
// empty segment so the caller can detect and reject it.
func splitSegments(s string) []string {
	var out []string
	rest := s
	for {
		head, tail, found := strings.Cut(rest, "~")
		if !found {
			return append(out, rest)
		}
		out = append(out, head+"~")
		if tail == "" {
			return out
		}
		rest = tail
	}
}

// parseSegment parses one '.'-delimited segment
// (vendor.package.namespace.type.vMAJOR[.MINOR]), optionally suffixed with
// '~', and treats '*' at any token position as a wildcard that short-circuits
// the remaining tokens.
func parseSegment(num, offset int, raw string) (*GtsIDSegment, error) {
	errAt := &InvalidSegmentError{Num: num, Offset: offset, Segment: raw}

	body := strings.TrimSpace(raw)
	seg := &GtsIDSegment{Num: num, Offset: offset, Segment: body}

	switch strings.Count(body, "~") {
	case 0:
	case 1:
		if !strings.HasSuffix(body, "~") {
			return nil, errAt.withCause(" '~' must be at the end")
		}
		seg.IsType = true
		body = body[:len(body)-1]
	default:
		return nil, errAt.withCause("Too many '~' characters")
	}

	tokens := strings.Split(body, ".")
	if len(tokens) > maxSegmentTokens {
		return nil, errAt.withCause("Too many tokens")
	}
	if !strings.HasSuffix(body, "*") {
		if len(tokens) < minSegmentTokens {
			return nil, errAt.withCause("Too few tokens")
		}
		for _, t := range tokens[:4] {
			if !segmentTokenRegex.MatchString(t) {
				return nil, errAt.withCause("Invalid segment token: " + t)
			}
		}
	}

	for idx, tok := range tokens {
		if tok == "*" {
			seg.IsWildcard = true
			return seg, nil
		}
		if err := assignSegmentToken(seg, idx, tok, errAt); err != nil {
			return nil, err
		}
	}

	return seg, nil
}

// assignSegmentToken fills in the segment field for token position idx
// (0=vendor, 1=package, 2=namespace, 3=type, 4=major version, 5=minor version).
func assignSegmentToken(seg *GtsIDSegment, idx int, tok string, errAt *InvalidSegmentError) error {
	switch idx {
	case 0:
		seg.Vendor = tok
	case 1:
		seg.Package = tok
	case 2:
		seg.Namespace = tok
	case 3:
		seg.Type = tok
	case 4:
		major, err := parseVersionComponent(tok, true)
		if err != nil {
			return errAt.withCause(err.Error())
		}
		seg.VerMajor = major
	case 5:
		minor, err := parseVersionComponent(tok, false)
		if err != nil {
			return errAt.withCause(err.Error())
		}
		seg.VerMinor = &minor
	}
	return nil
}

// parseVersionComponent parses a version token into a non-negative integer
// with no leading zeros. The major component additionally requires a
// leading 'v' (e.g. "v2"); the minor component is a bare integer.
func parseVersionComponent(tok string, isMajor bool) (int, error) {
	label, numStr := "Minor", tok
	if isMajor {
		label = "Major"
		if !strings.HasPrefix(tok, "v") {
			return 0, fmt.Errorf("Major version must start with 'v'")
		}
		numStr = tok[1:]
	}

	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("%s version must be an integer", label)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s version must be >= 0", label)
	}
	if strconv.Itoa(n) != numStr {
		return 0, fmt.Errorf("%s version must be an integer", label)
	}
	return n, nil
}
