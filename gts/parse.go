/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

// ParseIDSegment is the public, serializable view of a GtsIDSegment: the
// same fields minus the internal Num/Offset/Segment bookkeeping.
type ParseIDSegment struct {
	Vendor    string
	Package   string
	Namespace string
	Type      string
	VerMajor  int
	VerMinor  *int
	IsType    bool
}

// ParseIDResult is the outcome of decomposing a GTS identifier into segments.
type ParseIDResult struct {
	ID       string
	OK       bool
	Segments []ParseIDSegment
	Error    string
}

// ParseID decomposes gtsID into its segments, or reports why it couldn't.
func ParseID(gtsID string) ParseIDResult {
	id, err := NewGtsID(gtsID)
	if err != nil {
		return ParseIDResult{ID: gtsID, Error: err.Error()}
	}

	return ParseIDResult{ID: gtsID, OK: true, Segments: toParseSegments(id.Segments)}
}

func toParseSegments(segs []*GtsIDSegment) []ParseIDSegment {
	out := make([]ParseIDSegment, len(segs))
	for i, s := range segs {
		out[i] = ParseIDSegment{
			Vendor:    s.Vendor,
			Package:   s.Package,
			Namespace: s.Namespace,
			Type:      s.Type,
			VerMajor:  s.VerMajor,
			VerMinor:  s.VerMinor,
			IsType:    s.IsType,
		}
	}
	return out
}
