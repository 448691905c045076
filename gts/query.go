/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"errors"
	"fmt"
	"strings"
)

// QueryResult is the outcome of evaluating a query expression against the store.
type QueryResult struct {
	Error   string           `json:"error"`
	Count   int              `json:"count"`
	Limit   int              `json:"limit"`
	Results []map[string]any `json:"results"`
}

// parsedQuery is a query expression split into its identifier pattern
// (exact or wildcarded) and its optional "[key=value, ...]" filter clause.
type parsedQuery struct {
	pattern    string
	isWildcard bool
	filters    map[string]string
}

// Query filters stored entities by a GTS query expression. An entity is
// skipped when the id field chosen at extraction no longer holds its GTS ID.
// Supported forms:
//
//	gts.x.core.events.event.v1~                       exact match
//	gts.x.core.events.*                                wildcard match
//	gts.x.core.events.event.v1~x.y._.item.v1[status=active]  exact match with filters
//	gts.x.core.*[status=active, category=*]            wildcard with filters
func (s *GtsStore) Query(expr string, limit int) *QueryResult {
	if limit <= 0 {
		limit = 100
	}
	result := &QueryResult{Limit: limit, Results: make([]map[string]any, 0)}

	q, err := parseQuery(expr)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if err := q.validate(); err != nil {
		result.Error = err.Error()
		return result
	}

	for _, entity := range s.Items() {
		if len(result.Results) >= limit {
			break
		}
		if len(entity.Content) == 0 || entity.GtsID == nil {
			continue
		}
		if entity.SelectedEntityField != "" && entity.fieldValue(entity.SelectedEntityField) != entity.GtsID.ID {
			continue
		}
		if !q.matchesID(entity.GtsID) || !q.matchesFilters(entity.Content) {
			continue
		}
		result.Results = append(result.Results, entity.Content)
	}

	result.Count = len(result.Results)
	return result
}

// parseQuery splits expr into its base pattern and bracketed filter clause.
// Filters are rejected outright on type patterns (ending in '~' or '~*'),
// since a type has no instance content to filter against.
func parseQuery(expr string) (*parsedQuery, error) {
	base, filterClause, hasFilters := strings.Cut(expr, "[")
	base = strings.TrimSpace(base)

	q := &parsedQuery{
		pattern:    base,
		isWildcard: strings.Contains(base, "*"),
		filters:    map[string]string{},
	}

	if !hasFilters {
		return q, nil
	}

	filterClause = strings.TrimSpace(filterClause)
	if !strings.HasSuffix(filterClause, "]") {
		return nil, errors.New("Invalid query: missing closing bracket ']'")
	}
	if strings.HasSuffix(base, "~") || strings.HasSuffix(base, "~*") {
		return nil, errors.New("Invalid query: filters cannot be used with type patterns (ending with ~ or ~*)")
	}

	q.filters = parseFilterClause(strings.TrimSuffix(filterClause, "]"))
	return q, nil
}

// parseFilterClause parses a comma-separated "key=value" list, stripping
// surrounding quotes from values.
func parseFilterClause(clause string) map[string]string {
	filters := make(map[string]string)
	if clause == "" {
		return filters
	}
	for _, part := range strings.Split(clause, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		filters[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return filters
}

// validate rejects a malformed or incomplete pattern before it's used to
// scan the store: a wildcard must end in ".*"/"~*", and a non-wildcard
// pattern must name a complete type or version, not a bare prefix.
func (q *parsedQuery) validate() error {
	if q.isWildcard {
		if !strings.HasSuffix(q.pattern, ".*") && !strings.HasSuffix(q.pattern, "~*") {
			return errors.New("Invalid query: wildcard patterns must end with .* or ~*")
		}
		if _, err := parseWildcardPattern(q.pattern); err != nil {
			return fmt.Errorf("Invalid query: %w", err)
		}
		return nil
	}

	gtsID, err := NewGtsID(q.pattern)
	if err != nil {
		return fmt.Errorf("Invalid query: %w", err)
	}
	if len(gtsID.Segments) == 0 {
		return errors.New("Invalid query: GTS ID has no valid segments")
	}
	last := gtsID.Segments[len(gtsID.Segments)-1]
	if !last.IsType && last.VerMajor == 0 {
		return errors.New("Invalid query: incomplete GTS ID pattern")
	}
	return nil
}

func (q *parsedQuery) matchesID(entityID *GtsID) bool {
	if entityID == nil {
		return false
	}
	return MatchIDPattern(entityID.ID, q.pattern).Match
}

// matchesFilters requires every filter key to be present on content with a
// matching value; a "*" filter value requires only that the key be non-empty.
func (q *parsedQuery) matchesFilters(content map[string]any) bool {
	for key, want := range q.filters {
		got := fmt.Sprintf("%v", content[key])
		if want == "*" {
			if got == "" || got == "<nil>" {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}
