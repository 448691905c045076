/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/entityregistry/gts/gts"
)

// Entity management

func (s *Server) handleGetEntities(w http.ResponseWriter, r *http.Request) {
	limit := s.getBoundedLimit(r, "limit", 100, 1000)
	s.writeJSON(w, http.StatusOK, s.store.List(limit))
}

func (s *Server) handleGetEntity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.writeError(w, http.StatusBadRequest, "Missing entity ID")
		return
	}

	entity := s.store.Get(id)
	if entity == nil {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("Entity not found: %s", id))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"id":      entity.GtsID.ID,
		"content": entity.Content,
	})
}

// decodeEntity reads the request body into a GTS entity using the store's
// default ID field configuration, failing the response if the body is
// unparsable JSON or carries no recognizable GTS ID.
func (s *Server) decodeEntity(w http.ResponseWriter, r *http.Request) (*gts.JsonEntity, bool) {
	var content map[string]any
	if err := s.readJSON(r, &content); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}

	entity := gts.NewJsonEntity(content, gts.DefaultGtsConfig())
	if entity.GtsID == nil {
		s.writeOutcome(w, false, map[string]any{"error": "Unable to extract GTS ID from entity"})
		return nil, false
	}
	return entity, true
}

// checkSchemaRefs runs x-gts-ref validation against a schema entity,
// failing the response with the combined error list if any constraint is
// malformed.
func (s *Server) checkSchemaRefs(w http.ResponseWriter, entity *gts.JsonEntity) bool {
	if !entity.IsSchema {
		return true
	}
	errs := gts.NewXGtsRefValidator(s.store).ValidateSchema(entity.Content, "", nil)
	if len(errs) == 0 {
		return true
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	s.writeOutcome(w, false, map[string]any{"error": fmt.Sprintf("Validation failed: %s", strings.Join(msgs, "; "))})
	return false
}

func (s *Server) handleAddEntity(w http.ResponseWriter, r *http.Request) {
	entity, ok := s.decodeEntity(w, r)
	if !ok {
		return
	}
	if !s.checkSchemaRefs(w, entity) {
		return
	}

	wantsValidation := s.getQueryParam(r, "validation") == "true" && !entity.IsSchema

	if err := s.store.Register(entity); err != nil {
		s.writeOutcome(w, false, map[string]any{"error": err.Error()})
		return
	}

	if wantsValidation {
		if result := s.store.ValidateInstance(entity.GtsID.ID); !result.OK {
			s.writeOutcome(w, false, map[string]any{"error": result.Error})
			return
		}
	}

	s.writeOutcome(w, true, map[string]any{"gts_id": entity.GtsID.ID})
}

func (s *Server) handleAddEntities(w http.ResponseWriter, r *http.Request) {
	var contents []map[string]any
	if err := s.readJSON(r, &contents); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON array")
		return
	}

	results := make([]map[string]any, len(contents))
	successCount := 0
	for i, content := range contents {
		ok, result := s.registerOne(content)
		results[i] = result
		if ok {
			successCount++
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"ok":      successCount == len(contents),
		"count":   successCount,
		"total":   len(contents),
		"results": results,
	})
}

func (s *Server) registerOne(content map[string]any) (bool, map[string]any) {
	entity := gts.NewJsonEntity(content, gts.DefaultGtsConfig())
	if entity.GtsID == nil {
		return false, map[string]any{"ok": false, "error": "Unable to extract GTS ID from entity"}
	}
	if err := s.store.Register(entity); err != nil {
		return false, map[string]any{"ok": false, "error": err.Error()}
	}
	return true, map[string]any{"ok": true, "gts_id": entity.GtsID.ID}
}

func (s *Server) handleAddSchema(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TypeID string         `json:"type_id"`
		Schema map[string]any `json:"schema"`
	}
	if err := s.readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := s.store.RegisterSchema(req.TypeID, req.Schema); err != nil {
		s.writeJSON(w, http.StatusOK, map[string]any{"ok": false, "type_id": req.TypeID, "error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"ok": true, "type_id": req.TypeID})
}

// GTS operation handlers — each delegates to a single gts package call and
// relays its result verbatim as the JSON response.

func (s *Server) handleValidateID(w http.ResponseWriter, r *http.Request) {
	gtsID := s.getQueryParam(r, "gts_id")
	if gtsID == "" {
		s.writeError(w, http.StatusBadRequest, "Missing gts_id parameter")
		return
	}
	s.writeJSON(w, http.StatusOK, gts.ValidateGtsID(gtsID))
}

func (s *Server) handleExtractID(w http.ResponseWriter, r *http.Request) {
	var content map[string]any
	if err := s.readJSON(r, &content); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	s.writeJSON(w, http.StatusOK, gts.ExtractGtsID(content, gts.DefaultGtsConfig()))
}

func (s *Server) handleParseID(w http.ResponseWriter, r *http.Request) {
	gtsID := s.getQueryParam(r, "gts_id")
	if gtsID == "" {
		s.writeError(w, http.StatusBadRequest, "Missing gts_id parameter")
		return
	}
	s.writeJSON(w, http.StatusOK, gts.ParseGtsID(gtsID))
}

func (s *Server) handleMatchIDPattern(w http.ResponseWriter, r *http.Request) {
	candidate := s.getQueryParam(r, "candidate")
	pattern := s.getQueryParam(r, "pattern")
	if candidate == "" || pattern == "" {
		s.writeError(w, http.StatusBadRequest, "Missing candidate or pattern parameter")
		return
	}
	s.writeJSON(w, http.StatusOK, gts.MatchIDPattern(candidate, pattern))
}

func (s *Server) handleUUID(w http.ResponseWriter, r *http.Request) {
	gtsID := s.getQueryParam(r, "gts_id")
	if gtsID == "" {
		s.writeError(w, http.StatusBadRequest, "Missing gts_id parameter")
		return
	}
	s.writeJSON(w, http.StatusOK, gts.IDToUUID(gtsID))
}

func (s *Server) handleValidateInstance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InstanceID string `json:"instance_id"`
	}
	if err := s.readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.ValidateInstance(req.InstanceID))
}

func (s *Server) handleResolveRelationships(w http.ResponseWriter, r *http.Request) {
	gtsID := s.getQueryParam(r, "gts_id")
	if gtsID == "" {
		s.writeError(w, http.StatusBadRequest, "Missing gts_id parameter")
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.BuildSchemaGraph(gtsID))
}

func (s *Server) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	oldSchemaID := s.getQueryParam(r, "old_schema_id")
	newSchemaID := s.getQueryParam(r, "new_schema_id")
	if oldSchemaID == "" || newSchemaID == "" {
		s.writeError(w, http.StatusBadRequest, "Missing old_schema_id or new_schema_id parameter")
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.CheckCompatibility(oldSchemaID, newSchemaID))
}

func (s *Server) handleCast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InstanceID string `json:"instance_id"`
		ToSchemaID string `json:"to_schema_id"`
	}
	if err := s.readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := s.store.Cast(req.InstanceID, req.ToSchemaID)
	if err != nil {
		s.writeJSON(w, http.StatusOK, map[string]any{"error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	expr := s.getQueryParam(r, "expr")
	if expr == "" {
		s.writeError(w, http.StatusBadRequest, "Missing expr parameter")
		return
	}
	limit := s.getBoundedLimit(r, "limit", 100, 1000)
	s.writeJSON(w, http.StatusOK, s.store.Query(expr, limit))
}

func (s *Server) handleAttribute(w http.ResponseWriter, r *http.Request) {
	gtsWithPath := s.getQueryParam(r, "gts_with_path")
	if gtsWithPath == "" {
		s.writeError(w, http.StatusBadRequest, "Missing gts_with_path parameter")
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.GetAttribute(gtsWithPath))
}
