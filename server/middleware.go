/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// capturingWriter wraps http.ResponseWriter to record the status code and
// body written through it, so withLogging can report on a response after
// the handler has already flushed it downstream.
type capturingWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (cw *capturingWriter) WriteHeader(code int) {
	cw.statusCode = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *capturingWriter) Write(p []byte) (int, error) {
	cw.body.Write(p)
	return cw.ResponseWriter.Write(p)
}

// withLogging reports each request's method, path, status and duration at
// verbosity 1, and additionally dumps request/response bodies at verbosity 2.
func (s *Server) withLogging(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.verbose == 0 {
			handler.ServeHTTP(w, r)
			return
		}

		reqBody := s.captureRequestBody(r)
		cw := &capturingWriter{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()
		handler.ServeHTTP(cw, r)
		s.logRequest(r, cw, time.Since(start), reqBody)
	})
}

// captureRequestBody drains and restores r.Body when body logging is
// enabled, so downstream handlers still see the full request.
func (s *Server) captureRequestBody(r *http.Request) []byte {
	if s.verbose < 2 || r.Body == nil {
		return nil
	}
	data, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(data))
	return data
}

func (s *Server) logRequest(r *http.Request, cw *capturingWriter, duration time.Duration, reqBody []byte) {
	slog.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", cw.statusCode,
		"duration_ms", float64(duration.Microseconds())/1000.0,
	)

	if s.verbose < 2 {
		return
	}
	if len(reqBody) > 0 {
		slog.Debug("request body", "body", formatMaybeJSON(reqBody))
	}
	if respBody := cw.body.Bytes(); len(respBody) > 0 {
		slog.Debug("response body", "body", formatMaybeJSON(respBody))
	}
}

// formatMaybeJSON pretty-prints data when it parses as JSON, otherwise
// returns it verbatim; used only for diagnostic logging.
func formatMaybeJSON(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return string(data)
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return string(data)
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(data)
	}
	return string(pretty)
}
