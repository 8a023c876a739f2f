package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dgallion1/replyfmt/internal/schema"
)

type formatRequest struct {
	Text   string          `json:"text"`
	Schema json.RawMessage `json:"schema,omitempty"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeFormatRequest(w, r)
	if !ok {
		return
	}

	start := time.Now()
	html, mode := s.fmtr.Format(req.Text)
	s.stats.Record(time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"html": html,
		"mode": mode,
	})
}

func (s *Server) handleFormatStructured(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeFormatRequest(w, r)
	if !ok {
		return
	}

	var sch *schema.Schema
	if len(req.Schema) > 0 {
		parsed, err := schema.Parse(req.Schema)
		if err != nil {
			jsonError(w, "invalid schema: "+err.Error(), http.StatusBadRequest)
			return
		}
		sch = parsed
	}

	start := time.Now()
	html, mode := s.fmtr.FormatStructured(req.Text, sch)
	s.stats.Record(time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"html": html,
		"mode": mode,
	})
}

// decodeFormatRequest reads a bounded JSON body. The size cap is the
// service's only guard against pathological input; the formatter itself
// bounds nothing but recursion depth.
func (s *Server) decodeFormatRequest(w http.ResponseWriter, r *http.Request) (formatRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxInputBytes)

	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, "request exceeds max size", http.StatusRequestEntityTooLarge)
			return formatRequest{}, false
		}
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return formatRequest{}, false
	}
	return req, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
