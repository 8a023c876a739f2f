package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dgallion1/replyfmt/internal/pipeline"
	"github.com/dgallion1/replyfmt/internal/schema"
	"github.com/go-chi/chi/v5"
)

type batchItem struct {
	ID     string          `json:"id"`
	Text   string          `json:"text"`
	Schema json.RawMessage `json:"schema,omitempty"`
}

type batchRequest struct {
	Items []batchItem `json:"items"`
}

func (s *Server) handleFormatBatch(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.MaxInputBytes*int64(s.cfg.MaxBatchItems) + 1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		jsonError(w, "at least one item is required", http.StatusBadRequest)
		return
	}
	if len(req.Items) > s.cfg.MaxBatchItems {
		jsonError(w, fmt.Sprintf("too many items (max %d)", s.cfg.MaxBatchItems), http.StatusBadRequest)
		return
	}

	items := make([]pipeline.Item, 0, len(req.Items))
	for i, bi := range req.Items {
		item := pipeline.Item{ID: bi.ID, Text: bi.Text}
		if item.ID == "" {
			item.ID = fmt.Sprintf("item-%d", i)
		}
		if len(bi.Schema) > 0 {
			sch, err := schema.Parse(bi.Schema)
			if err != nil {
				// A bad schema never blocks the batch; the item
				// formats with an inferred schema instead.
				item.SchemaErr = fmt.Sprintf("%s: schema: %s", item.ID, err)
			} else {
				item.Schema = sch
			}
		}
		items = append(items, item)
	}

	job := pipeline.NewJob(pipeline.NewJobID(), items)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/format/batch/%s", job.ID),
	})
}

func (s *Server) handleBatchStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}
