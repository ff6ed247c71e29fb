package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleConvertStats(w http.ResponseWriter, r *http.Request) {
	stats := s.orchestrator.Stats()
	if stats == nil {
		jsonError(w, "conversion stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"stats":       stats.Snapshot(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
