package api

import (
	"encoding/json"
	"net/http"
)

// handleListAcronyms returns the loaded dictionary in application order.
func (s *Server) handleListAcronyms(w http.ResponseWriter, r *http.Request) {
	entries := s.orchestrator.Entries()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count":    len(entries),
		"acronyms": entries,
	})
}
