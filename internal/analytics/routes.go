package analytics

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the admin read API for stored analytics.
func (s *Store) RegisterRoutes(r chi.Router) {
	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/funnels", s.handleFunnels)
		r.Get("/messages", s.handleMessages)
		r.Get("/stats", s.handleStats)
	})
}

func (s *Store) handleFunnels(w http.ResponseWriter, r *http.Request) {
	funnels, err := s.LatestFunnels(queryLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if funnels == nil {
		funnels = []FunnelSnapshot{}
	}
	writeJSON(w, funnels)
}

func (s *Store) handleMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.RecentMessages(queryLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if messages == nil {
		messages = []MessageLog{}
	}
	writeJSON(w, messages)
}

func (s *Store) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ComputeStats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stats)
}

func queryLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("analytics: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	log.Printf("analytics: %v", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
}
