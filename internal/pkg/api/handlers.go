package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmarkin/scorestream/internal/pkg/merge"
	"github.com/dmarkin/scorestream/internal/pkg/models"
)

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	counts := make(map[string]int, len(models.ExternalSources))
	for _, source := range models.ExternalSources {
		counts[string(source)] = len(s.registry.Snapshot(source))
	}
	writeJSON(w, map[string]interface{}{
		"status":    "ok",
		"snapshots": counts,
	})
}

// handleFeed serves the merged, deduplicated feed. First-party records always
// win over external coverage of the same fixture. ?status=live narrows the
// result.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	firstParty, err := s.store.ListCurrent(r.Context())
	if err != nil {
		// A degraded first-party store must not hide the external feed.
		slog.Warn("First-party store unavailable, serving externals only", "error", err)
		firstParty = nil
	}

	feed := merge.BuildFeed(firstParty, s.registry.External())
	if status := r.URL.Query().Get("status"); status != "" {
		feed = merge.Filter(feed, models.Status(status))
	}
	writeJSON(w, feed)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	source, ok := parseSource(mux.Vars(r)["source"])
	if !ok {
		http.Error(w, "unknown source", http.StatusNotFound)
		return
	}
	writeJSON(w, s.registry.Snapshot(source))
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	source, ok := parseSource(vars["source"])
	if !ok {
		http.Error(w, "unknown source", http.StatusNotFound)
		return
	}
	m, found := s.registry.MatchByID(source, vars["id"])
	if !found {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}
	writeJSON(w, m)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results, err := s.search.Search(r.Context(), query)
	if err != nil {
		slog.Error("Search failed", "query", query, "error", err)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, results)
}

func parseSource(raw string) (models.Source, bool) {
	for _, source := range models.ExternalSources {
		if string(source) == raw {
			return source, true
		}
	}
	if raw == string(models.SourceFirstParty) {
		return models.SourceFirstParty, true
	}
	return "", false
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
