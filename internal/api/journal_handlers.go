package api

import (
	"net/http"
	"strings"
)

// GET|POST /api/journal
func (rt *Router) handleJournal(w http.ResponseWriter, r *http.Request) {
	uid := soldierID(r)
	switch r.Method {
	case http.MethodGet:
		entries, err := rt.journal.List(uid)
		if err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
	case http.MethodPost:
		var req struct {
			Title string   `json:"title"`
			Body  string   `json:"body"`
			Mood  int      `json:"mood"`
			Tags  []string `json:"tags"`
		}
		if err := decode(r, &req); err != nil {
			rt.writeErr(w, err)
			return
		}
		entry, err := rt.journal.Create(uid, req.Title, req.Body, req.Mood, req.Tags)
		if err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, entry)
	default:
		methodNotAllowed(w)
	}
}

// GET|PUT|DELETE /api/journal/{id}
func (rt *Router) handleJournalScoped(w http.ResponseWriter, r *http.Request) {
	uid := soldierID(r)
	id := strings.TrimPrefix(r.URL.Path, "/api/journal/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		entry, err := rt.journal.Get(uid, id)
		if err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	case http.MethodPut:
		var req struct {
			Title *string  `json:"title"`
			Body  *string  `json:"body"`
			Mood  int      `json:"mood"`
			Tags  []string `json:"tags"`
		}
		if err := decode(r, &req); err != nil {
			rt.writeErr(w, err)
			return
		}
		entry, err := rt.journal.Update(uid, id, req.Title, req.Body, req.Mood, req.Tags)
		if err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	case http.MethodDelete:
		if err := rt.journal.Delete(uid, id); err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		methodNotAllowed(w)
	}
}
