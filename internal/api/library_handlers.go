package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/bastionhq/bastion/internal/content"
	"github.com/bastionhq/bastion/internal/services"
)

// GET /api/reading
func (rt *Router) handleReading(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"books": content.Books()})
}

// POST /api/reading/{id}/complete
func (rt *Router) handleReadingScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/reading/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "complete" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	uid := soldierID(r)
	if uid == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	book := content.Book(parts[0])
	if book == nil {
		http.Error(w, "book not found", http.StatusNotFound)
		return
	}
	granted, prog, err := rt.progression.GrantOnce(uid, "book:"+book.ID, book.XP, "reading")
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"granted": granted, "progression": prog})
}

// GET /api/progression
func (rt *Router) handleProgression(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	uid := soldierID(r)
	if uid == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	prog, err := rt.progression.Get(uid)
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

// GET /api/progression/streak
func (rt *Router) handleStreak(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	days, err := rt.zones.Streak(soldierID(r))
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"streak_days": days})
}

// GET /api/progression/ranks
func (rt *Router) handleRankTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ranks": services.RankTable()})
}

// GET /api/quotes/daily
func (rt *Router) handleDailyQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, content.DailyQuote(time.Now()))
}
