package api

import (
	"net/http"
	"strings"
)

// POST /api/zone/check
func (rt *Router) handleZoneCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		StressRating *float64 `json:"stress_rating"`
		Emotions     []string `json:"emotions"`
		UpcomingTask string   `json:"upcoming_task"`
	}
	if err := decode(r, &req); err != nil {
		rt.writeErr(w, err)
		return
	}
	entry, err := rt.zones.SubmitDailyCheck(soldierID(r), req.StressRating, req.Emotions, req.UpcomingTask)
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// GET /api/zone/history
func (rt *Router) handleZoneHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	entries, err := rt.zones.History(soldierID(r))
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// GET /api/zone/range
func (rt *Router) handleZoneRange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	status, err := rt.zones.Range(soldierID(r))
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// POST /api/zone/{id}/reflection
func (rt *Router) handleZoneScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/zone/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "reflection" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		PerformanceOutcome int    `json:"performance_outcome"`
		Reflection         string `json:"reflection"`
	}
	if err := decode(r, &req); err != nil {
		rt.writeErr(w, err)
		return
	}
	entry, err := rt.zones.AttachReflection(soldierID(r), parts[0], req.PerformanceOutcome, req.Reflection)
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
