package api

import (
	"net/http"
	"strings"
)

// GET /api/missions — catalog with the caller's lock states
func (rt *Router) handleMissions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	views, err := rt.missions.Catalog(soldierID(r))
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"missions": views})
}

// POST /api/missions/{id}/complete
func (rt *Router) handleMissionScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/missions/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "complete" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Score       int               `json:"score"`
		StepChoices map[string]string `json:"step_choices"`
		SideQuests  []string          `json:"side_quests"`
	}
	if err := decode(r, &req); err != nil {
		rt.writeErr(w, err)
		return
	}
	result, prog, err := rt.missions.Complete(soldierID(r), parts[0], req.Score, req.StepChoices, req.SideQuests)
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result, "progression": prog})
}
