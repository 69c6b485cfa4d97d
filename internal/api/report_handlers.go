package api

import (
	"net/http"
	"strings"
)

// GET|POST /api/reports
func (rt *Router) handleReports(w http.ResponseWriter, r *http.Request) {
	uid := soldierID(r)
	switch r.Method {
	case http.MethodGet:
		reports, err := rt.reports.List(uid)
		if err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
	case http.MethodPost:
		var req struct {
			MissionID string `json:"mission_id"`
			Title     string `json:"title"`
			Summary   string `json:"summary"`
			Rating    int    `json:"rating"`
		}
		if err := decode(r, &req); err != nil {
			rt.writeErr(w, err)
			return
		}
		report, err := rt.reports.Submit(uid, req.MissionID, req.Title, req.Summary, req.Rating)
		if err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, report)
	default:
		methodNotAllowed(w)
	}
}

// GET /api/reports/{id}
func (rt *Router) handleReportScoped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	report, err := rt.reports.Get(soldierID(r), id)
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
