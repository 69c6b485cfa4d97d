package api

import (
	"net/http"
	"strings"

	"github.com/bastionhq/bastion/internal/content"
)

// GET /api/assessments — the static catalog
func (rt *Router) handleAssessments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assessments": content.Assessments()})
}

// POST /api/assessments/{id}/submit
// GET  /api/assessments/results
func (rt *Router) handleAssessmentScoped(w http.ResponseWriter, r *http.Request) {
	uid := soldierID(r)
	rest := strings.TrimPrefix(r.URL.Path, "/api/assessments/")
	if rest == "results" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		results, err := rt.assessments.Results(uid)
		if err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": results})
		return
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "submit" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if err := decode(r, &req); err != nil {
		rt.writeErr(w, err)
		return
	}
	result, err := rt.assessments.Submit(uid, parts[0], req.Answers)
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
