package api

import (
	"net/http"
	"strings"
)

// GET|POST /api/squads
func (rt *Router) handleSquads(w http.ResponseWriter, r *http.Request) {
	uid := soldierID(r)
	switch r.Method {
	case http.MethodGet:
		squads, err := rt.squads.Mine(uid)
		if err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"squads": squads})
	case http.MethodPost:
		var req struct {
			Name  string `json:"name"`
			Motto string `json:"motto"`
		}
		if err := decode(r, &req); err != nil {
			rt.writeErr(w, err)
			return
		}
		sq, err := rt.squads.Create(uid, req.Name, req.Motto)
		if err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sq)
	default:
		methodNotAllowed(w)
	}
}

// GET /api/squads/leaderboard
// POST /api/squads/{id}/join | /api/squads/{id}/leave
// GET /api/squads/{id}/members
func (rt *Router) handleSquadScoped(w http.ResponseWriter, r *http.Request) {
	uid := soldierID(r)
	rest := strings.TrimPrefix(r.URL.Path, "/api/squads/")
	if rest == "leaderboard" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		standings, err := rt.squads.Leaderboard(r.Context())
		if err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"standings": standings})
		return
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	id, action := parts[0], parts[1]
	switch action {
	case "join":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		if err := rt.squads.Join(uid, id); err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	case "leave":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		if err := rt.squads.Leave(uid, id); err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	case "members":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		members, err := rt.squads.Members(id)
		if err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"members": members})
	default:
		http.NotFound(w, r)
	}
}
