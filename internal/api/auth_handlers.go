package api

import "net/http"

// POST /api/auth/register
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Callsign string `json:"callsign"`
	}
	if err := decode(r, &req); err != nil {
		rt.writeErr(w, err)
		return
	}
	res, err := rt.auth.Register(req.Email, req.Password, req.Callsign)
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"token":    res.Token,
		"user_id":  res.UserID,
		"callsign": res.Callsign,
	})
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		rt.writeErr(w, err)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":    res.Token,
		"user_id":  res.UserID,
		"callsign": res.Callsign,
	})
}

// GET|PUT /api/profile
func (rt *Router) handleProfile(w http.ResponseWriter, r *http.Request) {
	uid := soldierID(r)
	switch r.Method {
	case http.MethodGet:
		u, err := rt.auth.Profile(uid)
		if err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	case http.MethodPut:
		var req struct {
			Callsign    string `json:"callsign"`
			DisplayName string `json:"display_name"`
		}
		if err := decode(r, &req); err != nil {
			rt.writeErr(w, err)
			return
		}
		u, err := rt.auth.UpdateProfile(uid, req.Callsign, req.DisplayName)
		if err != nil {
			rt.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	default:
		methodNotAllowed(w)
	}
}
