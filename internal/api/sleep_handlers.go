package api

import (
	"net/http"
	"time"
)

// POST /api/sleep/logs
func (rt *Router) handleSleepLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Start       time.Time `json:"start"`
		End         time.Time `json:"end"`
		Quality     int       `json:"quality"`
		PainLevel   int       `json:"pain_level"`
		StressFlags []string  `json:"stress_flags"`
	}
	if err := decode(r, &req); err != nil {
		rt.writeErr(w, err)
		return
	}
	log, err := rt.sleep.LogSleep(soldierID(r), req.Start, req.End, req.Quality, req.PainLevel, req.StressFlags)
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

// GET /api/sleep/dashboard
func (rt *Router) handleSleepDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	dash, err := rt.sleep.Dashboard(soldierID(r))
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// POST /api/caffeine
func (rt *Router) handleCaffeine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		ConsumedAt time.Time `json:"consumed_at"`
		Source     string    `json:"source"`
		AmountMg   int       `json:"amount_mg"`
	}
	if err := decode(r, &req); err != nil {
		rt.writeErr(w, err)
		return
	}
	log, err := rt.sleep.LogCaffeine(soldierID(r), req.ConsumedAt, req.Source, req.AmountMg)
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

// GET /api/caffeine/clearance?planned_sleep=RFC3339
func (rt *Router) handleCaffeineClearance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	var planned time.Time
	if raw := r.URL.Query().Get("planned_sleep"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "planned_sleep must be RFC3339", http.StatusBadRequest)
			return
		}
		planned = t
	}
	report, err := rt.sleep.Clearance(soldierID(r), planned)
	if err != nil {
		rt.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
