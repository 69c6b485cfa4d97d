package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/bastionhq/bastion/internal/content"
	"github.com/bastionhq/bastion/internal/middleware"
	"github.com/bastionhq/bastion/internal/services"
)

type Router struct {
	log         *zap.Logger
	auth        *services.AuthService
	journal     *services.JournalService
	assessments *services.AssessmentService
	zones       *services.ZoneService
	sleep       *services.SleepService
	squads      *services.SquadService
	reports     *services.ReportService
	missions    *services.MissionService
	progression *services.ProgressionService
}

// NewRouter wires the services over the given store. A nil cache disables
// leaderboard caching.
func NewRouter(store Store, kv services.LeaderboardCache, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	progression := services.NewProgressionService(store)
	zones := services.NewZoneService(store)
	assessments := services.NewAssessmentService(store, progression, content.Assessment)
	return &Router{
		log:         log,
		auth:        services.NewAuthService(store, middleware.SignToken),
		journal:     services.NewJournalService(store),
		assessments: assessments,
		zones:       zones,
		sleep:       services.NewSleepService(store),
		squads:      services.NewSquadService(store, kv),
		reports:     services.NewReportService(store, progression),
		missions:    services.NewMissionService(content.Missions, progression, zones, assessments),
		progression: progression,
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", rt.handleHealth)            // GET
	mux.HandleFunc("/api/auth/register", rt.handleRegister)   // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)         // POST
	mux.HandleFunc("/api/profile", rt.handleProfile)          // GET, PUT
	mux.HandleFunc("/api/journal", rt.handleJournal)          // GET, POST
	mux.HandleFunc("/api/journal/", rt.handleJournalScoped)   // GET/PUT/DELETE /api/journal/{id}
	mux.HandleFunc("/api/squads", rt.handleSquads)            // GET, POST
	mux.HandleFunc("/api/squads/", rt.handleSquadScoped)      // leaderboard, {id}/join|leave|members
	mux.HandleFunc("/api/assessments", rt.handleAssessments)  // GET
	mux.HandleFunc("/api/assessments/", rt.handleAssessmentScoped)
	mux.HandleFunc("/api/zone/check", rt.handleZoneCheck)     // POST
	mux.HandleFunc("/api/zone/history", rt.handleZoneHistory) // GET
	mux.HandleFunc("/api/zone/range", rt.handleZoneRange)     // GET
	mux.HandleFunc("/api/zone/", rt.handleZoneScoped)         // POST /api/zone/{id}/reflection
	mux.HandleFunc("/api/sleep/logs", rt.handleSleepLogs)     // POST
	mux.HandleFunc("/api/sleep/dashboard", rt.handleSleepDashboard)
	mux.HandleFunc("/api/caffeine", rt.handleCaffeine)        // POST
	mux.HandleFunc("/api/caffeine/clearance", rt.handleCaffeineClearance)
	mux.HandleFunc("/api/missions", rt.handleMissions)        // GET
	mux.HandleFunc("/api/missions/", rt.handleMissionScoped)  // POST /api/missions/{id}/complete
	mux.HandleFunc("/api/reports", rt.handleReports)          // GET, POST
	mux.HandleFunc("/api/reports/", rt.handleReportScoped)    // GET /api/reports/{id}
	mux.HandleFunc("/api/reading", rt.handleReading)          // GET
	mux.HandleFunc("/api/reading/", rt.handleReadingScoped)   // POST /api/reading/{id}/complete
	mux.HandleFunc("/api/progression", rt.handleProgression)  // GET
	mux.HandleFunc("/api/progression/streak", rt.handleStreak)
	mux.HandleFunc("/api/progression/ranks", rt.handleRankTable)
	mux.HandleFunc("/api/quotes/daily", rt.handleDailyQuote)  // GET
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps service error codes onto HTTP statuses; anything else is a
// 500 with a generic body.
func (rt *Router) writeErr(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		status := http.StatusInternalServerError
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorForbidden:
			status = http.StatusForbidden
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		}
		writeJSON(w, status, map[string]any{"error": se.Message, "code": string(se.Code)})
		return
	}
	rt.log.Error("internal error", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
}

func soldierID(r *http.Request) string {
	uid, _ := middleware.UserIDFromContext(r.Context())
	return uid
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return services.NewInvalidError("invalid json body")
	}
	return nil
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
