package services

import (
	"strings"
	"time"
)

type ReportStore interface {
	AddReport(r *Report) error
	GetReport(id string) (*Report, error)
	ListReports(soldierID string) ([]*Report, error)
}

const reportXP = 25

type ReportService struct {
	store       ReportStore
	progression *ProgressionService
	now         func() time.Time
	idGen       func(n int) string
}

func NewReportService(store ReportStore, progression *ProgressionService) *ReportService {
	return &ReportService{
		store:       store,
		progression: progression,
		now:         func() time.Time { return time.Now().UTC() },
		idGen:       shortID,
	}
}

// Submit files an after-action report and pays its XP exactly once per
// report id; re-opening or re-saving a filed report never double-grants.
func (s *ReportService) Submit(soldierID, missionID, title, summary string, rating int) (*Report, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, NewInvalidError("title required")
	}
	if strings.TrimSpace(summary) == "" {
		return nil, NewInvalidError("summary required")
	}
	if rating < 0 || rating > 5 {
		return nil, NewInvalidError("rating must be 1-5")
	}
	r := &Report{
		ID:        s.idGen(12),
		SoldierID: soldierID,
		MissionID: missionID,
		Title:     title,
		Summary:   summary,
		Rating:    rating,
		CreatedAt: s.now(),
	}
	if err := s.store.AddReport(r); err != nil {
		return nil, err
	}
	if _, _, err := s.progression.GrantOnce(soldierID, "report:"+r.ID, reportXP, "report"); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReportService) Get(soldierID, reportID string) (*Report, error) {
	r, err := s.store.GetReport(reportID)
	if err != nil {
		return nil, err
	}
	if r == nil || r.SoldierID != soldierID {
		return nil, NewNotFoundError("report not found")
	}
	return r, nil
}

// List returns the soldier's reports, newest first.
func (s *ReportService) List(soldierID string) ([]*Report, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	return s.store.ListReports(soldierID)
}
