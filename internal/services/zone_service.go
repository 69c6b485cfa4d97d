package services

import (
	"strings"
	"time"
)

type ZoneStore interface {
	AddZoneCheck(e *ZoneCheckEntry) error
	GetZoneCheck(id string) (*ZoneCheckEntry, error)
	UpdateZoneCheck(e *ZoneCheckEntry) error
	ListZoneChecks(soldierID string) ([]*ZoneCheckEntry, error)
}

type ZoneService struct {
	store ZoneStore
	now   func() time.Time
	idGen func(n int) string
}

func NewZoneService(store ZoneStore) *ZoneService {
	return &ZoneService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: shortID,
	}
}

// SubmitDailyCheck validates a check-in, classifies it against the soldier's
// learned range (or the default) and persists the entry with its
// recommendation attached.
func (s *ZoneService) SubmitDailyCheck(soldierID string, stress *float64, emotions []string, upcomingTask string) (*ZoneCheckEntry, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	if errs := ValidateDailyZoneCheck(stress, emotions, upcomingTask); len(errs) > 0 {
		return nil, NewInvalidError(strings.Join(errs, "; "))
	}
	history, err := s.store.ListZoneChecks(soldierID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	entry := &ZoneCheckEntry{
		ID:             s.idGen(12),
		SoldierID:      soldierID,
		Date:           now.Format("2006-01-02"),
		SubmittedAt:    now,
		StressRating:   *stress,
		Emotions:       emotions,
		UpcomingTask:   upcomingTask,
		Recommendation: GenerateRecommendation(*stress, EstimateIZOFRange(history)),
	}
	if err := s.store.AddZoneCheck(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// AttachReflection records the after-task outcome on an entry. Each entry
// accepts exactly one reflection.
func (s *ZoneService) AttachReflection(soldierID, entryID string, outcome int, reflection string) (*ZoneCheckEntry, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	if outcome < 1 || outcome > 5 {
		return nil, NewInvalidError("performance outcome must be 1-5")
	}
	entry, err := s.store.GetZoneCheck(entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.SoldierID != soldierID {
		return nil, NewNotFoundError("check-in not found")
	}
	if entry.PerformanceOutcome != 0 {
		return nil, NewConflictError("reflection already recorded")
	}
	entry.PerformanceOutcome = outcome
	entry.Reflection = strings.TrimSpace(reflection)
	if err := s.store.UpdateZoneCheck(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// History returns the soldier's check-ins, newest first.
func (s *ZoneService) History(soldierID string) ([]*ZoneCheckEntry, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	return s.store.ListZoneChecks(soldierID)
}

// RangeStatus reports the learned range (nil while fewer than three strong
// performances exist) alongside the default consumers substitute.
type RangeStatus struct {
	Range      *IZOFRange `json:"range,omitempty"`
	Default    IZOFRange  `json:"default"`
	Qualifying int        `json:"qualifying_entries"`
}

func (s *ZoneService) Range(soldierID string) (*RangeStatus, error) {
	entries, err := s.History(soldierID)
	if err != nil {
		return nil, err
	}
	qualifying := 0
	for _, e := range entries {
		if e.PerformanceOutcome >= 4 {
			qualifying++
		}
	}
	return &RangeStatus{
		Range:      EstimateIZOFRange(entries),
		Default:    defaultIZOFRange,
		Qualifying: qualifying,
	}, nil
}

// Streak is the consecutive-day count of reflected check-ins ending today or
// yesterday.
func (s *ZoneService) Streak(soldierID string) (int, error) {
	entries, err := s.History(soldierID)
	if err != nil {
		return 0, err
	}
	return ReadinessStreak(entries, s.now()), nil
}
