package services

import (
	"time"
)

type SleepStore interface {
	AddSleepLog(l *SleepLog) error
	ListSleepLogs(soldierID string) ([]*SleepLog, error)
	AddCaffeineLog(l *CaffeineLog) error
	ListCaffeineLogs(soldierID string) ([]*CaffeineLog, error)
}

type SleepService struct {
	store SleepStore
	now   func() time.Time
	idGen func(n int) string
}

func NewSleepService(store SleepStore) *SleepService {
	return &SleepService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: shortID,
	}
}

func (s *SleepService) LogSleep(soldierID string, start, end time.Time, quality, pain int, stressFlags []string) (*SleepLog, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return nil, NewInvalidError("sleep window must end after it starts")
	}
	if quality < 1 || quality > 10 {
		return nil, NewInvalidError("quality must be 1-10")
	}
	if pain < 0 || pain > 10 {
		return nil, NewInvalidError("pain level must be 0-10")
	}
	log := &SleepLog{
		ID:            s.idGen(12),
		SoldierID:     soldierID,
		Start:         start.UTC(),
		End:           end.UTC(),
		DurationHours: end.Sub(start).Hours(),
		Quality:       quality,
		PainLevel:     pain,
		StressFlags:   stressFlags,
	}
	if err := s.store.AddSleepLog(log); err != nil {
		return nil, err
	}
	return log, nil
}

// SleepDashboard is the derived view served to the sleep screen.
type SleepDashboard struct {
	Debt                float64           `json:"debt"`
	CognitiveReadiness  int               `json:"cognitive_readiness"`
	InjuryRisk          int               `json:"injury_risk"`
	EmotionalRegulation int               `json:"emotional_regulation"`
	Performance         PerformanceImpact `json:"performance"`
	PainGuidance        string            `json:"pain_guidance,omitempty"`
	StressTools         []string          `json:"stress_tools,omitempty"`
	LoggedNights        int               `json:"logged_nights"`
}

func (s *SleepService) Dashboard(soldierID string) (*SleepDashboard, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	logs, err := s.store.ListSleepLogs(soldierID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	debt := ComputeSleepDebt(logs, now)
	dash := &SleepDashboard{
		Debt:                debt,
		CognitiveReadiness:  ComputeCognitiveReadiness(debt),
		InjuryRisk:          ComputeInjuryRisk(debt, logs),
		EmotionalRegulation: ComputeEmotionalRegulation(debt),
		Performance:         MapDebtToPerformance(debt, logs),
		LoggedNights:        len(logs),
	}
	if latest := latestSleepLog(logs); latest != nil {
		dash.PainGuidance = PainGuidance(latest.PainLevel)
		dash.StressTools = StressDisruptionTools(latest.StressFlags)
	}
	return dash, nil
}

func latestSleepLog(logs []*SleepLog) *SleepLog {
	var latest *SleepLog
	for _, l := range logs {
		if l == nil {
			continue
		}
		if latest == nil || l.End.After(latest.End) {
			latest = l
		}
	}
	return latest
}

func (s *SleepService) LogCaffeine(soldierID string, at time.Time, source string, amountMg int) (*CaffeineLog, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	if at.IsZero() {
		at = s.now()
	}
	if amountMg <= 0 {
		return nil, NewInvalidError("amount must be positive")
	}
	log := &CaffeineLog{
		ID:         s.idGen(12),
		SoldierID:  soldierID,
		ConsumedAt: at.UTC(),
		Source:     source,
		AmountMg:   amountMg,
	}
	if err := s.store.AddCaffeineLog(log); err != nil {
		return nil, err
	}
	return log, nil
}

// ClearanceReport pairs the latest intake's clearance estimate with the
// recommended cutoff for a planned sleep time.
type ClearanceReport struct {
	Latest       *CaffeineLog      `json:"latest,omitempty"`
	Clearance    CaffeineClearance `json:"clearance"`
	LastCallTime time.Time         `json:"last_call_time"`
}

func (s *SleepService) Clearance(soldierID string, plannedSleep time.Time) (*ClearanceReport, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	logs, err := s.store.ListCaffeineLogs(soldierID)
	if err != nil {
		return nil, err
	}
	if plannedSleep.IsZero() {
		// default to 22:00 tonight
		now := s.now()
		plannedSleep = time.Date(now.Year(), now.Month(), now.Day(), 22, 0, 0, 0, time.UTC)
	}
	report := &ClearanceReport{LastCallTime: RecommendLastCaffeineTime(plannedSleep)}
	var latest *CaffeineLog
	for _, l := range logs {
		if latest == nil || l.ConsumedAt.After(latest.ConsumedAt) {
			latest = l
		}
	}
	if latest != nil {
		report.Latest = latest
		report.Clearance = EstimateCaffeineClearance(latest)
	}
	return report, nil
}
