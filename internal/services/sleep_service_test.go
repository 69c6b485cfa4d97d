package services

import (
	"testing"
	"time"
)

type stubSleepStore struct {
	sleeps    []*SleepLog
	caffeines []*CaffeineLog
}

func (s *stubSleepStore) AddSleepLog(l *SleepLog) error {
	s.sleeps = append(s.sleeps, l)
	return nil
}

func (s *stubSleepStore) ListSleepLogs(soldierID string) ([]*SleepLog, error) {
	var out []*SleepLog
	for _, l := range s.sleeps {
		if l.SoldierID == soldierID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubSleepStore) AddCaffeineLog(l *CaffeineLog) error {
	s.caffeines = append(s.caffeines, l)
	return nil
}

func (s *stubSleepStore) ListCaffeineLogs(soldierID string) ([]*CaffeineLog, error) {
	var out []*CaffeineLog
	for _, l := range s.caffeines {
		if l.SoldierID == soldierID {
			out = append(out, l)
		}
	}
	return out, nil
}

var sleepSvcNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestSleepService(store *stubSleepStore) *SleepService {
	svc := NewSleepService(store)
	svc.now = func() time.Time { return sleepSvcNow }
	n := 0
	svc.idGen = func(int) string {
		n++
		return "sl" + string(rune('0'+n))
	}
	return svc
}

func TestLogSleepComputesDuration(t *testing.T) {
	svc := newTestSleepService(&stubSleepStore{})
	start := sleepSvcNow.Add(-9 * time.Hour)
	end := sleepSvcNow.Add(-90 * time.Minute)
	log, err := svc.LogSleep("s1", start, end, 7, 0, nil)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if log.DurationHours != 7.5 {
		t.Fatalf("duration = %v, want 7.5", log.DurationHours)
	}
}

func TestLogSleepValidation(t *testing.T) {
	svc := newTestSleepService(&stubSleepStore{})
	start := sleepSvcNow.Add(-8 * time.Hour)
	cases := []struct {
		name       string
		start, end time.Time
		quality    int
		pain       int
	}{
		{"inverted window", sleepSvcNow, start, 5, 0},
		{"zero start", time.Time{}, sleepSvcNow, 5, 0},
		{"quality too low", start, sleepSvcNow, 0, 0},
		{"quality too high", start, sleepSvcNow, 11, 0},
		{"pain out of range", start, sleepSvcNow, 5, 11},
	}
	for _, c := range cases {
		_, err := svc.LogSleep("s1", c.start, c.end, c.quality, c.pain, nil)
		se, ok := AsServiceError(err)
		if !ok || se.Code != ErrorInvalid {
			t.Fatalf("%s: want invalid, got %v", c.name, err)
		}
	}
}

func TestDashboardAggregates(t *testing.T) {
	store := &stubSleepStore{}
	svc := newTestSleepService(store)
	// one short, painful night last night
	end := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	if _, err := svc.LogSleep("s1", end.Add(-5*time.Hour), end, 4, 5, []string{"racing_thoughts"}); err != nil {
		t.Fatalf("log: %v", err)
	}
	dash, err := svc.Dashboard("s1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.Debt != 2.5 {
		t.Fatalf("debt = %v, want 2.5", dash.Debt)
	}
	if dash.CognitiveReadiness != 80 || dash.EmotionalRegulation != 70 {
		t.Fatalf("unexpected percentages: %+v", dash)
	}
	if dash.PainGuidance == "" {
		t.Fatal("pain level 5 should produce guidance")
	}
	if len(dash.StressTools) != 1 {
		t.Fatalf("stress tools = %v", dash.StressTools)
	}
	if dash.LoggedNights != 1 {
		t.Fatalf("logged nights = %d", dash.LoggedNights)
	}
}

func TestDashboardEmptyHistory(t *testing.T) {
	svc := newTestSleepService(&stubSleepStore{})
	dash, err := svc.Dashboard("s1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.Debt != 0 || dash.CognitiveReadiness != 100 {
		t.Fatalf("fresh dashboard should show no debt: %+v", dash)
	}
	if dash.PainGuidance != "" || dash.StressTools != nil {
		t.Fatalf("no logs, no guidance: %+v", dash)
	}
}

func TestLogCaffeineDefaultsTimestamp(t *testing.T) {
	svc := newTestSleepService(&stubSleepStore{})
	log, err := svc.LogCaffeine("s1", time.Time{}, "coffee", 120)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if !log.ConsumedAt.Equal(sleepSvcNow) {
		t.Fatalf("consumed at = %v, want %v", log.ConsumedAt, sleepSvcNow)
	}
	if _, err := svc.LogCaffeine("s1", sleepSvcNow, "espresso", 0); err == nil {
		t.Fatal("zero amount should be rejected")
	}
}

func TestClearanceReport(t *testing.T) {
	store := &stubSleepStore{}
	svc := newTestSleepService(store)
	if _, err := svc.LogCaffeine("s1", sleepSvcNow.Add(-2*time.Hour), "coffee", 200); err != nil {
		t.Fatalf("log: %v", err)
	}
	if _, err := svc.LogCaffeine("s1", sleepSvcNow, "energy drink", 80); err != nil {
		t.Fatalf("log: %v", err)
	}
	report, err := svc.Clearance("s1", time.Time{})
	if err != nil {
		t.Fatalf("clearance: %v", err)
	}
	if report.Latest == nil || report.Latest.Source != "energy drink" {
		t.Fatalf("latest = %+v", report.Latest)
	}
	wantCleared := sleepSvcNow.Add(20 * time.Hour)
	if !report.Clearance.ClearedAt.Equal(wantCleared) {
		t.Fatalf("cleared at = %v, want %v", report.Clearance.ClearedAt, wantCleared)
	}
	// default planned sleep is 22:00 tonight, cutoff 20 hours earlier
	wantLastCall := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	if !report.LastCallTime.Equal(wantLastCall) {
		t.Fatalf("last call = %v, want %v", report.LastCallTime, wantLastCall)
	}
}
