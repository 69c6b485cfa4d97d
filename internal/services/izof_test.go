package services

import (
	"testing"
	"time"
)

func zoneEntry(date string, stress float64, outcome int) *ZoneCheckEntry {
	return &ZoneCheckEntry{
		ID:                 "z-" + date,
		Date:               date,
		StressRating:       stress,
		PerformanceOutcome: outcome,
	}
}

func TestEstimateIZOFRangeInsufficientData(t *testing.T) {
	entries := []*ZoneCheckEntry{
		zoneEntry("2026-01-01", 5, 5),
		zoneEntry("2026-01-02", 6, 4),
		zoneEntry("2026-01-03", 7, 3), // does not qualify
	}
	if r := EstimateIZOFRange(entries); r != nil {
		t.Fatalf("expected nil range with 2 qualifying entries, got %+v", r)
	}
	if r := EstimateIZOFRange(nil); r != nil {
		t.Fatalf("expected nil range for no entries, got %+v", r)
	}
}

func TestEstimateIZOFRangeWidensAndClamps(t *testing.T) {
	entries := []*ZoneCheckEntry{
		zoneEntry("2026-01-01", 5, 4),
		zoneEntry("2026-01-02", 6, 5),
		zoneEntry("2026-01-03", 7, 4),
		zoneEntry("2026-01-04", 2, 1), // low outcome, ignored
	}
	r := EstimateIZOFRange(entries)
	if r == nil || r.Low != 4.5 || r.High != 7.5 {
		t.Fatalf("expected {4.5 7.5}, got %+v", r)
	}

	extremes := []*ZoneCheckEntry{
		zoneEntry("2026-01-01", 0, 5),
		zoneEntry("2026-01-02", 10, 5),
		zoneEntry("2026-01-03", 5, 5),
	}
	r = EstimateIZOFRange(extremes)
	if r == nil || r.Low != 0 || r.High != 10 {
		t.Fatalf("expected clamped {0 10}, got %+v", r)
	}
}

func TestGenerateRecommendationDefaults(t *testing.T) {
	cases := []struct {
		stress float64
		want   string
	}{
		{2, ActionUpRegulate},
		{8, ActionDownRegulate},
		{5, ActionMaintain},
		{4, ActionMaintain}, // exactly on the default low bound
		{7, ActionMaintain}, // exactly on the default high bound
	}
	for _, c := range cases {
		rec := GenerateRecommendation(c.stress, nil)
		if rec.Action != c.want {
			t.Fatalf("stress %v: expected %s, got %s", c.stress, c.want, rec.Action)
		}
		if rec.Guidance == "" {
			t.Fatalf("stress %v: guidance missing", c.stress)
		}
	}
}

func TestGenerateRecommendationWithRange(t *testing.T) {
	r := &IZOFRange{Low: 3, High: 5.5}
	if rec := GenerateRecommendation(6, r); rec.Action != ActionDownRegulate {
		t.Fatalf("expected Down-regulate, got %+v", rec)
	}
	if rec := GenerateRecommendation(5.5, r); rec.Action != ActionMaintain {
		t.Fatalf("bound rating should maintain, got %+v", rec)
	}
}

func TestCategorizeStressState(t *testing.T) {
	if got := CategorizeStressState(2, nil); got != "Too low" {
		t.Fatalf("got %q", got)
	}
	if got := CategorizeStressState(8, nil); got != "Too high" {
		t.Fatalf("got %q", got)
	}
	if got := CategorizeStressState(5, nil); got != "In zone" {
		t.Fatalf("got %q", got)
	}
}

func TestValidateDailyZoneCheck(t *testing.T) {
	stress := 5.0
	if errs := ValidateDailyZoneCheck(&stress, []string{"calm"}, "patrol"); len(errs) != 0 {
		t.Fatalf("expected valid, got %v", errs)
	}
	if errs := ValidateDailyZoneCheck(nil, nil, ""); len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
	high := 10.5
	if errs := ValidateDailyZoneCheck(&high, []string{"calm"}, "patrol"); len(errs) != 1 {
		t.Fatalf("expected out-of-range error, got %v", errs)
	}
}

func TestReadinessStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	entries := []*ZoneCheckEntry{
		zoneEntry("2026-03-10", 5, 4),
		zoneEntry("2026-03-09", 5, 3),
		zoneEntry("2026-03-08", 5, 5),
	}
	if got := ReadinessStreak(entries, now); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}

	gap := []*ZoneCheckEntry{
		zoneEntry("2026-03-09", 5, 4),
		zoneEntry("2026-03-08", 5, 4),
		zoneEntry("2026-03-06", 5, 4),
	}
	// no entry today: streak counts back from yesterday, breaks at 03-07
	if got := ReadinessStreak(gap, now); got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}

	stale := []*ZoneCheckEntry{zoneEntry("2026-03-01", 5, 4)}
	if got := ReadinessStreak(stale, now); got != 0 {
		t.Fatalf("expected streak 0, got %d", got)
	}
}
