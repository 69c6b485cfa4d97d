package services

import (
	"fmt"
	"time"
)

// Zone recommendation actions.
const (
	ActionUpRegulate   = "Up-regulate"
	ActionMaintain     = "Maintain"
	ActionDownRegulate = "Down-regulate"
)

// Default range substituted until a soldier has enough scored history.
var defaultIZOFRange = IZOFRange{Low: 4, High: 7}

const minQualifyingEntries = 3

// EstimateIZOFRange derives a personal optimal-stress interval from entries
// that ended in a strong performance (outcome >= 4). It returns nil until at
// least three such entries exist.
func EstimateIZOFRange(entries []*ZoneCheckEntry) *IZOFRange {
	var low, high float64
	n := 0
	for _, e := range entries {
		if e == nil || e.PerformanceOutcome < 4 {
			continue
		}
		if n == 0 || e.StressRating < low {
			low = e.StressRating
		}
		if n == 0 || e.StressRating > high {
			high = e.StressRating
		}
		n++
	}
	if n < minQualifyingEntries {
		return nil
	}
	low -= 0.5
	if low < 0 {
		low = 0
	}
	high += 0.5
	if high > 10 {
		high = 10
	}
	return &IZOFRange{Low: low, High: high}
}

const (
	guidanceUp = "Below your zone. Raise activation: quick dynamic warm-up, " +
		"upbeat cadence, short power breathing (exhale hard on a 4-count), " +
		"and state your task intent out loud."
	guidanceMaintain = "In your zone. Hold steady: one centering breath cycle, " +
		"rehearse the first action of the task, keep routines unchanged."
	guidanceDown = "Above your zone. Bring it down: box breathing 4-4-4-4, " +
		"drop the shoulders and unclench the jaw, narrow focus to the next " +
		"single step."
)

// GenerateRecommendation classifies a stress rating against the soldier's
// range (or the default when none exists) and pairs it with fixed guidance.
// Comparisons are plain < / >, so a rating exactly on a bound is in zone.
func GenerateRecommendation(stress float64, r *IZOFRange) ZoneRecommendation {
	zone := defaultIZOFRange
	if r != nil {
		zone = *r
	}
	switch {
	case stress < zone.Low:
		return ZoneRecommendation{Action: ActionUpRegulate, Guidance: guidanceUp}
	case stress > zone.High:
		return ZoneRecommendation{Action: ActionDownRegulate, Guidance: guidanceDown}
	default:
		return ZoneRecommendation{Action: ActionMaintain, Guidance: guidanceMaintain}
	}
}

// CategorizeStressState is the guidance-free three-way classification.
func CategorizeStressState(stress float64, r *IZOFRange) string {
	zone := defaultIZOFRange
	if r != nil {
		zone = *r
	}
	switch {
	case stress < zone.Low:
		return "Too low"
	case stress > zone.High:
		return "Too high"
	default:
		return "In zone"
	}
}

// ValidateDailyZoneCheck returns human-readable errors for a check-in form.
// An empty result means the entry may be created.
func ValidateDailyZoneCheck(stress *float64, emotions []string, upcomingTask string) []string {
	var errs []string
	if stress == nil {
		errs = append(errs, "stress rating is required")
	} else if *stress < 0 || *stress > 10 {
		errs = append(errs, fmt.Sprintf("stress rating %.1f is outside 0-10", *stress))
	}
	if len(emotions) == 0 {
		errs = append(errs, "select at least one emotion")
	}
	if upcomingTask == "" {
		errs = append(errs, "choose an upcoming task")
	}
	return errs
}

// ReadinessStreak counts consecutive reflected check-in days ending today or
// yesterday relative to now.
func ReadinessStreak(entries []*ZoneCheckEntry, now time.Time) int {
	days := map[string]bool{}
	for _, e := range entries {
		if e != nil && e.PerformanceOutcome > 0 {
			days[e.Date] = true
		}
	}
	day := now
	if !days[dateKey(day)] {
		day = day.AddDate(0, 0, -1)
		if !days[dateKey(day)] {
			return 0
		}
	}
	streak := 0
	for days[dateKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func dateKey(t time.Time) string { return t.Format("2006-01-02") }
