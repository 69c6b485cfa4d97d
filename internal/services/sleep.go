package services

import (
	"math"
	"sort"
	"time"
)

const (
	sleepTargetHours = 7.5
	sleepDebtWindow  = 7 * 24 * time.Hour

	caffeineHalfLife  = 5 * time.Hour
	caffeineHalfLives = 4
)

// ComputeSleepDebt sums per-night deficits against the 7.5h target over the
// trailing 7 days, rounded to one decimal. Debt does not carry past the
// window; older shortfall is forgotten rather than compounded.
func ComputeSleepDebt(logs []*SleepLog, now time.Time) float64 {
	cutoff := now.Add(-sleepDebtWindow)
	debt := 0.0
	for _, l := range logs {
		if l == nil || l.End.Before(cutoff) {
			continue
		}
		if d := sleepTargetHours - l.DurationHours; d > 0 {
			debt += d
		}
	}
	return math.Round(debt*10) / 10
}

// ComputeCognitiveReadiness maps debt to a 0-100 readiness percentage.
func ComputeCognitiveReadiness(debt float64) int {
	v := math.Round(100 - 8*debt)
	if v < 0 {
		return 0
	}
	return int(v)
}

// ComputeInjuryRisk maps debt to a risk percentage, with a flat +25 surcharge
// when the three most recent nights were all under five hours.
func ComputeInjuryRisk(debt float64, logs []*SleepLog) int {
	risk := math.Round(10 * debt)
	if risk > 100 {
		risk = 100
	}
	if shortNightRun(logs) {
		risk += 25
		if risk > 100 {
			risk = 100
		}
	}
	return int(risk)
}

func shortNightRun(logs []*SleepLog) bool {
	recent := make([]*SleepLog, 0, len(logs))
	for _, l := range logs {
		if l != nil {
			recent = append(recent, l)
		}
	}
	if len(recent) < 3 {
		return false
	}
	sort.Slice(recent, func(i, j int) bool { return recent[i].End.After(recent[j].End) })
	for _, l := range recent[:3] {
		if l.DurationHours >= 5 {
			return false
		}
	}
	return true
}

// ComputeEmotionalRegulation maps debt to a 0-100 regulation percentage.
func ComputeEmotionalRegulation(debt float64) int {
	v := math.Round(100 - 12*debt)
	if v < 0 {
		return 0
	}
	return int(v)
}

// MapDebtToPerformance expands debt into the four degradation percentages
// shown on the sleep dashboard. The multipliers are fixed model constants.
func MapDebtToPerformance(debt float64, logs []*SleepLog) PerformanceImpact {
	return PerformanceImpact{
		ReactionTime:        cappedLinear(15, debt),
		InjuryRisk:          ComputeInjuryRisk(debt, logs),
		EmotionalVolatility: cappedLinear(18, debt),
		JudgmentErrors:      cappedLinear(12, debt),
	}
}

func cappedLinear(mult, debt float64) int {
	v := math.Round(mult * debt)
	if v > 100 {
		v = 100
	}
	return int(v)
}

// EstimateCaffeineClearance reports full clearance at four half-lives after
// intake.
func EstimateCaffeineClearance(log *CaffeineLog) CaffeineClearance {
	return CaffeineClearance{
		ClearedAt: log.ConsumedAt.Add(caffeineHalfLives * caffeineHalfLife),
		HalfLife:  caffeineHalfLife,
	}
}

// RecommendLastCaffeineTime subtracts the clearance window from a planned
// sleep time.
func RecommendLastCaffeineTime(plannedSleep time.Time) time.Time {
	return plannedSleep.Add(-caffeineHalfLives * caffeineHalfLife)
}

// PainGuidance returns a fixed advisory for pain levels above 3, otherwise
// an empty string.
func PainGuidance(level int) string {
	if level > 3 {
		return "Pain at this level disrupts deep sleep. Try a supported side " +
			"position, ice or heat before lights-out, and flag it to medical " +
			"if it persists three nights."
	}
	return ""
}

var stressTools = map[string]string{
	"racing_thoughts": "Cognitive shuffle",
	"cant_wind_down":  "4-7-8 breathing",
	"woke_at_night":   "Body scan",
	"early_waking":    "Stimulus control",
}

var stressFlagOrder = []string{"racing_thoughts", "cant_wind_down", "woke_at_night", "early_waking"}

// StressDisruptionTools maps each set stress flag to one fixed technique
// name, in a stable order.
func StressDisruptionTools(flags []string) []string {
	set := map[string]bool{}
	for _, f := range flags {
		set[f] = true
	}
	var out []string
	for _, f := range stressFlagOrder {
		if set[f] {
			out = append(out, stressTools[f])
		}
	}
	return out
}
