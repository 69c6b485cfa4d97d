package services

import (
	"fmt"
	"math"
	"strings"
)

// UnknownOutcome is returned when a definition cannot be scored.
var UnknownOutcome = AssessmentOutcome{OutcomeID: "unknown", Label: "Unknown"}

var typeAxes = [4][2]string{{"E", "I"}, {"S", "N"}, {"T", "F"}, {"J", "P"}}

// ScoreAssessment converts an answer map (question id -> option id) into an
// outcome. It is a pure function: identical inputs always yield identical
// outcomes. Missing answers contribute no score.
func ScoreAssessment(def *AssessmentDefinition, answers map[string]string) AssessmentOutcome {
	if def == nil {
		return UnknownOutcome
	}
	switch def.Scoring {
	case ScoringDimensional:
		return scoreDimensional(def, answers)
	case ScoringTypological:
		return scoreTypological(def, answers)
	case ScoringBand:
		return scoreBand(def, answers)
	default:
		return UnknownOutcome
	}
}

// keyTotals accumulates option values per score key, preserving the order in
// which keys are first seen (question order, then option order).
func keyTotals(def *AssessmentDefinition, answers map[string]string) (map[string]int, []string) {
	totals := map[string]int{}
	var order []string
	for _, q := range def.Questions {
		chosen, ok := answers[q.ID]
		if !ok {
			continue
		}
		for _, opt := range q.Options {
			if opt.ID != chosen || opt.ScoreKey == "" {
				continue
			}
			if _, seen := totals[opt.ScoreKey]; !seen {
				order = append(order, opt.ScoreKey)
			}
			totals[opt.ScoreKey] += opt.Value
			break
		}
	}
	return totals, order
}

// highFramingThreshold separates the high framing from the low/alternate one
// for dimensional assessments that define both.
const highFramingThreshold = 7

func scoreDimensional(def *AssessmentDefinition, answers map[string]string) AssessmentOutcome {
	totals, order := keyTotals(def, answers)
	if len(order) == 0 {
		return UnknownOutcome
	}
	primary := order[0]
	best := totals[primary]
	for _, k := range order[1:] {
		// strict > keeps the first-seen key on ties
		if totals[k] > best {
			primary, best = k, totals[k]
		}
	}
	framing, ok := def.Framings[primary]
	if !ok {
		return AssessmentOutcome{OutcomeID: "unknown", Label: "Unknown", Scores: totals}
	}
	id, label := framing.HighID, framing.HighLabel
	if framing.LowID != "" && best < highFramingThreshold {
		id, label = framing.LowID, framing.LowLabel
	}
	return AssessmentOutcome{OutcomeID: id, Label: label, Scores: totals}
}

func scoreTypological(def *AssessmentDefinition, answers map[string]string) AssessmentOutcome {
	totals, _ := keyTotals(def, answers)
	var code strings.Builder
	for _, axis := range typeAxes {
		// ties favor the first letter of each pair
		if totals[axis[0]] >= totals[axis[1]] {
			code.WriteString(axis[0])
		} else {
			code.WriteString(axis[1])
		}
	}
	typeCode := code.String()
	label := typeCode
	if def.TypeLabels != nil {
		if l, ok := def.TypeLabels[typeCode]; ok {
			label = l
		}
	}
	return AssessmentOutcome{
		OutcomeID: "mbti-" + strings.ToLower(typeCode),
		Label:     label,
		Scores:    totals,
	}
}

// Band scoring assumes a flat 5-point option scale: the maximum attainable
// score is 5 per answered question.
const bandPointsPerQuestion = 5

func scoreBand(def *AssessmentDefinition, answers map[string]string) AssessmentOutcome {
	sum, answered := 0, 0
	for _, q := range def.Questions {
		chosen, ok := answers[q.ID]
		if !ok {
			continue
		}
		for _, opt := range q.Options {
			if opt.ID == chosen {
				sum += opt.Value
				answered++
				break
			}
		}
	}
	max := bandPointsPerQuestion * answered
	pct := 0.0
	if max > 0 {
		pct = float64(sum) / float64(max) * 100
	}
	pct = math.Round(pct*10) / 10
	band, label := bandFor(pct)
	return AssessmentOutcome{
		OutcomeID:  fmt.Sprintf("gat-%s", band),
		Label:      label,
		Percentage: pct,
	}
}

func bandFor(pct float64) (string, string) {
	switch {
	case pct >= 80:
		return "high", "High Resilience"
	case pct >= 60:
		return "moderate", "Moderate Resilience"
	case pct >= 40:
		return "building", "Building Resilience"
	default:
		return "developing", "Developing Resilience"
	}
}
