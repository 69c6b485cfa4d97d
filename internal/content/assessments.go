// Package content holds the immutable catalogs the app serves: assessment
// definitions, the mission script list, the reading list and the quote deck.
// Nothing here changes at runtime.
package content

import "github.com/bastionhq/bastion/internal/services"

func likert(prefix string) []services.AssessmentOption {
	return []services.AssessmentOption{
		{ID: prefix + "-1", Label: "Strongly disagree", Value: 1},
		{ID: prefix + "-2", Label: "Disagree", Value: 2},
		{ID: prefix + "-3", Label: "Neutral", Value: 3},
		{ID: prefix + "-4", Label: "Agree", Value: 4},
		{ID: prefix + "-5", Label: "Strongly agree", Value: 5},
	}
}

func pair(qID, aLabel, aKey, bLabel, bKey string, value int) services.AssessmentQuestion {
	return services.AssessmentQuestion{
		ID:     qID,
		Prompt: "",
		Options: []services.AssessmentOption{
			{ID: qID + "-a", Label: aLabel, ScoreKey: aKey, Value: value},
			{ID: qID + "-b", Label: bLabel, ScoreKey: bKey, Value: value},
		},
	}
}

var oceanDef = &services.AssessmentDefinition{
	ID:          "ocean",
	Title:       "Trait Profile (OCEAN)",
	Description: "Five-factor personality profile tuned for small-unit life.",
	Scoring:     services.ScoringDimensional,
	RewardXP:    50,
	Questions: []services.AssessmentQuestion{
		withPrompt(pair("oc1", "I seek out unfamiliar terrain and new methods", "O", "I stick with drills I have already mastered", "C", 4), "When training options open up:"),
		withPrompt(pair("oc2", "I improvise when the plan breaks", "O", "I re-plan before moving again", "C", 4), "When the plan falls apart:"),
		withPrompt(pair("oc3", "I keep my kit staged and inspection-ready", "C", "I sort my kit when the mission demands it", "O", 4), "About your kit:"),
		withPrompt(pair("oc4", "I energize the team room", "E", "I recharge away from the team room", "A", 4), "Off shift:"),
		withPrompt(pair("oc5", "I speak first in the huddle", "E", "I listen for the full picture first", "A", 4), "In the huddle:"),
		withPrompt(pair("oc6", "I smooth over friction between teammates", "A", "I surface friction so it gets fixed", "E", 4), "When two teammates clash:"),
		withPrompt(pair("oc7", "I give away credit easily", "A", "I log exactly who did what", "C", 4), "After a win:"),
		withPrompt(pair("oc8", "Setbacks stay with me for days", "N", "Setbacks wash off by next morning", "E", 4), "After a failed evolution:"),
		withPrompt(pair("oc9", "I rehearse worst cases on repeat", "N", "I rehearse the next rep and move on", "O", 4), "The night before a gate:"),
		withPrompt(pair("oc10", "Surprise inspections spike my pulse", "N", "Surprise inspections are just Tuesday", "C", 4), "On surprise inspections:"),
	},
	Framings: map[string]services.DimensionFraming{
		"O": {HighID: "ocean-o-high", HighLabel: "The Pathfinder", LowID: "ocean-o-low", LowLabel: "The Steady Hand"},
		"C": {HighID: "ocean-c-high", HighLabel: "The Quartermaster", LowID: "ocean-c-low", LowLabel: "The Improviser"},
		"E": {HighID: "ocean-e-high", HighLabel: "The Rally Point", LowID: "ocean-e-low", LowLabel: "The Quiet Professional"},
		"A": {HighID: "ocean-a-high", HighLabel: "The Anchor", LowID: "ocean-a-low", LowLabel: "The Independent"},
		"N": {HighID: "ocean-n-high", HighLabel: "The Sentinel", LowID: "ocean-n-low", LowLabel: "The Flatline"},
	},
}

var discDef = &services.AssessmentDefinition{
	ID:          "disc",
	Title:       "Working Style (DISC)",
	Description: "How you push, persuade, steady and check the team.",
	Scoring:     services.ScoringDimensional,
	RewardXP:    50,
	Questions: []services.AssessmentQuestion{
		withPrompt(pair("d1", "Take point and set the pace", "D", "Read the ground before committing", "C", 3), "New objective, no orders yet:"),
		withPrompt(pair("d2", "Win the argument", "D", "Win the room", "I", 3), "In a heated debrief you aim to:"),
		withPrompt(pair("d3", "Talk the new guy through it", "I", "Walk the new guy through it step by step", "S", 3), "Onboarding a replacement:"),
		withPrompt(pair("d4", "Keep morale loud", "I", "Keep routines steady", "S", 3), "On a long rotation you:"),
		withPrompt(pair("d5", "Absorb the chaos so others can work", "S", "Cut the chaos at its source", "D", 3), "When the net melts down:"),
		withPrompt(pair("d6", "Hold the standard even when slow", "C", "Ship it and fix it forward", "D", 3), "Deadline versus checklist:"),
		withPrompt(pair("d7", "Triple-check the data", "C", "Trust the gut call", "I", 3), "Before a go/no-go:"),
		withPrompt(pair("d8", "Be the constant the team counts on", "S", "Be the spark the team follows", "I", 3), "Your preferred role:"),
	},
	Framings: map[string]services.DimensionFraming{
		"D": {HighID: "disc-d", HighLabel: "Driver"},
		"I": {HighID: "disc-i", HighLabel: "Influencer"},
		"S": {HighID: "disc-s", HighLabel: "Stabilizer"},
		"C": {HighID: "disc-c", HighLabel: "Analyst"},
	},
}

var strengthsDef = &services.AssessmentDefinition{
	ID:          "strengths",
	Title:       "Signature Strengths",
	Description: "The edge you bring to the squad.",
	Scoring:     services.ScoringDimensional,
	RewardXP:    50,
	Questions: []services.AssessmentQuestion{
		withPrompt(pair("st1", "Spot the pattern everyone missed", "tactician", "Carry the ruck nobody wants", "grinder", 3), "You are the one who can:"),
		withPrompt(pair("st2", "Map three moves ahead", "tactician", "Pull the team through hour twenty", "motivator", 3), "Your best moment looks like:"),
		withPrompt(pair("st3", "Keep going after everyone quits", "grinder", "Get everyone to start again", "motivator", 3), "Day after a washout:"),
		withPrompt(pair("st4", "Defuse the argument", "diplomat", "Settle it with the numbers", "tactician", 3), "Team dispute, you:"),
		withPrompt(pair("st5", "Find the compromise that holds", "diplomat", "Outlast the other side", "grinder", 3), "In a standoff:"),
		withPrompt(pair("st6", "Lift the room with one line", "motivator", "Broker the peace quietly", "diplomat", 3), "Morale is cratering, you:"),
		withPrompt(pair("st7", "Volunteer for the repetitive grind", "grinder", "Volunteer to brief command", "diplomat", 3), "Tasking board, you pick:"),
		withPrompt(pair("st8", "Rebuild the plan under fire", "tactician", "Hold the line while it's rebuilt", "motivator", 3), "Contact, plan dead:"),
	},
	Framings: map[string]services.DimensionFraming{
		"tactician": {HighID: "strengths-tactician", HighLabel: "Tactician"},
		"grinder":   {HighID: "strengths-grinder", HighLabel: "Grinder"},
		"motivator": {HighID: "strengths-motivator", HighLabel: "Motivator"},
		"diplomat":  {HighID: "strengths-diplomat", HighLabel: "Diplomat"},
	},
}

var mbtiDef = &services.AssessmentDefinition{
	ID:          "mbti",
	Title:       "Type Indicator",
	Description: "Four preferences, sixteen types.",
	Scoring:     services.ScoringTypological,
	RewardXP:    50,
	Questions: []services.AssessmentQuestion{
		withPrompt(pair("mb1", "Being around the team recharges me", "E", "Time alone recharges me", "I", 1), "Energy:"),
		withPrompt(pair("mb2", "I think out loud", "E", "I think before I speak", "I", 1), "Processing:"),
		withPrompt(pair("mb3", "I trust what I can verify on the ground", "S", "I trust where the pattern is heading", "N", 1), "Information:"),
		withPrompt(pair("mb4", "Give me the details first", "S", "Give me the big picture first", "N", 1), "Briefings:"),
		withPrompt(pair("mb5", "The right call is the logical one", "T", "The right call is the one the team can live with", "F", 1), "Decisions:"),
		withPrompt(pair("mb6", "Feedback should be blunt", "T", "Feedback should land softly", "F", 1), "Feedback:"),
		withPrompt(pair("mb7", "Lock the plan early", "J", "Keep options open late", "P", 1), "Planning:"),
		withPrompt(pair("mb8", "Loose ends keep me up", "J", "Loose ends are tomorrow's problem", "P", 1), "Closure:"),
	},
	TypeLabels: map[string]string{
		"ISTJ": "ISTJ — The Inspector", "ISFJ": "ISFJ — The Protector",
		"INFJ": "INFJ — The Counselor", "INTJ": "INTJ — The Strategist",
		"ISTP": "ISTP — The Operator", "ISFP": "ISFP — The Composer",
		"INFP": "INFP — The Healer", "INTP": "INTP — The Architect",
		"ESTP": "ESTP — The Dynamo", "ESFP": "ESFP — The Performer",
		"ENFP": "ENFP — The Champion", "ENTP": "ENTP — The Visionary",
		"ESTJ": "ESTJ — The Supervisor", "ESFJ": "ESFJ — The Provider",
		"ENFJ": "ENFJ — The Teacher", "ENTJ": "ENTJ — The Commander",
	},
}

var gatDef = &services.AssessmentDefinition{
	ID:          "gat",
	Title:       "Resilience Check (GAT)",
	Description: "Six-item snapshot of current resilience reserves.",
	Scoring:     services.ScoringBand,
	RewardXP:    50,
	Questions: []services.AssessmentQuestion{
		{ID: "g1", Prompt: "When something goes wrong I bounce back quickly.", Options: likert("g1")},
		{ID: "g2", Prompt: "I can name what I'm feeling while it's happening.", Options: likert("g2")},
		{ID: "g3", Prompt: "I have people I would call at 0300.", Options: likert("g3")},
		{ID: "g4", Prompt: "Hard training feels meaningful, not pointless.", Options: likert("g4")},
		{ID: "g5", Prompt: "I can stay calm when others are losing it.", Options: likert("g5")},
		{ID: "g6", Prompt: "I sleep well enough to function.", Options: likert("g6")},
	},
}

func withPrompt(q services.AssessmentQuestion, prompt string) services.AssessmentQuestion {
	q.Prompt = prompt
	return q
}

var assessmentCatalog = []*services.AssessmentDefinition{
	oceanDef, discDef, strengthsDef, mbtiDef, gatDef,
}

// Assessments returns the full catalog in display order.
func Assessments() []*services.AssessmentDefinition {
	return assessmentCatalog
}

// Assessment looks up a definition by id; nil when unknown.
func Assessment(id string) *services.AssessmentDefinition {
	for _, def := range assessmentCatalog {
		if def.ID == id {
			return def
		}
	}
	return nil
}
