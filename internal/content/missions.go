package content

import "github.com/bastionhq/bastion/internal/services"

var missionCatalog = []services.Mission{
	{
		ID:       "m-orientation",
		Title:    "Orientation",
		Briefing: "Walk the app, set your callsign, log your first zone check.",
		XP:       50,
		MaxScore: 10,
		SideQuests: []string{
			"sq-first-journal",
			"sq-first-sleep-log",
		},
	},
	{
		ID:       "m-know-yourself",
		Title:    "Know Yourself",
		Briefing: "Complete the trait profile and read your framing without flinching.",
		XP:       75,
		MaxScore: 20,
		SideQuests: []string{
			"sq-share-outcome",
		},
		Unlocks: []services.UnlockRule{
			services.MissionCompleteRule{MissionID: "m-orientation"},
		},
	},
	{
		ID:       "m-zone-discipline",
		Title:    "Zone Discipline",
		Briefing: "Seven straight days of zone checks with evening reflections.",
		XP:       100,
		MaxScore: 35,
		Unlocks: []services.UnlockRule{
			services.MissionCompleteRule{MissionID: "m-orientation"},
			services.StreakRule{MinDays: 3},
		},
	},
	{
		ID:       "m-sleep-reset",
		Title:    "Sleep Reset",
		Briefing: "Drive your rolling sleep debt under one hour and keep it there.",
		XP:       100,
		MaxScore: 30,
		SideQuests: []string{
			"sq-caffeine-audit",
		},
		Unlocks: []services.UnlockRule{
			services.RankRule{MinTier: 1},
		},
	},
	{
		ID:       "m-squad-lead",
		Title:    "Squad Lead",
		Briefing: "Stand up a squad, recruit two members, run a shared debrief.",
		XP:       150,
		MaxScore: 40,
		Unlocks: []services.UnlockRule{
			services.RankRule{MinTier: 2},
			services.MissionCompleteRule{MissionID: "m-zone-discipline"},
		},
	},
	{
		ID:       "m-pressure-proof",
		Title:    "Pressure Proof",
		Briefing: "Apply your up/down-regulation drills across a full evaluation week.",
		XP:       200,
		MaxScore: 50,
		Unlocks: []services.UnlockRule{
			services.RankRule{MinTier: 2},
			services.StreakRule{MinDays: 7},
			services.AssessmentRule{AssessmentType: "gat"},
		},
	},
	{
		ID:       "m-mentor",
		Title:    "Mentor",
		Briefing: "Carry a newer soldier through their first two missions.",
		XP:       250,
		MaxScore: 50,
		Unlocks: []services.UnlockRule{
			services.RankRule{MinTier: 3},
			services.MissionCompleteRule{MissionID: "m-squad-lead"},
			services.AssessmentRule{AssessmentType: "ocean"},
		},
	},
}

// Missions returns the scripted mission list in unlock order.
func Missions() []services.Mission {
	return missionCatalog
}
