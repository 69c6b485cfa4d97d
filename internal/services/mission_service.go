package services

import "time"

// MissionSource resolves the static mission catalog.
type MissionSource func() []Mission

type MissionService struct {
	missions    MissionSource
	progression *ProgressionService
	zones       *ZoneService
	assessments *AssessmentService
	now         func() time.Time
}

func NewMissionService(missions MissionSource, progression *ProgressionService, zones *ZoneService, assessments *AssessmentService) *MissionService {
	return &MissionService{
		missions:    missions,
		progression: progression,
		zones:       zones,
		assessments: assessments,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// buildView assembles the snapshot unlock rules evaluate against.
func (s *MissionService) buildView(soldierID string) (*ProgressionView, error) {
	prog, err := s.progression.Get(soldierID)
	if err != nil {
		return nil, err
	}
	streak, err := s.zones.Streak(soldierID)
	if err != nil {
		return nil, err
	}
	outcomes, err := s.assessments.OutcomeIndex(soldierID)
	if err != nil {
		return nil, err
	}
	completed := map[string]bool{}
	for _, h := range prog.History {
		completed[h.MissionID] = true
	}
	return &ProgressionView{
		Tier:               prog.Rank.Tier,
		StreakDays:         streak,
		CompletedMissions:  completed,
		AssessmentOutcomes: outcomes,
	}, nil
}

// MissionView is a catalog entry with the caller's lock state.
type MissionView struct {
	Mission
	Lock      LockState `json:"lock"`
	Completed bool      `json:"completed"`
}

func (s *MissionService) Catalog(soldierID string) ([]MissionView, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	view, err := s.buildView(soldierID)
	if err != nil {
		return nil, err
	}
	catalog := s.missions()
	out := make([]MissionView, 0, len(catalog))
	for _, m := range catalog {
		out = append(out, MissionView{
			Mission:   m,
			Lock:      EvaluateUnlockRules(m.Unlocks, view),
			Completed: view.CompletedMissions[m.ID],
		})
	}
	return out, nil
}

func (s *MissionService) find(missionID string) *Mission {
	for _, m := range s.missions() {
		if m.ID == missionID {
			cp := m
			return &cp
		}
	}
	return nil
}

// passThreshold: a run passes at 70% of the mission's max score.
func passed(score, maxScore int) bool {
	if maxScore <= 0 {
		return score > 0
	}
	return score*10 >= maxScore*7
}

// Complete records a mission run. The base XP reward is paid on the first
// completion only; later runs still append to history.
func (s *MissionService) Complete(soldierID, missionID string, score int, stepChoices map[string]string, sideQuests []string) (*MissionResult, *Progression, error) {
	if soldierID == "" {
		return nil, nil, NewUnauthorizedError("unauthorized")
	}
	m := s.find(missionID)
	if m == nil {
		return nil, nil, NewNotFoundError("mission not found")
	}
	view, err := s.buildView(soldierID)
	if err != nil {
		return nil, nil, err
	}
	if lock := EvaluateUnlockRules(m.Unlocks, view); lock.Locked {
		return nil, nil, NewForbiddenError(lock.Reason)
	}
	if score < 0 || (m.MaxScore > 0 && score > m.MaxScore) {
		return nil, nil, NewInvalidError("score out of range")
	}
	// only validated side quests from the catalog count
	var quests []string
	for _, sq := range sideQuests {
		if contains(m.SideQuests, sq) && !contains(quests, sq) {
			quests = append(quests, sq)
		}
	}
	pass := passed(score, m.MaxScore)
	result := &MissionResult{
		MissionID:   m.ID,
		Passed:      pass,
		Score:       score,
		MaxScore:    m.MaxScore,
		SideQuests:  quests,
		StepChoices: stepChoices,
	}
	var prog *Progression
	if pass {
		// base reward is one-time; a failed run never consumes it
		result.XPEarned = m.XP
		_, prog, err = s.progression.ApplyMissionResultOnce(soldierID, "mission:"+m.ID, result)
	} else {
		prog, err = s.progression.ApplyMissionResult(soldierID, result)
	}
	if err != nil {
		return nil, nil, err
	}
	// the stored copy is the authoritative record
	stored := prog.History[len(prog.History)-1]
	return &stored, prog, nil
}
