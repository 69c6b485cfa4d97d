package services

import "time"

type AssessmentStore interface {
	AddAssessmentResult(r *AssessmentResult) error
	ListAssessmentResults(soldierID string) ([]*AssessmentResult, error)
}

// DefinitionSource resolves an assessment id to its static definition.
type DefinitionSource func(id string) *AssessmentDefinition

const defaultAssessmentXP = 50

type AssessmentService struct {
	store       AssessmentStore
	progression *ProgressionService
	definitions DefinitionSource
	now         func() time.Time
	idGen       func(n int) string
}

func NewAssessmentService(store AssessmentStore, progression *ProgressionService, definitions DefinitionSource) *AssessmentService {
	return &AssessmentService{
		store:       store,
		progression: progression,
		definitions: definitions,
		now:         func() time.Time { return time.Now().UTC() },
		idGen:       shortID,
	}
}

// Submit scores a completed run, persists the result and pays the one-time
// completion reward. Re-taking an assessment stores a new result but never
// grants the reward twice.
func (s *AssessmentService) Submit(soldierID, assessmentID string, answers map[string]string) (*AssessmentResult, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	def := s.definitions(assessmentID)
	if def == nil {
		return nil, NewNotFoundError("assessment not found")
	}
	if len(answers) == 0 {
		return nil, NewInvalidError("answers required")
	}
	outcome := ScoreAssessment(def, answers)
	xp := def.RewardXP
	if xp == 0 {
		xp = defaultAssessmentXP
	}
	granted, _, err := s.progression.GrantOnce(soldierID, "assessment:"+def.ID, xp, "assessment")
	if err != nil {
		return nil, err
	}
	result := &AssessmentResult{
		ID:            s.idGen(12),
		SoldierID:     soldierID,
		AssessmentID:  def.ID,
		Outcome:       outcome,
		Answers:       answers,
		CompletedAt:   s.now(),
		RewardGranted: granted,
	}
	if err := s.store.AddAssessmentResult(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Results returns the soldier's run history, newest first.
func (s *AssessmentService) Results(soldierID string) ([]*AssessmentResult, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	return s.store.ListAssessmentResults(soldierID)
}

// OutcomeIndex maps assessment id to recorded outcome ids, the shape unlock
// rules evaluate against.
func (s *AssessmentService) OutcomeIndex(soldierID string) (map[string][]string, error) {
	results, err := s.store.ListAssessmentResults(soldierID)
	if err != nil {
		return nil, err
	}
	idx := map[string][]string{}
	for _, r := range results {
		idx[r.AssessmentID] = append(idx[r.AssessmentID], r.Outcome.OutcomeID)
	}
	return idx, nil
}
