package services

import "testing"

type stubAssessmentStore struct {
	results []*AssessmentResult
}

func (s *stubAssessmentStore) AddAssessmentResult(r *AssessmentResult) error {
	// newest first, like the real store
	s.results = append([]*AssessmentResult{r}, s.results...)
	return nil
}

func (s *stubAssessmentStore) ListAssessmentResults(soldierID string) ([]*AssessmentResult, error) {
	var out []*AssessmentResult
	for _, r := range s.results {
		if r.SoldierID == soldierID {
			out = append(out, r)
		}
	}
	return out, nil
}

func testDefinitions(id string) *AssessmentDefinition {
	defs := map[string]*AssessmentDefinition{
		"gat": bandDef(2),
	}
	return defs[id]
}

func newTestAssessmentService(store *stubAssessmentStore) (*AssessmentService, *ProgressionService) {
	prog := newTestProgressionService(newStubProgressionStore())
	svc := NewAssessmentService(store, prog, testDefinitions)
	svc.now = prog.now
	n := 0
	svc.idGen = func(int) string {
		n++
		return "ar" + string(rune('0'+n))
	}
	return svc, prog
}

func TestSubmitScoresAndRewards(t *testing.T) {
	store := &stubAssessmentStore{}
	svc, prog := newTestAssessmentService(store)

	answers := map[string]string{"a": "high", "b": "high"}
	res, err := svc.Submit("s1", "gat", answers)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Outcome.OutcomeID == "" {
		t.Fatalf("missing outcome: %+v", res)
	}
	if !res.RewardGranted {
		t.Fatal("first submission should grant the reward")
	}
	p, err := prog.Get("s1")
	if err != nil {
		t.Fatalf("get progression: %v", err)
	}
	if p.XP != defaultAssessmentXP {
		t.Fatalf("xp = %d, want %d", p.XP, defaultAssessmentXP)
	}
}

func TestResubmitKeepsHistoryWithoutSecondReward(t *testing.T) {
	store := &stubAssessmentStore{}
	svc, prog := newTestAssessmentService(store)

	answers := map[string]string{"a": "high", "b": "high"}
	if _, err := svc.Submit("s1", "gat", answers); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	res2, err := svc.Submit("s1", "gat", map[string]string{"a": "low", "b": "low"})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if res2.RewardGranted {
		t.Fatal("retake must not grant the reward again")
	}
	results, _ := svc.Results("s1")
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	p, _ := prog.Get("s1")
	if p.XP != defaultAssessmentXP {
		t.Fatalf("xp = %d after retake, want %d", p.XP, defaultAssessmentXP)
	}
}

func TestSubmitUnknownAssessment(t *testing.T) {
	svc, _ := newTestAssessmentService(&stubAssessmentStore{})
	_, err := svc.Submit("s1", "nope", map[string]string{"a": "low"})
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("want not_found, got %v", err)
	}
}

func TestSubmitEmptyAnswers(t *testing.T) {
	svc, _ := newTestAssessmentService(&stubAssessmentStore{})
	_, err := svc.Submit("s1", "gat", nil)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorInvalid {
		t.Fatalf("want invalid, got %v", err)
	}
}

func TestOutcomeIndex(t *testing.T) {
	store := &stubAssessmentStore{}
	svc, _ := newTestAssessmentService(store)
	if _, err := svc.Submit("s1", "gat", map[string]string{"a": "high", "b": "high"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	idx, err := svc.OutcomeIndex("s1")
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if len(idx["gat"]) != 1 {
		t.Fatalf("unexpected index: %+v", idx)
	}
}
