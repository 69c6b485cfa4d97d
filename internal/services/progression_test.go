package services

import (
	"testing"
	"time"
)

type stubProgressionStore struct {
	byID map[string]*Progression
}

func newStubProgressionStore() *stubProgressionStore {
	return &stubProgressionStore{byID: map[string]*Progression{}}
}

func (s *stubProgressionStore) GetProgression(soldierID string) (*Progression, error) {
	if p, ok := s.byID[soldierID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (s *stubProgressionStore) MutateProgression(soldierID string, fn func(p *Progression) error) error {
	p, ok := s.byID[soldierID]
	if !ok {
		p = &Progression{SoldierID: soldierID, Rank: RankFromXP(0)}
		s.byID[soldierID] = p
	}
	return fn(p)
}

func newTestProgressionService(store ProgressionStore) *ProgressionService {
	svc := NewProgressionService(store)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	n := 0
	svc.idGen = func(int) string {
		n++
		return "id" + string(rune('0'+n))
	}
	return svc
}

func TestRankFromXP(t *testing.T) {
	cases := []struct {
		xp   int
		tier int
	}{
		{0, 0}, {80, 0}, {100, 1}, {150, 1}, {299, 1}, {300, 2},
		{600, 3}, {1000, 4}, {1500, 5}, {99999, 5},
	}
	for _, c := range cases {
		if r := RankFromXP(c.xp); r.Tier != c.tier {
			t.Fatalf("xp=%d: expected tier %d, got %+v", c.xp, c.tier, r)
		}
	}
	if RankFromXP(80).Title != "Recruit" || RankFromXP(150).Title != "Operator" {
		t.Fatal("rank titles do not match the threshold table")
	}
}

func TestApplyMissionResultAccumulates(t *testing.T) {
	svc := newTestProgressionService(newStubProgressionStore())
	if _, err := svc.ApplyMissionResult("s1", &MissionResult{MissionID: "m1", XPEarned: 50, SideQuests: []string{"sq1"}}); err != nil {
		t.Fatal(err)
	}
	p, err := svc.ApplyMissionResult("s1", &MissionResult{MissionID: "m2", XPEarned: 30, SideQuests: []string{"sq1", "sq2"}})
	if err != nil {
		t.Fatal(err)
	}
	if p.XP != 80 || len(p.History) != 2 {
		t.Fatalf("expected XP 80 with 2 history entries, got %+v", p)
	}
	if p.Rank.Tier != 0 {
		t.Fatalf("XP 80 should still be tier 0, got %+v", p.Rank)
	}
	if len(p.Unlockables) != 2 {
		t.Fatalf("side quests should merge deduplicated, got %v", p.Unlockables)
	}
}

func TestApplyMissionResultRejectsNegativeXP(t *testing.T) {
	svc := newTestProgressionService(newStubProgressionStore())
	if _, err := svc.ApplyMissionResult("s1", &MissionResult{MissionID: "m1", XPEarned: -5}); err == nil {
		t.Fatal("negative XP must be rejected")
	}
}

func TestGrantAdHocXP(t *testing.T) {
	svc := newTestProgressionService(newStubProgressionStore())
	p, err := svc.GrantAdHocXP("s1", 120, "journal-week")
	if err != nil {
		t.Fatal(err)
	}
	if p.XP != 120 || p.Rank.Tier != 1 {
		t.Fatalf("expected tier 1 at 120 XP, got %+v", p)
	}
	if len(p.History) != 1 || p.History[0].MissionID != "reward:journal-week" {
		t.Fatalf("expected synthetic reward entry, got %+v", p.History)
	}
	if p.History[0].ID == "" {
		t.Fatal("synthetic result needs an id")
	}
}

func TestGrantOnceIsIdempotent(t *testing.T) {
	svc := newTestProgressionService(newStubProgressionStore())
	granted, p, err := svc.GrantOnce("s1", "book:deep-survival", 40, "reading")
	if err != nil || !granted {
		t.Fatalf("first grant should apply: granted=%v err=%v", granted, err)
	}
	if p.XP != 40 || len(p.History) != 1 {
		t.Fatalf("unexpected ledger after first grant: %+v", p)
	}
	granted, p, err = svc.GrantOnce("s1", "book:deep-survival", 40, "reading")
	if err != nil {
		t.Fatal(err)
	}
	if granted {
		t.Fatal("second grant with the same key must be a no-op")
	}
	if p.XP != 40 || len(p.History) != 1 {
		t.Fatalf("repeat grant mutated the ledger: %+v", p)
	}
	// a different key still grants
	granted, p, _ = svc.GrantOnce("s1", "report:r1", 25, "report")
	if !granted || p.XP != 65 {
		t.Fatalf("distinct key should grant, got granted=%v %+v", granted, p)
	}
}

func TestGetReturnsEmptyLedger(t *testing.T) {
	svc := newTestProgressionService(newStubProgressionStore())
	p, err := svc.Get("nobody")
	if err != nil {
		t.Fatal(err)
	}
	if p.XP != 0 || p.Rank.Title != "Recruit" || len(p.History) != 0 {
		t.Fatalf("expected fresh ledger, got %+v", p)
	}
}

func TestEvaluateUnlockRules(t *testing.T) {
	view := &ProgressionView{
		Tier:               1,
		StreakDays:         2,
		CompletedMissions:  map[string]bool{"m1": true},
		AssessmentOutcomes: map[string][]string{"ocean": {"ocean-o-high"}},
	}
	if st := EvaluateUnlockRules(nil, view); st.Locked {
		t.Fatalf("empty rules must not lock: %+v", st)
	}
	rules := []UnlockRule{
		RankRule{MinTier: 1},
		MissionCompleteRule{MissionID: "m1"},
		AssessmentRule{AssessmentType: "ocean", OutcomePattern: "o-high"},
	}
	if st := EvaluateUnlockRules(rules, view); st.Locked {
		t.Fatalf("all rules pass but locked: %+v", st)
	}

	failing := []UnlockRule{
		StreakRule{MinDays: 7},
		RankRule{MinTier: 5},
	}
	st := EvaluateUnlockRules(failing, view)
	if !st.Locked {
		t.Fatal("expected locked")
	}
	if st.Reason != "requires a 7-day readiness streak" {
		t.Fatalf("first failing rule must supply the reason, got %q", st.Reason)
	}

	if st := EvaluateUnlockRules([]UnlockRule{AssessmentRule{AssessmentType: "disc"}}, view); !st.Locked {
		t.Fatal("missing assessment should lock")
	}
	if st := EvaluateUnlockRules([]UnlockRule{AssessmentRule{AssessmentType: "ocean", OutcomePattern: "c-high"}}, view); !st.Locked {
		t.Fatal("pattern mismatch should lock")
	}
}
