package services

import (
	"fmt"
	"strings"
	"time"
)

var rankTable = []Rank{
	{Tier: 0, Title: "Recruit", MinXP: 0},
	{Tier: 1, Title: "Operator", MinXP: 100},
	{Tier: 2, Title: "Specialist", MinXP: 300},
	{Tier: 3, Title: "Veteran", MinXP: 600},
	{Tier: 4, Title: "Elite", MinXP: 1000},
	{Tier: 5, Title: "Master", MinXP: 1500},
}

// RankFromXP is a step function over the fixed threshold table: the highest
// tier whose threshold does not exceed xp.
func RankFromXP(xp int) Rank {
	r := rankTable[0]
	for _, candidate := range rankTable[1:] {
		if xp >= candidate.MinXP {
			r = candidate
		}
	}
	return r
}

// RankTable returns a copy of the threshold table for display.
func RankTable() []Rank {
	out := make([]Rank, len(rankTable))
	copy(out, rankTable)
	return out
}

// --- Unlock rules ---

// UnlockRule is one gating condition. Evaluate reports whether the condition
// holds and, when it does not, a human-readable reason.
type UnlockRule interface {
	Evaluate(v *ProgressionView) (ok bool, reason string)
}

type RankRule struct {
	MinTier int `json:"min_tier"`
}

func (r RankRule) Evaluate(v *ProgressionView) (bool, string) {
	if v.Tier >= r.MinTier {
		return true, ""
	}
	return false, fmt.Sprintf("requires rank tier %d", r.MinTier)
}

type StreakRule struct {
	MinDays int `json:"min_days"`
}

func (r StreakRule) Evaluate(v *ProgressionView) (bool, string) {
	if v.StreakDays >= r.MinDays {
		return true, ""
	}
	return false, fmt.Sprintf("requires a %d-day readiness streak", r.MinDays)
}

type MissionCompleteRule struct {
	MissionID string `json:"mission_id"`
}

func (r MissionCompleteRule) Evaluate(v *ProgressionView) (bool, string) {
	if v.CompletedMissions[r.MissionID] {
		return true, ""
	}
	return false, fmt.Sprintf("complete mission %s first", r.MissionID)
}

type AssessmentRule struct {
	AssessmentType string `json:"assessment_type"`
	OutcomePattern string `json:"outcome_pattern,omitempty"`
}

func (r AssessmentRule) Evaluate(v *ProgressionView) (bool, string) {
	outcomes := v.AssessmentOutcomes[r.AssessmentType]
	if len(outcomes) == 0 {
		return false, fmt.Sprintf("complete the %s assessment first", r.AssessmentType)
	}
	if r.OutcomePattern == "" {
		return true, ""
	}
	for _, id := range outcomes {
		if strings.Contains(id, r.OutcomePattern) {
			return true, ""
		}
	}
	return false, fmt.Sprintf("requires a %s outcome on %s", r.OutcomePattern, r.AssessmentType)
}

// EvaluateUnlockRules walks rules in order and locks on the first failure.
// An empty rule list never locks.
func EvaluateUnlockRules(rules []UnlockRule, v *ProgressionView) LockState {
	for _, rule := range rules {
		if ok, reason := rule.Evaluate(v); !ok {
			return LockState{Locked: true, Reason: reason}
		}
	}
	return LockState{}
}

// --- Ledger service ---

// ProgressionStore persists the per-soldier aggregate. MutateProgression
// must run fn as an atomic read-modify-write for that soldier: concurrent
// mutations for the same soldier are serialized, different soldiers are
// independent.
type ProgressionStore interface {
	GetProgression(soldierID string) (*Progression, error)
	MutateProgression(soldierID string, fn func(p *Progression) error) error
}

type ProgressionService struct {
	store ProgressionStore
	now   func() time.Time
	idGen func(n int) string
}

func NewProgressionService(store ProgressionStore) *ProgressionService {
	return &ProgressionService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: shortID,
	}
}

func (s *ProgressionService) Get(soldierID string) (*Progression, error) {
	if soldierID == "" {
		return nil, NewInvalidError("soldier required")
	}
	p, err := s.store.GetProgression(soldierID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &Progression{SoldierID: soldierID, Rank: RankFromXP(0)}
	}
	return p, nil
}

// ApplyMissionResult adds the result's XP, recomputes rank, merges its side
// quests into the unlockables set and appends it to history.
func (s *ProgressionService) ApplyMissionResult(soldierID string, r *MissionResult) (*Progression, error) {
	if soldierID == "" {
		return nil, NewInvalidError("soldier required")
	}
	if r == nil || r.MissionID == "" {
		return nil, NewInvalidError("mission result required")
	}
	if r.XPEarned < 0 {
		return nil, NewInvalidError("xp cannot be negative")
	}
	res := *r
	if res.ID == "" {
		res.ID = s.idGen(12)
	}
	if res.CompletedAt.IsZero() {
		res.CompletedAt = s.now()
	}
	res.SoldierID = soldierID
	var out *Progression
	err := s.store.MutateProgression(soldierID, func(p *Progression) error {
		apply(p, res)
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GrantAdHocXP rewards an action that is not a mission run by synthesizing a
// result with a fresh id.
func (s *ProgressionService) GrantAdHocXP(soldierID string, xp int, source string) (*Progression, error) {
	if source == "" {
		return nil, NewInvalidError("source required")
	}
	return s.ApplyMissionResult(soldierID, &MissionResult{
		MissionID: "reward:" + source,
		Passed:    true,
		XPEarned:  xp,
	})
}

// GrantOnce applies an ad-hoc reward at most once per reward key. The key is
// recorded inside the same store mutation that adds the XP, so a retried or
// repeated call can never double-grant.
func (s *ProgressionService) GrantOnce(soldierID, rewardKey string, xp int, source string) (bool, *Progression, error) {
	if soldierID == "" {
		return false, nil, NewInvalidError("soldier required")
	}
	if rewardKey == "" {
		return false, nil, NewInvalidError("reward key required")
	}
	if xp < 0 {
		return false, nil, NewInvalidError("xp cannot be negative")
	}
	if source == "" {
		source = rewardKey
	}
	granted := false
	var out *Progression
	err := s.store.MutateProgression(soldierID, func(p *Progression) error {
		for _, k := range p.GrantedRewards {
			if k == rewardKey {
				out = p
				return nil
			}
		}
		apply(p, MissionResult{
			ID:          s.idGen(12),
			MissionID:   "reward:" + source,
			SoldierID:   soldierID,
			Passed:      true,
			XPEarned:    xp,
			CompletedAt: s.now(),
		})
		p.GrantedRewards = append(p.GrantedRewards, rewardKey)
		granted = true
		out = p
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	return granted, out, nil
}

// ApplyMissionResultOnce appends the result to history unconditionally but
// pays its XP only the first time rewardKey is seen. Repeat completions keep
// their record without re-granting the one-time reward.
func (s *ProgressionService) ApplyMissionResultOnce(soldierID, rewardKey string, r *MissionResult) (bool, *Progression, error) {
	if soldierID == "" {
		return false, nil, NewInvalidError("soldier required")
	}
	if rewardKey == "" {
		return false, nil, NewInvalidError("reward key required")
	}
	if r == nil || r.MissionID == "" {
		return false, nil, NewInvalidError("mission result required")
	}
	if r.XPEarned < 0 {
		return false, nil, NewInvalidError("xp cannot be negative")
	}
	res := *r
	if res.ID == "" {
		res.ID = s.idGen(12)
	}
	if res.CompletedAt.IsZero() {
		res.CompletedAt = s.now()
	}
	res.SoldierID = soldierID
	granted := false
	var out *Progression
	err := s.store.MutateProgression(soldierID, func(p *Progression) error {
		if contains(p.GrantedRewards, rewardKey) {
			res.XPEarned = 0
		} else {
			p.GrantedRewards = append(p.GrantedRewards, rewardKey)
			granted = true
		}
		apply(p, res)
		out = p
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	return granted, out, nil
}

func apply(p *Progression, res MissionResult) {
	p.XP += res.XPEarned
	p.Rank = RankFromXP(p.XP)
	for _, sq := range res.SideQuests {
		if !contains(p.Unlockables, sq) {
			p.Unlockables = append(p.Unlockables, sq)
		}
	}
	p.History = append(p.History, res)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
