package api

import (
	"sync"

	"github.com/bastionhq/bastion/internal/services"
)

// memoryStore keeps everything in process memory. It backs tests and small
// single-node deployments; production uses the sqlite store.
type memoryStore struct {
	mu           sync.RWMutex
	soldiers     map[string]*services.Soldier
	journals     []*services.JournalEntry
	assessments  []*services.AssessmentResult
	zoneChecks   []*services.ZoneCheckEntry
	sleepLogs    []*services.SleepLog
	caffeine     []*services.CaffeineLog
	squads       map[string]*services.Squad
	members      map[string][]*services.SquadMember
	reports      []*services.Report
	progressions map[string]*services.Progression
}

func NewMemoryStore() Store { return newMemoryStore() }

func newMemoryStore() *memoryStore {
	return &memoryStore{
		soldiers:     map[string]*services.Soldier{},
		squads:       map[string]*services.Squad{},
		members:      map[string][]*services.SquadMember{},
		progressions: map[string]*services.Progression{},
	}
}

// --- soldiers ---

func (s *memoryStore) FindSoldierByEmail(email string) (*services.Soldier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.soldiers {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) GetSoldier(id string) (*services.Soldier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.soldiers[id], nil
}

func (s *memoryStore) AddSoldier(u *services.Soldier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.soldiers[u.ID] = u
	return nil
}

func (s *memoryStore) UpdateSoldier(u *services.Soldier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.soldiers[u.ID] = u
	return nil
}

// --- journal ---

func (s *memoryStore) AddJournalEntry(e *services.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journals = append([]*services.JournalEntry{e}, s.journals...)
	return nil
}

func (s *memoryStore) GetJournalEntry(id string) (*services.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.journals {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) UpdateJournalEntry(e *services.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.journals {
		if cur.ID == e.ID {
			s.journals[i] = e
			return nil
		}
	}
	return services.NewNotFoundError("entry not found")
}

func (s *memoryStore) DeleteJournalEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.journals {
		if cur.ID == id {
			s.journals = append(s.journals[:i], s.journals[i+1:]...)
			return nil
		}
	}
	return services.NewNotFoundError("entry not found")
}

func (s *memoryStore) ListJournalEntries(soldierID string) ([]*services.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*services.JournalEntry
	for _, e := range s.journals {
		if e.SoldierID == soldierID {
			out = append(out, e)
		}
	}
	return out, nil
}

// --- assessments ---

func (s *memoryStore) AddAssessmentResult(r *services.AssessmentResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments = append([]*services.AssessmentResult{r}, s.assessments...)
	return nil
}

func (s *memoryStore) ListAssessmentResults(soldierID string) ([]*services.AssessmentResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*services.AssessmentResult
	for _, r := range s.assessments {
		if r.SoldierID == soldierID {
			out = append(out, r)
		}
	}
	return out, nil
}

// --- zone checks ---

func (s *memoryStore) AddZoneCheck(e *services.ZoneCheckEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoneChecks = append([]*services.ZoneCheckEntry{e}, s.zoneChecks...)
	return nil
}

func (s *memoryStore) GetZoneCheck(id string) (*services.ZoneCheckEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.zoneChecks {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) UpdateZoneCheck(e *services.ZoneCheckEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.zoneChecks {
		if cur.ID == e.ID {
			s.zoneChecks[i] = e
			return nil
		}
	}
	return services.NewNotFoundError("check-in not found")
}

func (s *memoryStore) ListZoneChecks(soldierID string) ([]*services.ZoneCheckEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*services.ZoneCheckEntry
	for _, e := range s.zoneChecks {
		if e.SoldierID == soldierID {
			out = append(out, e)
		}
	}
	return out, nil
}

// --- sleep & caffeine ---

func (s *memoryStore) AddSleepLog(l *services.SleepLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleepLogs = append([]*services.SleepLog{l}, s.sleepLogs...)
	return nil
}

func (s *memoryStore) ListSleepLogs(soldierID string) ([]*services.SleepLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*services.SleepLog
	for _, l := range s.sleepLogs {
		if l.SoldierID == soldierID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *memoryStore) AddCaffeineLog(l *services.CaffeineLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caffeine = append([]*services.CaffeineLog{l}, s.caffeine...)
	return nil
}

func (s *memoryStore) ListCaffeineLogs(soldierID string) ([]*services.CaffeineLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*services.CaffeineLog
	for _, l := range s.caffeine {
		if l.SoldierID == soldierID {
			out = append(out, l)
		}
	}
	return out, nil
}

// --- squads ---

func (s *memoryStore) AddSquad(sq *services.Squad) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.squads[sq.ID] = sq
	return nil
}

func (s *memoryStore) GetSquad(id string) (*services.Squad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.squads[id], nil
}

func (s *memoryStore) AddSquadMember(m *services.SquadMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.SquadID] = append(s.members[m.SquadID], m)
	return nil
}

func (s *memoryStore) RemoveSquadMember(squadID, soldierID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.members[squadID]
	for i, m := range list {
		if m.SoldierID == soldierID {
			s.members[squadID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return services.NewNotFoundError("not a member")
}

func (s *memoryStore) ListSquadMembers(squadID string) ([]*services.SquadMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*services.SquadMember, 0, len(s.members[squadID]))
	for _, m := range s.members[squadID] {
		cp := *m
		if u := s.soldiers[m.SoldierID]; u != nil {
			cp.Callsign = u.Callsign
		}
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memoryStore) ListSquadsBySoldier(soldierID string) ([]*services.Squad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*services.Squad
	for squadID, list := range s.members {
		for _, m := range list {
			if m.SoldierID == soldierID {
				out = append(out, s.squads[squadID])
			}
		}
	}
	return out, nil
}

func (s *memoryStore) ListSquadStandings() ([]services.SquadStanding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]services.SquadStanding, 0, len(s.squads))
	for id, sq := range s.squads {
		standing := services.SquadStanding{SquadID: id, Name: sq.Name, Members: len(s.members[id])}
		for _, m := range s.members[id] {
			if p := s.progressions[m.SoldierID]; p != nil {
				standing.TotalXP += p.XP
			}
		}
		out = append(out, standing)
	}
	return out, nil
}

// --- reports ---

func (s *memoryStore) AddReport(r *services.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append([]*services.Report{r}, s.reports...)
	return nil
}

func (s *memoryStore) GetReport(id string) (*services.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reports {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) ListReports(soldierID string) ([]*services.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*services.Report
	for _, r := range s.reports {
		if r.SoldierID == soldierID {
			out = append(out, r)
		}
	}
	return out, nil
}

// --- progression ---

func (s *memoryStore) GetProgression(soldierID string) (*services.Progression, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.progressions[soldierID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

// MutateProgression holds the store lock across fn, so concurrent mutations
// for the same soldier can never interleave.
func (s *memoryStore) MutateProgression(soldierID string, fn func(p *services.Progression) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.progressions[soldierID]
	if !ok {
		p = &services.Progression{SoldierID: soldierID, Rank: services.RankFromXP(0)}
		s.progressions[soldierID] = p
	}
	return fn(p)
}
