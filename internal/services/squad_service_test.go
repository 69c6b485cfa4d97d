package services

import (
	"context"
	"testing"
	"time"
)

type stubSquadStore struct {
	squads    map[string]*Squad
	members   map[string][]*SquadMember
	standings []SquadStanding
	listCalls int
}

func newStubSquadStore() *stubSquadStore {
	return &stubSquadStore{squads: map[string]*Squad{}, members: map[string][]*SquadMember{}}
}

func (s *stubSquadStore) AddSquad(sq *Squad) error {
	s.squads[sq.ID] = sq
	return nil
}

func (s *stubSquadStore) GetSquad(id string) (*Squad, error) {
	return s.squads[id], nil
}

func (s *stubSquadStore) AddSquadMember(m *SquadMember) error {
	s.members[m.SquadID] = append(s.members[m.SquadID], m)
	return nil
}

func (s *stubSquadStore) RemoveSquadMember(squadID, soldierID string) error {
	list := s.members[squadID]
	for i, m := range list {
		if m.SoldierID == soldierID {
			s.members[squadID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return NewNotFoundError("not a member")
}

func (s *stubSquadStore) ListSquadMembers(squadID string) ([]*SquadMember, error) {
	return s.members[squadID], nil
}

func (s *stubSquadStore) ListSquadsBySoldier(soldierID string) ([]*Squad, error) {
	var out []*Squad
	for squadID, list := range s.members {
		for _, m := range list {
			if m.SoldierID == soldierID {
				out = append(out, s.squads[squadID])
			}
		}
	}
	return out, nil
}

func (s *stubSquadStore) ListSquadStandings() ([]SquadStanding, error) {
	s.listCalls++
	return append([]SquadStanding(nil), s.standings...), nil
}

type mapCache struct {
	data map[string]string
}

func (c *mapCache) Get(_ context.Context, key string) (string, error) {
	return c.data[key], nil
}

func (c *mapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func newTestSquadService(store *stubSquadStore, cache LeaderboardCache) *SquadService {
	svc := NewSquadService(store, cache)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	n := 0
	svc.idGen = func(int) string {
		n++
		return "sq" + string(rune('0'+n))
	}
	return svc
}

func TestSquadCreateAddsCreator(t *testing.T) {
	store := newStubSquadStore()
	svc := newTestSquadService(store, nil)
	sq, err := svc.Create("s1", "  Night Watch ", "we hold")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sq.Name != "Night Watch" || sq.CreatedBy != "s1" {
		t.Fatalf("unexpected squad: %+v", sq)
	}
	members, _ := svc.Members(sq.ID)
	if len(members) != 1 || members[0].SoldierID != "s1" {
		t.Fatalf("creator should be first member: %+v", members)
	}
}

func TestSquadJoinAndLeave(t *testing.T) {
	store := newStubSquadStore()
	svc := newTestSquadService(store, nil)
	sq, _ := svc.Create("s1", "Night Watch", "")

	if err := svc.Join("s2", sq.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	err := svc.Join("s2", sq.ID)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorConflict {
		t.Fatalf("second join: want conflict, got %v", err)
	}
	if err := svc.Join("s3", "missing"); err == nil {
		t.Fatal("joining unknown squad should fail")
	}

	if err := svc.Leave("s2", sq.ID); err != nil {
		t.Fatalf("leave: %v", err)
	}
	err = svc.Leave("s2", sq.ID)
	se, ok = AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("second leave: want not_found, got %v", err)
	}
}

func TestSquadMine(t *testing.T) {
	store := newStubSquadStore()
	svc := newTestSquadService(store, nil)
	sq, _ := svc.Create("s1", "Night Watch", "")
	if _, err := svc.Create("s2", "Day Shift", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	mine, err := svc.Mine("s1")
	if err != nil {
		t.Fatalf("mine: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != sq.ID {
		t.Fatalf("unexpected squads: %+v", mine)
	}
}

func TestLeaderboardSortsByXP(t *testing.T) {
	store := newStubSquadStore()
	store.standings = []SquadStanding{
		{SquadID: "a", Name: "Alpha", TotalXP: 100},
		{SquadID: "b", Name: "Bravo", TotalXP: 300},
		{SquadID: "c", Name: "Charlie", TotalXP: 300},
	}
	svc := newTestSquadService(store, nil)
	standings, err := svc.Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if standings[0].SquadID != "b" || standings[1].SquadID != "c" || standings[2].SquadID != "a" {
		t.Fatalf("unexpected order: %+v", standings)
	}
}

func TestLeaderboardServedFromCache(t *testing.T) {
	store := newStubSquadStore()
	store.standings = []SquadStanding{{SquadID: "a", Name: "Alpha", TotalXP: 50}}
	cache := &mapCache{data: map[string]string{}}
	svc := newTestSquadService(store, cache)

	if _, err := svc.Leaderboard(context.Background()); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.Leaderboard(context.Background()); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if store.listCalls != 1 {
		t.Fatalf("store hit %d times, want 1 (second call cached)", store.listCalls)
	}
}
