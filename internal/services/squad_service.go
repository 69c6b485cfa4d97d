package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"
)

type SquadStore interface {
	AddSquad(sq *Squad) error
	GetSquad(id string) (*Squad, error)
	AddSquadMember(m *SquadMember) error
	RemoveSquadMember(squadID, soldierID string) error
	ListSquadMembers(squadID string) ([]*SquadMember, error)
	ListSquadsBySoldier(soldierID string) ([]*Squad, error)
	ListSquadStandings() ([]SquadStanding, error)
}

// LeaderboardCache is a small KV surface for the standings snapshot; a nil
// cache disables caching entirely.
type LeaderboardCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

const (
	leaderboardCacheKey = "squad:leaderboard"
	leaderboardCacheTTL = 30 * time.Second
)

type SquadService struct {
	store SquadStore
	cache LeaderboardCache
	now   func() time.Time
	idGen func(n int) string
}

func NewSquadService(store SquadStore, cache LeaderboardCache) *SquadService {
	return &SquadService{
		store: store,
		cache: cache,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: shortID,
	}
}

func (s *SquadService) Create(soldierID, name, motto string) (*Squad, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewInvalidError("squad name required")
	}
	sq := &Squad{
		ID:        s.idGen(8),
		Name:      name,
		Motto:     strings.TrimSpace(motto),
		CreatedBy: soldierID,
		CreatedAt: s.now(),
	}
	if err := s.store.AddSquad(sq); err != nil {
		return nil, err
	}
	// the creator is the first member
	if err := s.store.AddSquadMember(&SquadMember{SquadID: sq.ID, SoldierID: soldierID, JoinedAt: sq.CreatedAt}); err != nil {
		return nil, err
	}
	return sq, nil
}

func (s *SquadService) Join(soldierID, squadID string) error {
	if soldierID == "" {
		return NewUnauthorizedError("unauthorized")
	}
	sq, err := s.store.GetSquad(squadID)
	if err != nil {
		return err
	}
	if sq == nil {
		return NewNotFoundError("squad not found")
	}
	members, err := s.store.ListSquadMembers(squadID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if m.SoldierID == soldierID {
			return NewConflictError("already a member")
		}
	}
	return s.store.AddSquadMember(&SquadMember{SquadID: squadID, SoldierID: soldierID, JoinedAt: s.now()})
}

func (s *SquadService) Leave(soldierID, squadID string) error {
	if soldierID == "" {
		return NewUnauthorizedError("unauthorized")
	}
	members, err := s.store.ListSquadMembers(squadID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if m.SoldierID == soldierID {
			return s.store.RemoveSquadMember(squadID, soldierID)
		}
	}
	return NewNotFoundError("not a member")
}

func (s *SquadService) Mine(soldierID string) ([]*Squad, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	return s.store.ListSquadsBySoldier(soldierID)
}

func (s *SquadService) Members(squadID string) ([]*SquadMember, error) {
	sq, err := s.store.GetSquad(squadID)
	if err != nil {
		return nil, err
	}
	if sq == nil {
		return nil, NewNotFoundError("squad not found")
	}
	return s.store.ListSquadMembers(squadID)
}

// Leaderboard ranks squads by total member XP. The snapshot is served from
// the cache when one is configured; cache failures fall through to the
// store.
func (s *SquadService) Leaderboard(ctx context.Context) ([]SquadStanding, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, leaderboardCacheKey); err == nil && raw != "" {
			var cached []SquadStanding
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}
	standings, err := s.store.ListSquadStandings()
	if err != nil {
		return nil, err
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].TotalXP != standings[j].TotalXP {
			return standings[i].TotalXP > standings[j].TotalXP
		}
		return standings[i].Name < standings[j].Name
	})
	if s.cache != nil {
		if raw, err := json.Marshal(standings); err == nil {
			_ = s.cache.Set(ctx, leaderboardCacheKey, string(raw), leaderboardCacheTTL)
		}
	}
	return standings, nil
}
