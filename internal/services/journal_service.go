package services

import (
	"strings"
	"time"
)

type JournalStore interface {
	AddJournalEntry(e *JournalEntry) error
	GetJournalEntry(id string) (*JournalEntry, error)
	UpdateJournalEntry(e *JournalEntry) error
	DeleteJournalEntry(id string) error
	ListJournalEntries(soldierID string) ([]*JournalEntry, error)
}

type JournalService struct {
	store JournalStore
	now   func() time.Time
	idGen func(n int) string
}

func NewJournalService(store JournalStore) *JournalService {
	return &JournalService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: shortID,
	}
}

func (s *JournalService) Create(soldierID, title, body string, mood int, tags []string) (*JournalEntry, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, NewInvalidError("title required")
	}
	if mood < 0 || mood > 5 {
		return nil, NewInvalidError("mood must be 1-5")
	}
	now := s.now()
	entry := &JournalEntry{
		ID:        s.idGen(12),
		SoldierID: soldierID,
		Title:     title,
		Body:      body,
		Mood:      mood,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.AddJournalEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *JournalService) Get(soldierID, entryID string) (*JournalEntry, error) {
	entry, err := s.store.GetJournalEntry(entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.SoldierID != soldierID {
		return nil, NewNotFoundError("entry not found")
	}
	return entry, nil
}

// Update applies the provided fields; zero values leave a field unchanged
// except Body, which may be cleared explicitly.
func (s *JournalService) Update(soldierID, entryID string, title, body *string, mood int, tags []string) (*JournalEntry, error) {
	entry, err := s.Get(soldierID, entryID)
	if err != nil {
		return nil, err
	}
	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return nil, NewInvalidError("title cannot be empty")
		}
		entry.Title = t
	}
	if body != nil {
		entry.Body = *body
	}
	if mood != 0 {
		if mood < 1 || mood > 5 {
			return nil, NewInvalidError("mood must be 1-5")
		}
		entry.Mood = mood
	}
	if tags != nil {
		entry.Tags = tags
	}
	entry.UpdatedAt = s.now()
	if err := s.store.UpdateJournalEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *JournalService) Delete(soldierID, entryID string) error {
	if _, err := s.Get(soldierID, entryID); err != nil {
		return err
	}
	return s.store.DeleteJournalEntry(entryID)
}

// List returns the soldier's entries, newest first.
func (s *JournalService) List(soldierID string) ([]*JournalEntry, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	return s.store.ListJournalEntries(soldierID)
}
