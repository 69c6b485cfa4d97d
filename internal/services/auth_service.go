package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type AuthStore interface {
	FindSoldierByEmail(email string) (*Soldier, error)
	GetSoldier(id string) (*Soldier, error)
	AddSoldier(s *Soldier) error
	UpdateSoldier(s *Soldier) error
}

type TokenSigner func(uid, email string, ttl time.Duration) (string, error)

type AuthService struct {
	store     AuthStore
	now       func() time.Time
	idGen     func(prefix string, n int) string
	signToken TokenSigner
	tokenTTL  time.Duration
}

type AuthResult struct {
	Token    string
	UserID   string
	Callsign string
}

func NewAuthService(store AuthStore, signer TokenSigner) *AuthService {
	return &AuthService{
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
		idGen:     func(prefix string, n int) string { return prefix + shortID(n) },
		signToken: signer,
		tokenTTL:  30 * 24 * time.Hour,
	}
}

func (s *AuthService) Register(email, password, callsign string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	callsign = strings.TrimSpace(callsign)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email/password required")
	}
	if callsign == "" {
		return nil, NewInvalidError("callsign required")
	}
	existing, err := s.store.FindSoldierByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewConflictError("email exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	userID := s.idGen("s", 7)
	if err := s.store.AddSoldier(&Soldier{
		ID:        userID,
		Email:     email,
		Callsign:  callsign,
		PassHash:  hash,
		CreatedAt: s.now(),
	}); err != nil {
		return nil, err
	}
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken(userID, email, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, UserID: userID, Callsign: callsign}, nil
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email/password required")
	}
	u, err := s.store.FindSoldierByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(u.PassHash, []byte(password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken(u.ID, u.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, UserID: u.ID, Callsign: u.Callsign}, nil
}

func (s *AuthService) Profile(soldierID string) (*Soldier, error) {
	if soldierID == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	u, err := s.store.GetSoldier(soldierID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewNotFoundError("profile not found")
	}
	return u, nil
}

// UpdateProfile changes the mutable profile fields (callsign, display name).
func (s *AuthService) UpdateProfile(soldierID, callsign, displayName string) (*Soldier, error) {
	u, err := s.Profile(soldierID)
	if err != nil {
		return nil, err
	}
	if c := strings.TrimSpace(callsign); c != "" {
		u.Callsign = c
	}
	if d := strings.TrimSpace(displayName); d != "" {
		u.DisplayName = d
	}
	if err := s.store.UpdateSoldier(u); err != nil {
		return nil, err
	}
	return u, nil
}
