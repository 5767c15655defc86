package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/skillhub/backend/internal/models"
	"go.uber.org/zap"
)

// Storage keys of the persisted session
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
)

// ErrLoginRequired is returned by operations that need a signed-in user when there is none
var ErrLoginRequired = errors.New("login required")

// KeyValueStore is durable storage for the session
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetAll(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// AuthAPI is the part of the API the session talks to
type AuthAPI interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	UpdateProfile(ctx context.Context, token string, req *models.UpdateProfileRequest) (*models.ProfileResponse, error)
	ChangePassword(ctx context.Context, token string, req *models.ChangePasswordRequest) error
}

// Session holds the signed-in user's token and identity snapshot.
// Both are persisted together and cleared together.
type Session struct {
	api    AuthAPI
	store  KeyValueStore
	logger *zap.Logger

	mu    sync.RWMutex
	token string
	user  *models.ProfileResponse
}

// NewSession creates an empty session. Call Restore to load a persisted one.
func NewSession(api AuthAPI, store KeyValueStore, logger *zap.Logger) *Session {
	return &Session{
		api:    api,
		store:  store,
		logger: logger,
	}
}

// Restore loads the persisted token and identity snapshot.
// A snapshot that cannot be decoded clears both keys.
func (s *Session) Restore(ctx context.Context) error {
	token, hasToken, err := s.store.Get(ctx, KeyAuthToken)
	if err != nil {
		return err
	}
	raw, hasUser, err := s.store.Get(ctx, KeyUser)
	if err != nil {
		return err
	}

	if !hasToken || !hasUser {
		s.set("", nil)
		return nil
	}

	var user models.ProfileResponse
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("discarding unreadable session snapshot", zap.Error(err))
		s.set("", nil)
		return s.store.Delete(ctx, KeyAuthToken, KeyUser)
	}

	s.set(token, &user)
	return nil
}

// Token returns the bearer token, or "" when signed out
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the identity snapshot, or nil when signed out
func (s *Session) User() *models.ProfileResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	user.CompletedSteps = append([]string{}, s.user.CompletedSteps...)
	return &user
}

// Register creates an account and signs in
func (s *Session) Register(ctx context.Context, req *models.RegisterRequest) (*models.ProfileResponse, error) {
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, resp)
}

// Login signs in with email and password
func (s *Session) Login(ctx context.Context, req *models.LoginRequest) (*models.ProfileResponse, error) {
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, resp)
}

// Logout forgets the token and the identity snapshot
func (s *Session) Logout(ctx context.Context) error {
	s.set("", nil)
	return s.store.Delete(ctx, KeyAuthToken, KeyUser)
}

// UpdateProfile changes name and/or email and refreshes the stored snapshot
func (s *Session) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrLoginRequired
	}

	profile, err := s.api.UpdateProfile(ctx, token, req)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, token, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ChangePassword replaces the password. Pass the error to PasswordChangeMessage for display.
func (s *Session) ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error {
	token := s.Token()
	if token == "" {
		return ErrLoginRequired
	}
	return s.api.ChangePassword(ctx, token, req)
}

func (s *Session) signIn(ctx context.Context, resp *models.AuthResponse) (*models.ProfileResponse, error) {
	profile := resp.ProfileResponse
	if profile.CompletedSteps == nil {
		profile.CompletedSteps = []string{}
	}
	if err := s.persist(ctx, resp.Token, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// persist writes token and snapshot together, then publishes them in memory
func (s *Session) persist(ctx context.Context, token string, user *models.ProfileResponse) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}
	if err := s.store.SetAll(ctx, map[string]string{
		KeyAuthToken: token,
		KeyUser:      string(raw),
	}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	snapshot := *user
	snapshot.CompletedSteps = append([]string{}, user.CompletedSteps...)
	s.set(token, &snapshot)
	return nil
}

func (s *Session) set(token string, user *models.ProfileResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}
