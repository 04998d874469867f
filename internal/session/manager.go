package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ghrd1/shop-front/internal/api"
	"github.com/ghrd1/shop-front/internal/store"
)

// CredentialError means the remote rejected the credential exchange itself.
// It unwraps to the server's error so validation message lists survive.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string {
	return e.Err.Error()
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// ProfileFetchError means a token was issued but hydration failed. The token
// is discarded and never persisted, so the session ends unauthenticated with
// no stored leftovers.
type ProfileFetchError struct {
	Err error
}

func (e *ProfileFetchError) Error() string {
	return fmt.Sprintf("profile fetch failed: %v", e.Err)
}

func (e *ProfileFetchError) Unwrap() error {
	return e.Err
}

// AuthAPI is the slice of the remote API the session manager consumes.
type AuthAPI interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password, firstName, lastName string) (string, error)
	SignOut(ctx context.Context) error
	Profile(ctx context.Context) (*api.User, error)
	UpdateProfile(ctx context.Context, firstName, lastName string) (*api.User, error)
}

// Manager owns the token and user identity for the single local session.
// A session is authenticated only when both are present; a token alone
// (mid-hydration) is not an authenticated session.
type Manager struct {
	mu    sync.Mutex
	token string
	user  *api.User

	store store.Store
	api   AuthAPI
	log   logrus.FieldLogger
}

func NewManager(st store.Store, authAPI AuthAPI, log logrus.FieldLogger) *Manager {
	return &Manager{
		store: st,
		api:   authAPI,
		log:   log,
	}
}

// Initialize hydrates the session from a previously stored token. Any
// hydration failure is treated as token invalidation: the stored token is
// removed and the session starts unauthenticated. No retry, and no
// distinction between network and auth failures.
func (m *Manager) Initialize(ctx context.Context) error {
	raw, err := m.store.Get(ctx, store.KeyToken)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read stored token: %w", err)
	}

	m.setToken(string(raw))
	user, err := m.api.Profile(ctx)
	if err != nil {
		m.clearMemory()
		if delErr := m.store.Delete(ctx, store.KeyToken); delErr != nil {
			m.log.WithError(delErr).Warn("failed to remove invalidated token")
		}
		m.log.WithError(err).Info("stored token rejected, starting unauthenticated")
		return nil
	}

	m.setUser(user)
	return nil
}

// Login exchanges credentials for a token and hydrates the profile. The token
// is persisted only after hydration succeeds, so a failed hydration leaves
// nothing behind.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, err := m.api.SignIn(ctx, email, password)
	if err != nil {
		return &CredentialError{Err: err}
	}
	return m.hydrateAndCommit(ctx, token)
}

// Register has the same contract as Login, against the registration endpoint.
// Server validation messages are preserved verbatim through the error chain.
func (m *Manager) Register(ctx context.Context, email, password, firstName, lastName string) error {
	token, err := m.api.Register(ctx, email, password, firstName, lastName)
	if err != nil {
		return &CredentialError{Err: err}
	}
	return m.hydrateAndCommit(ctx, token)
}

func (m *Manager) hydrateAndCommit(ctx context.Context, token string) error {
	// Memory only until the profile fetch succeeds.
	m.setToken(token)

	user, err := m.api.Profile(ctx)
	if err != nil {
		m.clearMemory()
		return &ProfileFetchError{Err: err}
	}

	if err := m.store.Set(ctx, store.KeyToken, []byte(token)); err != nil {
		m.clearMemory()
		return fmt.Errorf("persist token: %w", err)
	}

	m.setUser(user)
	return nil
}

// Logout invalidates the session remotely on a best-effort basis and
// unconditionally clears both memory and persisted state.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.SignOut(ctx); err != nil {
		m.log.WithError(err).Debug("remote sign-out failed, clearing local session anyway")
	}

	m.clearMemory()
	if err := m.store.Delete(ctx, store.KeyToken); err != nil {
		m.log.WithError(err).Warn("failed to remove stored token")
	}
}

// UpdateProfile edits the name fields and refreshes the cached user.
func (m *Manager) UpdateProfile(ctx context.Context, firstName, lastName string) error {
	user, err := m.api.UpdateProfile(ctx, firstName, lastName)
	if err != nil {
		return err
	}
	m.setUser(user)
	return nil
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != "" && m.user != nil
}

func (m *Manager) IsAdmin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && m.user.Role == api.RoleAdmin
}

// Token returns the current bearer token, "" when absent. Wired into the API
// client as its token source.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// User returns a copy of the hydrated profile.
func (m *Manager) User() (api.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return api.User{}, false
	}
	return *m.user, true
}

func (m *Manager) setToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func (m *Manager) setUser(user *api.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
}

func (m *Manager) clearMemory() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
}
