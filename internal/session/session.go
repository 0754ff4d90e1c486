// Package session owns the authenticated user's token and display name.
//
// The manager is constructed explicitly and passed to whichever component
// needs it; there is exactly one instance per process lifetime, but it is
// deliberately not a package global.
package session

import (
	"context"
	"strings"
	"sync"

	"taskdeck/internal/model"
	"taskdeck/internal/pubsub"
	"taskdeck/internal/store"
)

// Authenticator is the backend's auth surface (implemented by api.Client).
type Authenticator interface {
	Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (model.User, error)
}

// Manager mediates login/logout and holds the session pair.
//
// Invariant: token and username are written and cleared together; observers
// never see one without the other.
type Manager struct {
	mu    sync.Mutex
	st    *store.Store
	auth  Authenticator
	token string
	user  *pubsub.Value[string]
}

// NewManager loads any persisted session from the store. An empty username
// on the broadcast channel means "not signed in".
func NewManager(ctx context.Context, st *store.Store, auth Authenticator) (*Manager, error) {
	token, _, err := st.Get(ctx, store.KeyAuthToken)
	if err != nil {
		return nil, err
	}
	username, _, err := st.Get(ctx, store.KeyUsername)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(token) == "" || strings.TrimSpace(username) == "" {
		// Half-written pairs (e.g. a crash between writes in an older build)
		// degrade to signed-out. Either missing half means no session:
		// observers must never see a token-less ghost or a nameless token.
		token = ""
		username = ""
	}
	return &Manager{
		st:    st,
		auth:  auth,
		token: token,
		user:  pubsub.NewValue(username),
	}, nil
}

// Login delegates to the backend. On success the token/username pair is
// persisted atomically and the new username is published. On failure the
// session is left unchanged and the error is returned to the caller.
func (m *Manager) Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	resp, err := m.auth.Login(ctx, creds)
	if err != nil {
		return model.AuthResponse{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.st.SetMany(ctx, map[string]string{
		store.KeyAuthToken: resp.AccessToken,
		store.KeyUsername:  resp.User.Username,
	}); err != nil {
		return model.AuthResponse{}, err
	}
	m.token = resp.AccessToken
	m.user.Set(resp.User.Username)
	return resp, nil
}

// Register delegates to the backend; it does not establish a session.
func (m *Manager) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	return m.auth.Register(ctx, req)
}

// Logout clears the persisted pair and publishes an empty username. It never
// requires a network call; a store error is reported but the in-memory
// session is cleared regardless.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.st.DeleteMany(ctx, store.KeyAuthToken, store.KeyUsername)
	m.token = ""
	m.user.Set("")
	return err
}

// IsAuthenticated reports whether a token is present. It is synchronous so
// the access guard can consult it during navigation.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strings.TrimSpace(m.token) != ""
}

// Token returns the current bearer token ("" when signed out). api.Client
// uses this as its token source.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Username returns the current username synchronously ("" when signed out).
func (m *Manager) Username() string {
	return m.user.Get()
}

// CurrentUser returns a replay-of-one subscription: the current username is
// delivered immediately, then every change. An empty string means signed out.
func (m *Manager) CurrentUser() (<-chan string, func()) {
	return m.user.Subscribe()
}
