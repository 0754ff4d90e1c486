package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskdeck/internal/model"
	"taskdeck/internal/store"
)

type fakeAuth struct {
	loginResp model.AuthResponse
	loginErr  error
	regUser   model.User
	regErr    error
	logins    int
}

func (f *fakeAuth) Login(_ context.Context, _ model.Credentials) (model.AuthResponse, error) {
	f.logins++
	return f.loginResp, f.loginErr
}

func (f *fakeAuth) Register(_ context.Context, _ model.RegisterRequest) (model.User, error) {
	return f.regUser, f.regErr
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func okAuth() *fakeAuth {
	return &fakeAuth{loginResp: model.AuthResponse{
		AccessToken: "tok-123",
		TokenType:   "Bearer",
		User:        model.UserSummary{ID: 1, Username: "alice"},
	}}
}

func recvUser(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for username")
		return ""
	}
}

func TestLoginEstablishesAndPersistsSession(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	m, err := NewManager(ctx, st, okAuth())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.IsAuthenticated() {
		t.Fatalf("fresh store reports authenticated")
	}

	if _, err := m.Login(ctx, model.Credentials{UsernameOrEmail: "alice", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !m.IsAuthenticated() {
		t.Fatalf("not authenticated after login")
	}
	if got := m.Token(); got != "tok-123" {
		t.Fatalf("Token() = %q", got)
	}
	if got := m.Username(); got != "alice" {
		t.Fatalf("Username() = %q", got)
	}

	// A new manager over the same store restores the session.
	m2, err := NewManager(ctx, st, okAuth())
	if err != nil {
		t.Fatalf("NewManager (restore): %v", err)
	}
	if !m2.IsAuthenticated() || m2.Username() != "alice" {
		t.Fatalf("restore: authenticated=%v username=%q", m2.IsAuthenticated(), m2.Username())
	}
}

func TestFailedLoginLeavesSessionUnchanged(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	auth := &fakeAuth{loginErr: errors.New("bad credentials")}

	m, err := NewManager(ctx, st, auth)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if _, err := m.Login(ctx, model.Credentials{UsernameOrEmail: "x", Password: "y"}); err == nil {
		t.Fatalf("expected login error")
	}
	if m.IsAuthenticated() || m.Token() != "" || m.Username() != "" {
		t.Fatalf("failed login mutated the session")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	m, err := NewManager(ctx, st, okAuth())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if _, err := m.Login(ctx, model.Credentials{UsernameOrEmail: "alice", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := m.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if m.IsAuthenticated() || m.Username() != "" {
		t.Fatalf("logout left session state behind")
	}

	// The persisted pair is gone too.
	if _, ok, _ := st.Get(ctx, store.KeyAuthToken); ok {
		t.Fatalf("token survived logout in the store")
	}
	if _, ok, _ := st.Get(ctx, store.KeyUsername); ok {
		t.Fatalf("username survived logout in the store")
	}
}

func TestCurrentUserReplaysAndFollows(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	m, err := NewManager(ctx, st, okAuth())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	ch, cancel := m.CurrentUser()
	defer cancel()
	if got := recvUser(t, ch); got != "" {
		t.Fatalf("initial replay = %q, want empty", got)
	}

	if _, err := m.Login(ctx, model.Credentials{UsernameOrEmail: "alice", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got := recvUser(t, ch); got != "alice" {
		t.Fatalf("after login got %q, want alice", got)
	}

	if err := m.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if got := recvUser(t, ch); got != "" {
		t.Fatalf("after logout got %q, want empty", got)
	}

	// A subscriber arriving mid-session still sees the current value first.
	if _, err := m.Login(ctx, model.Credentials{UsernameOrEmail: "alice", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	late, cancelLate := m.CurrentUser()
	defer cancelLate()
	if got := recvUser(t, late); got != "alice" {
		t.Fatalf("late subscriber got %q, want alice", got)
	}
}

func TestHalfWrittenPairDegradesToSignedOut(t *testing.T) {
	// Either half of the token/username pair missing means no session.
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"username only", store.KeyUsername, "ghost"},
		{"token only", store.KeyAuthToken, "tok-orphan"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			st := openStore(t)
			if err := st.Set(ctx, tc.key, tc.value); err != nil {
				t.Fatalf("Set: %v", err)
			}

			m, err := NewManager(ctx, st, okAuth())
			if err != nil {
				t.Fatalf("NewManager: %v", err)
			}
			if m.IsAuthenticated() {
				t.Fatalf("half-written pair reports authenticated")
			}
			if got := m.Token(); got != "" {
				t.Fatalf("Token() = %q, want empty", got)
			}
			if got := m.Username(); got != "" {
				t.Fatalf("Username() = %q, want empty", got)
			}
		})
	}
}
