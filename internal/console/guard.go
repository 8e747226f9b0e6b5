package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/deepinsight/backend/pkg/client"
)

// AuthState is the state of a Guard.
type AuthState int

const (
	StateChecking AuthState = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("AuthState(%d)", int(s))
	}
}

const (
	msgLoginFailed    = "로그인에 실패했습니다."
	msgSessionExpired = "세션이 만료되었습니다. 다시 로그인해 주세요."
)

// Lister is a list the guard loads on sign-in and clears on sign-out.
type Lister interface {
	Reload(ctx context.Context) error
	Clear()
}

// GuardState is a snapshot of a Guard.
type GuardState struct {
	State   AuthState
	Session *client.Session
	// Email is the last address typed into the login form.
	Email string
	Error string
}

// Guard decides whether an admin session exists and gates the admin panel.
type Guard struct {
	mu      sync.Mutex
	backend AuthBackend
	lists   []Lister
	state   GuardState
	// gen is bumped by Check, Logout and Expire. A Check whose lookup
	// returns after a newer bump drops its result.
	gen uint64
}

// NewGuard creates a Guard in the checking state.
func NewGuard(backend AuthBackend, lists ...Lister) *Guard {
	return &Guard{backend: backend, lists: lists, state: GuardState{State: StateChecking}}
}

// Check asks the server for the current session. When one exists every list
// is loaded. A Logout, Expire or newer Check that lands while the lookup is
// in flight wins, and the stale result is discarded.
func (g *Guard) Check(ctx context.Context) AuthState {
	g.mu.Lock()
	g.gen++
	gen := g.gen
	g.state.State = StateChecking
	g.mu.Unlock()

	s := g.backend.CurrentUser(ctx)

	g.mu.Lock()
	if gen != g.gen {
		st := g.state.State
		g.mu.Unlock()
		return st
	}
	if s == nil {
		g.state.State = StateUnauthenticated
		g.state.Session = nil
		g.mu.Unlock()
		return StateUnauthenticated
	}
	g.state.State = StateAuthenticated
	g.state.Session = s
	g.state.Error = ""
	g.mu.Unlock()

	for _, l := range g.lists {
		// list errors are shown by the list itself
		_ = l.Reload(ctx)
	}
	return StateAuthenticated
}

// Login signs in and re-runs Check. On failure the guard stays
// unauthenticated and keeps email.
func (g *Guard) Login(ctx context.Context, email, password string) error {
	g.mu.Lock()
	g.state.Email = email
	g.state.Error = ""
	g.mu.Unlock()

	if _, err := g.backend.AdminLogin(ctx, client.Credentials{Email: email, Password: password}); err != nil {
		g.mu.Lock()
		g.state.State = StateUnauthenticated
		g.state.Session = nil
		g.state.Error = client.Message(err, msgLoginFailed)
		g.mu.Unlock()
		return err
	}
	if g.Check(ctx) != StateAuthenticated {
		g.mu.Lock()
		g.state.Error = msgLoginFailed
		g.mu.Unlock()
		return &client.Error{Kind: client.ErrAuth, Message: msgLoginFailed}
	}
	return nil
}

// Logout signs out and clears every list so the next admin starts from a
// fresh fetch. The remote revoke is best effort.
func (g *Guard) Logout(ctx context.Context) error {
	g.mu.Lock()
	g.gen++
	s := g.state.Session
	g.state.State = StateUnauthenticated
	g.state.Session = nil
	g.state.Error = ""
	g.mu.Unlock()

	for _, l := range g.lists {
		l.Clear()
	}
	return g.backend.AdminLogout(ctx, s)
}

// Expire handles a session the server rejected mid-use.
func (g *Guard) Expire() {
	g.mu.Lock()
	g.gen++
	wasAuthenticated := g.state.State == StateAuthenticated
	g.state.State = StateUnauthenticated
	g.state.Session = nil
	if wasAuthenticated {
		g.state.Error = msgSessionExpired
	}
	g.mu.Unlock()

	for _, l := range g.lists {
		l.Clear()
	}
}

// Session returns the active session, or nil.
func (g *Guard) Session() *client.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Session
}

// State returns a snapshot of the guard.
func (g *Guard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
