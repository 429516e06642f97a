package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/usernamenul1/sportline/pkg/apiclient"
	"github.com/usernamenul1/sportline/pkg/auth"
	"github.com/usernamenul1/sportline/pkg/logger"
)

// Generic fallback messages used when the server provides no detail.
const (
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
)

// AuthAPI is the slice of the remote API the manager needs: the token
// exchange, registration and the current-user fetch. *auth.Client satisfies
// it.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*auth.Token, error)
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.User, error)
	Me(ctx context.Context) (*auth.User, error)
}

// Option configures the manager.
type Option func(*Manager)

// WithLogger sets the manager's logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// Manager owns the session. It is the only component permitted to mutate the
// Store, and it keeps the in-memory mirror and the durable copy consistent:
// every state change writes or clears both in the same operation.
//
// The lifecycle is an explicit state machine: initializing until Restore
// resolves, then cycling between anonymous and authenticated through the
// named transitions Login, Logout and Invalidate. Consumers read the session
// through Snapshot and never hold a mutable reference.
type Manager struct {
	api   AuthAPI
	store Store
	log   *slog.Logger

	mu    sync.RWMutex
	state State
	token string
	user  *auth.User
}

// NewManager creates a manager in the initializing state. It panics on a nil
// api or store: a manager without either cannot do anything, and failing at
// construction beats failing on first use.
func NewManager(api AuthAPI, store Store, opts ...Option) *Manager {
	if api == nil {
		panic("session: auth API is required")
	}
	if store == nil {
		panic("session: store is required")
	}

	m := &Manager{
		api:   api,
		store: store,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		state: StateInitializing,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Restore resolves the initial session state from the store. With nothing
// persisted it resolves to anonymous. With a persisted token and profile it
// validates the token against the API by fetching the current profile -
// through the pipeline, which attaches the stored token - and resolves to
// authenticated with that fresh profile. Any failure clears the store and
// resolves to anonymous, silently: an expired session at startup is
// equivalent to a logout, not an error.
//
// Restore is one-shot. Calls after the first resolution are no-ops.
func (m *Manager) Restore(ctx context.Context) {
	m.mu.RLock()
	initializing := m.state == StateInitializing
	m.mu.RUnlock()
	if !initializing {
		return
	}

	token, cached, err := m.store.Load()
	if err != nil || token == "" || cached == nil {
		// Nothing usable persisted. A half-present pair would violate the
		// token-and-profile-together invariant, so clear it too.
		if token != "" || cached != nil {
			_ = m.store.Clear()
		}
		m.resolve(StateAnonymous, "", nil)
		return
	}

	// The platform issues JWTs; a token whose exp already passed cannot
	// validate, so skip the doomed network round trip.
	if tokenExpired(token, time.Now()) {
		m.log.Debug("stored token expired, resolving anonymous")
		_ = m.store.Clear()
		m.resolve(StateAnonymous, "", nil)
		return
	}

	user, err := m.api.Me(ctx)
	if err != nil {
		m.log.Debug("stored session rejected", logger.Error(err))
		_ = m.store.Clear()
		m.resolve(StateAnonymous, "", nil)
		return
	}

	// Keep the durable profile as fresh as the in-memory one.
	if err := m.store.Save(token, user); err != nil {
		m.log.Warn("failed to refresh stored profile", logger.Error(err))
	}
	m.resolve(StateAuthenticated, token, user)
	m.log.Info("session restored", logger.UserID(user.ID))
}

// Login exchanges credentials for a token and establishes the session. The
// token is persisted before the profile fetch is dispatched - the pipeline
// reads the store, so the fetch already carries the new credential. On any
// failure after the token grant the store is cleared again and the session
// stays anonymous.
//
// The outcome is always a Result; failures carry the server's detail message
// when it provided one.
func (m *Manager) Login(ctx context.Context, username, password string) Result {
	token, err := m.api.Login(ctx, username, password)
	if err != nil {
		return m.loginFailure(err)
	}

	if err := m.store.Save(token.AccessToken, nil); err != nil {
		return m.loginFailure(err)
	}

	user, err := m.api.Me(ctx)
	if err != nil {
		m.rollbackLogin()
		return m.loginFailure(err)
	}

	if err := m.store.Save(token.AccessToken, user); err != nil {
		m.rollbackLogin()
		return m.loginFailure(err)
	}

	m.resolve(StateAuthenticated, token.AccessToken, user)
	m.log.Info("login succeeded", logger.UserID(user.ID))
	return Result{Success: true}
}

// Register creates an account. It does not establish a session either way;
// callers log in separately afterwards.
func (m *Manager) Register(ctx context.Context, req auth.RegisterRequest) Result {
	if _, err := m.api.Register(ctx, req); err != nil {
		message := apiclient.Detail(err)
		if message == "" {
			message = msgRegisterFailed
		}
		m.log.Warn("registration failed", logger.Error(err))
		return Result{Message: message}
	}
	return Result{Success: true}
}

// Logout clears the session. It always succeeds, performs no network call,
// and is safe to repeat.
func (m *Manager) Logout() {
	_ = m.store.Clear()
	m.resolve(StateAnonymous, "", nil)
	m.log.Info("logged out")
}

// Invalidate tears the session down after the server rejected its
// credential. It is the pipeline's unauthorized-teardown target and must stay
// idempotent: several concurrently in-flight requests can be rejected and
// each triggers it independently.
func (m *Manager) Invalidate() {
	_ = m.store.Clear()
	m.resolve(StateAnonymous, "", nil)
	m.log.Debug("session invalidated by unauthorized response")
}

// UpdateProfile replaces the cached profile, durably and in memory. It is a
// local cache write following a profile update that already succeeded on the
// server; it does not contact the API. Calling it without an authenticated
// session is a caller error and is ignored rather than crashed on: storing a
// profile without a token would break the token-and-profile invariant.
func (m *Manager) UpdateProfile(user *auth.User) {
	if user == nil {
		return
	}

	m.mu.RLock()
	token := m.token
	authenticated := m.state == StateAuthenticated
	m.mu.RUnlock()

	if !authenticated {
		return
	}

	if err := m.store.Save(token, user); err != nil {
		m.log.Warn("failed to persist profile update", logger.Error(err))
		return
	}
	m.resolve(StateAuthenticated, token, user)
}

// Snapshot returns the read-only view of the session. The returned profile
// is a copy; mutating it does not affect the session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var user *auth.User
	if m.user != nil {
		userCopy := *m.user
		user = &userCopy
	}

	return Snapshot{
		User:          user,
		Loading:       m.state == StateInitializing,
		Authenticated: m.token != "" && m.user != nil,
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Token returns the in-memory token snapshot, satisfying the pipeline's
// TokenSource. The store itself also satisfies it; which one the pipeline
// reads is a wiring choice.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// resolve applies a state transition, guarding against illegal ones. Token
// and profile always change together with the state so the derived
// Authenticated flag can never observe a half-updated pair.
func (m *Manager) resolve(to State, token string, user *auth.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !canTransition(m.state, to) {
		m.log.Warn("illegal session transition ignored",
			slog.String("from", string(m.state)),
			slog.String("to", string(to)),
		)
		return
	}

	m.state = to
	m.token = token
	if user != nil {
		userCopy := *user
		m.user = &userCopy
	} else {
		m.user = nil
	}
}

// rollbackLogin clears the token written earlier in a login attempt whose
// later step failed, leaving store and memory anonymous again.
func (m *Manager) rollbackLogin() {
	_ = m.store.Clear()
	m.resolve(StateAnonymous, "", nil)
}

func (m *Manager) loginFailure(err error) Result {
	message := apiclient.Detail(err)
	if message == "" {
		message = msgLoginFailed
	}
	m.log.Warn("login failed", logger.Error(err))
	return Result{Message: message}
}
