package session_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usernamenul1/sportline/pkg/apiclient"
	"github.com/usernamenul1/sportline/pkg/auth"
	"github.com/usernamenul1/sportline/pkg/session"
)

type fakeAuthAPI struct {
	loginFn    func(ctx context.Context, username, password string) (*auth.Token, error)
	registerFn func(ctx context.Context, req auth.RegisterRequest) (*auth.User, error)
	meFn       func(ctx context.Context) (*auth.User, error)
}

func (f *fakeAuthAPI) Login(ctx context.Context, username, password string) (*auth.Token, error) {
	return f.loginFn(ctx, username, password)
}

func (f *fakeAuthAPI) Register(ctx context.Context, req auth.RegisterRequest) (*auth.User, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAuthAPI) Me(ctx context.Context) (*auth.User, error) {
	return f.meFn(ctx)
}

// mintToken produces a signed JWT expiring at exp, matching the token format
// the platform issues.
func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func unauthorized() error {
	return &apiclient.APIError{Status: http.StatusUnauthorized, Detail: "Could not validate credentials"}
}

func TestManager_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh start resolves anonymous", func(t *testing.T) {
		store := session.NewMemoryStore()
		api := &fakeAuthAPI{
			meFn: func(ctx context.Context) (*auth.User, error) {
				t.Fatal("profile fetch must not run without a stored session")
				return nil, nil
			},
		}
		m := session.NewManager(api, store)

		assert.Equal(t, session.StateInitializing, m.State())
		assert.True(t, m.Snapshot().Loading)

		m.Restore(ctx)

		snap := m.Snapshot()
		assert.Equal(t, session.StateAnonymous, m.State())
		assert.False(t, snap.Loading)
		assert.False(t, snap.Authenticated)
		assert.Nil(t, snap.User)
	})

	t.Run("valid stored session resolves authenticated with fresh profile", func(t *testing.T) {
		store := session.NewMemoryStore()
		stale := testUser()
		stale.FullName = "stale name"
		require.NoError(t, store.Save("t1", stale))

		fresh := testUser()
		fresh.FullName = "fresh name"
		api := &fakeAuthAPI{
			meFn: func(ctx context.Context) (*auth.User, error) { return fresh, nil },
		}
		m := session.NewManager(api, store)

		m.Restore(ctx)

		snap := m.Snapshot()
		assert.Equal(t, session.StateAuthenticated, m.State())
		assert.True(t, snap.Authenticated)
		assert.Equal(t, "fresh name", snap.User.FullName)

		// The durable copy was refreshed too.
		_, stored, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "fresh name", stored.FullName)
	})

	t.Run("rejected stored session clears store and resolves anonymous", func(t *testing.T) {
		store := session.NewMemoryStore()
		require.NoError(t, store.Save("t_old", testUser()))

		api := &fakeAuthAPI{
			meFn: func(ctx context.Context) (*auth.User, error) { return nil, unauthorized() },
		}
		m := session.NewManager(api, store)

		m.Restore(ctx)

		assert.Equal(t, session.StateAnonymous, m.State())
		assert.False(t, m.Snapshot().Authenticated)
		token, user, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, token)
		assert.Nil(t, user)
	})

	t.Run("expired jwt skips the network round trip", func(t *testing.T) {
		store := session.NewMemoryStore()
		require.NoError(t, store.Save(mintToken(t, time.Now().Add(-time.Hour)), testUser()))

		meCalled := false
		api := &fakeAuthAPI{
			meFn: func(ctx context.Context) (*auth.User, error) {
				meCalled = true
				return testUser(), nil
			},
		}
		m := session.NewManager(api, store)

		m.Restore(ctx)

		assert.False(t, meCalled)
		assert.Equal(t, session.StateAnonymous, m.State())
		assert.Empty(t, store.Token())
	})

	t.Run("live jwt is validated against the server", func(t *testing.T) {
		store := session.NewMemoryStore()
		require.NoError(t, store.Save(mintToken(t, time.Now().Add(time.Hour)), testUser()))

		meCalled := false
		api := &fakeAuthAPI{
			meFn: func(ctx context.Context) (*auth.User, error) {
				meCalled = true
				return testUser(), nil
			},
		}
		m := session.NewManager(api, store)

		m.Restore(ctx)

		assert.True(t, meCalled)
		assert.Equal(t, session.StateAuthenticated, m.State())
	})

	t.Run("opaque token falls back to server validation", func(t *testing.T) {
		store := session.NewMemoryStore()
		require.NoError(t, store.Save("not-a-jwt", testUser()))

		meCalled := false
		api := &fakeAuthAPI{
			meFn: func(ctx context.Context) (*auth.User, error) {
				meCalled = true
				return testUser(), nil
			},
		}
		m := session.NewManager(api, store)

		m.Restore(ctx)

		assert.True(t, meCalled)
		assert.Equal(t, session.StateAuthenticated, m.State())
	})

	t.Run("token without profile is cleared", func(t *testing.T) {
		store := session.NewMemoryStore()
		require.NoError(t, store.Save("t1", nil))

		api := &fakeAuthAPI{
			meFn: func(ctx context.Context) (*auth.User, error) {
				t.Fatal("half-present session must not be validated")
				return nil, nil
			},
		}
		m := session.NewManager(api, store)

		m.Restore(ctx)

		assert.Equal(t, session.StateAnonymous, m.State())
		assert.Empty(t, store.Token())
	})

	t.Run("restore is one-shot", func(t *testing.T) {
		store := session.NewMemoryStore()
		require.NoError(t, store.Save("t1", testUser()))

		meCalls := 0
		api := &fakeAuthAPI{
			meFn: func(ctx context.Context) (*auth.User, error) {
				meCalls++
				return testUser(), nil
			},
		}
		m := session.NewManager(api, store)

		m.Restore(ctx)
		m.Restore(ctx)

		assert.Equal(t, 1, meCalls)
	})
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	resolved := func(t *testing.T, api *fakeAuthAPI, store session.Store) *session.Manager {
		t.Helper()
		m := session.NewManager(api, store)
		m.Restore(ctx)
		require.Equal(t, session.StateAnonymous, m.State())
		return m
	}

	t.Run("successful login", func(t *testing.T) {
		store := session.NewMemoryStore()
		bob := &auth.User{ID: 2, Username: "bob", Email: "bob@example.com", IsActive: true}
		api := &fakeAuthAPI{
			loginFn: func(ctx context.Context, username, password string) (*auth.Token, error) {
				assert.Equal(t, "bob", username)
				assert.Equal(t, "pw", password)
				return &auth.Token{AccessToken: "t2", TokenType: "bearer"}, nil
			},
			meFn: func(ctx context.Context) (*auth.User, error) { return bob, nil },
		}
		m := resolved(t, api, store)

		result := m.Login(ctx, "bob", "pw")

		assert.True(t, result.Success)
		assert.Equal(t, session.StateAuthenticated, m.State())

		snap := m.Snapshot()
		assert.True(t, snap.Authenticated)
		assert.Equal(t, "bob", snap.User.Username)

		token, user, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "t2", token)
		assert.Equal(t, "bob", user.Username)
	})

	t.Run("token is persisted before the profile fetch", func(t *testing.T) {
		store := session.NewMemoryStore()
		api := &fakeAuthAPI{
			loginFn: func(ctx context.Context, username, password string) (*auth.Token, error) {
				return &auth.Token{AccessToken: "t2"}, nil
			},
		}
		api.meFn = func(ctx context.Context) (*auth.User, error) {
			// The pipeline reads the store; by the time the profile fetch
			// is dispatched the new token must already be there.
			assert.Equal(t, "t2", store.Token())
			return &auth.User{ID: 2, Username: "bob"}, nil
		}
		m := resolved(t, api, store)

		result := m.Login(ctx, "bob", "pw")
		assert.True(t, result.Success)
	})

	t.Run("bad credentials surface the server detail", func(t *testing.T) {
		store := session.NewMemoryStore()
		api := &fakeAuthAPI{
			loginFn: func(ctx context.Context, username, password string) (*auth.Token, error) {
				return nil, &apiclient.APIError{Status: http.StatusBadRequest, Detail: "Invalid credentials"}
			},
		}
		m := resolved(t, api, store)

		result := m.Login(ctx, "bob", "wrong")

		assert.False(t, result.Success)
		assert.Equal(t, "Invalid credentials", result.Message)
		assert.Equal(t, session.StateAnonymous, m.State())
		assert.Empty(t, store.Token())
	})

	t.Run("transport failure falls back to the generic message", func(t *testing.T) {
		store := session.NewMemoryStore()
		api := &fakeAuthAPI{
			loginFn: func(ctx context.Context, username, password string) (*auth.Token, error) {
				return nil, apiclient.ErrTimeout
			},
		}
		m := resolved(t, api, store)

		result := m.Login(ctx, "bob", "pw")

		assert.False(t, result.Success)
		assert.Equal(t, "Login failed", result.Message)
	})

	t.Run("profile fetch failure rolls back the token", func(t *testing.T) {
		store := session.NewMemoryStore()
		api := &fakeAuthAPI{
			loginFn: func(ctx context.Context, username, password string) (*auth.Token, error) {
				return &auth.Token{AccessToken: "t2"}, nil
			},
			meFn: func(ctx context.Context) (*auth.User, error) { return nil, unauthorized() },
		}
		m := resolved(t, api, store)

		result := m.Login(ctx, "bob", "pw")

		assert.False(t, result.Success)
		assert.Equal(t, session.StateAnonymous, m.State())
		token, user, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, token)
		assert.Nil(t, user)
	})
}

func TestManager_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success establishes no session", func(t *testing.T) {
		store := session.NewMemoryStore()
		api := &fakeAuthAPI{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (*auth.User, error) {
				assert.Equal(t, "carol", req.Username)
				return &auth.User{ID: 3, Username: "carol"}, nil
			},
		}
		m := session.NewManager(api, store)
		m.Restore(ctx)

		result := m.Register(ctx, auth.RegisterRequest{Username: "carol", Email: "c@example.com", Password: "pw"})

		assert.True(t, result.Success)
		assert.Equal(t, session.StateAnonymous, m.State())
		assert.Empty(t, store.Token())
	})

	t.Run("failure surfaces the server detail", func(t *testing.T) {
		store := session.NewMemoryStore()
		api := &fakeAuthAPI{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (*auth.User, error) {
				return nil, &apiclient.APIError{Status: http.StatusBadRequest, Detail: "Username already registered"}
			},
		}
		m := session.NewManager(api, store)
		m.Restore(ctx)

		result := m.Register(ctx, auth.RegisterRequest{Username: "carol"})

		assert.False(t, result.Success)
		assert.Equal(t, "Username already registered", result.Message)
	})

	t.Run("failure without detail uses the generic message", func(t *testing.T) {
		store := session.NewMemoryStore()
		api := &fakeAuthAPI{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (*auth.User, error) {
				return nil, apiclient.ErrTransport
			},
		}
		m := session.NewManager(api, store)
		m.Restore(ctx)

		result := m.Register(ctx, auth.RegisterRequest{Username: "carol"})

		assert.False(t, result.Success)
		assert.Equal(t, "Registration failed", result.Message)
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()

	authenticated := func(t *testing.T) (*session.Manager, *session.MemoryStore) {
		t.Helper()
		store := session.NewMemoryStore()
		require.NoError(t, store.Save("t1", testUser()))
		api := &fakeAuthAPI{
			meFn: func(ctx context.Context) (*auth.User, error) { return testUser(), nil },
		}
		m := session.NewManager(api, store)
		m.Restore(ctx)
		require.Equal(t, session.StateAuthenticated, m.State())
		return m, store
	}

	t.Run("clears store and state", func(t *testing.T) {
		m, store := authenticated(t)

		m.Logout()

		assert.Equal(t, session.StateAnonymous, m.State())
		assert.False(t, m.Snapshot().Authenticated)
		assert.Empty(t, store.Token())
	})

	t.Run("logout twice is safe", func(t *testing.T) {
		m, store := authenticated(t)

		m.Logout()
		m.Logout()

		assert.Equal(t, session.StateAnonymous, m.State())
		assert.Empty(t, store.Token())
	})

	t.Run("invalidate mirrors logout and is idempotent", func(t *testing.T) {
		m, store := authenticated(t)

		m.Invalidate()
		m.Invalidate()

		assert.Equal(t, session.StateAnonymous, m.State())
		assert.Empty(t, store.Token())
	})
}

func TestManager_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces cached profile durably and in memory", func(t *testing.T) {
		store := session.NewMemoryStore()
		require.NoError(t, store.Save("t1", testUser()))
		api := &fakeAuthAPI{
			meFn: func(ctx context.Context) (*auth.User, error) { return testUser(), nil },
		}
		m := session.NewManager(api, store)
		m.Restore(ctx)

		updated := testUser()
		updated.FullName = "Alice Liddell"
		m.UpdateProfile(updated)

		assert.Equal(t, "Alice Liddell", m.Snapshot().User.FullName)
		token, stored, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "t1", token)
		assert.Equal(t, "Alice Liddell", stored.FullName)
	})

	t.Run("ignored while anonymous", func(t *testing.T) {
		store := session.NewMemoryStore()
		api := &fakeAuthAPI{}
		m := session.NewManager(api, store)
		m.Restore(ctx)

		assert.NotPanics(t, func() { m.UpdateProfile(testUser()) })
		assert.Equal(t, session.StateAnonymous, m.State())
		assert.Empty(t, store.Token())
		assert.False(t, m.Snapshot().Authenticated)
	})

	t.Run("nil profile is a no-op", func(t *testing.T) {
		store := session.NewMemoryStore()
		api := &fakeAuthAPI{}
		m := session.NewManager(api, store)

		assert.NotPanics(t, func() { m.UpdateProfile(nil) })
	})
}

// The derived flag must match token-and-profile presence in every reachable
// state.
func TestManager_AuthenticatedInvariant(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	api := &fakeAuthAPI{
		loginFn: func(ctx context.Context, username, password string) (*auth.Token, error) {
			return &auth.Token{AccessToken: "t2"}, nil
		},
		meFn: func(ctx context.Context) (*auth.User, error) { return testUser(), nil },
	}
	m := session.NewManager(api, store)

	check := func(wantAuthenticated bool) {
		t.Helper()
		snap := m.Snapshot()
		assert.Equal(t, wantAuthenticated, snap.Authenticated)
		assert.Equal(t, wantAuthenticated, m.Token() != "" && snap.User != nil)
	}

	check(false) // initializing
	m.Restore(ctx)
	check(false) // anonymous
	m.Login(ctx, "alice", "pw")
	check(true) // authenticated
	m.Invalidate()
	check(false) // torn down
	m.Login(ctx, "alice", "pw")
	check(true)
	m.Logout()
	check(false)
}

func TestManager_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	require.NoError(t, store.Save("t1", testUser()))
	api := &fakeAuthAPI{
		meFn: func(ctx context.Context) (*auth.User, error) { return testUser(), nil },
	}
	m := session.NewManager(api, store)
	m.Restore(ctx)

	snap := m.Snapshot()
	snap.User.Username = "mutated"

	assert.Equal(t, "alice", m.Snapshot().User.Username)
}

func TestNewManager_Validation(t *testing.T) {
	t.Run("nil api panics", func(t *testing.T) {
		assert.Panics(t, func() { session.NewManager(nil, session.NewMemoryStore()) })
	})

	t.Run("nil store panics", func(t *testing.T) {
		assert.Panics(t, func() { session.NewManager(&fakeAuthAPI{}, nil) })
	})
}
