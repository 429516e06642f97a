package session

import "github.com/usernamenul1/sportline/pkg/auth"

// Store is durable persistence for exactly two values: the bearer token and
// the cached user profile. Both are written and cleared together, never
// independently. A store is a passive facade - it performs no network calls
// and no validation of the token's shape.
//
// The session manager is the only component that writes to a store; the
// request pipeline only reads the token through Token.
type Store interface {
	// Save writes both values durably. If the profile cannot be
	// serialized, nothing is written and the session must not be treated
	// as saved.
	Save(token string, user *auth.User) error

	// Load returns whatever is present. Absent values come back as zero
	// values, never as errors.
	Load() (token string, user *auth.User, err error)

	// Clear removes both values. Clearing an already-empty store is not
	// an error.
	Clear() error

	// Token returns the currently persisted token, or an empty string.
	// It is the read side used by the request pipeline's bearer hook and
	// deliberately swallows load errors: an unreadable store means the
	// request goes out unauthenticated.
	Token() string
}
