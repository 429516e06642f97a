package session

import "github.com/usernamenul1/sportline/pkg/auth"

// State names a stage of the session lifecycle.
type State string

const (
	// StateInitializing is the state before startup restoration resolves.
	StateInitializing State = "initializing"
	// StateAnonymous is the resolved state without a credential.
	StateAnonymous State = "anonymous"
	// StateAuthenticated is the resolved state with a live token and profile.
	StateAuthenticated State = "authenticated"
)

// transitions declares the legal state changes. The manager cycles between
// anonymous and authenticated for the life of the process; initializing is
// left exactly once, by startup restoration.
var transitions = map[State][]State{
	StateInitializing:  {StateAnonymous, StateAuthenticated},
	StateAnonymous:     {StateAuthenticated, StateAnonymous},
	StateAuthenticated: {StateAnonymous, StateAuthenticated},
}

// canTransition reports whether moving from one state to another is legal.
func canTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Snapshot is the read-only view of the session exposed to consumers.
// Authenticated is derived: it is true iff both the token and the profile
// are present.
type Snapshot struct {
	User          *auth.User
	Loading       bool
	Authenticated bool
}

// Result is the structured outcome of login and register operations.
// Failures carry a human-readable message - the server's detail when
// available, a generic fallback otherwise - and are never surfaced as
// errors to the view layer.
type Result struct {
	Success bool
	Message string
}
