// Package session owns the client-side session of the Sportline platform:
// a bearer token plus a cached user profile, persisted durably so it
// survives process restarts, mirrored in memory for cheap reads.
//
// # Architecture
//
// A Store is a passive two-value persistence facade (file-backed for real
// use, in-memory for tests). The Manager is the session's single writer and
// models the lifecycle as an explicit state machine:
//
//	initializing ──Restore──► anonymous ◄──Logout/Invalidate── authenticated
//	                             │                                   ▲
//	                             └───────────── Login ───────────────┘
//
// Everything else - the request pipeline, resource clients, the view layer -
// gets a read-only Snapshot or the narrow Token accessor. This single-writer
// discipline is the concurrency-safety mechanism; the manager's internal
// mutex only protects the in-memory mirror.
//
// The core invariant is that a session is authenticated iff both the token
// and the profile are present, in memory and on disk alike: the manager
// writes and clears them together, never independently.
//
// # Usage
//
//	store, _ := session.NewFileStore("")
//	manager := session.NewManager(authClient, store)
//
//	manager.Restore(ctx) // resolve the persisted session, once, at startup
//
//	if result := manager.Login(ctx, "alice", "secret"); !result.Success {
//	    fmt.Println(result.Message)
//	}
//
//	snap := manager.Snapshot()
//	if snap.Authenticated {
//	    fmt.Println("hello,", snap.User.Username)
//	}
package session
