// Package auth is the typed client for the platform's authentication
// endpoints: the form-encoded token exchange, account registration and the
// current-user profile fetch. It also declares the User record shared by the
// other resource clients and the session packages.
//
// The package never touches the local session; establishing and tearing down
// sessions is the session.Manager's job.
package auth
