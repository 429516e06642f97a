// Package events is the typed client for the event listing: search and
// pagination, detail fetches, and create/update/delete for events the
// current user owns. Signing up for an event creates an order and lives in
// the orders package.
package events
