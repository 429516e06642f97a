// Package orders is the typed client for event registrations: placing an
// order by signing up for an event, listing and fetching the current user's
// orders, and cancelling active ones.
package orders
