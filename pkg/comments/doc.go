// Package comments is the typed client for event comments: posting, listing
// per event, and deleting the current user's own comments.
package comments
