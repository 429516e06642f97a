package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Pipeline errors, designed for error wrapping and classification.
//
// Error classification strategy:
// - Configuration errors: invalid setup (fail fast at construction)
// - Transport errors: the request never produced a server response
// - API errors: the server answered with a non-2xx status (see APIError)
var (
	ErrInvalidBaseURL = errors.New("apiclient: invalid base URL")
	ErrTransport      = errors.New("apiclient: transport failure")
	ErrTimeout        = errors.New("apiclient: request timed out")
	ErrDecodeResponse = errors.New("apiclient: failed to decode response")
)

// APIError is a non-2xx answer from the server. Detail carries the
// server-provided message when the error body contained one.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("apiclient: server returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("apiclient: server returned %d", e.Status)
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Detail returns the server-provided error message, or an empty string when
// err is not a server error or carried no detail.
func Detail(err error) string {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Detail
	}
	return ""
}

// IsUnauthorized reports whether err is a server rejection of the bearer
// credential.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a server 404.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsTimeout reports whether err is the pipeline's fixed request timeout
// firing, as opposed to a server-returned error.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
