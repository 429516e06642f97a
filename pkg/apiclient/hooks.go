package apiclient

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// RequestHook runs before a request is sent. Returning an error aborts the
// call without contacting the server.
type RequestHook func(req *http.Request) error

// ResponseHook runs after a response is received, before the body is
// consumed. Hooks must not read or close the body.
type ResponseHook func(resp *http.Response)

// TokenSource supplies the current bearer credential. An empty string means
// no credential is available and the request proceeds unauthenticated - the
// server decides authorization.
type TokenSource interface {
	Token() string
}

// SessionInvalidator tears down the local session after the server rejects
// its credential. Implementations must be idempotent: several in-flight
// requests can observe an unauthorized response concurrently and each
// triggers the teardown independently.
type SessionInvalidator interface {
	Invalidate()
}

// BearerAuth returns a request hook attaching the current token from src as
// a bearer credential. Requests without a token are sent as-is.
func BearerAuth(src TokenSource) RequestHook {
	return func(req *http.Request) error {
		if token := src.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	}
}

// UnauthorizedWatch returns a response hook that reacts to an unauthorized
// status by invalidating the session and invoking onRedirect, regardless of
// which caller issued the request. onRedirect is called once per offending
// response; it must tolerate repeats since concurrent requests can each be
// rejected.
func UnauthorizedWatch(inv SessionInvalidator, onRedirect func()) ResponseHook {
	return func(resp *http.Response) {
		if resp.StatusCode != http.StatusUnauthorized {
			return
		}
		inv.Invalidate()
		if onRedirect != nil {
			onRedirect()
		}
	}
}

// RequestID returns a request hook stamping each outgoing request with a
// fresh UUIDv4 in the X-Request-ID header, unless the caller already set one.
func RequestID() RequestHook {
	return func(req *http.Request) error {
		if req.Header.Get("X-Request-ID") == "" {
			req.Header.Set("X-Request-ID", uuid.NewString())
		}
		return nil
	}
}

// LogRequests returns a request hook logging every outgoing request at debug
// level.
func LogRequests(log *slog.Logger) RequestHook {
	return func(req *http.Request) error {
		log.DebugContext(req.Context(), "api request",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
		)
		return nil
	}
}

// LogResponses returns a response hook logging every response; server-side
// failures are logged at warn level, everything else at debug.
func LogResponses(log *slog.Logger) ResponseHook {
	return func(resp *http.Response) {
		level := slog.LevelDebug
		if resp.StatusCode >= 400 {
			level = slog.LevelWarn
		}
		log.Log(resp.Request.Context(), level, "api response",
			slog.String("method", resp.Request.Method),
			slog.String("url", resp.Request.URL.String()),
			slog.Int("status", resp.StatusCode),
		)
	}
}

// RateLimit returns a request hook that blocks until the limiter permits the
// request, respecting the request's context deadline.
func RateLimit(l *rate.Limiter) RequestHook {
	return func(req *http.Request) error {
		return l.Wait(req.Context())
	}
}
