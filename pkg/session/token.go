package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether token is a JWT whose expiry has already
// passed. The token is treated as an opaque credential everywhere else; this
// is only an optimization that lets startup restoration skip a network
// round trip that is guaranteed to be rejected. Tokens that do not parse as
// JWTs, or carry no exp claim, are not considered expired - the server
// remains the authority.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
