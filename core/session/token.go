package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var nowFunc = time.Now // mockable

// tokenExpired checks the `exp` claim of a JWT access token without verifying
// its signature; the client holds no signing key. Opaque (non-JWT) tokens and
// tokens without an `exp` claim are treated as non-expiring.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return nowFunc().After(exp.Time)
}
