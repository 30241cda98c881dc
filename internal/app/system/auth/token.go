package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry returns the expiry encoded in an upstream JWT, or fallback
// when the token is not a JWT or has no exp claim.
//
// The signature is not verified: the upstream API is the only party that
// checks it, this side only needs to know when to stop sending the token.
func TokenExpiry(token string, fallback time.Time) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	return exp.Time
}
