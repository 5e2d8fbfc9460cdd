package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// principalClaims are checked in order; the first non-empty string wins
var principalClaims = []string{"sub", "username", "preferred_username"}

// PrincipalFromToken decodes the token payload without verifying it and
// returns the user identity it names. Malformed tokens yield "".
func PrincipalFromToken(token string) string {
	if token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}

	for _, name := range principalClaims {
		if v, ok := claims[name].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
