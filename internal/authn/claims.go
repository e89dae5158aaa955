package authn

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidJWT = errors.New("invalid jwt token")
var ErrInvalidClaims = errors.New("invalid claims")

// Claims are the fields read from the bot's bearer token. Signature checks
// happen at the ingress, not here.
type Claims struct {
	jwt.StandardClaims
	Username string   `json:"preferred_username"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Roles    []string `json:"roles"`
	TenantID string   `json:"tid"`
}

// Caller returns the best identifier of the caller for audit records.
func (c Claims) Caller() string {
	switch {
	case c.Email != "":
		return c.Email
	case c.Username != "":
		return c.Username
	default:
		return c.Subject
	}
}

// HasRole reports whether the token carries role, ignoring case.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

func ParseClaims(token string) (Claims, error) {
	claims := Claims{}
	// Check if token is JWT by attempting to parse it
	if t, err := jwt.ParseWithClaims(token, &claims, nil); err != nil {
		var validationErr *jwt.ValidationError
		if !errors.As(err, &validationErr) || validationErr.Errors&jwt.ValidationErrorMalformed != 0 {
			return claims, ErrInvalidJWT
		}

		if t == nil {
			return claims, ErrInvalidClaims
		}
	}
	return claims, nil
}
