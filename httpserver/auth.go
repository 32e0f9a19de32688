package httpserver

import (
	"moviebox/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var errNoSubject = errs.Errorf(errs.EUNAUTHORIZED, "token has no subject")

// userIDFromContext extracts the subject of the token the JWT middleware
// already verified. Handlers trust nothing else as the caller's identity.
func userIDFromContext(c echo.Context) (string, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "", errNoSubject
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errNoSubject
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", errNoSubject
	}
	return subject, nil
}
