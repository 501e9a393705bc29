package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"todoapi/internal/model"
)

const (
	sessionCookie = "session"
	identityKey   = "identity"
)

// requireAuth resolves the caller's identity once and stores it in the
// request context. Handlers downstream read it with currentUser and
// never re-derive it. A missing or bad session is 401, regardless of
// what resource was asked for.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := sessionToken(c)
		if token == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
		}
		user, err := s.auth.Authenticate(c.Request().Context(), token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
		}
		c.Set(identityKey, user)
		return next(c)
	}
}

// currentUser returns the identity stored by requireAuth.
func currentUser(c echo.Context) *model.User {
	user, _ := c.Get(identityKey).(*model.User)
	return user
}

// sessionToken pulls the session from the cookie, falling back to a
// bearer Authorization header for non-browser clients.
func sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}

func setSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
