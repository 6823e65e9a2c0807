package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"evalgo.org/hostreg/internal/config"
	"evalgo.org/hostreg/models"
)

const (
	// ContextKeyClaims is the key for storing JWT claims in context
	ContextKeyClaims = "claims"
)

// Middleware is the authentication middleware
type Middleware struct {
	jwtService *JWTService
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{jwtService: NewJWTService(cfg)}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// claims in the context.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
		}
		if err := m.authenticate(c); err != nil {
			return err
		}
		return next(c)
	}
}

// OptionalAuth decodes a bearer token when one is sent. Requests without an
// Authorization header pass through as anonymous; a bad token is still
// rejected.
func (m *Middleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
			return next(c)
		}
		if err := m.authenticate(c); err != nil {
			return err
		}
		return next(c)
	}
}

func (m *Middleware) authenticate(c echo.Context) error {
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSuffix(parts[0], ":"), "Bearer") {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(strings.TrimSpace(parts[1]))
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			return echo.NewHTTPError(http.StatusUnauthorized, "token has expired")
		}
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	c.Set(ContextKeyClaims, claims)
	return nil
}

// GetClaims extracts JWT claims from Echo context
func GetClaims(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*Claims)
	return claims, ok
}

// GetIdentity returns the caller identity, or nil for anonymous requests.
func GetIdentity(c echo.Context) *models.Identity {
	claims, ok := GetClaims(c)
	if !ok {
		return nil
	}
	return claims.Identity()
}
