// Package middleware provides reusable HTTP middleware: JWT
// authentication, admin gating, Redis response caching and rate
// limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth validates a Bearer access token and stores the caller's
// identity in the context under "user_id" (uint64) and "is_admin"
// (bool). Handlers behind this middleware can rely on both keys.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			uid, admin, ok := parseAccessToken(strings.TrimPrefix(auth, "Bearer "), secret)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set("user_id", uid)
			c.Set("is_admin", admin)
			return next(c)
		}
	}
}

// OptionalJWT populates the identity keys when a valid Bearer token
// is present but lets anonymous requests through untouched. Used on
// the public search routes so searches of signed-in users can be
// recorded.
func OptionalJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				if uid, admin, ok := parseAccessToken(strings.TrimPrefix(auth, "Bearer "), secret); ok {
					c.Set("user_id", uid)
					c.Set("is_admin", admin)
				}
			}
			return next(c)
		}
	}
}

// parseAccessToken verifies an HS256 token and extracts the subject
// and admin claims.
func parseAccessToken(raw, secret string) (uint64, bool, bool) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, false, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false, false
	}
	sub, ok := claims["sub"].(float64) // numeric JSON claims decode as float64
	if !ok || sub <= 0 {
		return 0, false, false
	}
	admin, _ := claims["admin"].(bool)
	return uint64(sub), admin, true
}
