package controller

import (
	"net/http"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo"
)

const (
	tokenCookieName  = "token"
	requesterContext = "requesterId"
)

// requesterIdentity verifies the session token issued by the external
// auth service and stores the requester's user id in the echo context.
// The middleware only verifies tokens, it never issues them.
func requesterIdentity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Authentication required"})
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}

				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Invalid or expired token"})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Invalid or expired token"})
			}

			id, _ := claims["id"].(string)
			if id == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Invalid or expired token"})
			}

			c.Set(requesterContext, id)

			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(tokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

func requesterId(c echo.Context) string {
	id, _ := c.Get(requesterContext).(string)

	return id
}
