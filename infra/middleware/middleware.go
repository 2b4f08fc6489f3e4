package middleware

import (
	"errors"
	"net/http"
	"strings"

	"cotacao/infra/token"

	"github.com/labstack/echo/v4"
)

const ContextSessionID = "token_session_id"

// CheckSession accepts the session token from the Authorization header or, for
// websocket upgrades, from the "token" query parameter.
func CheckSession(maker token.Maker) echo.MiddlewareFunc {
	return func(handlerFunc echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bearerToken := c.Request().Header.Get("Authorization")
			tokenStr := strings.TrimSpace(strings.Replace(bearerToken, "Bearer ", "", 1))
			if tokenStr == "" {
				tokenStr = c.QueryParam("token")
			}
			if tokenStr == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "token de sessão ausente"})
			}

			tokenPayload, err := maker.VerifyToken(tokenStr)
			if err != nil {
				detail := "token de sessão inválido"
				if errors.Is(err, token.ErrExpiredToken) {
					detail = "sessão expirada"
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{"detail": detail})
			}

			c.Set(ContextSessionID, tokenPayload.SessionID)

			return handlerFunc(c)
		}
	}
}

func SessionID(c echo.Context) string {
	id, _ := c.Get(ContextSessionID).(string)
	return id
}
