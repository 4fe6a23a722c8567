package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

const accessTokenKey = "accessToken"

// BearerToken picks the access token out of the Authorization header so handlers can pass it
// on to the backend. The gateway never judges the token itself; the backend does.
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			Logger(c).WarnContext(c, "Ignoring malformed Authorization header", slog.Int("parts", len(parts)))
			c.Next()
			return
		}

		c.Set(accessTokenKey, parts[1])
		c.Next()
	}
}

// AccessToken returns the token stored by BearerToken, if any.
func AccessToken(c *gin.Context) string {
	return c.GetString(accessTokenKey)
}
