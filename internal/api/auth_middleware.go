package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
)

// setSessionCookie sets the session cookie with appropriate flags for dev/prod.
func (s *SessionIssuer) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(constants.CookieSessionName, token, int(s.ttl.Seconds()), "/", "", s.secureCookie, true)
}

// sessionToken prefers the bearer header, which Telegram web views send,
// over the cookie.
func sessionToken(c *gin.Context) string {
	if h := c.GetHeader(constants.HeaderAuthorization); strings.HasPrefix(h, constants.BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, constants.BearerPrefix))
	}
	if token, err := c.Cookie(constants.CookieSessionName); err == nil {
		return token
	}
	return ""
}

// AuthRequired validates the session token and injects identity into context.
func AuthRequired(issuer *SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := issuer.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(constants.CtxPlayerID, claims.Subject)
		c.Set(constants.CtxPlayerName, claims.Name)
		c.Set(constants.CtxAvatarURL, claims.AvatarURL)
		c.Next()
	}
}

func playerID(c *gin.Context) string {
	return c.GetString(constants.CtxPlayerID)
}
