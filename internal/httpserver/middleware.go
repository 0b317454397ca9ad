package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"atelier-storefront/internal/domain"
	authsvc "atelier-storefront/internal/service/auth"
)

// sessionHeader identifies the shopping session; the server issues one when
// the client does not present it.
const sessionHeader = "X-Session-ID"

const sessionCtxKey = "sessionID"

func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(sessionHeader))
		if id == "" {
			id = newSessionID()
		}
		c.Set(sessionCtxKey, id)
		c.Header(sessionHeader, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}

func newSessionID() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is unrecoverable for issuing identifiers
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// requireAdmin gates the dashboard routes on the session's user role.
func requireAdmin(auth *authsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.CurrentUser(c.Request.Context(), sessionID(c))
		if err != nil {
			if err == domain.ErrNotFound {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}
