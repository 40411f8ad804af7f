package user

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campuspolls/election-backend/internal/platform/authz"
	"github.com/campuspolls/election-backend/pkg/token"
)

const (
	// UserKey is the gin context key holding the authenticated *User.
	UserKey = "currentUser"
	// SessionKey is the gin context key holding the session ID of the
	// presented token, needed by the logout handler.
	SessionKey = "currentSession"
)

// CurrentUser returns the authenticated user previously stored in the gin
// context by RequireAuth.
func CurrentUser(c *gin.Context) (*User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*User)
	return u, ok
}

// RequireAuth validates the Bearer session token, checks that the session
// has not been revoked, and loads a fresh copy of the account so role
// changes take effect immediately. Unauthenticated requests are rejected
// before they reach any domain handler.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := token.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		alive, err := SessionAlive(claims.SessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session store unavailable"})
			return
		}
		if !alive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session has been logged out"})
			return
		}

		u, err := GetByID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
			return
		}

		c.Set(UserKey, u)
		c.Set(SessionKey, claims.SessionID)
		c.Next()
	}
}

// RequirePermission gates a route on the authorization table. It must be
// installed after RequireAuth.
func RequirePermission(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !authz.Allow(u, action, nil) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "you are not allowed to perform this action"})
			return
		}
		c.Next()
	}
}
