package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	repository "github.com/SutharYagnesh/EduPath/internal/pkg/auth/persistence/repository/port"
	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/token"
)

const identityKey = "auth.identity"

// Identity is the typed authenticated context produced by RequireAuth and
// consumed by handlers through IdentityFrom. Handlers never parse the
// Authorization header themselves.
type Identity struct {
	UserID string
	Role   string
}

// RequireAuth verifies the bearer credential, resolves the subject to a live
// account, and attaches the Identity to the request context. Requests are
// rejected with 401 when the header is absent, the token fails verification,
// or the subject no longer exists; all three look identical to the caller.
//
// Websocket clients cannot set headers from the browser, so a "token" query
// parameter is accepted as a fallback.
func RequireAuth(secret []byte, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			raw = c.Query("token")
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		// The "Bearer " prefix is optional.
		raw = strings.TrimPrefix(raw, "Bearer ")

		claims, err := token.Verify(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		// A valid token whose subject was deleted is an authentication
		// failure, indistinguishable from a bad token.
		if _, err := users.FindByID(c.Request.Context(), claims.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		c.Set(identityKey, Identity{UserID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity attached by RequireAuth.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
