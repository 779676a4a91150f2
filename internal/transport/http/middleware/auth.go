package middleware

import (
	"log"

	"github.com/gin-gonic/gin"

	"estatehub/internal/model"
	"estatehub/internal/pkg/jwtutil"
	"estatehub/internal/transport/http/response"
)

const (
	// CookieName is the session transport: an http-only cookie set at
	// login and cleared at logout.
	CookieName = "token"

	ContextIdentityKey = "identity"
)

// UserFinder resolves a token subject to a stored user.
type UserFinder interface {
	GetByID(id uint) (*model.User, error)
}

// AuthRequired is the gate in front of every identity-requiring route:
// cookie -> token verify -> user lookup -> identity in context. Any
// failure short-circuits with a 401; a store failure is a 500.
func AuthRequired(secret string, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			response.Error(c, 401, response.CodeUnauthorized, "please login to access this resource")
			c.Abort()
			return
		}

		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil {
			log.Printf("auth gate user lookup failed: %v", err)
			response.Error(c, 500, response.CodeInternalServer, "internal server error")
			c.Abort()
			return
		}
		if user == nil {
			response.Error(c, 401, response.CodeUnauthorized, "user not found")
			c.Abort()
			return
		}

		c.Set(ContextIdentityKey, user.Public())
		c.Next()
	}
}

// OptionalAuth resolves an identity when a valid cookie is present but
// lets anonymous requests through. Used on public routes that tag
// activity with the viewer when one is known.
func OptionalAuth(secret string, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			c.Next()
			return
		}
		user, err := users.GetByID(claims.UserID)
		if err != nil || user == nil {
			c.Next()
			return
		}
		c.Set(ContextIdentityKey, user.Public())
		c.Next()
	}
}

// Identity returns the resolved identity, or ok=false when the request
// is anonymous.
func Identity(c *gin.Context) (model.PublicProfile, bool) {
	value, exists := c.Get(ContextIdentityKey)
	if !exists {
		return model.PublicProfile{}, false
	}
	identity, ok := value.(model.PublicProfile)
	return identity, ok
}
