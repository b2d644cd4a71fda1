package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"transport-report-be/models"
	"transport-report-be/session"
	"transport-report-be/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// AuthCookie carries the session token for browser clients
	AuthCookie = "auth_token"

	identityKey = "identity"
	tokenKey    = "token"
)

// ExtractToken returns the bearer token, falling back to the auth cookie
func ExtractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookie, err := c.Cookie(AuthCookie); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware hydrates the session identity and rejects requests without
// one. Store failures are server errors, not a reason to drop the session.
func AuthMiddleware(manager *session.Manager, timeout time.Duration, log *zap.Logger) gin.HandlerFunc {
	log = log.With(zap.String("component", "auth"))
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			return
		}

		identity, err := utils.Call(c.Request.Context(), timeout, "hydrate session", func(ctx context.Context) (models.Identity, error) {
			return manager.Hydrate(ctx, token)
		})
		switch {
		case err == nil:
		case errors.Is(err, session.ErrNoSession):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		case utils.IsTimeout(err):
			log.Error("session lookup timed out", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{"error": "Request timed out"})
			return
		default:
			log.Error("session lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}

		c.Set(identityKey, identity)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// CurrentIdentity returns the identity set by AuthMiddleware
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

// CurrentToken returns the token AuthMiddleware accepted
func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
