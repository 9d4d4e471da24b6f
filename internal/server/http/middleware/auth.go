package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/restoflow/restoflow/internal/domain/model"
	pkgAuth "github.com/restoflow/restoflow/internal/pkg/auth"
)

const (
	// ActorContextKey is a gin context key for the authenticated actor.
	ActorContextKey = "actor"
	authCookieName  = "restoflow_token"
)

// TokenParser resolves a bearer token into an acting identity.
type TokenParser interface {
	ParseToken(token string) (model.Actor, error)
}

// AuthRequired ensures the caller is authenticated before reaching the handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		actor, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(ActorContextKey, actor)
		c.Next()
	}
}

// AuthOptional resolves the actor when a token is present but lets anonymous
// requests through. Checkout accepts guests, yet a presented token that fails
// to parse is still rejected so a customer never silently loses the link to
// their own order.
func AuthOptional(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		actor, err := parser.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ActorContextKey, actor)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
