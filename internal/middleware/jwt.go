package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopkit-io/shopkit-api/internal/service"
	appErrors "github.com/shopkit-io/shopkit-api/pkg/errors"
	"github.com/shopkit-io/shopkit-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// JWT protects routes by requiring a valid access token.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, authService)
		if !ok {
			response.Error(c, appErrors.ErrUnauthenticated)
			c.Abort()
			return
		}
		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// OptionalJWT attaches claims when present but does not block. Mutation
// routes use this so anonymous callers reach the pipeline and get its
// uniform unauthenticated response instead of a middleware short-circuit.
func OptionalJWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, authService); ok {
			c.Set(ContextUserKey, claims)
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, authService *service.AuthService) (interface{}, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}
	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}
