package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shopkit-io/shopkit-api/internal/middleware"
	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/internal/pipeline"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// callerFromContext adapts the identity middleware's claims into the
// explicit caller value the pipeline consumes. An absent or invalid
// token yields an anonymous caller; the pipeline rejects it uniformly.
func callerFromContext(c *gin.Context) pipeline.Caller {
	claims := claimsFromContext(c)
	if claims == nil {
		return pipeline.Caller{}
	}
	return pipeline.Caller{UserID: claims.UserID}
}
