package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/shopkit-io/shopkit-api/internal/middleware"
	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/internal/service"
	"github.com/shopkit-io/shopkit-api/pkg/config"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Config    *config.Config
	Auth      *service.AuthService
	Metrics   *service.MetricsService
	Audit     *middleware.AuditTrail
	Ready     func() error
	AuthH     *AuthHandler
	ShopH     *ShopHandler
	CategoryH *CategoryHandler
	ProductH  *ProductHandler
	OrderH    *OrderHandler
}

// RegisterRoutes mounts the full API surface onto the engine.
//
// Mutation routes use the optional token middleware: an anonymous call
// still reaches the service layer, which reports a uniform
// UNAUTHENTICATED error instead of the middleware short-circuiting.
func RegisterRoutes(r *gin.Engine, deps RouterDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if deps.Ready != nil {
			if err := deps.Ready(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	if deps.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := deps.Config.APIPrefix
	if prefix == "" {
		prefix = "/api/v1"
	}
	api := r.Group(prefix)

	auth := api.Group("/auth")
	auth.POST("/signup", deps.AuthH.Signup)
	auth.POST("/signin", deps.AuthH.Signin)
	auth.POST("/refresh", deps.AuthH.Refresh)

	optional := middleware.OptionalJWT(deps.Auth)
	required := middleware.JWT(deps.Auth)

	auth.POST("/signout", required, deps.AuthH.Signout)

	shops := api.Group("/shops")
	shops.GET("", required, deps.ShopH.List)
	shops.GET("/:id", optional, deps.ShopH.Get)
	shops.POST("", optional, audited(deps.Audit, models.AuditActionCreate, "shop"), deps.ShopH.Create)
	shops.PUT("/:id", optional, audited(deps.Audit, models.AuditActionUpdate, "shop"), deps.ShopH.Update)
	shops.DELETE("/:id", optional, audited(deps.Audit, models.AuditActionDelete, "shop"), deps.ShopH.Delete)

	categories := api.Group("/categories")
	categories.GET("", deps.CategoryH.List)
	categories.GET("/:id", deps.CategoryH.Get)
	categories.POST("", optional, audited(deps.Audit, models.AuditActionCreate, "category"), deps.CategoryH.Create)
	categories.PUT("/:id", optional, audited(deps.Audit, models.AuditActionUpdate, "category"), deps.CategoryH.Update)
	categories.DELETE("/:id", optional, audited(deps.Audit, models.AuditActionDelete, "category"), deps.CategoryH.Delete)

	products := api.Group("/products")
	products.GET("", deps.ProductH.List)
	products.GET("/:id", deps.ProductH.Get)
	products.POST("", optional, audited(deps.Audit, models.AuditActionCreate, "product"), deps.ProductH.Create)
	products.PUT("/:id", optional, audited(deps.Audit, models.AuditActionUpdate, "product"), deps.ProductH.Update)
	products.DELETE("/:id", optional, audited(deps.Audit, models.AuditActionDelete, "product"), deps.ProductH.Delete)

	orders := api.Group("/orders")
	orders.GET("", required, deps.OrderH.List)
	orders.GET("/export", optional, deps.OrderH.Export)
	orders.GET("/:id", required, deps.OrderH.Get)
	orders.GET("/:id/invoice", optional, deps.OrderH.Invoice)
	orders.POST("", optional, audited(deps.Audit, models.AuditActionCreate, "order"), deps.OrderH.Create)
	orders.PUT("/:id", optional, audited(deps.Audit, models.AuditActionUpdate, "order"), deps.OrderH.Update)
	orders.DELETE("/:id", optional, audited(deps.Audit, models.AuditActionDelete, "order"), deps.OrderH.Delete)
}

func audited(trail *middleware.AuditTrail, action, resource string) gin.HandlerFunc {
	if trail == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return trail.Middleware(action, resource)
}
