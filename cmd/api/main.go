package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	_ "github.com/shopkit-io/shopkit-api/api/swagger"
	"github.com/shopkit-io/shopkit-api/internal/handler"
	"github.com/shopkit-io/shopkit-api/internal/middleware"
	"github.com/shopkit-io/shopkit-api/internal/pipeline"
	"github.com/shopkit-io/shopkit-api/internal/repository"
	"github.com/shopkit-io/shopkit-api/internal/service"
	"github.com/shopkit-io/shopkit-api/internal/validation"
	"github.com/shopkit-io/shopkit-api/pkg/cache"
	"github.com/shopkit-io/shopkit-api/pkg/config"
	"github.com/shopkit-io/shopkit-api/pkg/database"
	"github.com/shopkit-io/shopkit-api/pkg/export"
	"github.com/shopkit-io/shopkit-api/pkg/jobs"
	"github.com/shopkit-io/shopkit-api/pkg/logger"
	corsmiddleware "github.com/shopkit-io/shopkit-api/pkg/middleware/cors"
	reqidmiddleware "github.com/shopkit-io/shopkit-api/pkg/middleware/requestid"
)

// @title ShopKit API
// @version 1.0.0
// @description Multi-tenant shop management API
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, list caching disabled", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	validate := validation.New()
	metrics := service.NewMetricsService()

	pipeOpts := []pipeline.Option{pipeline.WithObserver(metrics)}
	if cfg.Compat.LegacyForbidden401 {
		pipeOpts = append(pipeOpts, pipeline.WithLegacyForbidden401())
	}
	pipe := pipeline.New(logr, pipeOpts...)

	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	var listCache *service.ListCache
	if redisClient != nil {
		listCache = service.NewListCache(redisClient, cfg.Cache.ListTTL, metrics, logr)
	}

	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	shopService := service.NewShopService(shopRepo, pipe, validate, logr)
	categoryService := service.NewCategoryService(categoryRepo, shopRepo, pipe, validate, listCache, logr)
	productService := service.NewProductService(productRepo, shopRepo, pipe, validate, listCache, logr)

	var invoices *export.InvoiceRenderer
	if cfg.Invoices.Enabled {
		invoices = export.NewInvoiceRenderer()
	}
	orderService := service.NewOrderService(orderRepo, productRepo, shopRepo, shopRepo, pipe, validate, invoices, cfg.Invoices.SellerName, logr)

	var auditTrail *middleware.AuditTrail
	if cfg.Audit.Enabled {
		auditTrail = middleware.NewAuditTrail(userRepo, jobs.QueueConfig{
			Workers:    cfg.Audit.Workers,
			BufferSize: cfg.Audit.BufferSize,
			MaxRetries: cfg.Audit.MaxRetries,
			Logger:     logr,
		}, logr)
		auditTrail.Start(context.Background())
		defer auditTrail.Stop()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	handler.RegisterRoutes(r, handler.RouterDeps{
		Config:    cfg,
		Auth:      authService,
		Metrics:   metrics,
		Audit:     auditTrail,
		Ready:     db.Ping,
		AuthH:     handler.NewAuthHandler(authService),
		ShopH:     handler.NewShopHandler(shopService),
		CategoryH: handler.NewCategoryHandler(categoryService),
		ProductH:  handler.NewProductHandler(productService),
		OrderH:    handler.NewOrderHandler(orderService),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
