package main

import (
	"net/http"
	"time"

	"jewelry-backend/internal/shared/middleware"
	"jewelry-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	// Published local assets are served straight from disk. The object
	// store backend serves its own URLs.
	if c.Config.Assets.Driver == "local" {
		router.Static("/uploads", c.Config.Assets.LocalDir)
	}

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(api, c)
		setupCategoryRoutes(api, c)
		setupProductRoutes(api, c)
		setupMessageRoutes(api, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/logout", c.AuthHandler.Logout)
		auth.GET("/me", c.AuthHandler.Me)
	}
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(api *gin.RouterGroup, c *container.Container) {
	adminOnly := middleware.AdminAuth(c.JWTManager)

	categories := api.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/:id", c.CategoryHandler.Get)
		categories.POST("", adminOnly, c.CategoryHandler.Create)
		categories.PUT("/:id", adminOnly, c.CategoryHandler.Update)
		categories.DELETE("/:id", adminOnly, c.CategoryHandler.Delete)
	}
}

// ========================================
// PRODUCT ROUTES
// ========================================
func setupProductRoutes(api *gin.RouterGroup, c *container.Container) {
	adminOnly := middleware.AdminAuth(c.JWTManager)

	products := api.Group("/products")
	{
		products.GET("", c.ProductHandler.List)
		products.GET("/:id", c.ProductHandler.Get)
		products.POST("", adminOnly, c.ProductHandler.Create)
		products.PUT("/:id", adminOnly, c.ProductHandler.Update)
		products.DELETE("/:id", adminOnly, c.ProductHandler.Delete)
	}
}

// ========================================
// MESSAGE ROUTES
// ========================================
func setupMessageRoutes(api *gin.RouterGroup, c *container.Container) {
	messages := api.Group("/messages")
	{
		messages.POST("", c.MessageHandler.Create)
		messages.GET("", middleware.AdminAuth(c.JWTManager), c.MessageHandler.List)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := "healthy"
		storageStatus := "healthy"

		if err := c.HealthCheck(ctx.Request.Context()); err != nil {
			status = "degraded"
			storageStatus = err.Error()
		}

		code := http.StatusOK
		if status != "healthy" {
			code = http.StatusServiceUnavailable
		}

		// Health bypasses the response envelope: load balancers and
		// uptime probes read it directly.
		ctx.JSON(code, gin.H{
			"status":    status,
			"version":   c.Config.App.Version,
			"storage":   gin.H{"driver": c.Config.Storage.Driver, "status": storageStatus},
			"timestamp": time.Now().UTC(),
		})
	}
}
