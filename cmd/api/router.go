package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/middleware"
	"portfolio-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.LocaleRedirect(),
	)

	// Sitemap lives at the site root, outside the API prefix.
	router.GET("/sitemap.xml", c.SitemapHandler.Serve)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupContentRoutes(v1, c)
		setupGalleryRoutes(v1, c)
		setupContactRoutes(v1, c)
		setupRevalidateRoutes(v1, c)
	}

	return router
}

// ========================================
// CONTENT ROUTES
// ========================================
func setupContentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/meta", c.ContentHandler.SiteMeta)
	v1.GET("/blog", c.ContentHandler.ListPosts)
	v1.GET("/blog/:uid", c.ContentHandler.GetPost)
	v1.GET("/works", c.ContentHandler.ListWorks)
}

// ========================================
// GALLERY ROUTES
// ========================================
func setupGalleryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/instagram", c.GalleryHandler.ListMedia)
}

// ========================================
// CONTACT ROUTES
// ========================================
func setupContactRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/contact", c.ContactHandler.Submit)
}

// ========================================
// REVALIDATE ROUTES
// ========================================
func setupRevalidateRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/revalidate", c.RevalidateHandler.Status)
	v1.POST("/revalidate", c.RevalidateHandler.Revalidate)
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cacheStatus := "ok"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "unavailable"
		}

		ctx.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"environment": c.Config.App.Environment,
			"version":     c.Config.App.Version,
			"cache":       cacheStatus,
			"time":        time.Now().UTC().Format(time.RFC3339),
		})
	}
}
