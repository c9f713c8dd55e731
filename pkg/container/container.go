package container

import (
	"context"
	"fmt"

	"portfolio-backend/internal/config"
	infraCache "portfolio-backend/internal/infrastructure/cache"
	"portfolio-backend/internal/infrastructure/email"
	"portfolio-backend/internal/infrastructure/instagram"
	"portfolio-backend/internal/infrastructure/prismic"
	"portfolio-backend/internal/jobs"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/logger"

	contactHandler "portfolio-backend/internal/domains/contact/handler"
	"portfolio-backend/internal/domains/content"
	contentHandler "portfolio-backend/internal/domains/content/handler"
	"portfolio-backend/internal/domains/content/model"
	contentService "portfolio-backend/internal/domains/content/service"
	galleryHandler "portfolio-backend/internal/domains/gallery/handler"
	galleryService "portfolio-backend/internal/domains/gallery/service"
	revalidateHandler "portfolio-backend/internal/domains/revalidate/handler"
	"portfolio-backend/internal/domains/revalidate/indexing"
	"portfolio-backend/internal/domains/seo"
	sitemapHandler "portfolio-backend/internal/domains/sitemap/handler"
	sitemapService "portfolio-backend/internal/domains/sitemap/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton living for the whole process.
type Container struct {
	// Infrastructure
	Config   *config.Config
	Cache    cache.Cache
	Prismic  *prismic.Client
	Mailer   email.EmailService
	Notifier *indexing.Notifier

	// Repositories
	ContentRepo content.Repository

	// Services
	ContentService *contentService.ContentService
	GalleryService *galleryService.GalleryService
	SitemapService *sitemapService.SitemapService
	SEOBuilder     *seo.Builder

	// Handlers
	ContentHandler    *contentHandler.ContentHandler
	GalleryHandler    *galleryHandler.GalleryHandler
	SitemapHandler    *sitemapHandler.SitemapHandler
	ContactHandler    *contactHandler.ContactHandler
	RevalidateHandler *revalidateHandler.RevalidateHandler

	// Background jobs
	Warmer *jobs.Warmer
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer initializes the whole dependency graph, in order:
// config → infrastructure → repositories → services → handlers → jobs.
func NewContainer() (*Container, error) {
	c := &Container{}

	// STEP 1: CONFIGURATION
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("config loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
		"base_url":    cfg.Site.BaseURL,
	})

	// STEP 2: CACHE
	// Redis failure is non-critical: every read path degrades to a
	// direct upstream fetch on a broken cache.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		logger.Warn("Redis connection failed (non-critical)", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.Cache = redisCache

	// STEP 3: UPSTREAM CLIENTS
	c.Prismic = prismic.NewClient(prismic.Config{
		Endpoint:    cfg.Prismic.Endpoint,
		AccessToken: cfg.Prismic.AccessToken,
	})
	c.ContentRepo = c.Prismic

	c.Mailer = email.NewSMTPEmailService(cfg.SMTP)

	notifier, err := indexing.NewNotifier(cfg.Indexing.ClientEmail, cfg.Indexing.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to init indexing notifier: %w", err)
	}
	c.Notifier = notifier

	// STEP 4: SERVICES
	c.ContentService = contentService.NewContentService(
		c.ContentRepo,
		c.Cache,
		model.DefaultFallbackWorks(),
		cfg.Site.BaseURL,
	)

	instagramClient := instagram.NewClient(instagram.Config{
		AccessToken: cfg.Instagram.AccessToken,
		BaseURL:     cfg.Instagram.BaseURL,
		PageLimit:   cfg.Instagram.PageLimit,
		MaxPages:    cfg.Instagram.MaxPages,
	})
	c.GalleryService = galleryService.NewGalleryService(instagramClient, c.Cache)

	c.SitemapService = sitemapService.NewSitemapService(c.ContentService, c.Cache, cfg.Site.BaseURL)
	c.SEOBuilder = seo.NewBuilder(cfg.Site.BaseURL)

	// STEP 5: HANDLERS
	c.ContentHandler = contentHandler.NewContentHandler(c.ContentService, c.SEOBuilder, cfg.Site.BaseURL)
	c.GalleryHandler = galleryHandler.NewGalleryHandler(c.GalleryService)
	c.SitemapHandler = sitemapHandler.NewSitemapHandler(c.SitemapService)
	c.ContactHandler = contactHandler.NewContactHandler(c.Mailer, c.Cache)
	c.RevalidateHandler = revalidateHandler.NewRevalidateHandler(
		c.Cache,
		c.ContentService,
		c.Notifier,
		cfg.Site.BaseURL,
	)

	// STEP 6: BACKGROUND JOBS
	c.Warmer = jobs.NewWarmer(c.ContentService, c.GalleryService, c.SitemapService, cfg.Jobs)

	return c, nil
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases container resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.Warmer != nil {
		c.Warmer.Stop()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Warn("failed to close Redis connection", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
