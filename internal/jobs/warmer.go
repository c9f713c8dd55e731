package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"portfolio-backend/internal/config"
	contentService "portfolio-backend/internal/domains/content/service"
	galleryService "portfolio-backend/internal/domains/gallery/service"
	sitemapService "portfolio-backend/internal/domains/sitemap/service"
	"portfolio-backend/internal/locale"
	"portfolio-backend/pkg/logger"
)

const jobTimeout = 2 * time.Minute

// Warmer periodically re-fetches the upstream content so the cache stays
// populated between webhook purges and visitors rarely hit a cold key.
type Warmer struct {
	cron    *cron.Cron
	content *contentService.ContentService
	gallery *galleryService.GalleryService
	sitemap *sitemapService.SitemapService
	cfg     config.JobsConfig
}

func NewWarmer(
	content *contentService.ContentService,
	gallery *galleryService.GalleryService,
	sitemap *sitemapService.SitemapService,
	cfg config.JobsConfig,
) *Warmer {
	return &Warmer{
		cron:    cron.New(),
		content: content,
		gallery: gallery,
		sitemap: sitemap,
		cfg:     cfg,
	}
}

// Start registers the schedules and launches the cron loop. An initial warm
// pass runs immediately in the background.
func (w *Warmer) Start() error {
	if _, err := w.cron.AddFunc(w.cfg.WarmSchedule, w.warmContent); err != nil {
		return err
	}
	if _, err := w.cron.AddFunc(w.cfg.SitemapSchedule, w.warmSitemap); err != nil {
		return err
	}

	w.cron.Start()
	go w.warmContent()

	logger.Info("cache warmer started", map[string]interface{}{
		"warm_schedule":    w.cfg.WarmSchedule,
		"sitemap_schedule": w.cfg.SitemapSchedule,
	})
	return nil
}

// Stop halts scheduling and waits for any in-flight run.
func (w *Warmer) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	logger.Info("cache warmer stopped", nil)
}

func (w *Warmer) warmContent() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	for _, l := range locale.All() {
		if result := w.content.GetPosts(ctx, l.Code); result.Err != nil {
			logger.Warn("warm posts failed", map[string]interface{}{
				"locale": string(l.Code),
				"error":  result.Err.Error(),
			})
		}
		w.content.GetWorkItems(ctx, l.Code)
	}

	// Warm the post detail caches too, so the first visit to any article
	// after a purge doesn't pay the CMS round trip.
	if refs, err := w.content.GetAllPostRefs(ctx); err != nil {
		logger.Warn("warm post refs failed", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		for _, ref := range refs {
			if _, err := w.content.GetPostByUID(ctx, ref.UID, ref.Locale); err != nil {
				logger.Warn("warm post failed", map[string]interface{}{
					"uid":    ref.UID,
					"locale": string(ref.Locale),
					"error":  err.Error(),
				})
			}
		}
	}

	if result := w.gallery.GetMedia(ctx); result.Err != nil {
		logger.Warn("warm instagram media failed", map[string]interface{}{
			"error": result.Err.Error(),
		})
	}
}

func (w *Warmer) warmSitemap() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := w.sitemap.BuildXML(ctx); err != nil {
		logger.Warn("warm sitemap failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
