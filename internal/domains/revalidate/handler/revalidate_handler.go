package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	contentService "portfolio-backend/internal/domains/content/service"
	galleryService "portfolio-backend/internal/domains/gallery/service"
	sitemapService "portfolio-backend/internal/domains/sitemap/service"
	"portfolio-backend/internal/locale"
	"portfolio-backend/internal/shared/fanout"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/logger"
)

// URLResolver maps a CMS document ID to its public URL.
type URLResolver interface {
	ResolveDocumentURL(ctx context.Context, id string) string
}

// IndexingNotifier pings a search-engine indexing API for one URL.
type IndexingNotifier interface {
	Enabled() bool
	Notify(ctx context.Context, url string) error
}

// webhookPayload is the Prismic webhook body. Every field is optional; the
// endpoint is usable as a bare ping.
type webhookPayload struct {
	Documents []string `json:"documents"`
}

type RevalidateHandler struct {
	cache    cache.Cache
	resolver URLResolver
	notifier IndexingNotifier
	baseURL  string
}

func NewRevalidateHandler(c cache.Cache, resolver URLResolver, notifier IndexingNotifier, baseURL string) *RevalidateHandler {
	return &RevalidateHandler{
		cache:    c,
		resolver: resolver,
		notifier: notifier,
		baseURL:  baseURL,
	}
}

// Status handles GET /api/v1/revalidate — a manual health check.
func (h *RevalidateHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
		"now":    time.Now().UnixMilli(),
	})
}

// Revalidate handles POST /api/v1/revalidate. Each step is independent of
// the others' success: a malformed body, a failed key purge or a failed
// indexing ping never abort the remaining steps.
func (h *RevalidateHandler) Revalidate(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Body is optional. Log and continue on anything unparseable.
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.Info("revalidate webhook without valid JSON body, proceeding anyway", nil)
	}

	// 2. Tag purge: one tag covers all CMS-sourced content.
	if err := h.cache.DeletePattern(ctx, contentService.CacheTagPattern); err != nil {
		logger.Error("failed to purge content cache by tag", err)
	}

	// 3. Backstop: the listing keys for both locales plus the derived
	// caches, in case the pattern purge under-covers.
	backstop := append(contentService.ListingCacheKeys(),
		galleryService.CacheKeyMedia,
		sitemapService.CacheKeyXML,
	)
	if err := h.cache.Delete(ctx, backstop...); err != nil {
		logger.Error("failed to purge listing cache keys", err)
	}

	// 4. Resolve changed documents and notify the indexing API.
	urls := h.collectURLs(ctx, payload.Documents)
	notified := h.notifyAll(ctx, urls)

	c.JSON(http.StatusOK, gin.H{
		"revalidated":       true,
		"indexing_notified": notified,
		"urls":              urls,
		"now":               time.Now().UnixMilli(),
	})
}

// collectURLs resolves each changed document to its public URL and appends
// the default high-traffic URLs, deduplicated.
func (h *RevalidateHandler) collectURLs(ctx context.Context, documents []string) []string {
	defaults := []string{
		h.baseURL,
		h.baseURL + "/blog",
		h.baseURL + locale.Prefix(locale.JaJP) + "/blog",
	}

	seen := map[string]bool{}
	urls := make([]string, 0, len(documents)+len(defaults))
	for _, id := range documents {
		u := h.resolver.ResolveDocumentURL(ctx, id)
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	for _, u := range defaults {
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	return urls
}

// notifyAll fans out to the indexing API, tolerating per-URL failure, and
// returns the success count.
func (h *RevalidateHandler) notifyAll(ctx context.Context, urls []string) int {
	if h.notifier == nil || !h.notifier.Enabled() {
		return 0
	}

	succeeded, failed := fanout.SettleAll(ctx, urls, func(ctx context.Context, u string) (struct{}, error) {
		return struct{}{}, h.notifier.Notify(ctx, u)
	})

	for _, f := range failed {
		logger.Warn("indexing notification failed", map[string]interface{}{
			"url":   f.Input,
			"error": f.Err.Error(),
		})
	}
	return len(succeeded)
}
