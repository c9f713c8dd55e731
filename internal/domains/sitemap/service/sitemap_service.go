package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"portfolio-backend/internal/domains/content/model"
	contentService "portfolio-backend/internal/domains/content/service"
	"portfolio-backend/internal/locale"
	"portfolio-backend/internal/shared/fanout"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/logger"
)

// CacheKeyXML holds the rendered sitemap between rebuilds.
const CacheKeyXML = "sitemap:xml"

const cacheTTL = time.Hour

// Entry is one sitemap URL record.
type Entry struct {
	XMLName         xml.Name `xml:"url" json:"-"`
	URL             string   `xml:"loc" json:"url"`
	LastModified    string   `xml:"lastmod" json:"last_modified"`
	ChangeFrequency string   `xml:"changefreq" json:"change_frequency"`
	Priority        float64  `xml:"priority" json:"priority"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Entries []Entry
}

// staticRoute describes one fixed page, duplicated per locale prefix.
type staticRoute struct {
	path            string
	changeFrequency string
	priority        float64
}

var staticRoutes = []staticRoute{
	{"", "monthly", 1.0},
	{"/services", "monthly", 0.8},
	{"/works", "monthly", 0.8},
	{"/blog", "weekly", 0.8},
	{"/gallery", "monthly", 0.8},
	{"/links", "monthly", 0.5},
}

type SitemapService struct {
	content *contentService.ContentService
	cache   cache.Cache
	baseURL string
}

func NewSitemapService(content *contentService.ContentService, c cache.Cache, baseURL string) *SitemapService {
	return &SitemapService{
		content: content,
		cache:   c,
		baseURL: baseURL,
	}
}

// Build enumerates static routes for both locale trees plus every post
// under its locale prefix. A failed post fetch degrades to the static
// routes only; the sitemap never errors out entirely.
func (s *SitemapService) Build(ctx context.Context) []Entry {
	now := time.Now().Format("2006-01-02")

	entries := make([]Entry, 0, 2*len(staticRoutes))
	for _, l := range locale.All() {
		for _, route := range staticRoutes {
			entries = append(entries, Entry{
				URL:             s.baseURL + l.Prefix + route.path,
				LastModified:    now,
				ChangeFrequency: route.changeFrequency,
				Priority:        route.priority,
			})
		}
	}

	var en, ja model.PostsResult
	_ = fanout.All(ctx,
		func(ctx context.Context) error { en = s.content.GetPosts(ctx, locale.EnUS); return nil },
		func(ctx context.Context) error { ja = s.content.GetPosts(ctx, locale.JaJP); return nil },
	)

	results := map[locale.Code]model.PostsResult{locale.EnUS: en, locale.JaJP: ja}
	for _, l := range locale.All() {
		result := results[l.Code]
		if result.Status == model.StatusFailed {
			logger.Error("sitemap post fetch failed, emitting static routes only for locale", result.Err)
			continue
		}
		for _, post := range result.Posts {
			lastMod := now
			if !post.PublishedDate.IsZero() {
				lastMod = post.PublishedDate.Format("2006-01-02")
			}
			entries = append(entries, Entry{
				URL:             s.baseURL + l.Prefix + "/blog/" + post.UID,
				LastModified:    lastMod,
				ChangeFrequency: "monthly",
				Priority:        0.7,
			})
		}
	}

	return entries
}

// BuildXML renders the sitemap document, served from cache between
// rebuilds.
func (s *SitemapService) BuildXML(ctx context.Context) ([]byte, error) {
	var cached string
	if found, err := s.cache.Get(ctx, CacheKeyXML, &cached); err == nil && found {
		return []byte(cached), nil
	}

	set := urlSet{
		Xmlns:   "http://www.sitemaps.org/schemas/sitemap/0.9",
		Entries: s.Build(ctx),
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	out := append([]byte(xml.Header), body...)

	if err := s.cache.Set(ctx, CacheKeyXML, string(out), cacheTTL); err != nil {
		logger.Warn("failed to cache sitemap", map[string]interface{}{"error": err.Error()})
	}

	return out, nil
}
