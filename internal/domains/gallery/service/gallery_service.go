package service

import (
	"context"
	"time"

	"portfolio-backend/internal/domains/gallery/model"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/logger"
)

// CacheKeyMedia is purged by the revalidation webhook's backstop pass and
// refreshed by the cache warmer.
const CacheKeyMedia = "instagram:media"

const cacheTTL = 30 * time.Minute

// MediaFetcher is the upstream contract, implemented by the Instagram
// Graph API client.
type MediaFetcher interface {
	FetchMedia(ctx context.Context) ([]model.Media, error)
}

// Status mirrors the content domain's explicit result type.
type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

type MediaResult struct {
	Status Status        `json:"status"`
	Media  []model.Media `json:"media"`
	Err    error         `json:"-"`
}

type GalleryService struct {
	fetcher MediaFetcher
	cache   cache.Cache
}

func NewGalleryService(fetcher MediaFetcher, c cache.Cache) *GalleryService {
	return &GalleryService{fetcher: fetcher, cache: c}
}

// GetMedia returns the gallery feed through the cache. An upstream failure
// yields a failed Result; the handler renders it as an empty gallery.
func (s *GalleryService) GetMedia(ctx context.Context) MediaResult {
	var cached []model.Media
	if found, err := s.cache.Get(ctx, CacheKeyMedia, &cached); err == nil && found {
		return mediaResult(cached)
	}

	media, err := s.fetcher.FetchMedia(ctx)
	if err != nil {
		logger.Error("failed to fetch Instagram media", err)
		return MediaResult{Status: StatusFailed, Media: []model.Media{}, Err: err}
	}

	if err := s.cache.Set(ctx, CacheKeyMedia, media, cacheTTL); err != nil {
		logger.Warn("failed to cache Instagram media", map[string]interface{}{"error": err.Error()})
	}

	return mediaResult(media)
}

func mediaResult(media []model.Media) MediaResult {
	if len(media) == 0 {
		return MediaResult{Status: StatusEmpty, Media: []model.Media{}}
	}
	return MediaResult{Status: StatusOK, Media: media}
}
