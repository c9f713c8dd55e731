package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"portfolio-backend/internal/domains/content"
	"portfolio-backend/internal/domains/content/model"
	"portfolio-backend/internal/locale"
	"portfolio-backend/internal/shared/fanout"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/logger"
)

// CacheTagPattern matches every CMS-sourced cache key. The revalidation
// webhook purges this pattern as its single invalidation tag.
const CacheTagPattern = "prismic:*"

const cacheTTL = 10 * time.Minute

func postsCacheKey(loc locale.Code) string {
	return fmt.Sprintf("prismic:posts:%s", loc)
}

func postCacheKey(uid string, loc locale.Code) string {
	return fmt.Sprintf("prismic:post:%s:%s", loc, uid)
}

func worksCacheKey(loc locale.Code) string {
	return fmt.Sprintf("prismic:works:%s", loc)
}

// ListingCacheKeys returns the listing keys for both locales, purged
// individually by the webhook as a backstop to the pattern purge.
func ListingCacheKeys() []string {
	keys := make([]string, 0, 4)
	for _, l := range locale.All() {
		keys = append(keys, postsCacheKey(l.Code), worksCacheKey(l.Code))
	}
	return keys
}

// ContentService resolves bilingual CMS content through a cache-aside layer.
type ContentService struct {
	repo          content.Repository
	cache         cache.Cache
	fallbackWorks map[locale.Code][]model.WorkItem
	baseURL       string
}

func NewContentService(repo content.Repository, c cache.Cache, fallbackWorks map[locale.Code][]model.WorkItem, baseURL string) *ContentService {
	return &ContentService{
		repo:          repo,
		cache:         c,
		fallbackWorks: fallbackWorks,
		baseURL:       baseURL,
	}
}

// GetPosts returns every post for a locale, newest-first. An upstream
// failure yields a failed Result rather than an error; the default
// rendering path treats it the same as an empty listing.
func (s *ContentService) GetPosts(ctx context.Context, loc locale.Code) model.PostsResult {
	key := postsCacheKey(loc)

	var cached []model.Post
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return postsResult(cached)
	}

	posts, err := s.repo.PostsByLocale(ctx, loc)
	if err != nil {
		logger.Error("failed to fetch posts from CMS", err)
		return model.PostsResult{Status: model.StatusFailed, Posts: []model.Post{}, Err: err}
	}

	sortPostsNewestFirst(posts)

	if err := s.cache.Set(ctx, key, posts, cacheTTL); err != nil {
		logger.Warn("failed to cache posts", map[string]interface{}{"key": key, "error": err.Error()})
	}

	return postsResult(posts)
}

// GetPostByUID returns nil both when the document does not exist and when
// the CMS is unreachable. Callers that need the distinction can check the
// returned error against model.ErrNotFound.
func (s *ContentService) GetPostByUID(ctx context.Context, uid string, loc locale.Code) (*model.Post, error) {
	key := postCacheKey(uid, loc)

	var cached model.Post
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	post, err := s.repo.PostByUID(ctx, uid, loc)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("failed to fetch post from CMS", err)
		}
		return nil, err
	}

	if err := s.cache.Set(ctx, key, post, cacheTTL); err != nil {
		logger.Warn("failed to cache post", map[string]interface{}{"key": key, "error": err.Error()})
	}

	return post, nil
}

// GetWorkItems returns the portfolio entries for a locale, ascending by
// order. A CMS error or an empty result both fall back to the injected
// static dataset, so the works listing is never empty.
func (s *ContentService) GetWorkItems(ctx context.Context, loc locale.Code) []model.WorkItem {
	key := worksCacheKey(loc)

	var cached []model.WorkItem
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found && len(cached) > 0 {
		return cached
	}

	works, err := s.repo.WorksByLocale(ctx, loc)
	if err != nil {
		logger.Error("failed to fetch works from CMS, using fallback data", err)
		return s.fallbackWorks[loc]
	}
	if len(works) == 0 {
		logger.Info("no works in CMS, using fallback data", map[string]interface{}{"locale": loc})
		return s.fallbackWorks[loc]
	}

	sort.SliceStable(works, func(i, j int) bool { return works[i].Order < works[j].Order })

	if err := s.cache.Set(ctx, key, works, cacheTTL); err != nil {
		logger.Warn("failed to cache works", map[string]interface{}{"key": key, "error": err.Error()})
	}

	return works
}

// GetAlternateLocalePosts fetches the same UID in both locales concurrently
// and reports which locales carry the document. A missing or unreachable
// document maps to nil.
func (s *ContentService) GetAlternateLocalePosts(ctx context.Context, uid string, current locale.Code) map[locale.Code]*model.Post {
	alternate := locale.Alternate(current)

	var currentPost, alternatePost *model.Post
	_ = fanout.All(ctx,
		func(ctx context.Context) error {
			currentPost, _ = s.GetPostByUID(ctx, uid, current)
			return nil
		},
		func(ctx context.Context) error {
			alternatePost, _ = s.GetPostByUID(ctx, uid, alternate)
			return nil
		},
	)

	return map[locale.Code]*model.Post{
		current:   currentPost,
		alternate: alternatePost,
	}
}

// GetAllPostRefs enumerates {UID, locale} pairs across both locales.
func (s *ContentService) GetAllPostRefs(ctx context.Context) ([]model.PostRef, error) {
	var en, ja []model.Post
	err := fanout.All(ctx,
		func(ctx context.Context) error {
			var e error
			en, e = s.repo.PostsByLocale(ctx, locale.EnUS)
			return e
		},
		func(ctx context.Context) error {
			var e error
			ja, e = s.repo.PostsByLocale(ctx, locale.JaJP)
			return e
		},
	)
	if err != nil {
		return nil, fmt.Errorf("fetch post refs: %w", err)
	}

	refs := make([]model.PostRef, 0, len(en)+len(ja))
	for _, p := range append(en, ja...) {
		refs = append(refs, model.PostRef{ID: p.ID, UID: p.UID, Type: "blog_post", Locale: p.Locale})
	}
	return refs, nil
}

// ResolveDocumentURL maps a CMS document ID to its public URL. When the
// document cannot be resolved the URL falls back to the unprefixed blog
// path shape.
func (s *ContentService) ResolveDocumentURL(ctx context.Context, id string) string {
	ref, err := s.repo.RefByID(ctx, id)
	if err != nil {
		logger.Warn("could not resolve document, falling back to blog path", map[string]interface{}{
			"document": id,
			"error":    err.Error(),
		})
		return s.baseURL + "/blog/" + id
	}

	prefix := locale.Prefix(ref.Locale)
	switch ref.Type {
	case "blog_post":
		return s.baseURL + prefix + "/blog/" + ref.UID
	case "work":
		return s.baseURL + prefix + "/works"
	default:
		return s.baseURL + prefix
	}
}

func postsResult(posts []model.Post) model.PostsResult {
	if len(posts) == 0 {
		return model.PostsResult{Status: model.StatusEmpty, Posts: []model.Post{}}
	}
	return model.PostsResult{Status: model.StatusOK, Posts: posts}
}

// sortPostsNewestFirst orders by published date descending. The published
// date is already coalesced with the first publication date at mapping
// time, so a single key covers both cases. Ties keep CMS order.
func sortPostsNewestFirst(posts []model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedDate.After(posts[j].PublishedDate)
	})
}
