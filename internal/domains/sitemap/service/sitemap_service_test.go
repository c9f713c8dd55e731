package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/domains/content/model"
	contentService "portfolio-backend/internal/domains/content/service"
	"portfolio-backend/internal/locale"
)

type fakeRepo struct {
	posts map[locale.Code][]model.Post
	err   map[locale.Code]error
}

func (f *fakeRepo) PostsByLocale(_ context.Context, loc locale.Code) ([]model.Post, error) {
	if err := f.err[loc]; err != nil {
		return nil, err
	}
	return f.posts[loc], nil
}

func (f *fakeRepo) PostByUID(_ context.Context, _ string, _ locale.Code) (*model.Post, error) {
	return nil, model.ErrNotFound
}

func (f *fakeRepo) WorksByLocale(_ context.Context, _ locale.Code) ([]model.WorkItem, error) {
	return nil, nil
}

func (f *fakeRepo) RefByID(_ context.Context, _ string) (*model.PostRef, error) {
	return nil, model.ErrNotFound
}

// missCache never hits, never stores.
type missCache struct{}

func (missCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) { return false, nil }
func (missCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}
func (missCache) Delete(_ context.Context, _ ...string) error             { return nil }
func (missCache) DeletePattern(_ context.Context, _ string) error         { return nil }
func (missCache) Increment(_ context.Context, _ string) (int64, error)    { return 0, nil }
func (missCache) Expire(_ context.Context, _ string, _ time.Duration) error { return nil }
func (missCache) Ping(_ context.Context) error                            { return nil }

const testBaseURL = "https://example.com"

func newSitemapService(repo *fakeRepo) *SitemapService {
	cs := contentService.NewContentService(repo, missCache{}, nil, testBaseURL)
	return NewSitemapService(cs, missCache{}, testBaseURL)
}

func post(uid string, published time.Time) model.Post {
	return model.Post{UID: uid, Title: uid, PublishedDate: published}
}

func TestBuild_StaticRoutesForBothLocales(t *testing.T) {
	svc := newSitemapService(&fakeRepo{})

	entries := svc.Build(context.Background())

	urls := make(map[string]int)
	for _, e := range entries {
		urls[e.URL]++
	}

	for _, path := range []string{"", "/services", "/works", "/blog", "/gallery", "/links"} {
		assert.Equal(t, 1, urls[testBaseURL+path], "missing en route %q", path)
		assert.Equal(t, 1, urls[testBaseURL+"/ja"+path], "missing ja route %q", path)
	}
	assert.Len(t, entries, 12)
}

func TestBuild_PostsAppearOncePerLocale(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := newSitemapService(&fakeRepo{
		posts: map[locale.Code][]model.Post{
			locale.EnUS: {post("hello-world", now)},
			locale.JaJP: {post("hello-world", now), post("ja-only", now)},
		},
	})

	entries := svc.Build(context.Background())

	urls := make(map[string]int)
	for _, e := range entries {
		urls[e.URL]++
	}

	assert.Equal(t, 1, urls[testBaseURL+"/blog/hello-world"])
	assert.Equal(t, 1, urls[testBaseURL+"/ja/blog/hello-world"])
	assert.Equal(t, 1, urls[testBaseURL+"/ja/blog/ja-only"])
	assert.Zero(t, urls[testBaseURL+"/blog/ja-only"])
}

func TestBuild_PostLastModFromPublishedDate(t *testing.T) {
	svc := newSitemapService(&fakeRepo{
		posts: map[locale.Code][]model.Post{
			locale.EnUS: {post("dated", time.Date(2024, 12, 24, 10, 0, 0, 0, time.UTC))},
		},
	})

	entries := svc.Build(context.Background())

	var found bool
	for _, e := range entries {
		if e.URL == testBaseURL+"/blog/dated" {
			found = true
			assert.Equal(t, "2024-12-24", e.LastModified)
		}
	}
	assert.True(t, found)
}

func TestBuild_FailedLocaleDegradesToStaticRoutes(t *testing.T) {
	svc := newSitemapService(&fakeRepo{
		posts: map[locale.Code][]model.Post{
			locale.JaJP: {post("ja-post", time.Now())},
		},
		err: map[locale.Code]error{
			locale.EnUS: errors.New("prismic down"),
		},
	})

	entries := svc.Build(context.Background())

	urls := make(map[string]int)
	for _, e := range entries {
		urls[e.URL]++
	}

	// The broken locale still contributes its static tree.
	assert.Equal(t, 1, urls[testBaseURL+"/blog"])
	assert.Equal(t, 1, urls[testBaseURL+"/ja/blog/ja-post"])
}

func TestBuildXML_WellFormed(t *testing.T) {
	svc := newSitemapService(&fakeRepo{
		posts: map[locale.Code][]model.Post{
			locale.EnUS: {post("hello", time.Now())},
		},
	})

	out, err := svc.BuildXML(context.Background())
	require.NoError(t, err)

	body := string(out)
	assert.True(t, strings.HasPrefix(body, xmlHeaderPrefix))
	assert.Contains(t, body, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, body, "<loc>"+testBaseURL+"/blog/hello</loc>")
	assert.Contains(t, body, "<changefreq>weekly</changefreq>")
}

const xmlHeaderPrefix = `<?xml version="1.0" encoding="UTF-8"?>`
