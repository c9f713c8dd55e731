package instagram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/domains/gallery/model"
)

func mediaItem(id, mediaType string) map[string]interface{} {
	return map[string]interface{}{
		"id":         id,
		"caption":    "caption " + id,
		"media_type": mediaType,
		"media_url":  "https://cdn.example.com/" + id + ".jpg",
		"permalink":  "https://instagram.com/p/" + id,
		"timestamp":  "2024-01-01T00:00:00+0000",
	}
}

func TestFetchMedia_FiltersVideos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/children") {
			json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []interface{}{
				mediaItem("img1", model.TypeImage),
				mediaItem("vid1", model.TypeVideo),
				mediaItem("car1", model.TypeCarousel),
			},
		})
	}))
	defer srv.Close()

	client := NewClient(Config{AccessToken: "token", BaseURL: srv.URL})
	media, err := client.FetchMedia(context.Background())
	require.NoError(t, err)
	require.Len(t, media, 2)

	for _, m := range media {
		assert.Contains(t, []string{model.TypeImage, model.TypeCarousel}, m.MediaType)
	}
}

func TestFetchMedia_CarouselWithoutURLDropped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		item := mediaItem("car-no-url", model.TypeCarousel)
		item["media_url"] = ""
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{item}})
	}))
	defer srv.Close()

	client := NewClient(Config{AccessToken: "token", BaseURL: srv.URL})
	media, err := client.FetchMedia(context.Background())
	require.NoError(t, err)
	assert.Empty(t, media)
}

func TestFetchMedia_StopsAtPageCeiling(t *testing.T) {
	var pages atomic.Int32

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := pages.Add(1)
		// upstream always offers another page
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data":   []interface{}{mediaItem("img-"+string(rune('a'+n)), model.TypeImage)},
			"paging": map[string]interface{}{"next": srv.URL + "/me/media?cursor=next"},
		})
	}))
	defer srv.Close()

	client := NewClient(Config{AccessToken: "token", BaseURL: srv.URL, MaxPages: 3})
	media, err := client.FetchMedia(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(3), pages.Load())
	assert.Len(t, media, 3)
}

func TestFetchMedia_StopsWhenNoNextCursor(t *testing.T) {
	var pages atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages.Add(1)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []interface{}{mediaItem("only", model.TypeImage)},
		})
	}))
	defer srv.Close()

	client := NewClient(Config{AccessToken: "token", BaseURL: srv.URL, MaxPages: 5})
	media, err := client.FetchMedia(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), pages.Load())
	assert.Len(t, media, 1)
}

func TestFetchMedia_CarouselChildren(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/children") {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": []interface{}{
					map[string]interface{}{"id": "c1", "media_type": model.TypeImage, "media_url": "https://cdn.example.com/c1.jpg"},
					map[string]interface{}{"id": "c2", "media_type": model.TypeVideo, "media_url": "https://cdn.example.com/c2.mp4"},
					map[string]interface{}{"id": "c3", "media_type": model.TypeImage, "media_url": "https://cdn.example.com/c3.jpg"},
				},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []interface{}{mediaItem("car1", model.TypeCarousel)},
		})
	}))
	defer srv.Close()

	client := NewClient(Config{AccessToken: "token", BaseURL: srv.URL})
	media, err := client.FetchMedia(context.Background())
	require.NoError(t, err)
	require.Len(t, media, 1)

	// video child filtered out
	require.Len(t, media[0].Children, 2)
	for _, child := range media[0].Children {
		assert.Equal(t, model.TypeImage, child.MediaType)
	}
}

func TestFetchMedia_ChildFetchFailureIsIsolated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/car-bad/children") {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		if strings.Contains(r.URL.Path, "/children") {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": []interface{}{
					map[string]interface{}{"id": "c1", "media_type": model.TypeImage, "media_url": "https://cdn.example.com/c1.jpg"},
				},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []interface{}{
				mediaItem("car-bad", model.TypeCarousel),
				mediaItem("car-good", model.TypeCarousel),
			},
		})
	}))
	defer srv.Close()

	client := NewClient(Config{AccessToken: "token", BaseURL: srv.URL})
	media, err := client.FetchMedia(context.Background())
	require.NoError(t, err)
	require.Len(t, media, 2)

	byID := map[string]model.Media{}
	for _, m := range media {
		byID[m.ID] = m
	}
	assert.Empty(t, byID["car-bad"].Children)
	assert.Len(t, byID["car-good"].Children, 1)
}

func TestFetchMedia_TopLevelFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(Config{AccessToken: "bad", BaseURL: srv.URL})
	media, err := client.FetchMedia(context.Background())
	assert.Error(t, err)
	assert.Nil(t, media)
}
