package prismic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/domains/content/model"
	"portfolio-backend/internal/locale"
)

func newTestServer(t *testing.T, search func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"refs":[{"id":"staging","ref":"staging-ref","isMasterRef":false},{"id":"master","ref":"master-ref","isMasterRef":true}]}`)
	})
	mux.HandleFunc("/api/v2/documents/search", search)
	return httptest.NewServer(mux)
}

func postDoc(id, uid, publishedDate, firstPub string) map[string]interface{} {
	data := map[string]interface{}{
		"title":       []map[string]interface{}{{"text": "Post " + uid}},
		"description": "desc " + uid,
		"content":     []map[string]interface{}{{"type": "paragraph", "text": "body"}},
	}
	if publishedDate != "" {
		data["published_date"] = publishedDate
	}
	return map[string]interface{}{
		"id":                     id,
		"uid":                    uid,
		"type":                   "blog_post",
		"lang":                   "en-us",
		"tags":                   []string{"go"},
		"first_publication_date": firstPub,
		"last_publication_date":  firstPub,
		"data":                   data,
	}
}

func TestPostsByLocale_MappingAndDateCoalescing(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "master-ref", r.URL.Query().Get("ref"))
		assert.Equal(t, "en-us", r.URL.Query().Get("lang"))
		assert.Contains(t, r.URL.Query().Get("q"), `at(document.type,"blog_post")`)

		resp := map[string]interface{}{
			"page":        1,
			"total_pages": 1,
			"next_page":   "",
			"results": []interface{}{
				postDoc("X1", "with-date", "2024-06-01", "2024-01-15T10:00:00+0000"),
				postDoc("X2", "without-date", "", "2024-03-01T10:00:00+0000"),
			},
		}
		json.NewEncoder(w).Encode(resp)
	})
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL})
	posts, err := client.PostsByLocale(context.Background(), locale.EnUS)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "with-date", posts[0].UID)
	assert.Equal(t, "Post with-date", posts[0].Title)
	assert.Equal(t, "desc with-date", posts[0].Description)
	assert.Equal(t, locale.EnUS, posts[0].Locale)
	assert.Equal(t, []string{"go"}, posts[0].Tags)
	// custom date wins over first publication date
	assert.Equal(t, "2024-06-01", posts[0].PublishedDate.Format("2006-01-02"))
	// missing custom date falls back to first publication date
	assert.Equal(t, "2024-03-01", posts[1].PublishedDate.Format("2006-01-02"))
}

func TestPostsByLocale_FollowsPagination(t *testing.T) {
	var srv *httptest.Server
	srv = newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "2" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"page": 2, "total_pages": 2, "next_page": "",
				"results": []interface{}{postDoc("B", "second", "", "2024-02-01T00:00:00+0000")},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"page": 1, "total_pages": 2,
			"next_page": srv.URL + "/api/v2/documents/search?page=2&ref=master-ref",
			"results":   []interface{}{postDoc("A", "first", "", "2024-01-01T00:00:00+0000")},
		})
	})
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL})
	posts, err := client.PostsByLocale(context.Background(), locale.EnUS)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestPostsByLocale_DropsDocumentsWithoutUID(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"page": 1, "total_pages": 1, "next_page": "",
			"results": []interface{}{
				postDoc("A", "kept", "", "2024-01-01T00:00:00+0000"),
				postDoc("B", "", "", "2024-01-01T00:00:00+0000"),
			},
		})
	})
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL})
	posts, err := client.PostsByLocale(context.Background(), locale.EnUS)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "kept", posts[0].UID)
}

func TestPostByUID_NotFound(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"page": 1, "total_pages": 1, "next_page": "", "results": []interface{}{},
		})
	})
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL})
	post, err := client.PostByUID(context.Background(), "missing", locale.EnUS)
	assert.Nil(t, post)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestPostByUID_Found(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("q"), `at(my.blog_post.uid,"hello")`)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"page": 1, "total_pages": 1, "next_page": "",
			"results": []interface{}{postDoc("A", "hello", "2024-05-05", "2024-01-01T00:00:00+0000")},
		})
	})
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL})
	post, err := client.PostByUID(context.Background(), "hello", locale.EnUS)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "hello", post.UID)
	assert.Equal(t, "hello", post.Slug)
}

func TestWorksByLocale_Mapping(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"page": 1, "total_pages": 1, "next_page": "",
			"results": []interface{}{
				map[string]interface{}{
					"id": "W1", "uid": "proj", "type": "work", "lang": "ja-jp",
					"first_publication_date": "2024-01-01T00:00:00+0000",
					"last_publication_date":  "2024-01-01T00:00:00+0000",
					"data": map[string]interface{}{
						"title":       []map[string]interface{}{{"text": "案件"}},
						"description": []map[string]interface{}{{"text": "説明"}},
						"link":        map[string]interface{}{"url": "https://example.com"},
						"category":    "social_media",
						"order":       3,
					},
				},
			},
		})
	})
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL})
	works, err := client.WorksByLocale(context.Background(), locale.JaJP)
	require.NoError(t, err)
	require.Len(t, works, 1)

	w := works[0]
	assert.Equal(t, "案件", w.Title)
	assert.Equal(t, "説明", w.Description)
	assert.Equal(t, "https://example.com", w.Link)
	assert.Equal(t, 3, w.Order)
	// missing cta_text takes the locale default
	assert.Equal(t, "詳細を見る", w.CTAText)
	assert.Equal(t, locale.JaJP, w.Locale)
}

func TestRefByID(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "*", r.URL.Query().Get("lang"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"page": 1, "total_pages": 1, "next_page": "",
			"results": []interface{}{
				map[string]interface{}{
					"id": "D1", "uid": "my-post", "type": "blog_post", "lang": "ja-jp",
					"first_publication_date": "2024-01-01T00:00:00+0000",
					"last_publication_date":  "2024-01-01T00:00:00+0000",
					"data":                   map[string]interface{}{},
				},
			},
		})
	})
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL})
	ref, err := client.RefByID(context.Background(), "D1")
	require.NoError(t, err)
	assert.Equal(t, "my-post", ref.UID)
	assert.Equal(t, "blog_post", ref.Type)
	assert.Equal(t, locale.JaJP, ref.Locale)
}

func TestSearch_UpstreamError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "ref expired", http.StatusGone)
	})
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL})
	_, err := client.PostsByLocale(context.Background(), locale.EnUS)
	assert.Error(t, err)
}
