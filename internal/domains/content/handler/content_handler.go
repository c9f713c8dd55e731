package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domains/content/model"
	"portfolio-backend/internal/domains/content/service"
	"portfolio-backend/internal/domains/seo"
	"portfolio-backend/internal/locale"
	"portfolio-backend/internal/shared/response"
)

type ContentHandler struct {
	service *service.ContentService
	seo     *seo.Builder
	baseURL string
}

func NewContentHandler(s *service.ContentService, seoBuilder *seo.Builder, baseURL string) *ContentHandler {
	return &ContentHandler{
		service: s,
		seo:     seoBuilder,
		baseURL: baseURL,
	}
}

// ListPosts handles GET /api/v1/blog?locale=
// A failed upstream collapses to the same empty listing the UI shows for a
// locale with no posts.
func (h *ContentHandler) ListPosts(c *gin.Context) {
	loc := locale.Parse(c.Query("locale"))

	result := h.service.GetPosts(c.Request.Context(), loc)

	response.Success(c, http.StatusOK, gin.H{
		"posts":  result.Posts,
		"locale": loc,
	})
}

// GetPost handles GET /api/v1/blog/:uid?locale=
// The response carries the post together with its SEO metadata, JSON-LD
// and alternate-locale availability.
func (h *ContentHandler) GetPost(c *gin.Context) {
	uid := c.Param("uid")
	loc := locale.Parse(c.Query("locale"))

	post, err := h.service.GetPostByUID(c.Request.Context(), uid, loc)
	if err != nil || post == nil {
		response.NotFound(c, "post not found")
		return
	}

	alternates := h.service.GetAlternateLocalePosts(c.Request.Context(), uid, loc)
	alternateURLs := map[string]interface{}{}
	for code, p := range alternates {
		if p == nil {
			alternateURLs[string(code)] = nil
			continue
		}
		alternateURLs[string(code)] = h.baseURL + locale.Prefix(code) + "/blog/" + p.UID
	}

	canonical := h.baseURL + locale.Prefix(loc) + "/blog/" + post.UID

	meta := h.seo.BuildMetadata(seo.Input{
		Title:         post.Title,
		Description:   post.Description,
		Canonical:     canonical,
		OGType:        "article",
		OGImage:       featuredImageURL(post),
		PublishedTime: post.PublishedDate,
		ModifiedTime:  post.UpdatedDate,
		Locale:        loc,
		AlternateURLs: locale.AlternateURLs("/blog/"+post.UID, h.baseURL),
		Tags:          post.Tags,
	})

	jsonLD := h.seo.ArticleJSONLD(post.Title, post.Description, canonical, post.PublishedDate, post.UpdatedDate, loc)

	response.Success(c, http.StatusOK, gin.H{
		"post":       post,
		"alternates": alternateURLs,
		"meta":       meta,
		"json_ld":    jsonLD,
	})
}

// SiteMeta handles GET /api/v1/meta?locale=
// It serves the home page's metadata together with the site-wide WebSite
// and Person structured data.
func (h *ContentHandler) SiteMeta(c *gin.Context) {
	loc := locale.Parse(c.Query("locale"))
	l := locale.Get(loc)

	meta := h.seo.BuildMetadata(seo.Input{
		Title:         h.seo.SiteName(loc),
		Canonical:     h.baseURL + l.Prefix,
		OGType:        "website",
		Locale:        loc,
		AlternateURLs: locale.AlternateURLs("/", h.baseURL),
	})

	response.Success(c, http.StatusOK, gin.H{
		"meta":   meta,
		"locale": loc,
		"json_ld": []map[string]interface{}{
			h.seo.WebsiteJSONLD(loc),
			h.seo.PersonJSONLD(),
		},
	})
}

// ListWorks handles GET /api/v1/works?locale=
func (h *ContentHandler) ListWorks(c *gin.Context) {
	loc := locale.Parse(c.Query("locale"))

	works := h.service.GetWorkItems(c.Request.Context(), loc)

	response.Success(c, http.StatusOK, gin.H{
		"works":  works,
		"locale": loc,
	})
}

func featuredImageURL(post *model.Post) string {
	if post.FeaturedImage == nil {
		return ""
	}
	return post.FeaturedImage.URL
}
