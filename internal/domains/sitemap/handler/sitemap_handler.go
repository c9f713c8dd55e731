package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domains/sitemap/service"
	"portfolio-backend/internal/shared/response"
)

type SitemapHandler struct {
	service *service.SitemapService
}

func NewSitemapHandler(s *service.SitemapService) *SitemapHandler {
	return &SitemapHandler{service: s}
}

// Serve handles GET /sitemap.xml
func (h *SitemapHandler) Serve(c *gin.Context) {
	body, err := h.service.BuildXML(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to build sitemap")
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
