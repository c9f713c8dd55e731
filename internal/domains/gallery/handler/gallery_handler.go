package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domains/gallery/service"
	"portfolio-backend/internal/shared/response"
)

type GalleryHandler struct {
	service *service.GalleryService
}

func NewGalleryHandler(s *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: s}
}

// ListMedia handles GET /api/v1/instagram
// The gallery renders "no photos" identically for an empty account and an
// unreachable API.
func (h *GalleryHandler) ListMedia(c *gin.Context) {
	result := h.service.GetMedia(c.Request.Context())

	response.Success(c, http.StatusOK, gin.H{
		"media": result.Media,
	})
}
