package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domains/contact"
	"portfolio-backend/internal/infrastructure/email"
	"portfolio-backend/internal/shared/response"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/logger"
)

const (
	rateLimitMax    = 5
	rateLimitWindow = time.Hour
)

type ContactHandler struct {
	mailer email.EmailService
	cache  cache.Cache
}

func NewContactHandler(mailer email.EmailService, c cache.Cache) *ContactHandler {
	return &ContactHandler{
		mailer: mailer,
		cache:  c,
	}
}

// Submit handles POST /api/v1/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	// STEP 1: PARSE REQUEST
	var req contact.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// STEP 2: VALIDATE
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "BAD_REQUEST", "Validation failed", err)
		return
	}

	// STEP 3: RATE LIMIT PER CLIENT IP
	if !h.allow(c) {
		response.TooManyRequests(c, "Too many submissions, try again later")
		return
	}

	// STEP 4: SEND MAIL
	err := h.mailer.SendContactEmail(c.Request.Context(), email.ContactEmailData{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		response.InternalServerError(c, "Failed to send message")
		return
	}

	response.Success(c, http.StatusOK, contact.ContactResponse{OK: true})
}

// allow counts submissions per client IP within the window. A broken
// cache never blocks the form.
func (h *ContactHandler) allow(c *gin.Context) bool {
	if h.cache == nil {
		return true
	}

	key := fmt.Sprintf("contact:ratelimit:%s", c.ClientIP())
	count, err := h.cache.Increment(c.Request.Context(), key)
	if err != nil {
		logger.Warn("contact rate limit counter unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return true
	}
	if count == 1 {
		if err := h.cache.Expire(c.Request.Context(), key, rateLimitWindow); err != nil {
			logger.Warn("contact rate limit expire failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return count <= rateLimitMax
}
