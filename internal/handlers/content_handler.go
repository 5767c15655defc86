package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skillhub/backend/internal/models"
	"go.uber.org/zap"
)

// ContentService is the interface that wraps methods for content listing
type ContentService interface {
	// Method ListRoadmaps returns all roadmaps with their steps.
	ListRoadmaps(ctx context.Context) ([]models.Content, error)
	// Method ListLearning returns all learning items with their steps.
	ListLearning(ctx context.Context) ([]models.Content, error)
	// Method ListReviews returns all reviews.
	ListReviews(ctx context.Context) ([]models.Review, error)
}

// ContentHandler handles public content HTTP requests
type ContentHandler struct {
	BaseHandler
	contentService ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		contentService: contentService,
	}
}

// RegisterRoutes registers all content handler routes
func (h *ContentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/content", func(r chi.Router) {
		r.Get("/roadmaps", h.ListRoadmaps)
		r.Get("/learning", h.ListLearning)
		r.Get("/reviews", h.ListReviews)
	})
}

// ListRoadmaps handles GET /content/roadmaps
// @Summary List roadmaps
// @Tags content
// @Produce json
// @Success 200 {array} models.Content
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /content/roadmaps [get]
func (h *ContentHandler) ListRoadmaps(w http.ResponseWriter, r *http.Request) {
	items, err := h.contentService.ListRoadmaps(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, items)
}

// ListLearning handles GET /content/learning
// @Summary List learning items
// @Tags content
// @Produce json
// @Success 200 {array} models.Content
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /content/learning [get]
func (h *ContentHandler) ListLearning(w http.ResponseWriter, r *http.Request) {
	items, err := h.contentService.ListLearning(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, items)
}

// ListReviews handles GET /content/reviews
// @Summary List reviews
// @Tags content
// @Produce json
// @Success 200 {array} models.Review
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /content/reviews [get]
func (h *ContentHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.contentService.ListReviews(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, reviews)
}
