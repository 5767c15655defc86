package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skillhub/backend/internal/auth/middleware"
	"github.com/skillhub/backend/internal/models"
	"go.uber.org/zap"
)

// ProgressService is the interface that wraps methods for progress business logic
type ProgressService interface {
	// Method GetProgress returns the user's completion set in insertion order.
	GetProgress(ctx context.Context, userID int) ([]string, error)
	// Method ToggleStep flips one step in the user's completion set and returns the new set.
	//
	// An empty or over-long "stepID" produces an error wrapping models.ErrInvalidRequest
	// and leaves the store untouched.
	ToggleStep(ctx context.Context, userID int, stepID string) ([]string, error)
}

// ProgressHandler handles progress HTTP requests
type ProgressHandler struct {
	BaseHandler
	progressService ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		progressService: progressService,
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/progress", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetProgress)
		r.Post("/toggle", h.ToggleStep)
	})
}

// GetProgress handles GET /progress
// @Summary Get completed steps
// @Description Return the completion set of the authenticated user.
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.ProgressResponse
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "User not found"
// @Router /progress [get]
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	steps, err := h.progressService.GetProgress(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.ProgressResponse{CompletedSteps: steps})
}

// ToggleStep handles POST /progress/toggle
// @Summary Toggle a step
// @Description Flip the completion of one step for the authenticated user and return the full new set.
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.ToggleStepRequest true "Step to toggle"
// @Success 200 {object} models.ProgressResponse
// @Failure 400 {object} map[string]string "Malformed body or missing stepId"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "User not found"
// @Router /progress/toggle [post]
func (h *ProgressHandler) ToggleStep(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.ToggleStepRequest
	if !h.DecodeRequest(w, r, &req) {
		return
	}

	steps, err := h.progressService.ToggleStep(r.Context(), userID, req.StepID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.ProgressResponse{CompletedSteps: steps})
}
