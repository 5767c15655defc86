package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skillhub/backend/internal/auth/middleware"
	"github.com/skillhub/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic
type AuthService interface {
	// Method Register validates the credentials, creates the user and returns its identity with a token.
	//
	// If a field is missing or the email is malformed, an error wrapping models.ErrInvalidRequest is returned.
	// If the email is taken, an error wrapping models.ErrDuplicateEmail is returned.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	// Method Login verifies the credentials and returns the user's identity with a token.
	//
	// An unknown email and a wrong password both produce the same error wrapping models.ErrInvalidCredentials.
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	// Method UpdateProfile changes the name and/or email of the user.
	//
	// If the user does not exist, an error wrapping models.ErrNotFound is returned.
	UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.ProfileResponse, error)
	// Method ChangePassword replaces the user's credential after verifying the current one.
	//
	// A wrong current password produces an error wrapping models.ErrInvalidCredentials.
	ChangePassword(ctx context.Context, userID int, req *models.ChangePasswordRequest) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Put("/update", h.UpdateProfile)
			r.Put("/password", h.ChangePassword)
		})
	})
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Create an account and sign in. Returns the identity snapshot and a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} map[string]string "Missing field, malformed email or email already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.DecodeRequest(w, r, &req) {
		return
	}

	resp, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed to register user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
// @Summary Login user
// @Description Authenticate with email and password. Returns the identity snapshot and a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} map[string]string "Missing field or malformed email"
// @Failure 401 {object} map[string]string "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.DecodeRequest(w, r, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed to login user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// UpdateProfile handles PUT /auth/update
// @Summary Update profile
// @Description Change name and/or email of the authenticated user. Omitted fields keep their value.
// @Tags auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} models.ProfileResponse
// @Failure 400 {object} map[string]string "Malformed email or email already exists"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "User not found"
// @Router /auth/update [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.UpdateProfileRequest
	if !h.DecodeRequest(w, r, &req) {
		return
	}

	profile, err := h.authService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		h.Logger.Warn("failed to update profile", zap.Int("userId", userID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, profile)
}

// ChangePassword handles PUT /auth/password
// @Summary Change password
// @Description Replace the password of the authenticated user after verifying the current one.
// @Tags auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} map[string]string "Password updated"
// @Failure 400 {object} map[string]string "Missing field"
// @Failure 401 {object} map[string]string "Current password is incorrect"
// @Failure 404 {object} map[string]string "User not found"
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.ChangePasswordRequest
	if !h.DecodeRequest(w, r, &req) {
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, &req); err != nil {
		h.Logger.Warn("failed to change password", zap.Int("userId", userID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "password updated successfully"})
}
