package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/skillhub/backend/internal/models"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps a service error to its HTTP status and sends it.
// Unclassified errors are logged and reported as a generic 500.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidRequest):
		h.RespondError(w, http.StatusBadRequest, publicMessage(err, models.ErrInvalidRequest))
	case errors.Is(err, models.ErrDuplicateEmail):
		h.RespondError(w, http.StatusBadRequest, models.ErrDuplicateEmail.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		h.RespondError(w, http.StatusUnauthorized, publicMessage(err, models.ErrInvalidCredentials))
	case errors.Is(err, models.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	default:
		h.Logger.Error("request failed", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// DecodeRequest decodes the JSON body into dst. On failure it has already
// responded: 413 when the body hit the size limit, 400 otherwise.
func (h *BaseHandler) DecodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	h.RespondError(w, http.StatusBadRequest, "invalid request body")
	return false
}

// publicMessage drops the trailing sentinel text, so "invalid email format: invalid request"
// is reported as "invalid email format"
func publicMessage(err, sentinel error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+sentinel.Error())
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}
