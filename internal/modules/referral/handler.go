package referral

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"weddingstudio/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the code pre-check used by the booking form
// before submission.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/referral/validate", h.Validate)
}

func (h *Handler) Validate(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "code query parameter is required")
		return
	}

	_, err := h.service.Validate(c.Request.Context(), code)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{"valid": true})
	case errors.Is(err, ErrInvalidCode):
		response.Error(c, http.StatusNotFound, "INVALID_CODE", "Partner code not found or not usable")
	case errors.Is(err, ErrExpiredHost):
		response.Error(c, http.StatusGone, "EXPIRED_HOST", "Partner code host wedding has passed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to validate code")
	}
}
