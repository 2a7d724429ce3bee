package pendingedit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"weddingstudio/internal/domain"
	"weddingstudio/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterCustomerRoutes(rg *gin.RouterGroup) {
	rg.POST("/mypage/reservation/edits", h.Submit)
	rg.GET("/mypage/reservation/edits", h.GetMine)
}

func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/pending-changes", h.List)
	rg.POST("/admin/pending-changes/:id/resolve", h.Resolve)
}

func (h *Handler) Submit(c *gin.Context) {
	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	staged, err := h.service.Submit(c.Request.Context(), c.GetInt64("party_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"staged": staged})
}

func (h *Handler) GetMine(c *gin.Context) {
	change, err := h.service.GetPending(c.Request.Context(), c.GetInt64("party_id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Success(c, http.StatusOK, gin.H{"pending_change": nil})
			return
		}
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pending_change": change})
}

func (h *Handler) List(c *gin.Context) {
	changes, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pending_changes": changes})
}

func (h *Handler) Resolve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid change id")
		return
	}

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Action must be applied or discarded")
		return
	}

	status := domain.ChangeDiscarded
	if req.Action == "applied" {
		status = domain.ChangeApplied
	}

	change, err := h.service.Resolve(c.Request.Context(), id, status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pending_change": change})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid edit request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Pending change not found")
	case errors.Is(err, ErrResolved):
		response.Error(c, http.StatusConflict, "ALREADY_RESOLVED", "Pending change already resolved")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process edit")
	}
}
