package review

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

// RegisterCustomerRoutes mounts the mypage review endpoints. The customer
// token's party_id is the reservation it was issued for.
func (h *Handler) RegisterCustomerRoutes(rg *gin.RouterGroup) {
	rg.POST("/mypage/reviews", h.Submit)
	rg.GET("/mypage/reviews", h.ListMine)
	rg.DELETE("/mypage/reviews/:id", h.Cancel)
}

func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/reviews", h.ListByStatus)
	rg.POST("/admin/reviews/:id/decision", h.Decide)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	reservationID := c.GetInt64("party_id")
	sub, err := h.service.Submit(c.Request.Context(), reservationID, req.URL, domain.ReviewPurpose(req.Purpose))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"review": toView(*sub)})
}

func (h *Handler) ListMine(c *gin.Context) {
	reservationID := c.GetInt64("party_id")
	subs, err := h.service.ListByReservation(c.Request.Context(), reservationID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	views := make([]submissionView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, toView(sub))
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": views})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review id")
		return
	}

	reservationID := c.GetInt64("party_id")
	if err := h.service.Cancel(c.Request.Context(), reservationID, id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) ListByStatus(c *gin.Context) {
	status := domain.ReviewStatus(c.DefaultQuery("status", string(domain.ReviewManual)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	subs, err := h.service.ListByStatus(c.Request.Context(), status, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": subs})
}

func (h *Handler) Decide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review id")
		return
	}

	var req DecideReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sub, err := h.service.Decide(c.Request.Context(), id, req.Approve, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"review": toView(*sub)})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidURL):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Review URL is malformed")
	case errors.Is(err, ErrDuplicateURL):
		response.Error(c, http.StatusConflict, "DUPLICATE_REVIEW", "This review URL was already submitted")
	case errors.Is(err, ErrCapExceeded), errors.Is(err, ErrPlatformCapExceeded):
		response.Error(c, http.StatusConflict, "REVIEW_CAP_EXCEEDED", "Review submission limit reached")
	case errors.Is(err, ErrNotCancellable):
		response.Error(c, http.StatusConflict, "NOT_CANCELLABLE", "Review can no longer be cancelled")
	case errors.Is(err, ErrAlreadyDecided):
		response.Error(c, http.StatusConflict, "ALREADY_DECIDED", "Review was already decided")
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrReservationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review submission not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your review submission")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process review")
	}
}
