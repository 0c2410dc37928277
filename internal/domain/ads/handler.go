package ads

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"evorgs/internal/middleware"
	"evorgs/internal/pkg/response"
	"evorgs/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary	Request a new ad (vendor)
// @Tags	Ads
// @Security	BearerAuth
// @Accept	json
// @Produce	json
// @Param	body	body	CreateAdRequest	true	"payload"
// @Success	201	{object}	map[string]interface{}
// @Router	/vendor/ads [post]
func (h *Handler) Create(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	var req CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	a, err := h.service.CreateAd(c.Request.Context(), p.ID, req)
	if err != nil {
		handleAdError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

func (h *Handler) MyAds(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	items, err := h.service.VendorAds(c.Request.Context(), p.ID)
	if err != nil {
		handleAdError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	a, err := h.service.GetAd(c.Request.Context(), id)
	if err != nil {
		handleAdError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) ListByStatus(c *gin.Context) {
	status := Status(c.DefaultQuery("status", string(StatusPending)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.service.AdsByStatus(c.Request.Context(), status, limit, offset)
	if err != nil {
		handleAdError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	a, err := h.service.ApproveAd(c.Request.Context(), id)
	if err != nil {
		handleAdError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req RejectAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	a, err := h.service.RejectAd(c.Request.Context(), id, req.Reason)
	if err != nil {
		handleAdError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Activate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req ActivateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}

	var start, end *time.Time
	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid start_date")
			return
		}
		start = &t
	}
	if req.EndDate != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid end_date")
			return
		}
		end = &t
	}

	a, err := h.service.ActivateAd(c.Request.Context(), id, start, end)
	if err != nil {
		handleAdError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Expire(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	a, err := h.service.ExpireAd(c.Request.Context(), id)
	if err != nil {
		handleAdError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// Impression and Click are public tracking pixels: always 204.
func (h *Handler) Impression(c *gin.Context) {
	if id, err := strconv.ParseInt(c.Param("id"), 10, 64); err == nil {
		h.service.RecordImpression(c.Request.Context(), id)
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Click(c *gin.Context) {
	if id, err := strconv.ParseInt(c.Param("id"), 10, 64); err == nil {
		h.service.RecordClick(c.Request.Context(), id)
	}
	c.Status(http.StatusNoContent)
}

// UpdateTimeSlots godoc
// @Summary	Replace an ad's recurring time slots wholesale
// @Tags	Ads
// @Security	BearerAuth
// @Accept	json
// @Produce	json
// @Param	id	path	int	true	"ad id"
// @Param	body	body	UpdateTimeSlotsRequest	true	"payload"
// @Success	200	{object}	map[string]interface{}
// @Router	/vendor/ads/{id}/slots [put]
func (h *Handler) UpdateTimeSlots(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateTimeSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}

	vendorID := p.ID
	if p.IsAdmin() {
		vendorID = 0 // admins may edit any ad's slots
	}

	slots, err := h.service.UpdateAdTimeSlots(c.Request.Context(), vendorID, id, req.Slots)
	if err != nil {
		handleAdError(c, err)
		return
	}
	response.Success(c, http.StatusOK, slots)
}

func (h *Handler) GetTimeSlots(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	slots, err := h.service.AdTimeSlots(c.Request.Context(), id)
	if err != nil {
		handleAdError(c, err)
		return
	}
	response.Success(c, http.StatusOK, slots)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid id")
		return 0, false
	}
	return id, true
}

func handleAdError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSlotNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "Ad belongs to another vendor")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid ad status transition")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal error")
	}
}
