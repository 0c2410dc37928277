package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"evorgs/internal/domain/catalog"
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
// @Summary	Book a listing
// @Tags	Booking
// @Security	BearerAuth
// @Accept	json
// @Produce	json
// @Param	body	body	CreateBookingRequest	true	"payload"
// @Success	201	{object}	map[string]interface{}
// @Router	/bookings [post]
func (h *Handler) Create(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), p.ID, req)
	if err != nil {
		handleBookingError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) Get(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), p.ID, p.IsVendor(), id)
	if err != nil {
		handleBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Mine(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var (
		items []Booking
		err   error
	)
	if p.IsVendor() {
		items, err = h.service.VendorBookings(c.Request.Context(), p.ID, limit, offset)
	} else {
		items, err = h.service.MyBookings(c.Request.Context(), p.ID, limit, offset)
	}
	if err != nil {
		handleBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Confirm(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	b, err := h.service.ConfirmBooking(c.Request.Context(), p.ID, id)
	if err != nil {
		handleBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Cancel(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	b, err := h.service.CancelBooking(c.Request.Context(), p.ID, p.IsVendor(), id, req.Reason)
	if err != nil {
		handleBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) RecordPayment(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}

	b, err := h.service.RecordPayment(c.Request.Context(), p.ID, id, req.Amount)
	if err != nil {
		handleBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid id")
		return 0, false
	}
	return id, true
}

func handleBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed")
	case errors.Is(err, ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "Not allowed for this booking")
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusConflict, response.CodeConflict, "Listing not available for this time span")
	case errors.Is(err, ErrOverbooking):
		response.Error(c, http.StatusConflict, response.CodeConflict, "Time span was just taken")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid booking status transition")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal error")
	}
}
