package pos

import (
	"errors"
	"net/http"
	"strconv"

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

// CreateTransaction godoc
// @Summary	Record a sale or refund (vendor)
// @Tags	POS
// @Security	BearerAuth
// @Accept	json
// @Produce	json
// @Param	body	body	CreateTransactionRequest	true	"payload"
// @Success	201	{object}	map[string]interface{}
// @Router	/vendor/pos/transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	t, err := h.service.RecordTransaction(c.Request.Context(), p.ID, req)
	if err != nil {
		handlePOSError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) ListTransactions(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.service.Transactions(c.Request.Context(), p.ID, limit, offset)
	if err != nil {
		handlePOSError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) CreateExpense(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	e, err := h.service.RecordExpense(c.Request.Context(), p.ID, req)
	if err != nil {
		handlePOSError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, e)
}

func (h *Handler) UpdateExpense(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	e, err := h.service.UpdateExpense(c.Request.Context(), p.ID, id, req)
	if err != nil {
		handlePOSError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

func (h *Handler) DeleteExpense(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteExpense(c.Request.Context(), p.ID, id); err != nil {
		handlePOSError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListExpenses(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.service.Expenses(c.Request.Context(), p.ID, limit, offset)
	if err != nil {
		handlePOSError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Summary godoc
// @Summary	Vendor balance summary
// @Tags	POS
// @Security	BearerAuth
// @Produce	json
// @Success	200	{object}	map[string]interface{}
// @Router	/vendor/pos/summary [get]
func (h *Handler) Summary(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	s, err := h.service.BalanceSummary(c.Request.Context(), p.ID)
	if err != nil {
		handlePOSError(c, err)
		return
	}
	response.Success(c, http.StatusOK, s)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid id")
		return 0, false
	}
	return id, true
}

func handlePOSError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "Entry belongs to another vendor")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal error")
	}
}
