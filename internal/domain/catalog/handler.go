package catalog

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

// Search godoc
// @Summary	Search approved listings
// @Tags	Catalog
// @Produce	json
// @Param	type	query	string	false	"venue | farmhouse | catering | photography"
// @Param	city	query	string	false	"city filter"
// @Success	200	{object}	map[string]interface{}
// @Router	/listings [get]
func (h *Handler) Search(c *gin.Context) {
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.service.Search(c.Request.Context(), SearchFilter{
		Type:     c.Query("type"),
		City:     c.Query("city"),
		MaxPrice: maxPrice,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		handleCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items, "total": total})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	l, err := h.service.GetListing(c.Request.Context(), id)
	if err != nil {
		handleCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

// Create godoc
// @Summary	Create a listing (vendor)
// @Tags	Catalog
// @Security	BearerAuth
// @Accept	json
// @Produce	json
// @Success	201	{object}	map[string]interface{}
// @Router	/vendor/listings [post]
func (h *Handler) Create(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	l, err := h.service.CreateListing(c.Request.Context(), p.ID, req)
	if err != nil {
		handleCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, l)
}

func (h *Handler) Update(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}

	l, err := h.service.UpdateListing(c.Request.Context(), p.ID, id, req)
	if err != nil {
		handleCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

func (h *Handler) Delete(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteListing(c.Request.Context(), p.ID, id); err != nil {
		handleCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) MyListings(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	items, err := h.service.MyListings(c.Request.Context(), p.ID)
	if err != nil {
		handleCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Pending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	items, err := h.service.PendingListings(c.Request.Context(), limit, offset)
	if err != nil {
		handleCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	l, err := h.service.ApproveListing(c.Request.Context(), id)
	if err != nil {
		handleCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req RejectListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	l, err := h.service.RejectListing(c.Request.Context(), id, req.Reason)
	if err != nil {
		handleCatalogError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid id")
		return 0, false
	}
	return id, true
}

func handleCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Listing not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "Listing belongs to another vendor")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Listing is not pending review")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal error")
	}
}
