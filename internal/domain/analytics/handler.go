package analytics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"evorgs/internal/middleware"
	"evorgs/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Dashboard godoc
// @Summary	Admin dashboard counts
// @Tags	Analytics
// @Security	BearerAuth
// @Produce	json
// @Success	200	{object}	map[string]interface{}
// @Router	/admin/analytics/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal error")
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) TopAds(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	items, err := h.service.TopAds(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal error")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) MyRevenue(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	v, err := h.service.VendorRevenue(c.Request.Context(), p.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal error")
		return
	}
	response.Success(c, http.StatusOK, v)
}
