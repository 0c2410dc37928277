package adscheduling

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"evorgs/internal/pkg/response"
	"evorgs/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CheckAvailability godoc
// @Summary	Check whether a time window is free on a date
// @Tags	Scheduling
// @Security	BearerAuth
// @Produce	json
// @Param	date	query	string	true	"YYYY-MM-DD"
// @Param	start_time	query	string	true	"HH:MM"
// @Param	end_time	query	string	true	"HH:MM"
// @Success	200	{object}	map[string]interface{}
// @Router	/admin/schedules/availability [get]
func (h *Handler) CheckAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid query parameters")
		return
	}

	res, err := h.service.CheckAvailability(c.Request.Context(), req.Date, req.StartTime, req.EndTime)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Schedule godoc
// @Summary	Schedule one ad run
// @Tags	Scheduling
// @Security	BearerAuth
// @Accept	json
// @Produce	json
// @Param	body	body	ScheduleRunRequest	true	"payload"
// @Success	201	{object}	map[string]interface{}
// @Router	/admin/schedules [post]
func (h *Handler) Schedule(c *gin.Context) {
	var req ScheduleRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	sched, err := h.service.ScheduleAdRun(c.Request.Context(), req.AdID, req.TimeSlotID, req.Date)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toScheduleResponse(sched))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	sched, err := h.service.GetSchedule(c.Request.Context(), id)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toScheduleResponse(sched))
}

func (h *Handler) ListForAd(c *gin.Context) {
	adID, err := strconv.ParseInt(c.Param("adId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid ad id")
		return
	}
	items, err := h.service.SchedulesForAd(c.Request.Context(), adID)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.CancelScheduledRun(c.Request.Context(), id); err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

// Reschedule godoc
// @Summary	Move a schedule to a new date or slot
// @Tags	Scheduling
// @Security	BearerAuth
// @Accept	json
// @Produce	json
// @Param	id	path	int	true	"schedule id"
// @Param	body	body	RescheduleRequest	true	"payload"
// @Success	200	{object}	map[string]interface{}
// @Router	/admin/schedules/{id}/reschedule [put]
func (h *Handler) Reschedule(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	sched, err := h.service.RescheduleAdRun(c.Request.Context(), id, req.Date, req.TimeSlotID)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toScheduleResponse(sched))
}

func (h *Handler) Retry(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	sched, err := h.service.RetryFailedSchedule(c.Request.Context(), id)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toScheduleResponse(sched))
}

func (h *Handler) PauseAd(c *gin.Context) {
	adID, err := strconv.ParseInt(c.Param("adId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid ad id")
		return
	}
	n, err := h.service.PauseAdSchedule(c.Request.Context(), adID)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"paused": n})
}

func (h *Handler) ResumeAd(c *gin.Context) {
	adID, err := strconv.ParseInt(c.Param("adId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid ad id")
		return
	}
	n, err := h.service.ResumeAdSchedule(c.Request.Context(), adID)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resumed": n})
}

// BulkSchedule godoc
// @Summary	Replace slots and schedule runs for many ads over a date range
// @Tags	Scheduling
// @Security	BearerAuth
// @Accept	json
// @Produce	json
// @Param	body	body	BulkScheduleRequest	true	"payload"
// @Success	200	{object}	map[string]interface{}
// @Router	/admin/schedules/bulk [post]
func (h *Handler) BulkSchedule(c *gin.Context) {
	var req BulkScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	results, err := h.service.BulkScheduleAds(c.Request.Context(), req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, results)
}

func (h *Handler) Logs(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := h.service.ExecutionLogs(c.Request.Context(), id, limit)
	if err != nil {
		handleScheduleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, logs)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid id")
		return 0, false
	}
	return id, true
}

func handleScheduleError(c *gin.Context, err error) {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		response.ErrorWithDetails(c, http.StatusConflict, response.CodeConflict, "Time slot conflict", ConflictPayload{
			Date:           conflict.Date,
			ConflictingAds: conflict.ConflictingAds,
		})
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Schedule not found")
	case errors.Is(err, ErrAdNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Ad not found")
	case errors.Is(err, ErrSlotNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Time slot not found")
	case errors.Is(err, ErrSlotMismatch):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Time slot belongs to another ad")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal error")
	}
}
