package adscheduling

import "evorgs/internal/domain/ads"

type ScheduleRunRequest struct {
	AdID       int64  `json:"ad_id" validate:"required"`
	TimeSlotID int64  `json:"time_slot_id" validate:"required"`
	Date       string `json:"date" validate:"required"` // YYYY-MM-DD
}

type RescheduleRequest struct {
	Date       string `json:"date" validate:"required"` // YYYY-MM-DD
	TimeSlotID *int64 `json:"time_slot_id,omitempty"`
}

type AvailabilityRequest struct {
	Date      string `json:"date" form:"date" validate:"required"`
	StartTime string `json:"start_time" form:"start_time" validate:"required"`
	EndTime   string `json:"end_time" form:"end_time" validate:"required"`
}

type BulkScheduleRequest struct {
	AdIDs     []int64             `json:"ad_ids" validate:"required,min=1"`
	StartDate string              `json:"start_date" validate:"required"`
	EndDate   string              `json:"end_date" validate:"required"`
	Slots     []ads.TimeSlotInput `json:"slots" validate:"required,min=1,dive"`
}

// BulkItemResult reports the outcome of one attempted run within a
// bulk request. Failed items carry the error text and leave the rest
// of the batch untouched.
type BulkItemResult struct {
	AdID       int64  `json:"ad_id"`
	Date       string `json:"date,omitempty"`
	TimeSlotID int64  `json:"time_slot_id,omitempty"`
	ScheduleID int64  `json:"schedule_id,omitempty"`
	Succeeded  bool   `json:"succeeded"`
	Error      string `json:"error,omitempty"`
}

type ScheduleResponse struct {
	ID            int64  `json:"id"`
	AdID          int64  `json:"ad_id"`
	TimeSlotID    int64  `json:"time_slot_id"`
	RunDate       string `json:"run_date"`
	Status        Status `json:"status"`
	RetryCount    int    `json:"retry_count"`
	MaxRetries    int    `json:"max_retries"`
	FailureReason string `json:"failure_reason,omitempty"`
}

func toScheduleResponse(s *Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:            s.ID,
		AdID:          s.AdID,
		TimeSlotID:    s.TimeSlotID,
		RunDate:       s.RunDate,
		Status:        s.Status,
		RetryCount:    s.RetryCount,
		MaxRetries:    s.MaxRetries,
		FailureReason: s.FailureReason,
	}
}

type ConflictPayload struct {
	Date           string   `json:"date"`
	ConflictingAds []ads.Ad `json:"conflicting_ads"`
}
