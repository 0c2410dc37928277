package ads

type CreateAdRequest struct {
	Title       string  `json:"title" validate:"required"`
	EntityType  string  `json:"entity_type" validate:"required,oneof=service external"`
	ListingID   *int64  `json:"listing_id,omitempty"`
	ImageURL    string  `json:"image_url"`
	TargetURL   string  `json:"target_url"`
	PricePerDay float64 `json:"price_per_day"`
}

type RejectAdRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type ActivateAdRequest struct {
	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

// TimeSlotInput is the write shape for UpdateAdTimeSlots.
type TimeSlotInput struct {
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Weekdays  []int  `json:"weekdays" validate:"required"`
	Priority  int    `json:"priority" validate:"required"`
}

type UpdateTimeSlotsRequest struct {
	Slots []TimeSlotInput `json:"slots" validate:"required"`
}
