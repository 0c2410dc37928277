package booking

import "time"

type CreateBookingRequest struct {
	ListingID  int64     `json:"listing_id" validate:"required"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" validate:"required"`
	GuestCount int       `json:"guest_count"`
	Notes      string    `json:"notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}
