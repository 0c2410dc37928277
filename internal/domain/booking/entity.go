package booking

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Booking binds a user to a vendor listing for a concrete time span.
type Booking struct {
	ID            int64         `json:"id" gorm:"column:id;primaryKey"`
	ListingID     int64         `json:"listing_id" gorm:"column:listing_id;index"`
	VendorID      int64         `json:"vendor_id" gorm:"column:vendor_id;index"`
	UserID        int64         `json:"user_id" gorm:"column:user_id;index"`
	StartTime     time.Time     `json:"start_time" gorm:"column:start_time"`
	EndTime       time.Time     `json:"end_time" gorm:"column:end_time"`
	GuestCount    int           `json:"guest_count,omitempty" gorm:"column:guest_count"`
	TotalPrice    float64       `json:"total_price" gorm:"column:total_price"`
	AmountPaid    float64       `json:"amount_paid" gorm:"column:amount_paid"`
	Status        Status        `json:"status" gorm:"column:status;index"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"column:payment_status"`
	Notes         string        `json:"notes,omitempty" gorm:"column:notes"`
	CancelReason  string        `json:"cancel_reason,omitempty" gorm:"column:cancel_reason"`
	CreatedAt     time.Time     `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"column:updated_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty" gorm:"column:cancelled_at"`
}

func (Booking) TableName() string { return "bookings" }
