package catalog

import "time"

// ListingStatus gates public visibility: only approved listings are
// searchable and bookable.
type ListingStatus string

const (
	ListingPending  ListingStatus = "pending"
	ListingApproved ListingStatus = "approved"
	ListingRejected ListingStatus = "rejected"
)

// PriceUnit describes what the listed price covers.
type PriceUnit string

const (
	PerEvent  PriceUnit = "per_event"
	PerHour   PriceUnit = "per_hour"
	PerPerson PriceUnit = "per_person"
)

// Listing is a bookable vendor offering: a venue, farmhouse,
// catering package or photography package.
type Listing struct {
	ID             int64         `json:"id" gorm:"column:id;primaryKey"`
	VendorID       int64         `json:"vendor_id" gorm:"column:vendor_id;index"`
	Title          string        `json:"title" gorm:"column:title"`
	Description    string        `json:"description" gorm:"column:description"`
	Type           string        `json:"type" gorm:"column:type;index"` // venue, farmhouse, catering, photography
	City           string        `json:"city,omitempty" gorm:"column:city;index"`
	Price          float64       `json:"price" gorm:"column:price"`
	PriceUnit      PriceUnit     `json:"price_unit" gorm:"column:price_unit"`
	Capacity       int           `json:"capacity,omitempty" gorm:"column:capacity"`
	Status         ListingStatus `json:"status" gorm:"column:status;index"`
	RejectedReason string        `json:"rejected_reason,omitempty" gorm:"column:rejected_reason"`
	Active         bool          `json:"active" gorm:"column:active"`
	CreatedAt      time.Time     `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"column:updated_at"`
}

func (Listing) TableName() string { return "listings" }
