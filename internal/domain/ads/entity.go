package ads

import "time"

// Status gates slot eligibility: only Active ads participate in
// conflict checks and availability listings.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
)

// EntityType distinguishes ads promoting a marketplace listing from
// externally-hosted campaigns.
type EntityType string

const (
	EntityService  EntityType = "service"
	EntityExternal EntityType = "external"
)

type Ad struct {
	ID             int64      `json:"id" gorm:"column:id;primaryKey"`
	VendorID       int64      `json:"vendor_id" gorm:"column:vendor_id;index"`
	Title          string     `json:"title" gorm:"column:title"`
	EntityType     EntityType `json:"entity_type" gorm:"column:entity_type"`
	ListingID      *int64     `json:"listing_id,omitempty" gorm:"column:listing_id"` // set for service ads
	ImageURL       string     `json:"image_url,omitempty" gorm:"column:image_url"`
	TargetURL      string     `json:"target_url,omitempty" gorm:"column:target_url"`
	PricePerDay    float64    `json:"price_per_day" gorm:"column:price_per_day"`
	Status         Status     `json:"status" gorm:"column:status;index"`
	RejectedReason string     `json:"rejected_reason,omitempty" gorm:"column:rejected_reason"`
	Impressions    int64      `json:"impressions" gorm:"column:impressions"`
	Clicks         int64      `json:"clicks" gorm:"column:clicks"`
	StartDate      *time.Time `json:"start_date,omitempty" gorm:"column:start_date"`
	EndDate        *time.Time `json:"end_date,omitempty" gorm:"column:end_date"`
	CreatedAt      time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Ad) TableName() string { return "ads" }

// TimeSlot is a recurring weekly availability window owned by an ad:
// a weekday set plus an HH:MM time range and a priority (1 highest).
type TimeSlot struct {
	ID        int64     `json:"id" gorm:"column:id;primaryKey"`
	AdID      int64     `json:"ad_id" gorm:"column:ad_id;index"`
	StartTime string    `json:"start_time" gorm:"column:start_time"` // HH:MM
	EndTime   string    `json:"end_time" gorm:"column:end_time"`     // HH:MM
	Weekdays  []int     `json:"weekdays" gorm:"column:weekdays;serializer:json"`
	Priority  int       `json:"priority" gorm:"column:priority"`
	Active    bool      `json:"active" gorm:"column:active"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (TimeSlot) TableName() string { return "ad_time_slots" }

// CoversWeekday reports whether the slot recurs on the given weekday
// (0 = Sunday ... 6 = Saturday).
func (t TimeSlot) CoversWeekday(weekday int) bool {
	for _, d := range t.Weekdays {
		if d == weekday {
			return true
		}
	}
	return false
}

// Overlaps applies the half-open interval test against another HH:MM
// window: [start, end) windows overlap iff start < other.end and
// end > other.start. Lexicographic comparison is correct for
// zero-padded HH:MM strings.
func (t TimeSlot) Overlaps(start, end string) bool {
	return t.StartTime < end && t.EndTime > start
}
