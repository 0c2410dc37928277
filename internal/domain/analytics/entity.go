package analytics

// DashboardCounts is the admin landing-page summary.
type DashboardCounts struct {
	Users           int64   `json:"users"`
	Vendors         int64   `json:"vendors"`
	PendingVendors  int64   `json:"pending_vendors"`
	Listings        int64   `json:"listings"`
	PendingListings int64   `json:"pending_listings"`
	Bookings        int64   `json:"bookings"`
	ActiveAds       int64   `json:"active_ads"`
	TotalRevenue    float64 `json:"total_revenue"`
}

// AdPerformance ranks an ad by click-through rate. CTR is
// clicks/impressions as a percentage; an ad with zero impressions
// reports 0, never an error.
type AdPerformance struct {
	AdID        int64   `json:"ad_id"`
	Title       string  `json:"title"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
}

// VendorRevenue summarizes one vendor's paid bookings.
type VendorRevenue struct {
	VendorID     int64   `json:"vendor_id"`
	BookingCount int64   `json:"booking_count"`
	PaidCount    int64   `json:"paid_count"`
	TotalRevenue float64 `json:"total_revenue"`
}
