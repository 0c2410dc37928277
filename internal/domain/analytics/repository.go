package analytics

import (
	"context"

	"gorm.io/gorm"

	"evorgs/internal/domain/ads"
	"evorgs/internal/domain/auth"
	"evorgs/internal/domain/booking"
	"evorgs/internal/domain/catalog"
)

type Repository interface {
	DashboardCounts(ctx context.Context) (*DashboardCounts, error)
	TopAdsByCTR(ctx context.Context, limit int) ([]AdPerformance, error)
	VendorRevenue(ctx context.Context, vendorID int64) (*VendorRevenue, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) DashboardCounts(ctx context.Context) (*DashboardCounts, error) {
	d := &DashboardCounts{}
	db := r.db.WithContext(ctx)

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&d.Users, db.Model(&auth.User{})},
		{&d.Vendors, db.Model(&auth.Vendor{})},
		{&d.PendingVendors, db.Model(&auth.Vendor{}).Where("status = ?", auth.VendorPending)},
		{&d.Listings, db.Model(&catalog.Listing{})},
		{&d.PendingListings, db.Model(&catalog.Listing{}).Where("status = ?", catalog.ListingPending)},
		{&d.Bookings, db.Model(&booking.Booking{})},
		{&d.ActiveAds, db.Model(&ads.Ad{}).Where("status = ?", ads.StatusActive)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	err := db.Model(&booking.Booking{}).
		Select("COALESCE(SUM(amount_paid), 0)").
		Scan(&d.TotalRevenue).Error
	if err != nil {
		return nil, err
	}
	return d, nil
}

// TopAdsByCTR ranks in Go rather than SQL so the divide-by-zero guard
// stays in one place and the query stays portable.
func (r *repository) TopAdsByCTR(ctx context.Context, limit int) ([]AdPerformance, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var rows []ads.Ad
	err := r.db.WithContext(ctx).
		Where("impressions > 0 OR clicks > 0").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]AdPerformance, 0, len(rows))
	for _, a := range rows {
		out = append(out, AdPerformance{
			AdID:        a.ID,
			Title:       a.Title,
			Impressions: a.Impressions,
			Clicks:      a.Clicks,
			CTR:         ctr(a.Clicks, a.Impressions),
		})
	}

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].CTR > out[j-1].CTR; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *repository) VendorRevenue(ctx context.Context, vendorID int64) (*VendorRevenue, error) {
	v := &VendorRevenue{VendorID: vendorID}
	db := r.db.WithContext(ctx)

	err := db.Model(&booking.Booking{}).
		Where("vendor_id = ?", vendorID).
		Count(&v.BookingCount).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&booking.Booking{}).
		Where("vendor_id = ? AND payment_status = ?", vendorID, booking.PaymentPaid).
		Count(&v.PaidCount).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&booking.Booking{}).
		Select("COALESCE(SUM(amount_paid), 0)").
		Where("vendor_id = ?", vendorID).
		Scan(&v.TotalRevenue).Error
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ctr returns the click-through rate as a percentage. Zero
// impressions yields 0, never a division error.
func ctr(clicks, impressions int64) float64 {
	if impressions == 0 {
		return 0
	}
	return float64(clicks) / float64(impressions) * 100
}
