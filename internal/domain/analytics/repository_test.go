package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"evorgs/internal/database"
	"evorgs/internal/domain/ads"
	"evorgs/internal/domain/auth"
	"evorgs/internal/domain/booking"
	"evorgs/internal/domain/catalog"
)

func setupRepo(t *testing.T) (Repository, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&auth.User{}, &auth.Vendor{},
		&catalog.Listing{}, &booking.Booking{}, &ads.Ad{},
	))
	return NewRepository(db), db
}

func TestDashboardCounts(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&auth.User{Email: "u1@example.com"}).Error)
	require.NoError(t, db.Create(&auth.User{Email: "u2@example.com"}).Error)
	require.NoError(t, db.Create(&auth.Vendor{Email: "v1@example.com", Status: auth.VendorApproved}).Error)
	require.NoError(t, db.Create(&auth.Vendor{Email: "v2@example.com", Status: auth.VendorPending}).Error)
	require.NoError(t, db.Create(&catalog.Listing{VendorID: 1, Status: catalog.ListingApproved}).Error)
	require.NoError(t, db.Create(&catalog.Listing{VendorID: 1, Status: catalog.ListingPending}).Error)
	require.NoError(t, db.Create(&booking.Booking{VendorID: 1, AmountPaid: 300}).Error)
	require.NoError(t, db.Create(&booking.Booking{VendorID: 1, AmountPaid: 150}).Error)
	require.NoError(t, db.Create(&ads.Ad{VendorID: 1, Title: "live", Status: ads.StatusActive}).Error)
	require.NoError(t, db.Create(&ads.Ad{VendorID: 1, Title: "draft", Status: ads.StatusPending}).Error)

	d, err := repo.DashboardCounts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, d.Users)
	assert.EqualValues(t, 2, d.Vendors)
	assert.EqualValues(t, 1, d.PendingVendors)
	assert.EqualValues(t, 2, d.Listings)
	assert.EqualValues(t, 1, d.PendingListings)
	assert.EqualValues(t, 2, d.Bookings)
	assert.EqualValues(t, 1, d.ActiveAds)
	assert.Equal(t, 450.0, d.TotalRevenue)
}

func TestTopAdsByCTR(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	seed := func(title string, impressions, clicks int64) {
		require.NoError(t, db.Create(&ads.Ad{
			VendorID: 1, Title: title,
			Impressions: impressions, Clicks: clicks,
		}).Error)
	}
	seed("strong", 100, 20) // 20%
	seed("weak", 1000, 10)  // 1%
	seed("mid", 200, 10)    // 5%
	seed("clicks-only", 0, 5)
	seed("untouched", 0, 0) // excluded entirely

	top, err := repo.TopAdsByCTR(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 4)
	assert.Equal(t, "strong", top[0].Title)
	assert.Equal(t, 20.0, top[0].CTR)
	assert.Equal(t, "mid", top[1].Title)

	// Zero impressions never divides; the ad just ranks last.
	last := top[len(top)-1]
	assert.Equal(t, "clicks-only", last.Title)
	assert.Zero(t, last.CTR)

	top, err = repo.TopAdsByCTR(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestVendorRevenue(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&booking.Booking{VendorID: 1, AmountPaid: 300, PaymentStatus: booking.PaymentPaid}).Error)
	require.NoError(t, db.Create(&booking.Booking{VendorID: 1, AmountPaid: 100, PaymentStatus: booking.PaymentPartial}).Error)
	require.NoError(t, db.Create(&booking.Booking{VendorID: 2, AmountPaid: 999, PaymentStatus: booking.PaymentPaid}).Error)

	v, err := repo.VendorRevenue(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, v.BookingCount)
	assert.EqualValues(t, 1, v.PaidCount)
	assert.Equal(t, 400.0, v.TotalRevenue)
}
