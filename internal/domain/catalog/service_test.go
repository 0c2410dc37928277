package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evorgs/internal/database"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Listing{}))
	return NewService(NewRepository(db))
}

func validRequest() CreateListingRequest {
	return CreateListingRequest{
		Title:     "Lakeside Farmhouse",
		Type:      "farmhouse",
		City:      "Lahore",
		Price:     500,
		PriceUnit: "per_event",
		Capacity:  200,
	}
}

func TestCreateListing(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	l, err := svc.CreateListing(ctx, 1, validRequest())
	require.NoError(t, err)
	assert.Equal(t, ListingPending, l.Status)
	assert.True(t, l.Active)
	assert.NotZero(t, l.ID)
}

func TestCreateListing_Validation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	req := validRequest()
	req.PriceUnit = "per_kilo"
	_, err := svc.CreateListing(ctx, 1, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = validRequest()
	req.Price = 0
	_, err = svc.CreateListing(ctx, 1, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateListing_Ownership(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	l, err := svc.CreateListing(ctx, 1, validRequest())
	require.NoError(t, err)

	title := "Renamed"
	_, err = svc.UpdateListing(ctx, 2, l.ID, UpdateListingRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateListing(ctx, 1, l.ID, UpdateListingRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	bad := -5.0
	_, err = svc.UpdateListing(ctx, 1, l.ID, UpdateListingRequest{Price: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteListing(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	l, err := svc.CreateListing(ctx, 1, validRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteListing(ctx, 2, l.ID), ErrForbidden)
	require.NoError(t, svc.DeleteListing(ctx, 1, l.ID))

	_, err = svc.GetListing(ctx, l.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewFlow(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	l, err := svc.CreateListing(ctx, 1, validRequest())
	require.NoError(t, err)

	pending, err := svc.PendingListings(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := svc.ApproveListing(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, ListingApproved, approved.Status)

	// Review is one-shot: an approved listing cannot be rejected.
	_, err = svc.RejectListing(ctx, l.ID, "late")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	pending, err = svc.PendingListings(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRejectListing_KeepsReason(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	l, err := svc.CreateListing(ctx, 1, validRequest())
	require.NoError(t, err)

	rejected, err := svc.RejectListing(ctx, l.ID, "incomplete photos")
	require.NoError(t, err)
	assert.Equal(t, ListingRejected, rejected.Status)
	assert.Equal(t, "incomplete photos", rejected.RejectedReason)
}

func TestSearch(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	seed := func(typ, city string, price float64, approve bool) {
		req := validRequest()
		req.Type = typ
		req.City = city
		req.Price = price
		l, err := svc.CreateListing(ctx, 1, req)
		require.NoError(t, err)
		if approve {
			_, err = svc.ApproveListing(ctx, l.ID)
			require.NoError(t, err)
		}
	}

	seed("farmhouse", "Lahore", 500, true)
	seed("farmhouse", "Karachi", 900, true)
	seed("venue", "Lahore", 300, true)
	seed("farmhouse", "Lahore", 400, false) // still pending, invisible

	results, total, err := svc.Search(ctx, SearchFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, results, 3)

	results, total, err = svc.Search(ctx, SearchFilter{Type: "farmhouse", City: "Lahore"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "Lahore", results[0].City)

	results, total, err = svc.Search(ctx, SearchFilter{MaxPrice: 350})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "venue", results[0].Type)
}

func TestMyListings(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateListing(ctx, 1, validRequest())
	require.NoError(t, err)
	_, err = svc.CreateListing(ctx, 2, validRequest())
	require.NoError(t, err)

	mine, err := svc.MyListings(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
