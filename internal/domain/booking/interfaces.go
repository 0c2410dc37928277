package booking

import (
	"context"

	"evorgs/internal/domain/catalog"
)

// ListingReader is the slice of the catalog service the booking flow
// needs.
type ListingReader interface {
	GetListing(ctx context.Context, id int64) (*catalog.Listing, error)
}

// UserDirectory resolves user contact details for notifications.
type UserDirectory interface {
	GetUserEmail(ctx context.Context, userID int64) (string, error)
}

// NotificationSender is the fire-and-forget notification boundary.
type NotificationSender interface {
	SendBookingConfirmation(ctx context.Context, email string, bookingID int64) bool
	SendPaymentReminder(ctx context.Context, email string, bookingID int64, amountDue float64) bool
}
