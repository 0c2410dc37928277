package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"evorgs/internal/domain/catalog"
)

type Service struct {
	bookings Repository
	listings ListingReader
	users    UserDirectory
	notifs   NotificationSender
	logger   *zap.Logger
}

func NewService(bookings Repository, listings ListingReader, users UserDirectory, notifs NotificationSender, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		bookings: bookings,
		listings: listings,
		users:    users,
		notifs:   notifs,
		logger:   logger,
	}
}

func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*Booking, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrValidation
	}
	if req.StartTime.Before(time.Now()) {
		return nil, ErrValidation
	}

	l, err := s.listings.GetListing(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if l.Status != catalog.ListingApproved || !l.Active {
		return nil, ErrNotAvailable
	}

	total := totalPrice(l, req.StartTime, req.EndTime, req.GuestCount)

	b := &Booking{
		ListingID:     req.ListingID,
		VendorID:      l.VendorID,
		UserID:        userID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		GuestCount:    req.GuestCount,
		TotalPrice:    total,
		Status:        StatusPending,
		PaymentStatus: PaymentUnpaid,
		Notes:         req.Notes,
	}

	err = s.bookings.Transaction(ctx, func(tx Repository) error {
		ok, err := tx.CheckAvailability(ctx, req.ListingID, req.StartTime, req.EndTime)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotAvailable
		}
		// The listings_no_overbooking exclusion constraint rejects the
		// insert when a concurrent booking slipped past the check.
		if err := tx.Create(ctx, b); err != nil {
			if isOverlapViolation(err) {
				return ErrOverbooking
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// isOverlapViolation matches the database-side double-booking rejects:
// 23P01 from the postgres exclusion constraint, 23505 from a plain
// unique index.
func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505")
}

// ConfirmBooking is a vendor action; only pending bookings can be
// confirmed.
func (s *Service) ConfirmBooking(ctx context.Context, vendorID, bookingID int64) (*Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.VendorID != vendorID {
		return nil, ErrForbidden
	}
	if b.Status != StatusPending {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, StatusConfirmed); err != nil {
		return nil, err
	}

	if s.notifs != nil && s.users != nil {
		if email, err := s.users.GetUserEmail(ctx, b.UserID); err == nil {
			_ = s.notifs.SendBookingConfirmation(ctx, email, b.ID)
		}
	}

	return s.get(ctx, bookingID)
}

// CancelBooking may be called by the booking's user or its vendor.
// Completed and already-cancelled bookings cannot be cancelled.
func (s *Service) CancelBooking(ctx context.Context, principalID int64, isVendor bool, bookingID int64, reason string) (*Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if isVendor {
		if b.VendorID != principalID {
			return nil, ErrForbidden
		}
	} else if b.UserID != principalID {
		return nil, ErrForbidden
	}

	if b.Status == StatusCancelled || b.Status == StatusCompleted {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.CancelWithReason(ctx, bookingID, reason); err != nil {
		return nil, err
	}
	return s.get(ctx, bookingID)
}

func (s *Service) MyBookings(ctx context.Context, userID int64, limit, offset int) ([]Booking, error) {
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) VendorBookings(ctx context.Context, vendorID int64, limit, offset int) ([]Booking, error) {
	return s.bookings.ListByVendor(ctx, vendorID, limit, offset)
}

func (s *Service) GetBooking(ctx context.Context, principalID int64, isVendor bool, bookingID int64) (*Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if isVendor {
		if b.VendorID != principalID {
			return nil, ErrForbidden
		}
	} else if b.UserID != principalID {
		return nil, ErrForbidden
	}
	return b, nil
}

// RecordPayment is a vendor action updating the paid amount; paying
// the full total marks the booking paid.
func (s *Service) RecordPayment(ctx context.Context, vendorID, bookingID int64, amount float64) (*Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.VendorID != vendorID {
		return nil, ErrForbidden
	}
	if amount <= 0 {
		return nil, ErrValidation
	}

	paid := b.AmountPaid + amount
	if paid > b.TotalPrice {
		return nil, ErrValidation
	}

	status := PaymentPartial
	if paid == b.TotalPrice {
		status = PaymentPaid
	}
	if err := s.bookings.RecordPayment(ctx, bookingID, paid, status); err != nil {
		return nil, err
	}
	return s.get(ctx, bookingID)
}

// SendPaymentReminders emails every confirmed-but-unpaid booking
// starting within the window. Delivery failures are soft errors.
func (s *Service) SendPaymentReminders(ctx context.Context, window time.Duration) (int, error) {
	due, err := s.bookings.ListUnpaidStartingBefore(ctx, time.Now().Add(window))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, b := range due {
		email, err := s.users.GetUserEmail(ctx, b.UserID)
		if err != nil {
			s.logger.Warn("payment reminder: no email", zap.Int64("booking_id", b.ID), zap.Error(err))
			continue
		}
		if s.notifs.SendPaymentReminder(ctx, email, b.ID, b.TotalPrice-b.AmountPaid) {
			sent++
		}
	}
	return sent, nil
}

func totalPrice(l *catalog.Listing, start, end time.Time, guests int) float64 {
	var total float64
	switch l.PriceUnit {
	case catalog.PerHour:
		total = end.Sub(start).Hours() * l.Price
	case catalog.PerPerson:
		if guests < 1 {
			guests = 1
		}
		total = float64(guests) * l.Price
	default:
		total = l.Price
	}
	return math.Round(total*100) / 100
}

func (s *Service) get(ctx context.Context, id int64) (*Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
