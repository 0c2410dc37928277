package booking

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"evorgs/internal/database"
	"evorgs/internal/domain/catalog"
)

// Mock repositories

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepository) CheckAvailability(ctx context.Context, listingID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, listingID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]Booking, error) {
	args := m.Called(ctx, vendorID, limit, offset)
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) CancelWithReason(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockBookingRepository) RecordPayment(ctx context.Context, id int64, amountPaid float64, status PaymentStatus) error {
	args := m.Called(ctx, id, amountPaid, status)
	return args.Error(0)
}

func (m *MockBookingRepository) ListUnpaidStartingBefore(ctx context.Context, deadline time.Time) ([]Booking, error) {
	args := m.Called(ctx, deadline)
	return args.Get(0).([]Booking), args.Error(1)
}

// Transaction executes the callback against the mock itself, so the
// expectations set on the mock cover the transactional path too.
func (m *MockBookingRepository) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(m)
}

type MockListingReader struct {
	mock.Mock
}

func (m *MockListingReader) GetListing(ctx context.Context, id int64) (*catalog.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Listing), args.Error(1)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetUserEmail(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) SendBookingConfirmation(ctx context.Context, email string, bookingID int64) bool {
	args := m.Called(ctx, email, bookingID)
	return args.Bool(0)
}

func (m *MockNotificationSender) SendPaymentReminder(ctx context.Context, email string, bookingID int64, amountDue float64) bool {
	args := m.Called(ctx, email, bookingID, amountDue)
	return args.Bool(0)
}

func newBookingService() (*Service, *MockBookingRepository, *MockListingReader, *MockUserDirectory, *MockNotificationSender) {
	bookings := new(MockBookingRepository)
	listings := new(MockListingReader)
	users := new(MockUserDirectory)
	notifs := new(MockNotificationSender)
	return NewService(bookings, listings, users, notifs, nil), bookings, listings, users, notifs
}

func approvedListing(id, vendorID int64) *catalog.Listing {
	return &catalog.Listing{
		ID: id, VendorID: vendorID, Title: "venue",
		Price: 100, PriceUnit: catalog.PerHour,
		Status: catalog.ListingApproved, Active: true,
	}
}

func futureWindow() (time.Time, time.Time) {
	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	return start, start.Add(3 * time.Hour)
}

func TestCreateBooking_Success(t *testing.T) {
	svc, bookings, listings, _, _ := newBookingService()
	start, end := futureWindow()

	listings.On("GetListing", mock.Anything, int64(5)).Return(approvedListing(5, 2), nil)
	bookings.On("CheckAvailability", mock.Anything, int64(5), start, end).Return(true, nil)
	bookings.On("Create", mock.Anything, mock.AnythingOfType("*booking.Booking")).Return(nil)

	b, err := svc.CreateBooking(context.Background(), 1, CreateBookingRequest{
		ListingID: 5, StartTime: start, EndTime: end,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, PaymentUnpaid, b.PaymentStatus)
	assert.Equal(t, int64(2), b.VendorID)
	assert.Equal(t, float64(300), b.TotalPrice) // 3 hours at 100/hour
}

func TestCreateBooking_RejectsPastStart(t *testing.T) {
	svc, bookings, _, _, _ := newBookingService()

	start := time.Now().Add(-time.Hour)
	_, err := svc.CreateBooking(context.Background(), 1, CreateBookingRequest{
		ListingID: 5, StartTime: start, EndTime: start.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrValidation)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_RejectsInvertedWindow(t *testing.T) {
	svc, _, _, _, _ := newBookingService()

	start, end := futureWindow()
	_, err := svc.CreateBooking(context.Background(), 1, CreateBookingRequest{
		ListingID: 5, StartTime: end, EndTime: start,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_UnapprovedListing(t *testing.T) {
	svc, _, listings, _, _ := newBookingService()
	start, end := futureWindow()

	l := approvedListing(5, 2)
	l.Status = catalog.ListingPending
	listings.On("GetListing", mock.Anything, int64(5)).Return(l, nil)

	_, err := svc.CreateBooking(context.Background(), 1, CreateBookingRequest{
		ListingID: 5, StartTime: start, EndTime: end,
	})
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestCreateBooking_SlotTaken(t *testing.T) {
	svc, bookings, listings, _, _ := newBookingService()
	start, end := futureWindow()

	listings.On("GetListing", mock.Anything, int64(5)).Return(approvedListing(5, 2), nil)
	bookings.On("CheckAvailability", mock.Anything, int64(5), start, end).Return(false, nil)

	_, err := svc.CreateBooking(context.Background(), 1, CreateBookingRequest{
		ListingID: 5, StartTime: start, EndTime: end,
	})
	assert.ErrorIs(t, err, ErrNotAvailable)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_LostInsertRaceMapsToOverbooking(t *testing.T) {
	// The availability check passes, but the exclusion constraint
	// rejects the insert because a concurrent booking committed first.
	for _, code := range []string{"23P01", "23505"} {
		svc, bookings, listings, _, _ := newBookingService()
		start, end := futureWindow()

		listings.On("GetListing", mock.Anything, int64(5)).Return(approvedListing(5, 2), nil)
		bookings.On("CheckAvailability", mock.Anything, int64(5), start, end).Return(true, nil)
		bookings.On("Create", mock.Anything, mock.AnythingOfType("*booking.Booking")).
			Return(&pgconn.PgError{Code: code, ConstraintName: "listings_no_overbooking"})

		_, err := svc.CreateBooking(context.Background(), 1, CreateBookingRequest{
			ListingID: 5, StartTime: start, EndTime: end,
		})
		assert.ErrorIs(t, err, ErrOverbooking)
	}
}

func TestConfirmBooking_SendsEmail(t *testing.T) {
	svc, bookings, _, users, notifs := newBookingService()

	pending := &Booking{ID: 9, VendorID: 2, UserID: 1, Status: StatusPending}
	confirmed := &Booking{ID: 9, VendorID: 2, UserID: 1, Status: StatusConfirmed}
	bookings.On("GetByID", mock.Anything, int64(9)).Return(pending, nil).Once()
	bookings.On("UpdateStatus", mock.Anything, int64(9), StatusConfirmed).Return(nil)
	users.On("GetUserEmail", mock.Anything, int64(1)).Return("user@example.com", nil)
	notifs.On("SendBookingConfirmation", mock.Anything, "user@example.com", int64(9)).Return(true)
	bookings.On("GetByID", mock.Anything, int64(9)).Return(confirmed, nil)

	b, err := svc.ConfirmBooking(context.Background(), 2, 9)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, b.Status)
	notifs.AssertExpectations(t)
}

func TestConfirmBooking_WrongVendor(t *testing.T) {
	svc, bookings, _, _, _ := newBookingService()

	bookings.On("GetByID", mock.Anything, int64(9)).Return(&Booking{ID: 9, VendorID: 2, Status: StatusPending}, nil)

	_, err := svc.ConfirmBooking(context.Background(), 3, 9)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestConfirmBooking_OnlyPending(t *testing.T) {
	svc, bookings, _, _, _ := newBookingService()

	bookings.On("GetByID", mock.Anything, int64(9)).Return(&Booking{ID: 9, VendorID: 2, Status: StatusConfirmed}, nil)

	_, err := svc.ConfirmBooking(context.Background(), 2, 9)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestCancelBooking_ByUserAndVendor(t *testing.T) {
	svc, bookings, _, _, _ := newBookingService()

	b := &Booking{ID: 9, VendorID: 2, UserID: 1, Status: StatusPending}
	bookings.On("GetByID", mock.Anything, int64(9)).Return(b, nil)
	bookings.On("CancelWithReason", mock.Anything, int64(9), "plans changed").Return(nil)

	_, err := svc.CancelBooking(context.Background(), 1, false, 9, "plans changed")
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), 2, true, 9, "plans changed")
	require.NoError(t, err)

	// A stranger can do neither.
	_, err = svc.CancelBooking(context.Background(), 42, false, 9, "plans changed")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelBooking_CompletedIsFinal(t *testing.T) {
	svc, bookings, _, _, _ := newBookingService()

	bookings.On("GetByID", mock.Anything, int64(9)).Return(&Booking{ID: 9, UserID: 1, Status: StatusCompleted}, nil)

	_, err := svc.CancelBooking(context.Background(), 1, false, 9, "too late")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestRecordPayment_PartialThenPaid(t *testing.T) {
	svc, bookings, _, _, _ := newBookingService()

	b := &Booking{ID: 9, VendorID: 2, UserID: 1, TotalPrice: 300, AmountPaid: 0, Status: StatusConfirmed, PaymentStatus: PaymentUnpaid}
	bookings.On("GetByID", mock.Anything, int64(9)).Return(b, nil)
	bookings.On("RecordPayment", mock.Anything, int64(9), float64(100), PaymentPartial).Return(nil).Once()

	_, err := svc.RecordPayment(context.Background(), 2, 9, 100)
	require.NoError(t, err)

	b.AmountPaid = 100
	bookings.On("RecordPayment", mock.Anything, int64(9), float64(300), PaymentPaid).Return(nil).Once()
	_, err = svc.RecordPayment(context.Background(), 2, 9, 200)
	require.NoError(t, err)

	// Overpayment is rejected.
	_, err = svc.RecordPayment(context.Background(), 2, 9, 500)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetBooking_NotFound(t *testing.T) {
	svc, bookings, _, _, _ := newBookingService()

	bookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetBooking(context.Background(), 1, false, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_TransactionRollsBack(t *testing.T) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Booking{}))
	repo := NewRepository(db)
	ctx := context.Background()

	start := time.Now().Add(24 * time.Hour)
	err = repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.Create(ctx, &Booking{
			ListingID: 5, VendorID: 2, UserID: 1,
			StartTime: start, EndTime: start.Add(time.Hour),
			Status: StatusPending, PaymentStatus: PaymentUnpaid,
		}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&Booking{}).Count(&count).Error)
	assert.Zero(t, count)
}
