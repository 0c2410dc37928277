package booking

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	CheckAvailability(ctx context.Context, listingID int64, start, end time.Time) (bool, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Booking, error)
	ListByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]Booking, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	CancelWithReason(ctx context.Context, id int64, reason string) error
	RecordPayment(ctx context.Context, id int64, amountPaid float64, status PaymentStatus) error
	ListUnpaidStartingBefore(ctx context.Context, deadline time.Time) ([]Booking, error)
	Transaction(ctx context.Context, fn func(Repository) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// Transaction runs fn against a Repository bound to one transaction.
func (r *repository) Transaction(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	var b Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// CheckAvailability counts non-cancelled bookings whose half-open
// interval overlaps [start, end).
func (r *repository) CheckAvailability(ctx context.Context, listingID int64, start, end time.Time) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("listing_id = ?", listingID).
		Where("status NOT IN ?", []Status{StatusCancelled}).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt == 0, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Booking, error) {
	return r.list(ctx, "user_id", userID, limit, offset)
}

func (r *repository) ListByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]Booking, error) {
	return r.list(ctx, "vendor_id", vendorID, limit, offset)
}

func (r *repository) list(ctx context.Context, col string, id int64, limit, offset int) ([]Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []Booking
	err := r.db.WithContext(ctx).
		Where(col+" = ?", id).
		Order("start_time DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tx := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) CancelWithReason(ctx context.Context, id int64, reason string) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        StatusCancelled,
			"cancel_reason": reason,
			"cancelled_at":  &now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) RecordPayment(ctx context.Context, id int64, amountPaid float64, status PaymentStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"amount_paid":    amountPaid,
			"payment_status": status,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUnpaidStartingBefore returns confirmed bookings with an open
// balance starting before deadline. Used for payment reminders.
func (r *repository) ListUnpaidStartingBefore(ctx context.Context, deadline time.Time) ([]Booking, error) {
	var out []Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusConfirmed).
		Where("payment_status IN ?", []PaymentStatus{PaymentUnpaid, PaymentPartial}).
		Where("start_time <= ?", deadline).
		Where("start_time > ?", time.Now()).
		Find(&out).Error
	return out, err
}
