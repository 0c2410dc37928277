// Package migrate builds the full schema: every domain table plus the
// constraints gorm's AutoMigrate cannot express.
package migrate

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"evorgs/internal/domain/ads"
	"evorgs/internal/domain/adscheduling"
	"evorgs/internal/domain/auth"
	"evorgs/internal/domain/booking"
	"evorgs/internal/domain/catalog"
	"evorgs/internal/domain/chat"
	"evorgs/internal/domain/pos"
)

// Run migrates all domain tables. On postgres it additionally installs
// the exclusion constraint that rejects overlapping live bookings for
// one listing, which is what backs the overbooking error mapping in
// the booking service.
func Run(db *gorm.DB) error {
	err := db.AutoMigrate(
		&auth.User{},
		&auth.Vendor{},
		&auth.Admin{},
		&auth.OTPCode{},
		&catalog.Listing{},
		&booking.Booking{},
		&ads.Ad{},
		&ads.TimeSlot{},
		&adscheduling.Schedule{},
		&adscheduling.ExecutionLog{},
		&pos.Transaction{},
		&pos.Expense{},
		&chat.Conversation{},
		&chat.ChatMessage{},
	)
	if err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return bookingExclusion(db)
	}
	return nil
}

func bookingExclusion(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}
	err := db.Exec(`ALTER TABLE bookings ADD CONSTRAINT listings_no_overbooking
		EXCLUDE USING gist (
			listing_id WITH =,
			tstzrange(start_time, end_time, '[)') WITH &&
		) WHERE (status <> 'cancelled')`).Error
	if err != nil && isDuplicateObject(err) {
		return nil
	}
	return err
}

// isDuplicateObject reports whether the constraint already exists, so
// Run stays idempotent across restarts.
func isDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "42710" || pgErr.Code == "42P07"
}
