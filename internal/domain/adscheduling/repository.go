package adscheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"evorgs/internal/domain/ads"
)

// BookedSlot pairs a time slot with its owning ad for conflict
// inspection.
type BookedSlot struct {
	Slot ads.TimeSlot
	Ad   ads.Ad
}

type Repository interface {
	Create(ctx context.Context, s *Schedule) error
	GetByID(ctx context.Context, id int64) (*Schedule, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	Update(ctx context.Context, s *Schedule) error
	ListByAd(ctx context.Context, adID int64) ([]Schedule, error)
	ListByAdAndStatus(ctx context.Context, adID int64, status Status) ([]Schedule, error)
	ListDue(ctx context.Context, today string, now time.Time, limit int) ([]Schedule, error)

	// FindBookedSlots returns the active slots of Active ads holding
	// a Scheduled or Running schedule row on date. excludeScheduleID
	// drops one schedule from consideration (used when rescheduling a
	// row against itself); zero excludes nothing.
	FindBookedSlots(ctx context.Context, date string, excludeScheduleID int64) ([]BookedSlot, error)

	AppendLog(ctx context.Context, log *ExecutionLog) error
	ListLogs(ctx context.Context, scheduleID int64, limit int) ([]ExecutionLog, error)

	// Transaction runs fn against a repository bound to a database
	// transaction. Used to make conflict-check-then-insert atomic.
	Transaction(ctx context.Context, fn func(Repository) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Schedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Schedule, error) {
	var s Schedule
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tx := r.db.WithContext(ctx).
		Model(&Schedule{}).
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

func (r *repository) Update(ctx context.Context, s *Schedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) ListByAd(ctx context.Context, adID int64) ([]Schedule, error) {
	var out []Schedule
	err := r.db.WithContext(ctx).
		Where("ad_id = ?", adID).
		Order("run_date ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) ListByAdAndStatus(ctx context.Context, adID int64, status Status) ([]Schedule, error) {
	var out []Schedule
	err := r.db.WithContext(ctx).
		Where("ad_id = ? AND status = ?", adID, status).
		Order("run_date ASC").
		Find(&out).Error
	return out, err
}

// ListDue returns Scheduled rows whose run date has arrived and whose
// retry backoff, if any, has elapsed.
func (r *repository) ListDue(ctx context.Context, today string, now time.Time, limit int) ([]Schedule, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []Schedule
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusScheduled).
		Where("run_date <= ?", today).
		Where("next_retry_at IS NULL OR next_retry_at <= ?", now).
		Order("run_date ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *repository) FindBookedSlots(ctx context.Context, date string, excludeScheduleID int64) ([]BookedSlot, error) {
	q := r.db.WithContext(ctx).
		Where("run_date = ?", date).
		Where("status IN ?", []Status{StatusScheduled, StatusRunning})
	if excludeScheduleID != 0 {
		q = q.Where("id <> ?", excludeScheduleID)
	}

	var rows []Schedule
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	slotIDs := make([]int64, 0, len(rows))
	for _, s := range rows {
		slotIDs = append(slotIDs, s.TimeSlotID)
	}

	var slots []ads.TimeSlot
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND active = ?", slotIDs, true).
		Find(&slots).Error; err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, nil
	}

	adIDs := make([]int64, 0, len(slots))
	for _, sl := range slots {
		adIDs = append(adIDs, sl.AdID)
	}

	var owners []ads.Ad
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND status = ?", adIDs, ads.StatusActive).
		Find(&owners).Error; err != nil {
		return nil, err
	}

	byID := make(map[int64]ads.Ad, len(owners))
	for _, a := range owners {
		byID[a.ID] = a
	}

	out := make([]BookedSlot, 0, len(slots))
	for _, sl := range slots {
		owner, ok := byID[sl.AdID]
		if !ok {
			continue // owning ad not Active
		}
		out = append(out, BookedSlot{Slot: sl, Ad: owner})
	}
	return out, nil
}

func (r *repository) AppendLog(ctx context.Context, log *ExecutionLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) ListLogs(ctx context.Context, scheduleID int64, limit int) ([]ExecutionLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []ExecutionLog
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *repository) Transaction(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}
