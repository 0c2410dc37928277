package adscheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"evorgs/internal/domain/ads"
	"evorgs/internal/pkg/validator"
	"evorgs/internal/telemetry"
)

// AdCatalog is the slice of the ads repository the scheduler needs.
type AdCatalog interface {
	GetByID(ctx context.Context, id int64) (*ads.Ad, error)
	GetTimeSlot(ctx context.Context, id int64) (*ads.TimeSlot, error)
	GetTimeSlots(ctx context.Context, adID int64) ([]ads.TimeSlot, error)
	ReplaceTimeSlots(ctx context.Context, adID int64, slots []ads.TimeSlot) error
}

// Service orchestrates schedule lifecycle operations: validation,
// conflict detection and persistence.
type Service struct {
	repo       Repository
	adRepo     AdCatalog
	checker    *Checker
	logger     *zap.Logger
	maxRetries int
}

func NewService(repo Repository, adRepo AdCatalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		adRepo:     adRepo,
		checker:    NewChecker(repo),
		logger:     logger,
		maxRetries: DefaultMaxRetries,
	}
}

// SetMaxRetries overrides the retry budget stamped on new schedules.
func (s *Service) SetMaxRetries(n int) {
	if n > 0 {
		s.maxRetries = n
	}
}

// CheckAvailability is the read-only conflict probe exposed to
// clients planning a schedule.
func (s *Service) CheckAvailability(ctx context.Context, date, startTime, endTime string) (*AvailabilityResult, error) {
	return s.checker.CheckAvailability(ctx, date, startTime, endTime)
}

// ScheduleAdRun books one ad run: it validates the date, verifies the
// slot belongs to the ad, and runs the conflict check plus the insert
// inside a single database transaction so two concurrent calls cannot
// both observe "available" and double-book the window.
func (s *Service) ScheduleAdRun(ctx context.Context, adID, timeSlotID int64, date string) (*Schedule, error) {
	if !validator.ValidDate(date) {
		return nil, ErrValidation
	}

	if _, err := s.adRepo.GetByID(ctx, adID); err != nil {
		return nil, mapAdErr(err, ErrAdNotFound)
	}
	slot, err := s.adRepo.GetTimeSlot(ctx, timeSlotID)
	if err != nil {
		return nil, mapAdErr(err, ErrSlotNotFound)
	}
	if slot.AdID != adID {
		return nil, ErrSlotMismatch
	}

	var created *Schedule
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		res, err := NewChecker(tx).check(ctx, date, slot.StartTime, slot.EndTime, 0)
		if err != nil {
			return err
		}
		if !res.Available {
			telemetry.ScheduleConflicts.Inc()
			return &ConflictError{Date: date, ConflictingAds: res.ConflictingAds}
		}

		sched := &Schedule{
			AdID:       adID,
			TimeSlotID: timeSlotID,
			RunDate:    date,
			Status:     StatusScheduled,
			RetryCount: 0,
			MaxRetries: s.maxRetries,
		}
		if err := tx.Create(ctx, sched); err != nil {
			// The partial unique index on live (slot, date) pairs
			// rejects the insert when a concurrent transaction won
			// the window between our check and our commit.
			if isUniqueViolation(err) {
				telemetry.ScheduleConflicts.Inc()
				return &ConflictError{Date: date}
			}
			return err
		}
		created = sched

		return tx.AppendLog(ctx, &ExecutionLog{
			ScheduleID: sched.ID,
			Action:     "schedule_created",
			Status:     string(StatusScheduled),
			Message:    "run scheduled for " + date,
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CancelScheduledRun marks the schedule cancelled. A missing row or a
// zero-row update is NOT_FOUND.
func (s *Service) CancelScheduledRun(ctx context.Context, scheduleID int64) error {
	if err := s.repo.UpdateStatus(ctx, scheduleID, StatusCancelled); err != nil {
		return mapScheduleErr(err)
	}
	_ = s.repo.AppendLog(ctx, &ExecutionLog{
		ScheduleID: scheduleID,
		Action:     "schedule_cancelled",
		Status:     string(StatusCancelled),
	})
	return nil
}

// RescheduleAdRun moves a schedule to a new date (and optionally a
// new slot of the same ad), resets it to Scheduled, and re-runs the
// conflict check against the new window with the schedule's own row
// excluded.
func (s *Service) RescheduleAdRun(ctx context.Context, scheduleID int64, newDate string, newTimeSlotID *int64) (*Schedule, error) {
	if !validator.ValidDate(newDate) {
		return nil, ErrValidation
	}

	sched, err := s.repo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, mapScheduleErr(err)
	}

	slotID := sched.TimeSlotID
	if newTimeSlotID != nil {
		slotID = *newTimeSlotID
	}
	slot, err := s.adRepo.GetTimeSlot(ctx, slotID)
	if err != nil {
		return nil, mapAdErr(err, ErrSlotNotFound)
	}
	if slot.AdID != sched.AdID {
		return nil, ErrSlotMismatch
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		res, err := NewChecker(tx).check(ctx, newDate, slot.StartTime, slot.EndTime, scheduleID)
		if err != nil {
			return err
		}
		if !res.Available {
			telemetry.ScheduleConflicts.Inc()
			return &ConflictError{Date: newDate, ConflictingAds: res.ConflictingAds}
		}

		sched.RunDate = newDate
		sched.TimeSlotID = slotID
		sched.Status = StatusScheduled
		if err := tx.Update(ctx, sched); err != nil {
			if isUniqueViolation(err) {
				telemetry.ScheduleConflicts.Inc()
				return &ConflictError{Date: newDate}
			}
			return err
		}
		return tx.AppendLog(ctx, &ExecutionLog{
			ScheduleID: sched.ID,
			Action:     "schedule_rescheduled",
			Status:     string(StatusScheduled),
			Message:    "moved to " + newDate,
		})
	})
	if err != nil {
		return nil, err
	}
	return sched, nil
}

// RetryFailedSchedule clears retry bookkeeping and puts the schedule
// back in line. The current status is deliberately not checked.
func (s *Service) RetryFailedSchedule(ctx context.Context, scheduleID int64) (*Schedule, error) {
	sched, err := s.repo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, mapScheduleErr(err)
	}

	sched.RetryCount = 0
	sched.FailureReason = ""
	sched.NextRetryAt = nil
	sched.Status = StatusScheduled
	if err := s.repo.Update(ctx, sched); err != nil {
		return nil, err
	}

	_ = s.repo.AppendLog(ctx, &ExecutionLog{
		ScheduleID: sched.ID,
		Action:     "schedule_retry_reset",
		Status:     string(StatusScheduled),
	})
	return sched, nil
}

// PauseAdSchedule moves every Scheduled run of the ad to Paused, one
// row at a time.
func (s *Service) PauseAdSchedule(ctx context.Context, adID int64) (int, error) {
	return s.bulkTransition(ctx, adID, StatusScheduled, StatusPaused, "schedule_paused")
}

// ResumeAdSchedule moves every Paused run of the ad back to
// Scheduled, one row at a time.
func (s *Service) ResumeAdSchedule(ctx context.Context, adID int64) (int, error) {
	return s.bulkTransition(ctx, adID, StatusPaused, StatusScheduled, "schedule_resumed")
}

func (s *Service) bulkTransition(ctx context.Context, adID int64, from, to Status, action string) (int, error) {
	if _, err := s.adRepo.GetByID(ctx, adID); err != nil {
		return 0, mapAdErr(err, ErrAdNotFound)
	}

	rows, err := s.repo.ListByAdAndStatus(ctx, adID, from)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, row := range rows {
		if err := s.repo.UpdateStatus(ctx, row.ID, to); err != nil {
			s.logger.Warn("bulk transition failed",
				zap.Int64("schedule_id", row.ID),
				zap.String("to", string(to)),
				zap.Error(err),
			)
			continue
		}
		changed++
		_ = s.repo.AppendLog(ctx, &ExecutionLog{
			ScheduleID: row.ID,
			Action:     action,
			Status:     string(to),
		})
	}
	return changed, nil
}

// BulkScheduleAds replaces each ad's slots wholesale, then walks every
// day of the range and books a run for each day covered by a slot's
// weekday set. Per-item failures are recorded in the result list and
// never abort the batch.
func (s *Service) BulkScheduleAds(ctx context.Context, req BulkScheduleRequest) ([]BulkItemResult, error) {
	if !validator.ValidDate(req.StartDate) || !validator.ValidDate(req.EndDate) {
		return nil, ErrValidation
	}
	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	if end.Before(start) {
		return nil, ErrValidation
	}
	for _, in := range req.Slots {
		// Translate the ads sentinel so callers see this package's
		// validation error.
		if err := ads.ValidateSlotInput(in); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	var results []BulkItemResult
	for _, adID := range req.AdIDs {
		if _, err := s.adRepo.GetByID(ctx, adID); err != nil {
			results = append(results, BulkItemResult{
				AdID:      adID,
				Succeeded: false,
				Error:     ErrAdNotFound.Error(),
			})
			continue
		}

		newSlots := make([]ads.TimeSlot, 0, len(req.Slots))
		for _, in := range req.Slots {
			newSlots = append(newSlots, ads.TimeSlot{
				AdID:      adID,
				StartTime: in.StartTime,
				EndTime:   in.EndTime,
				Weekdays:  in.Weekdays,
				Priority:  in.Priority,
				Active:    true,
			})
		}
		if err := s.adRepo.ReplaceTimeSlots(ctx, adID, newSlots); err != nil {
			results = append(results, BulkItemResult{
				AdID:      adID,
				Succeeded: false,
				Error:     err.Error(),
			})
			continue
		}

		saved, err := s.adRepo.GetTimeSlots(ctx, adID)
		if err != nil {
			results = append(results, BulkItemResult{
				AdID:      adID,
				Succeeded: false,
				Error:     err.Error(),
			})
			continue
		}

		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			weekday := int(day.Weekday())
			date := day.Format("2006-01-02")

			for _, slot := range saved {
				if !slot.CoversWeekday(weekday) {
					continue
				}

				item := BulkItemResult{AdID: adID, Date: date, TimeSlotID: slot.ID}
				sched, err := s.ScheduleAdRun(ctx, adID, slot.ID, date)
				if err != nil {
					item.Error = err.Error()
					s.logger.Warn("bulk schedule item failed",
						zap.Int64("ad_id", adID),
						zap.String("date", date),
						zap.Error(err),
					)
				} else {
					item.Succeeded = true
					item.ScheduleID = sched.ID
				}
				results = append(results, item)
			}
		}
	}
	return results, nil
}

func (s *Service) GetSchedule(ctx context.Context, id int64) (*Schedule, error) {
	sched, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapScheduleErr(err)
	}
	return sched, nil
}

func (s *Service) SchedulesForAd(ctx context.Context, adID int64) ([]Schedule, error) {
	if _, err := s.adRepo.GetByID(ctx, adID); err != nil {
		return nil, mapAdErr(err, ErrAdNotFound)
	}
	return s.repo.ListByAd(ctx, adID)
}

func (s *Service) ExecutionLogs(ctx context.Context, scheduleID int64, limit int) ([]ExecutionLog, error) {
	if _, err := s.repo.GetByID(ctx, scheduleID); err != nil {
		return nil, mapScheduleErr(err)
	}
	return s.repo.ListLogs(ctx, scheduleID, limit)
}

func mapScheduleErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func mapAdErr(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// isUniqueViolation matches duplicate-key errors from both backing
// drivers: SQLSTATE 23505 on postgres, the constraint message on
// sqlite.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
