package adscheduling

import (
	"context"
	"time"

	"evorgs/internal/domain/ads"
	"evorgs/internal/pkg/validator"
)

// AvailabilityResult is the conflict checker's verdict for one
// candidate window. ConflictingAds is populated for caller
// diagnostics when Available is false.
type AvailabilityResult struct {
	Available      bool     `json:"available"`
	ConflictingAds []ads.Ad `json:"conflicting_ads,omitempty"`
}

// Checker decides whether a candidate [start, end) window on a date
// collides with any booked slot. It is a pure read: callers that need
// check-then-insert atomicity must run it inside a repository
// transaction.
type Checker struct {
	repo Repository
}

func NewChecker(repo Repository) *Checker {
	return &Checker{repo: repo}
}

// CheckAvailability reports whether the window is free on the date.
// A slot conflicts when its owning ad is Active, the slot itself is
// active, its weekday set covers the date's weekday, its half-open
// interval overlaps the candidate, and it holds a Scheduled or
// Running schedule row for that exact date.
func (c *Checker) CheckAvailability(ctx context.Context, date, startTime, endTime string) (*AvailabilityResult, error) {
	return c.check(ctx, date, startTime, endTime, 0)
}

func (c *Checker) check(ctx context.Context, date, startTime, endTime string, excludeScheduleID int64) (*AvailabilityResult, error) {
	if !validator.ValidDate(date) {
		return nil, ErrValidation
	}
	if !validator.ValidTimeOfDay(startTime) || !validator.ValidTimeOfDay(endTime) || startTime >= endTime {
		return nil, ErrValidation
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrValidation
	}
	weekday := int(day.Weekday())

	booked, err := c.repo.FindBookedSlots(ctx, date, excludeScheduleID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	var conflicting []ads.Ad
	for _, b := range booked {
		if !b.Slot.CoversWeekday(weekday) {
			continue
		}
		if !b.Slot.Overlaps(startTime, endTime) {
			continue
		}
		if !seen[b.Ad.ID] {
			seen[b.Ad.ID] = true
			conflicting = append(conflicting, b.Ad)
		}
	}

	return &AvailabilityResult{
		Available:      len(conflicting) == 0,
		ConflictingAds: conflicting,
	}, nil
}
