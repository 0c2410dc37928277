package adscheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evorgs/internal/domain/ads"
)

// fakeConflictRepo serves canned booked slots to the checker.
type fakeConflictRepo struct {
	Repository
	booked      []BookedSlot
	lastExclude int64
}

func (f *fakeConflictRepo) FindBookedSlots(ctx context.Context, date string, excludeScheduleID int64) ([]BookedSlot, error) {
	f.lastExclude = excludeScheduleID
	return f.booked, nil
}

func bookedSlot(adID int64, start, end string, weekdays []int) BookedSlot {
	return BookedSlot{
		Slot: ads.TimeSlot{AdID: adID, StartTime: start, EndTime: end, Weekdays: weekdays, Active: true},
		Ad:   ads.Ad{ID: adID, Title: "ad", Status: ads.StatusActive},
	}
}

func TestCheckAvailability_ConflictOnOverlap(t *testing.T) {
	// 2025-06-02 is a Monday (weekday 1).
	repo := &fakeConflictRepo{booked: []BookedSlot{
		bookedSlot(7, "09:00", "12:00", []int{1}),
	}}
	checker := NewChecker(repo)

	res, err := checker.CheckAvailability(context.Background(), "2025-06-02", "10:00", "13:00")
	require.NoError(t, err)
	assert.False(t, res.Available)
	require.Len(t, res.ConflictingAds, 1)
	assert.Equal(t, int64(7), res.ConflictingAds[0].ID)
}

func TestCheckAvailability_AdjacentWindowsDoNotConflict(t *testing.T) {
	repo := &fakeConflictRepo{booked: []BookedSlot{
		bookedSlot(7, "09:00", "12:00", []int{1}),
	}}
	checker := NewChecker(repo)

	// Half-open intervals: [09:00,12:00) and [12:00,14:00) touch but
	// do not overlap.
	res, err := checker.CheckAvailability(context.Background(), "2025-06-02", "12:00", "14:00")
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Empty(t, res.ConflictingAds)
}

func TestCheckAvailability_WeekdayMismatchIgnored(t *testing.T) {
	// The booked slot only covers Sunday (0); the date is a Monday.
	repo := &fakeConflictRepo{booked: []BookedSlot{
		bookedSlot(7, "09:00", "12:00", []int{0}),
	}}
	checker := NewChecker(repo)

	res, err := checker.CheckAvailability(context.Background(), "2025-06-02", "09:00", "12:00")
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestCheckAvailability_DeduplicatesAds(t *testing.T) {
	repo := &fakeConflictRepo{booked: []BookedSlot{
		bookedSlot(7, "09:00", "12:00", []int{1}),
		bookedSlot(7, "10:00", "11:00", []int{1}),
	}}
	checker := NewChecker(repo)

	res, err := checker.CheckAvailability(context.Background(), "2025-06-02", "09:30", "10:30")
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Len(t, res.ConflictingAds, 1)
}

func TestCheckAvailability_InvalidInput(t *testing.T) {
	checker := NewChecker(&fakeConflictRepo{})

	cases := []struct {
		name             string
		date, start, end string
	}{
		{"bad date", "2025-13-99", "09:00", "12:00"},
		{"not a date", "not-a-date", "09:00", "12:00"},
		{"bad time", "2025-06-02", "9:00", "12:00"},
		{"out of range hour", "2025-06-02", "24:00", "25:00"},
		{"start not before end", "2025-06-02", "12:00", "12:00"},
		{"inverted window", "2025-06-02", "14:00", "12:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := checker.CheckAvailability(context.Background(), tc.date, tc.start, tc.end)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCheck_PassesExcludeID(t *testing.T) {
	repo := &fakeConflictRepo{}
	checker := NewChecker(repo)

	_, err := checker.check(context.Background(), "2025-06-02", "09:00", "10:00", 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), repo.lastExclude)
}

func TestBackoffDelay_DoublesAndCaps(t *testing.T) {
	assert.Equal(t, time.Minute, backoffDelay(0))
	assert.Equal(t, 2*time.Minute, backoffDelay(1))
	assert.Equal(t, 4*time.Minute, backoffDelay(2))
	assert.Equal(t, time.Hour, backoffDelay(100))
}
