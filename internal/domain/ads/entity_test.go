package ads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeSlotOverlaps(t *testing.T) {
	slot := TimeSlot{StartTime: "09:00", EndTime: "12:00"}

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"identical window", "09:00", "12:00", true},
		{"contained", "10:00", "11:00", true},
		{"containing", "08:00", "13:00", true},
		{"overlaps start", "08:00", "09:30", true},
		{"overlaps end", "11:30", "13:00", true},
		{"adjacent before", "07:00", "09:00", false},
		{"adjacent after", "12:00", "14:00", false},
		{"disjoint before", "06:00", "08:00", false},
		{"disjoint after", "13:00", "15:00", false},
		{"one minute overlap", "11:59", "12:30", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slot.Overlaps(tc.start, tc.end))
		})
	}
}

func TestTimeSlotCoversWeekday(t *testing.T) {
	slot := TimeSlot{Weekdays: []int{1, 3, 5}}

	assert.True(t, slot.CoversWeekday(1))
	assert.True(t, slot.CoversWeekday(5))
	assert.False(t, slot.CoversWeekday(0))
	assert.False(t, slot.CoversWeekday(6))
	assert.False(t, TimeSlot{}.CoversWeekday(1))
}

func TestValidateSlotInput(t *testing.T) {
	valid := TimeSlotInput{StartTime: "09:00", EndTime: "12:00", Weekdays: []int{1, 2}, Priority: 3}
	assert.NoError(t, ValidateSlotInput(valid))

	cases := []struct {
		name string
		in   TimeSlotInput
	}{
		{"bad start format", TimeSlotInput{StartTime: "9:00", EndTime: "12:00", Weekdays: []int{1}, Priority: 3}},
		{"hour out of range", TimeSlotInput{StartTime: "24:00", EndTime: "25:00", Weekdays: []int{1}, Priority: 3}},
		{"start equals end", TimeSlotInput{StartTime: "09:00", EndTime: "09:00", Weekdays: []int{1}, Priority: 3}},
		{"start after end", TimeSlotInput{StartTime: "12:00", EndTime: "09:00", Weekdays: []int{1}, Priority: 3}},
		{"empty weekdays", TimeSlotInput{StartTime: "09:00", EndTime: "12:00", Weekdays: nil, Priority: 3}},
		{"weekday 7", TimeSlotInput{StartTime: "09:00", EndTime: "12:00", Weekdays: []int{7}, Priority: 3}},
		{"negative weekday", TimeSlotInput{StartTime: "09:00", EndTime: "12:00", Weekdays: []int{-1}, Priority: 3}},
		{"priority 0", TimeSlotInput{StartTime: "09:00", EndTime: "12:00", Weekdays: []int{1}, Priority: 0}},
		{"priority 6", TimeSlotInput{StartTime: "09:00", EndTime: "12:00", Weekdays: []int{1}, Priority: 6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateSlotInput(tc.in), ErrValidation)
		})
	}
}
