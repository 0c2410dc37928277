package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:30", "12:00", "23:59"}
	for _, s := range valid {
		assert.True(t, ValidTimeOfDay(s), s)
	}

	invalid := []string{"24:00", "9:30", "12:60", "12:5", "noon", "12-00", "12:00:00", ""}
	for _, s := range invalid {
		assert.False(t, ValidTimeOfDay(s), s)
	}
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2025-06-02"))
	assert.True(t, ValidDate("2024-02-29")) // leap day

	invalid := []string{
		"2025-13-01", // no 13th month
		"2025-02-30", // impossible day
		"2025-6-2",   // not zero-padded
		"02/06/2025",
		"",
	}
	for _, s := range invalid {
		assert.False(t, ValidDate(s), s)
	}
}

func TestValidateStruct(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required"`
	}

	assert.Nil(t, Validate(form{Email: "a@b.com", Name: "A"}))

	errs := Validate(form{Email: "not-an-email"})
	assert.Equal(t, "email", errs["Email"])
	assert.Equal(t, "required", errs["Name"])
}
