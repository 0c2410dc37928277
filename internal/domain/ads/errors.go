package ads

import "errors"

var (
	ErrNotFound                = errors.New("ad not found")
	ErrSlotNotFound            = errors.New("time slot not found")
	ErrForbidden               = errors.New("ad belongs to another vendor")
	ErrValidation              = errors.New("validation error")
	ErrInvalidStatusTransition = errors.New("invalid ad status transition")
)
