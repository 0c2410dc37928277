package adscheduling

import (
	"errors"
	"fmt"

	"evorgs/internal/domain/ads"
)

var (
	ErrNotFound     = errors.New("schedule not found")
	ErrAdNotFound   = errors.New("ad not found")
	ErrSlotNotFound = errors.New("time slot not found")
	ErrSlotMismatch = errors.New("time slot does not belong to the ad")
	ErrValidation   = errors.New("validation error")
	ErrAdNotActive  = errors.New("ad is not active")
)

// ConflictError is returned when a candidate window overlaps an
// already-booked slot. It carries the conflicting ads so callers can
// surface them as structured error metadata.
type ConflictError struct {
	Date           string
	ConflictingAds []ads.Ad
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot conflict on %s with %d ad(s)", e.Date, len(e.ConflictingAds))
}
