package catalog

import "errors"

var (
	ErrNotFound                = errors.New("listing not found")
	ErrForbidden               = errors.New("listing belongs to another vendor")
	ErrValidation              = errors.New("validation error")
	ErrInvalidStatusTransition = errors.New("listing is not pending review")
)
