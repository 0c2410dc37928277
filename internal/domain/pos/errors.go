package pos

import "errors"

var (
	ErrNotFound   = errors.New("ledger entry not found")
	ErrForbidden  = errors.New("ledger entry belongs to another vendor")
	ErrValidation = errors.New("validation error")
)
