package pendingedit

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("pending change not found")
	ErrResolved   = errors.New("pending change already resolved")
)
