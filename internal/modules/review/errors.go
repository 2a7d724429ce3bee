package review

import "errors"

var (
	ErrInvalidURL          = errors.New("review url is malformed")
	ErrNotFound            = errors.New("review submission not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrDuplicateURL        = errors.New("review url already submitted")
	ErrCapExceeded         = errors.New("review submission cap reached")
	ErrPlatformCapExceeded = errors.New("platform already has a review for this reservation")
	ErrNotCancellable      = errors.New("review submission can no longer be cancelled")
	ErrAlreadyDecided      = errors.New("review submission already decided")
	ErrForbidden           = errors.New("forbidden")
)
