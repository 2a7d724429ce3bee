package reservation

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("reservation not found")
	ErrInvalidPartnerCode = errors.New("partner code is not usable")
	ErrEncryption         = errors.New("identity field encryption failed")
)
