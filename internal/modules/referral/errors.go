package referral

import "errors"

var (
	ErrInvalidCode = errors.New("partner code not found or not usable")
	ErrExpiredHost = errors.New("partner code host wedding already passed")
)
