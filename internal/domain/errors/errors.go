package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrMissingEmail        = errors.New("identity has no email")
	ErrInvalidRewardStatus = errors.New("invalid reward status")
	ErrInvalidRewardType   = errors.New("invalid reward type")
	ErrInsufficientPoints  = errors.New("insufficient points")
	ErrRewardExpired       = errors.New("reward expired")
	ErrEmptyOrder          = errors.New("order has no items")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrGiftAlreadyGranted  = errors.New("birthday gift already granted")
	ErrNotBirthdayMonth    = errors.New("not the member's birthday month")
)
