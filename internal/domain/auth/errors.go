package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOTPRequired        = errors.New("one-time code required")
	ErrOTPInvalid         = errors.New("invalid one-time code")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWrongPurpose       = errors.New("token not valid for this use")
	ErrNotConfigured      = errors.New("operator authentication is not configured")
)
