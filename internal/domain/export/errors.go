package export

import "errors"

var (
	ErrLogoUnavailable = errors.New("logo asset could not be loaded")
	ErrNoWriter        = errors.New("no document writer configured")
)
