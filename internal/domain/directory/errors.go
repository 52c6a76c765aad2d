package directory

import "errors"

var (
	ErrCorrupt            = errors.New("employee directory data is corrupt")
	ErrUnsupportedVersion = errors.New("employee directory schema version is not supported")
	ErrInvalidEmployee    = errors.New("employee id is required")
)
