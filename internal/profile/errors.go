package profile

import "errors"

// Sentinel errors for profile loading.
var (
	// ErrMissingField indicates a required field (date, time, city) is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrNotProfile indicates the file could not be decoded as a profile.
	ErrNotProfile = errors.New("not a birth profile")
)
