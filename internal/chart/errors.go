package chart

import "errors"

// Build failure kinds. Every error returned by Assembler.Build wraps
// exactly one of these.
var (
	// ErrLocationNotFound indicates the birth city could not be resolved.
	ErrLocationNotFound = errors.New("location not found")

	// ErrInvalidMoment indicates the birth date or time does not parse, or
	// the UTC offset is out of range.
	ErrInvalidMoment = errors.New("invalid moment")

	// ErrEphemerisUnavailable indicates the ephemeris failed or returned
	// an incomplete or out-of-range body set.
	ErrEphemerisUnavailable = errors.New("ephemeris unavailable")

	// ErrInvalidRequest indicates a request field other than the moment
	// is unusable, such as a division below 1.
	ErrInvalidRequest = errors.New("invalid chart request")
)
