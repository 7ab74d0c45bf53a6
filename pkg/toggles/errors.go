package toggles

import "errors"

var (
	// ErrParsingConfig is returned when toggle configuration cannot be decoded.
	ErrParsingConfig = errors.New("toggles: failed to parse configuration")

	// ErrReadingConfig is returned when a toggle configuration file cannot be read.
	ErrReadingConfig = errors.New("toggles: failed to read configuration file")
)
