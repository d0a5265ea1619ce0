package signal

import "errors"

var (
	// ErrUnavailable is returned by providers when the vendor had no usable data or failed.
	ErrUnavailable = errors.New("signal unavailable")

	// ErrSourceMismatch is returned when a payload is stored under a source it does not belong to.
	ErrSourceMismatch = errors.New("payload does not match source")

	// ErrUnknownSource is returned for a source name that is not one of Sources.
	ErrUnknownSource = errors.New("unknown signal source")
)
