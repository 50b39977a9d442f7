package bundlecheck

import "errors"

var (
	// ErrUnexpectedStatus is returned when the server answers with a non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrCheckFailed is returned by Run when at least one check reported an issue.
	ErrCheckFailed = errors.New("consistency check failed")
	// ErrInvalidConfig is returned for an unusable Config.
	ErrInvalidConfig = errors.New("invalid config")
)
