package service

import "errors"

// Sentinel errors returned by the controller.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrUnknownEntity = errors.New("unknown chart entity")
)
