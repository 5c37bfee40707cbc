// Package common provides shared constants, types, and utilities
// used across the Network Settings application.
package common

import "errors"

// Sentinel errors. These can be checked with errors.Is().
var (
	// Bus errors.
	ErrBusConnect    = errors.New("failed to connect to message bus")
	ErrInterfaceLoad = errors.New("failed to load interface definition")
	ErrRemoteCall    = errors.New("remote call failed")
	ErrInvalidPath   = errors.New("invalid object path")
	ErrProxyClosed   = errors.New("proxy is closed")

	// Registry errors.
	ErrDuplicateTechnology = errors.New("technology type already registered")
	ErrAlreadyInserted     = errors.New("technology already inserted into the UI")
	ErrNotSupported        = errors.New("operation not supported by technology")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
