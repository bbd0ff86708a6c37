// Package interperr defines the error kinds raised by the token, coerce,
// dispatch, pipeline, and builtin packages (spec §7) and a single Error type
// that carries a kind, a message, and a correlation ID.
package interperr

import "errors"

// Sentinel kinds. Use errors.Is(err, interperr.ErrUnknownCommand) etc.
// to classify an error returned from the dispatcher.
var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrUnknownCommand          = errors.New("unknown command")
	ErrMissingRequiredArgument = errors.New("missing required argument")
	ErrInvalidArgumentValue    = errors.New("invalid argument value")
	ErrUnknownOption           = errors.New("unknown option")
	ErrApplicationError        = errors.New("application error")
	ErrUnhandled               = errors.New("unhandled error")
	ErrConsoleIOUnavailable    = errors.New("console io unavailable")

	// ErrExitRequested signals the interactive loop (spec §4.8) to stop
	// after the current dispatch, raised by the exit/quit built-in. It's
	// a sentinel like the others, but Dispatch passes it through
	// unwrapped instead of folding it into an unhandled-error Error, so
	// errors.Is(err, ErrExitRequested) still works after classification.
	ErrExitRequested = errors.New("exit requested")
)
