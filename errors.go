package interp

import "github.com/mwantia/interp/interperr"

// These re-export interperr's sentinel kinds and Error type so a host
// importing only the root package can classify dispatch errors without
// a second import (spec §7).
var (
	ErrInvalidInput            = interperr.ErrInvalidInput
	ErrUnknownCommand          = interperr.ErrUnknownCommand
	ErrMissingRequiredArgument = interperr.ErrMissingRequiredArgument
	ErrInvalidArgumentValue    = interperr.ErrInvalidArgumentValue
	ErrUnknownOption           = interperr.ErrUnknownOption
	ErrApplicationError        = interperr.ErrApplicationError
	ErrUnhandled               = interperr.ErrUnhandled
	ErrConsoleIOUnavailable    = interperr.ErrConsoleIOUnavailable
	ErrExitRequested           = interperr.ErrExitRequested
)

// Error is interperr.Error (spec §7's core exception type), re-exported
// so callers can errors.As(err, *interp.Error) directly.
type Error = interperr.Error
