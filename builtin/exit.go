package builtin

import (
	"github.com/mwantia/interp/interperr"
	"github.com/mwantia/interp/registry"
)

// ErrExitRequested re-exports interperr.ErrExitRequested under the name
// this package's tests and callers historically used.
var ErrExitRequested = interperr.ErrExitRequested

// Exit terminates the interactive loop. `exit`/`quit` are available
// inside the REPL regardless of the default-built-ins flag (spec §4.8).
func (h *Handler) Exit(interp registry.Interpreter) error {
	return ErrExitRequested
}
