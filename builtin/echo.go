package builtin

import (
	"fmt"

	"github.com/mwantia/interp/registry"
	"github.com/mwantia/interp/token"
)

// Echo implements spec §6's `echo <tokens>`: print tokens joined with
// single spaces, quoting as needed (spec §4.1's Join).
func (h *Handler) Echo(interp registry.Interpreter, args []string) error {
	fmt.Fprintln(interp.StdIO().Out, token.Join(args))
	return nil
}
