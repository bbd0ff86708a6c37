package builtin

import (
	"fmt"

	"github.com/mwantia/interp/registry"
)

// Get implements spec §6's `get <option>`: print the option's current
// value. When a Host option store is configured it is consulted first
// (SPEC_FULL.md's "store" package), falling back to the live reflected
// value on a miss.
func (h *Handler) Get(interp registry.Interpreter, option string) error {
	out := interp.StdIO().Out

	host, isHost := interp.(Host)
	if !isHost {
		return fmt.Errorf("get: no registry available in this context")
	}

	opt, ok := host.Registry().FindOption(host.TokenConfig(), option)
	if !ok {
		return fmt.Errorf("get: unknown option %q", option)
	}

	if value, found, err := host.StoreLoad(opt.Name); err == nil && found {
		fmt.Fprintln(out, value)
		return nil
	}

	fmt.Fprintln(out, opt.Get())
	return nil
}
