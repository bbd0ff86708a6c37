package builtin

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/mwantia/interp/coerce"
	"github.com/mwantia/interp/registry"
)

// Set implements spec §6's `set` family. args is the raw token vector
// following "set" (bound via the "captures all" marker, spec §4.2/4.3):
//
//	set                  -> list every option and its current value
//	set /readInput        -> read "name=value" lines from stdin and apply
//	set <option>          -> print current value
//	set <option> <value>  -> assign
func (h *Handler) Set(interp registry.Interpreter, args []string) error {
	host, isHost := interp.(Host)
	if !isHost {
		return fmt.Errorf("set: no registry available in this context")
	}
	out := interp.StdIO().Out
	reg := host.Registry()

	if len(args) == 0 {
		for _, opt := range reg.Options() {
			fmt.Fprintf(out, "%s = %v\n", opt.Name, opt.Get())
		}
		return nil
	}

	if strings.EqualFold(strings.TrimLeft(args[0], "/-"), "readInput") {
		return readInputOptions(interp, reg, host)
	}

	opt, ok := reg.FindOption(host.TokenConfig(), args[0])
	if !ok {
		return fmt.Errorf("set: unknown option %q", args[0])
	}

	if len(args) == 1 {
		if value, found, err := host.StoreLoad(opt.Name); err == nil && found {
			fmt.Fprintln(out, value)
			return nil
		}
		fmt.Fprintln(out, opt.Get())
		return nil
	}

	value, err := coerce.ConvertLiteral(opt.Type, args[1])
	if err != nil {
		return fmt.Errorf("set: %w", err)
	}
	opt.Set(value.Interface())

	if err := host.StoreSave(opt.Name, args[1]); err != nil {
		fmt.Fprintf(interp.StdIO().Err, "set: option store save failed: %v\n", err)
	}

	return nil
}

func readInputOptions(interp registry.Interpreter, reg *registry.Registry, host Host) error {
	scanner := bufio.NewScanner(interp.StdIO().In)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}
		name, literal := strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:])

		opt, ok := reg.FindOption(host.TokenConfig(), name)
		if !ok {
			fmt.Fprintf(interp.StdIO().Err, "set: unknown option %q\n", name)
			continue
		}

		value, err := coerce.ConvertLiteral(opt.Type, literal)
		if err != nil {
			fmt.Fprintf(interp.StdIO().Err, "set: %v\n", err)
			continue
		}
		opt.Set(value.Interface())
		_ = host.StoreSave(opt.Name, literal)
	}
	return scanner.Err()
}
