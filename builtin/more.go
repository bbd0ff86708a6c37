package builtin

import (
	"bufio"
	"fmt"

	"github.com/mwantia/interp/interperr"
	"github.com/mwantia/interp/registry"
)

// More implements spec §4.6/§6's pagination built-in: emit console-
// height-minus-one lines of standard input, then a `-- More --` prompt
// waiting for a single keystroke via Host.ReadNextCharacter, repeating
// until input is exhausted. A non-positive console height (no
// terminal) disables pagination entirely, so no prompt — and no
// ReadNextCharacter call — happens for a single-screen input.
func (h *Handler) More(interp registry.Interpreter) error {
	host, isHost := interp.(Host)
	height := 0
	if isHost {
		height = host.ConsoleHeight()
	}
	pageSize := height - 1

	out := interp.StdIO().Out
	scanner := bufio.NewScanner(interp.StdIO().In)

	count := 0
	for scanner.Scan() {
		fmt.Fprintln(out, scanner.Text())
		count++

		if pageSize > 0 && count == pageSize {
			count = 0
			fmt.Fprint(out, "-- More --")
			if !isHost {
				return interperr.New(interperr.ErrConsoleIOUnavailable, "more: no next-key reader configured")
			}
			if _, err := host.ReadNextCharacter(); err != nil {
				return err
			}
			fmt.Fprintln(out)
		}
	}

	return scanner.Err()
}
