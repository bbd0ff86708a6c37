package builtin

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/mwantia/interp/registry"
)

// History implements the supplemental `history [N]` built-in
// (SPEC_FULL.md): lists the last N dispatched command lines, most
// recent first, with each entry's age formatted via go-humanize.
func (h *Handler) History(interp registry.Interpreter, count int) error {
	host, isHost := interp.(Host)
	if !isHost {
		return fmt.Errorf("history: not supported in this context")
	}

	entries, err := host.History(count)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	out := interp.StdIO().Out
	for i, e := range entries {
		fmt.Fprintf(out, "[%3d] %-40s (exit %d, %s)\n",
			i+1, e.Line, e.ExitCode, humanize.Time(e.When))
	}
	return nil
}
