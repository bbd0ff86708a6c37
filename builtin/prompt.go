package builtin

import (
	"fmt"

	"github.com/mwantia/interp/registry"
)

// Prompt prints (value == "") or assigns (value != "") the REPL's
// prompt template, which is itself macro-expanded before each read
// (spec §4.7/§4.8).
func (h *Handler) Prompt(interp registry.Interpreter, value string) error {
	host, isHost := interp.(Host)
	if !isHost {
		return fmt.Errorf("prompt: not supported in this context")
	}

	if value == "" {
		fmt.Fprintln(interp.StdIO().Out, host.PromptTemplate())
		return nil
	}

	host.SetPromptTemplate(value)
	return nil
}
