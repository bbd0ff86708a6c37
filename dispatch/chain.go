package dispatch

import "github.com/mwantia/interp/registry"

// buildChain composes filters (registration order) into a cons of
// closures terminated by terminal (spec §4.4 step 5 / §9's design
// note): calling the returned Chain's Next invokes filters[0] first,
// which may mutate tokens and call its own Next to continue to
// filters[1], and so on down to terminal. A filter that never calls
// Next suppresses everything after it, including the handler.
func buildChain(filters []*registry.Filter, interp registry.Interpreter, terminal registry.ChainFunc) registry.Chain {
	next := registry.Chain(terminal)

	for i := len(filters) - 1; i >= 0; i-- {
		f := filters[i]
		current := next
		next = registry.ChainFunc(func(tokens []string) error {
			return f.Invoke(interp, current, tokens)
		})
	}

	return next
}
