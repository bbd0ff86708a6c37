package interp

import (
	"io"

	"github.com/mwantia/interp/history"
	"github.com/mwantia/interp/registry"
	"github.com/mwantia/interp/store"
)

// Option configures an Interpreter at construction time, in the
// teacher's functional-options style.
type Option func(*Interpreter) error

// WithHandler registers a user handler's commands, options, and filters
// (spec §4.2) during construction, before the default built-ins are
// installed.
func WithHandler(instance any) Option {
	return func(it *Interpreter) error {
		return it.reg.AddHandler(instance)
	}
}

// WithStdIO overrides the default os.Stdin/os.Stdout/os.Stderr streams.
func WithStdIO(out, errw io.Writer, in io.Reader) Option {
	return func(it *Interpreter) error {
		it.stdio = registry.StdIO{Out: out, Err: errw, In: in}
		return nil
	}
}

// WithOptionStore installs a non-default OptionStore (consul/postgres),
// overriding whatever cfg.StoreBackend would otherwise construct.
func WithOptionStore(s store.OptionStore) Option {
	return func(it *Interpreter) error {
		it.store = s
		return nil
	}
}

// WithHistory installs an already-open history backend, overriding
// cfg.HistoryPath.
func WithHistory(h *history.History) Option {
	return func(it *Interpreter) error {
		it.history = h
		return nil
	}
}

// WithConsoleHeight sets the pager window height the `more` built-in
// paginates against; 0 disables pagination unconditionally.
func WithConsoleHeight(lines int) Option {
	return func(it *Interpreter) error {
		it.consoleHeight = lines
		return nil
	}
}
