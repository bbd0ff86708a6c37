// Package dispatch implements spec §4.4: resolving a token vector to a
// command, coercing each formal parameter, running the filter chain,
// invoking the handler, and mapping the result to an error the caller
// can turn into a process-visible exit code.
package dispatch

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mwantia/interp/coerce"
	"github.com/mwantia/interp/interperr"
	"github.com/mwantia/interp/log"
	"github.com/mwantia/interp/registry"
	"github.com/mwantia/interp/token"
)

// Dispatcher binds token vectors to registered commands.
type Dispatcher struct {
	Registry *registry.Registry
	Config   *token.Config
	Logger   *log.Logger
	Verbose  bool
}

// New builds a Dispatcher over reg using cfg's tokenizer conventions.
func New(reg *registry.Registry, cfg *token.Config, logger *log.Logger) *Dispatcher {
	return &Dispatcher{Registry: reg, Config: cfg, Logger: logger}
}

// Dispatch runs spec §4.4's algorithm over tokens (already tokenized,
// and for the REPL path, macro-expanded and pipeline-split). An empty
// token vector is a no-op.
func (d *Dispatcher) Dispatch(interp registry.Interpreter, tokens []string) error {
	tokens = d.applyTopLevelOptions(tokens)
	if len(tokens) == 0 {
		return nil
	}

	name := tokens[0]
	cmd, ok := d.resolveCommand(name)
	if !ok {
		return interperr.New(interperr.ErrUnknownCommand,
			fmt.Sprintf("Invalid command: %s", name))
	}

	remaining := tokens[1:]
	terminal := registry.ChainFunc(func(tokens []string) error {
		return d.invoke(interp, cmd, tokens)
	})

	chain := buildChain(d.Registry.Filters(), interp, terminal)
	return chain.Next(remaining)
}

// applyTopLevelOptions implements spec §4.4's "Top-level option
// setters": any token naming a known option (by name or alias) is
// applied to the handler's underlying property and removed from the
// vector before command resolution, wherever it appears in the line.
// A bare `/OptionName` with no delimiter consumes the following
// unnamed token as its value, if one immediately follows and doesn't
// itself look like a named token. Unknown named tokens are left in
// place; they remain eligible to be bound as arguments of whatever
// command resolves from what's left.
func (d *Dispatcher) applyTopLevelOptions(tokens []string) []string {
	out := make([]string, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		name, value, isNamed := token.SplitToken(d.Config, tok)
		if !isNamed {
			out = append(out, tok)
			continue
		}

		opt, ok := d.resolveOption(name)
		if !ok {
			out = append(out, tok)
			continue
		}

		literal := ""
		consumedValue := false
		if value != nil {
			literal = *value
			consumedValue = true
		} else if i+1 < len(tokens) {
			if _, _, nextNamed := token.SplitToken(d.Config, tokens[i+1]); !nextNamed {
				literal = tokens[i+1]
				consumedValue = true
				i++
			}
		}
		if !consumedValue && opt.Type.Kind() == reflect.Bool {
			literal = "true"
		}

		if v, err := coerce.ConvertLiteral(opt.Type, literal); err == nil {
			opt.Set(v.Interface())
		}
	}

	return out
}

func (d *Dispatcher) resolveCommand(name string) (*registry.Command, bool) {
	return d.Registry.FindCommand(d.Config, name)
}

func (d *Dispatcher) resolveOption(name string) (*registry.Option, bool) {
	return d.Registry.FindOption(d.Config, name)
}

// invoke builds the ArgumentList over tokens (spec §4.4 step 3), binds
// and coerces each formal parameter (step 4), and calls the handler
// (step 6), converting a panic or returned error into an interperr.Error.
func (d *Dispatcher) invoke(interp registry.Interpreter, cmd *registry.Command, tokens []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			verbose := ""
			if d.Verbose {
				verbose = fmt.Sprintf("%v", r)
			}
			err = interperr.New(interperr.ErrUnhandled, fmt.Sprintf("%v", r)).WithVerbose(verbose)
		}
	}()

	al := token.NewArgumentList(d.Config, tokens)
	positional := 0

	args := make([]reflect.Value, 0, len(cmd.Arguments))
	for _, arg := range cmd.Arguments {
		arg := arg

		if arg.IsInterpreter {
			args = append(args, reflect.ValueOf(interp))
			continue
		}

		// A filter method also registered as a command gets a no-op
		// terminal chain, so its chain.Next call is always safe.
		if arg.Type == registry.ChainType {
			args = append(args, reflect.ValueOf(registry.ChainFunc(func([]string) error { return nil })))
			continue
		}

		if arg.CapturesAll {
			args = append(args, reflect.ValueOf(tokens))
			continue
		}

		item := d.lookupItem(al, &arg)
		if item == nil && positional < len(al.Unnamed) {
			value := al.Unnamed[positional]
			positional++
			item = &token.Item{Name: arg.Name, Values: []*string{&value}}
		}

		val, cerr := coerce.Argument(&arg, item)
		if cerr != nil {
			return cerr
		}
		args = append(args, val)
	}

	if d.Logger != nil {
		d.Logger.Debug("dispatching %s", cmd.Name)
	}

	herr := cmd.Invoke(args)
	return d.classify(herr)
}

func (d *Dispatcher) lookupItem(al *token.ArgumentList, arg *registry.Argument) *token.Item {
	if item := al.Get(arg.Name); item != nil {
		return item
	}
	for _, alias := range arg.Aliases {
		if item := al.Get(alias); item != nil {
			return item
		}
	}
	return nil
}

// classify maps a handler's returned error onto spec §4.4 step 6's two
// buckets: an application-error kind prints message only; any other
// error is treated as unhandled (type + message, stack if verbose).
func (d *Dispatcher) classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, interperr.ErrExitRequested) {
		return err
	}

	var ie *interperr.Error
	if errors.As(err, &ie) {
		return ie
	}

	if errors.Is(err, interperr.ErrApplicationError) {
		return interperr.New(interperr.ErrApplicationError, err.Error())
	}

	wrapped := interperr.New(interperr.ErrUnhandled, err.Error())
	if d.Verbose {
		wrapped = wrapped.WithVerbose(fmt.Sprintf("%T: %v", err, err))
	}
	return wrapped
}
