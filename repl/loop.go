// Package repl implements spec §4.8's interactive read-eval-print loop
// over an interpreter: read a line, expand macros (§4.7), split it into
// pipeline stages (§4.6), dispatch, and print whatever error comes back,
// in the same "read, trim, dispatch, report" shape the pack's shell
// examples use for their own command loops.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/mwantia/interp/builtin"
	"github.com/mwantia/interp/interperr"
	"github.com/mwantia/interp/log"
	"github.com/mwantia/interp/pipeline"
)

// Host is the surface the loop needs from the interpreter: everything
// builtin.Host already requires (registry, store, prompt, pagination),
// since the loop drives the very same commands a pipeline stage does.
type Host interface {
	builtin.Host
}

// Loop runs the interactive cycle over in until the exit/quit built-in
// fires or in is exhausted.
type Loop struct {
	Interp     Host
	Dispatcher pipeline.Dispatcher
	Logger     *log.Logger

	in      io.Reader
	scanner *bufio.Scanner
}

// New builds a Loop reading lines from in. Passing os.Stdin lets the
// loop detect an interactive terminal and print prompts; any other
// reader (a script piped in, a test buffer) runs silently, no prompt.
func New(interp Host, dispatcher pipeline.Dispatcher, in io.Reader, logger *log.Logger) *Loop {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	return &Loop{
		Interp:     interp,
		Dispatcher: dispatcher,
		Logger:     logger,
		in:         in,
		scanner:    scanner,
	}
}

// Run drives the loop to completion. A read error is written to
// standard error and returned; a clean end of input (spec §4.8: "if
// null, exit the loop") returns nil.
func (l *Loop) Run() error {
	for {
		if l.isInteractive() {
			fmt.Fprint(l.Interp.StdIO().Out, l.Interp.PromptTemplate())
		}

		if !l.scanner.Scan() {
			if err := l.scanner.Err(); err != nil {
				fmt.Fprintln(l.Interp.StdIO().Err, err)
				return err
			}
			return nil
		}

		line := l.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if l.evalLine(line) {
			return nil
		}
	}
}

// evalLine runs one input line through macro expansion, pipeline
// splitting, and dispatch, returning true when the loop should stop
// (the exit/quit built-in fired).
func (l *Loop) evalLine(line string) (stop bool) {
	if l.Logger != nil {
		l.Logger.Debug("repl: %s", line)
	}

	expanded, err := Expand(line, l.lookupOption)
	if err != nil {
		fmt.Fprintln(l.Interp.StdIO().Err, err)
		l.Interp.SetExitCode(1)
		return false
	}

	stages, err := pipeline.Split(expanded, l.Interp.FilterPrecedence())
	if err != nil {
		fmt.Fprintln(l.Interp.StdIO().Err, err)
		l.Interp.SetExitCode(1)
		return false
	}

	err = pipeline.Run(l.Interp, l.Dispatcher, stages)
	if err == nil {
		l.Interp.SetExitCode(0)
		return false
	}
	if errors.Is(err, interperr.ErrExitRequested) {
		return true
	}

	fmt.Fprintln(l.Interp.StdIO().Err, err)
	l.Interp.SetExitCode(1)
	return false
}

func (l *Loop) lookupOption(name string) (string, bool) {
	opt, ok := l.Interp.Registry().FindOption(l.Interp.TokenConfig(), name)
	if !ok {
		return "", false
	}
	if stored, found, err := l.Interp.StoreLoad(name); err == nil && found {
		return stored, true
	}
	return fmt.Sprintf("%v", opt.Get()), true
}

func (l *Loop) isInteractive() bool {
	f, ok := l.in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
