package pipeline

import (
	"bytes"
	"io"

	"github.com/mwantia/interp/registry"
)

// Dispatcher is the narrow surface pipeline.Run needs from the
// dispatcher package, kept as an interface here so this package never
// imports dispatch (which would otherwise be the only import cycle risk
// in the module: dispatch -> registry, pipeline -> registry, both
// consumed by the root package).
type Dispatcher interface {
	Dispatch(interp registry.Interpreter, tokens []string) error
}

// Run executes stages in order against dispatcher, threading each
// stage's captured standard output into the next stage's standard
// input (spec §4.6): stage k's stdout is captured into an in-memory
// buffer, stage k+1 runs with that buffer as stdin. Any stage's stdin
// or stdout may instead be a file (including s3:// targets) per its
// own Stage.InFile/OutFile, wherever split.go assigned the redirect
// lexically — not only the first/last stage, since a trailing `<`/`>`
// binds to whichever stage the active precedence rule puts it on.
// Every stream replacement is reverted before Run returns, on every
// exit path, including a stage returning an error (spec §5).
func Run(interp registry.Interpreter, dispatcher Dispatcher, stages []Stage) error {
	if len(stages) == 0 {
		return nil
	}

	var carry io.Reader
	baseIO := interp.StdIO()

	for i, stage := range stages {
		in := carry
		if in == nil {
			in = baseIO.In
		}

		var closeIn io.Closer
		if stage.InFile != "" {
			rc, err := OpenInput(stage.InFile)
			if err != nil {
				return err
			}
			in = rc
			closeIn = rc
		}

		isLast := i == len(stages)-1

		var out io.Writer
		var closeOut io.Closer
		var nextBuf *bytes.Buffer

		switch {
		case stage.OutFile != "":
			sink, err := OpenOutput(stage.OutFile)
			if err != nil {
				closeIfSet(closeIn)
				return err
			}
			out = sink
			closeOut = sink
		case isLast:
			out = baseIO.Out
		default:
			nextBuf = &bytes.Buffer{}
			out = nextBuf
		}

		err := func() error {
			revert := interp.SetStdIO(registry.StdIO{In: in, Out: out, Err: baseIO.Err})
			defer revert()
			return dispatcher.Dispatch(interp, stage.Tokens)
		}()

		closeIfSet(closeIn)
		closeIfSet(closeOut)

		if err != nil {
			return err
		}

		carry = nextBuf
	}

	return nil
}

func closeIfSet(c io.Closer) {
	if c != nil {
		c.Close()
	}
}
