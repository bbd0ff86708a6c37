// Command interp is a demo CLI wiring a sample handler into an
// Interpreter: run with no arguments for an interactive REPL (spec
// §4.8), or with `-c "<line>"` to dispatch one batch command line and
// exit, mirroring the teacher's own demo entry point.
package main

import (
	"fmt"
	"os"

	"github.com/mwantia/interp"
	"github.com/mwantia/interp/config"
)

func main() {
	it, err := setupDemo()
	if err != nil {
		fmt.Fprintln(os.Stderr, "interp:", err)
		os.Exit(1)
	}

	if len(os.Args) >= 3 && os.Args[1] == "-c" {
		if err := it.DispatchLine(os.Args[2]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(it.ExitCode())
	}

	if err := it.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(it.ExitCode())
}

func setupDemo() (*interp.Interpreter, error) {
	cfg := config.Default()
	cfg.HistoryPath = os.Getenv("INTERP_HISTORY_PATH")

	it, err := interp.New(cfg, interp.WithHandler(&Demo{Greeting: "Hello"}))
	if err != nil {
		return nil, err
	}
	return it, nil
}
