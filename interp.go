// Package interp is the root of the reflection-driven command
// interpreter: construct an Interpreter, register one or more handlers,
// and either Dispatch single lines in a batch context or hand it to
// repl.Loop for an interactive session. Everything else — tokenizing,
// binding, coercion, filters, pipelines, built-ins — lives in the
// subpackages this type wires together.
package interp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/mwantia/interp/builtin"
	"github.com/mwantia/interp/config"
	"github.com/mwantia/interp/dispatch"
	"github.com/mwantia/interp/history"
	"github.com/mwantia/interp/log"
	"github.com/mwantia/interp/pipeline"
	"github.com/mwantia/interp/registry"
	"github.com/mwantia/interp/repl"
	"github.com/mwantia/interp/store"
	"github.com/mwantia/interp/token"
)

// Interpreter is the constructed, ready-to-dispatch command
// interpreter. The zero value is not usable; build one with New.
type Interpreter struct {
	mu sync.Mutex

	cfg      *config.InterpreterConfig
	tokenCfg *token.Config
	reg      *registry.Registry
	disp     *dispatch.Dispatcher
	logger   *log.Logger

	stdio    registry.StdIO
	exitCode int
	prompt   string

	store   store.OptionStore
	history *history.History

	builtins *builtin.Handler

	stdinReader   *bufio.Reader
	consoleHeight int
}

// New builds an Interpreter from cfg (nil uses config.Default()),
// applying opts in order. Construction wires the default built-ins
// (unless cfg.DefaultBuiltins says otherwise),
// the optional history and option-store backends cfg names, and a
// logger scoped to this interpreter.
func New(cfg *config.InterpreterConfig, opts ...Option) (*Interpreter, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	tokenCfg := &token.Config{
		PrefixChars:    []rune(cfg.PrefixChars),
		DelimiterChars: []rune(cfg.DelimiterChars),
		CaseSensitive:  cfg.CaseSensitive,
	}
	if err := tokenCfg.Validate(); err != nil {
		return nil, err
	}

	logger := log.NewLogger("interp", cfg.LogLevelValue(), cfg.LogFile, cfg.NoTerminal)
	logger.NoColor = cfg.NoColor

	reg := registry.NewRegistry()

	it := &Interpreter{
		cfg:           cfg,
		tokenCfg:      tokenCfg,
		reg:           reg,
		disp:          dispatch.New(reg, tokenCfg, logger.Named("dispatch")),
		logger:        logger,
		stdio:         registry.StdIO{Out: os.Stdout, Err: os.Stderr, In: os.Stdin},
		prompt:        cfg.Prompt,
		store:         store.Noop{},
		builtins:      builtin.NewHandler(),
		stdinReader:   bufio.NewReader(os.Stdin),
		consoleHeight: 24,
	}
	it.disp.Verbose = cfg.Verbose

	for _, opt := range opts {
		if err := opt(it); err != nil {
			return nil, err
		}
	}

	if cfg.HistoryPath != "" && it.history == nil {
		h, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, err
		}
		it.history = h
	}

	if it.store == nil || isNoopStore(it.store) {
		switch cfg.StoreBackend {
		case "consul":
			s, err := store.NewConsulStore(cfg.ConsulAddr, cfg.ConsulPrefix)
			if err != nil {
				return nil, err
			}
			it.store = s
		case "postgres":
			s, err := store.NewPostgresStore(context.Background(), cfg.PostgresDSN)
			if err != nil {
				return nil, err
			}
			it.store = s
		}
	}

	if !cfg.DefaultBuiltins {
		for _, name := range []string{"help", "get", "set", "echo", "more", "find", "prompt", "history"} {
			it.builtins.Disabled[name] = true
		}
	}
	it.registerBuiltins()

	return it, nil
}

func isNoopStore(s store.OptionStore) bool {
	_, ok := s.(store.Noop)
	return ok
}

// registerBuiltins binds the default-builtins handler and installs each
// resulting command through PutBuiltinCommand rather than AddHandler,
// so a user handler registered either before or after construction
// always wins a name collision against a built-in (spec §4.2).
func (it *Interpreter) registerBuiltins() {
	_, commands, _, err := registry.Bind(it.builtins)
	if err != nil {
		it.logger.Warn("default builtins: %v", err)
	}
	for _, cmd := range commands {
		it.reg.PutBuiltinCommand(cmd)
	}
}

// AddHandler registers a user handler's commands, options, and filters
// (spec §4.2). A user-defined command/option always wins a name or
// alias collision against a built-in; collisions between two
// user handlers follow the registry's last-registration-wins rule.
func (it *Interpreter) AddHandler(instance any) error {
	return it.reg.AddHandler(instance)
}

// Dispatch runs one already-tokenized command line: macro expansion and
// pipeline splitting happen in repl.Loop or the caller's own batch
// driver, not here — Dispatch is the narrow "resolve, bind, invoke"
// step spec §4.4 describes, plus history recording and exit-code
// tracking shared by both the REPL and single-shot batch callers.
func (it *Interpreter) Dispatch(interp registry.Interpreter, tokens []string) error {
	err := it.disp.Dispatch(interp, tokens)
	switch {
	case err == nil:
		it.SetExitCode(0)
	case !errors.Is(err, ErrExitRequested):
		it.SetExitCode(1)
	}
	it.recordHistory(tokens, err)
	return err
}

// DispatchLine macro-expands, pipeline-splits, and dispatches one raw
// input line — the single entry point a batch-mode caller (cmd/interp's
// `-c` flag) needs, mirroring what repl.Loop does per line internally.
func (it *Interpreter) DispatchLine(line string) error {
	expanded, err := repl.Expand(line, it.lookupMacro)
	if err != nil {
		return err
	}

	stages, err := pipeline.Split(expanded, it.cfg.FilterPrecedence)
	if err != nil {
		return err
	}

	return pipeline.Run(it, it, stages)
}

func (it *Interpreter) lookupMacro(name string) (string, bool) {
	opt, ok := it.reg.FindOption(it.tokenCfg, name)
	if !ok {
		return "", false
	}
	if value, found, err := it.StoreLoad(name); err == nil && found {
		return value, true
	}
	return fmt.Sprintf("%v", opt.Get()), true
}

func (it *Interpreter) recordHistory(tokens []string, err error) {
	if it.history == nil || len(tokens) == 0 {
		return
	}

	code := 0
	if err != nil {
		code = 1
	}
	if e := it.history.Append(context.Background(), token.Join(tokens), code); e != nil {
		it.logger.Warn("history append failed: %v", e)
	}
}

// Run starts an interactive REPL over os.Stdin (spec §4.8), returning
// when the exit/quit built-in fires or input is exhausted.
func (it *Interpreter) Run() error {
	loop := repl.New(it, it, os.Stdin, it.logger.Named("repl"))
	return loop.Run()
}

// --- registry.Interpreter ---

func (it *Interpreter) ExitCode() int { return it.exitCode }

func (it *Interpreter) SetExitCode(code int) { it.exitCode = code }

func (it *Interpreter) StdIO() registry.StdIO {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.stdio
}

func (it *Interpreter) SetStdIO(io registry.StdIO) (revert func()) {
	it.mu.Lock()
	prev := it.stdio
	it.stdio = io
	it.mu.Unlock()

	return func() {
		it.mu.Lock()
		it.stdio = prev
		it.mu.Unlock()
	}
}

// --- builtin.Host ---

func (it *Interpreter) Registry() *registry.Registry { return it.reg }

func (it *Interpreter) TokenConfig() *token.Config { return it.tokenCfg }

func (it *Interpreter) PromptTemplate() string {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.prompt
}

func (it *Interpreter) SetPromptTemplate(value string) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.prompt = value
}

func (it *Interpreter) FilterPrecedence() string { return it.cfg.FilterPrecedence }

func (it *Interpreter) ReadNextCharacter() (rune, error) {
	r, _, err := it.stdinReader.ReadRune()
	return r, err
}

func (it *Interpreter) ConsoleHeight() int {
	if it.cfg.NoTerminal {
		return 0
	}
	return it.consoleHeight
}

func (it *Interpreter) History(n int) ([]builtin.HistoryEntry, error) {
	if it.history == nil {
		return nil, nil
	}

	rows, err := it.history.Recent(context.Background(), n)
	if err != nil {
		return nil, err
	}

	out := make([]builtin.HistoryEntry, len(rows))
	for i, r := range rows {
		out[i] = builtin.HistoryEntry{Line: r.Line, ExitCode: r.ExitCode, When: r.When}
	}
	return out, nil
}

func (it *Interpreter) StoreLoad(name string) (string, bool, error) { return it.store.Load(name) }

func (it *Interpreter) StoreSave(name, value string) error { return it.store.Save(name, value) }
