// Package builtin implements the default commands spec §6 describes:
// help, get, set, echo, more, find, prompt, exit/quit, plus the
// supplemental history built-in from SPEC_FULL.md. Each is a method on
// Handler, discovered by the same reflection binder (spec §4.2) that
// discovers user handlers — "each default built-in is implemented as
// though an internal handler."
package builtin

import (
	"time"

	"github.com/mwantia/interp/registry"
	"github.com/mwantia/interp/token"
)

// HistoryEntry is one row of the supplemental command history
// (SPEC_FULL.md's "history" package), surfaced through Host so this
// package doesn't need to import the sqlite-backed store directly.
type HistoryEntry struct {
	Line     string
	ExitCode int
	When     time.Time
}

// Host is the richer surface a concrete interpreter exposes beyond
// registry.Interpreter. Builtin command methods are bound with a plain
// registry.Interpreter parameter (so the reflection binder recognizes
// them per spec §4.2), then type-assert to Host to reach the registry,
// tokenizer config, prompt, pagination reader, and optional history/
// option-store mirror. A handler run through a bare registry.Interpreter
// that doesn't also satisfy Host does not panic: get, set, prompt and
// history return a plain "not available in this context" error, help
// prints a one-line notice instead of the listing, and more prints its
// input without paginating.
type Host interface {
	registry.Interpreter

	Registry() *registry.Registry
	TokenConfig() *token.Config

	PromptTemplate() string
	SetPromptTemplate(value string)
	// FilterPrecedence is spec §4.6's configurable precedence string
	// controlling redirect-vs-pipe-split ordering.
	FilterPrecedence() string

	// ReadNextCharacter is more's injectable next-key reader (spec
	// §4.6); its error, if any, is returned from more as is. Without a
	// Host, more has no console height, never paginates and so never
	// asks for a key; it does not fail console-io-unavailable.
	ReadNextCharacter() (rune, error)
	// ConsoleHeight reports the pager window height for more; 0 means
	// "not a terminal", which more treats as an unbounded single page.
	ConsoleHeight() int

	// History returns up to n most recent dispatched command lines, most
	// recent first. A nil/unconfigured history backend returns an empty
	// slice, not an error.
	History(n int) ([]HistoryEntry, error)

	// StoreLoad/StoreSave mirror an Option's value through the optional
	// OptionStore backend (SPEC_FULL.md's "store" package). ok=false
	// with a nil error means "no store configured, or key absent" —
	// callers fall back to the live reflected value.
	StoreLoad(name string) (string, bool, error)
	StoreSave(name, value string) error
}

// Handler is the internal handler bound for the default built-ins.
type Handler struct {
	// Disabled mirrors the construction-time default-built-ins flag
	// (spec §4.2): individual commands can be turned off one at a time
	// by name for a host that wants everything except, say, `more`.
	Disabled map[string]bool
}

// NewHandler returns a Handler with every built-in enabled.
func NewHandler() *Handler {
	return &Handler{Disabled: make(map[string]bool)}
}

func (h *Handler) enabled(name string) bool {
	return !h.Disabled[name]
}

// DescribeCommand supplies the lower-case display names, aliases, and
// per-parameter metadata spec §6 names, since Go reflection carries
// neither attributes nor parameter names (spec §9's registration-
// builder-DSL fallback).
func (h *Handler) DescribeCommand(method string) (registry.CommandMeta, bool) {
	switch method {
	case "Help":
		return registry.CommandMeta{
			Name: "help", Description: "List commands and options, or show detailed help for one name.",
			Args: []registry.ArgSpec{{Name: "name", Default: ""}},
		}, h.enabled("help")
	case "Get":
		return registry.CommandMeta{
			Name: "get", Description: "Print the current value of an option.",
			Args: []registry.ArgSpec{{Name: "option"}},
		}, h.enabled("get")
	case "Set":
		return registry.CommandMeta{
			Name: "set", Description: "List, print, or assign option values.",
			Args: []registry.ArgSpec{{CapturesAll: true}},
		}, h.enabled("set")
	case "Echo":
		return registry.CommandMeta{
			Name: "echo", Description: "Print tokens joined with single spaces, quoting as needed.",
			Args: []registry.ArgSpec{{CapturesAll: true}},
		}, h.enabled("echo")
	case "More":
		return registry.CommandMeta{
			Name: "more", Description: "Paginate standard input, a screen at a time.",
		}, h.enabled("more")
	case "Find":
		return registry.CommandMeta{
			Name: "find", Description: "Print input lines containing a literal substring.",
			Args: []registry.ArgSpec{
				{Name: "pattern"},
				{Name: "V", Default: false},
				{Name: "I", Default: false},
				{Name: "f", Default: ""},
			},
		}, h.enabled("find")
	case "Prompt":
		return registry.CommandMeta{
			Name: "prompt", Description: "Print or assign the REPL prompt template.",
			Args: []registry.ArgSpec{{Name: "value", Default: ""}},
		}, h.enabled("prompt")
	case "Exit":
		return registry.CommandMeta{Name: "exit", Aliases: []string{"quit"}, Description: "Terminate the interactive loop."}, true
	case "History":
		return registry.CommandMeta{
			Name: "history", Description: "List the last N dispatched command lines.",
			Args: []registry.ArgSpec{{Name: "count", Default: 20}},
		}, h.enabled("history")
	}
	return registry.CommandMeta{}, false
}

func (h *Handler) DescribeOption(string) (registry.OptionMeta, bool) { return registry.OptionMeta{}, false }
func (h *Handler) IgnoreMember(name string) bool                     { return name == "Disabled" }
func (h *Handler) IsFilter(string) bool                              { return false }
