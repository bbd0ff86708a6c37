package builtin

import (
	"bytes"
	"strings"

	"github.com/mwantia/interp/registry"
	"github.com/mwantia/interp/token"
)

// testHost is a minimal Host for exercising built-in commands without a
// real Interpreter: a real Registry (so Get/Set/Help/Prompt/Echo can
// resolve options genuinely), plain buffers for StdIO, and a canned
// history slice.
type testHost struct {
	stdio      registry.StdIO
	code       int
	prompt     string
	reg        *registry.Registry
	history    []HistoryEntry
	nextChar   rune
	nextErr    error
	consoleH   int
	stored     map[string]string
}

func newTestHost() *testHost {
	return &testHost{
		stdio:  registry.StdIO{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}, In: strings.NewReader("")},
		reg:    registry.NewRegistry(),
		stored: make(map[string]string),
	}
}

func (h *testHost) ExitCode() int         { return h.code }
func (h *testHost) SetExitCode(code int)  { h.code = code }
func (h *testHost) StdIO() registry.StdIO { return h.stdio }
func (h *testHost) SetStdIO(io registry.StdIO) func() {
	prev := h.stdio
	h.stdio = io
	return func() { h.stdio = prev }
}
func (h *testHost) Registry() *registry.Registry { return h.reg }
func (h *testHost) TokenConfig() *token.Config    { return token.Default() }
func (h *testHost) PromptTemplate() string        { return h.prompt }
func (h *testHost) SetPromptTemplate(value string) { h.prompt = value }
func (h *testHost) FilterPrecedence() string       { return "<>" }
func (h *testHost) ReadNextCharacter() (rune, error) {
	if h.nextErr != nil {
		return 0, h.nextErr
	}
	return h.nextChar, nil
}
func (h *testHost) ConsoleHeight() int { return h.consoleH }
func (h *testHost) History(n int) ([]HistoryEntry, error) {
	if n < len(h.history) {
		return h.history[:n], nil
	}
	return h.history, nil
}
func (h *testHost) StoreLoad(name string) (string, bool, error) {
	v, ok := h.stored[name]
	return v, ok, nil
}
func (h *testHost) StoreSave(name, value string) error {
	h.stored[name] = value
	return nil
}

func (h *testHost) out() string { return h.stdio.Out.(*bytes.Buffer).String() }
