package builtin

import (
	"strings"
	"testing"
	"time"

	"github.com/mwantia/interp/registry"
)

type sampleOptions struct {
	Greeting string
	Count    int
}

func (s *sampleOptions) DescribeOption(field string) (registry.OptionMeta, bool) {
	switch field {
	case "Greeting":
		return registry.OptionMeta{Name: "greeting"}, true
	case "Count":
		return registry.OptionMeta{Name: "count"}, true
	}
	return registry.OptionMeta{}, false
}
func (s *sampleOptions) DescribeCommand(string) (registry.CommandMeta, bool) {
	return registry.CommandMeta{}, false
}
func (s *sampleOptions) IgnoreMember(string) bool { return false }
func (s *sampleOptions) IsFilter(string) bool     { return false }

func TestGetPrintsCurrentValue(t *testing.T) {
	host := newTestHost()
	opts := &sampleOptions{Greeting: "hi"}
	if err := host.reg.AddHandler(opts); err != nil {
		t.Fatal(err)
	}

	h := NewHandler()
	if err := h.Get(host, "greeting"); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(host.out()); got != "hi" {
		t.Fatalf("got %q, want hi", got)
	}
}

func TestGetPrefersStoredValue(t *testing.T) {
	host := newTestHost()
	opts := &sampleOptions{Greeting: "hi"}
	if err := host.reg.AddHandler(opts); err != nil {
		t.Fatal(err)
	}
	host.stored["greeting"] = "stored-value"

	h := NewHandler()
	if err := h.Get(host, "greeting"); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(host.out()); got != "stored-value" {
		t.Fatalf("got %q, want stored-value", got)
	}
}

func TestGetMatchesOptionNameCaseInsensitively(t *testing.T) {
	host := newTestHost()
	opts := &sampleOptions{Greeting: "hi"}
	if err := host.reg.AddHandler(opts); err != nil {
		t.Fatal(err)
	}

	h := NewHandler()
	if err := h.Get(host, "GREETING"); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(host.out()); got != "hi" {
		t.Fatalf("got %q, want hi", got)
	}
}

func TestGetUnknownOptionFails(t *testing.T) {
	host := newTestHost()
	h := NewHandler()
	if err := h.Get(host, "nope"); err == nil {
		t.Fatal("expected error for unknown option")
	}
}

func TestSetAssignsAndPersists(t *testing.T) {
	host := newTestHost()
	opts := &sampleOptions{Count: 1}
	if err := host.reg.AddHandler(opts); err != nil {
		t.Fatal(err)
	}

	h := NewHandler()
	if err := h.Set(host, []string{"count", "42"}); err != nil {
		t.Fatal(err)
	}
	if opts.Count != 42 {
		t.Fatalf("Count = %d, want 42", opts.Count)
	}
	if host.stored["count"] != "42" {
		t.Fatalf("stored[count] = %q, want 42", host.stored["count"])
	}
}

func TestSetMatchesOptionNameCaseInsensitively(t *testing.T) {
	host := newTestHost()
	opts := &sampleOptions{Count: 1}
	if err := host.reg.AddHandler(opts); err != nil {
		t.Fatal(err)
	}

	h := NewHandler()
	if err := h.Set(host, []string{"COUNT", "42"}); err != nil {
		t.Fatal(err)
	}
	if opts.Count != 42 {
		t.Fatalf("Count = %d, want 42", opts.Count)
	}
}

func TestSetReadInputMatchesOptionNameCaseInsensitively(t *testing.T) {
	host := newTestHost()
	opts := &sampleOptions{}
	if err := host.reg.AddHandler(opts); err != nil {
		t.Fatal(err)
	}
	host.stdio.In = strings.NewReader("GREETING=yo\n")

	h := NewHandler()
	if err := h.Set(host, []string{"/readInput"}); err != nil {
		t.Fatal(err)
	}
	if opts.Greeting != "yo" {
		t.Fatalf("Greeting = %q, want yo", opts.Greeting)
	}
}

func TestSetNoArgsListsEveryOption(t *testing.T) {
	host := newTestHost()
	opts := &sampleOptions{Greeting: "hi", Count: 1}
	if err := host.reg.AddHandler(opts); err != nil {
		t.Fatal(err)
	}

	h := NewHandler()
	if err := h.Set(host, nil); err != nil {
		t.Fatal(err)
	}
	out := host.out()
	if !strings.Contains(out, "greeting = hi") || !strings.Contains(out, "count = 1") {
		t.Fatalf("out = %q", out)
	}
}

func TestSetReadInputAppliesLines(t *testing.T) {
	host := newTestHost()
	opts := &sampleOptions{}
	if err := host.reg.AddHandler(opts); err != nil {
		t.Fatal(err)
	}
	host.stdio.In = strings.NewReader("greeting=yo\ncount=7\n")

	h := NewHandler()
	if err := h.Set(host, []string{"/readInput"}); err != nil {
		t.Fatal(err)
	}
	if opts.Greeting != "yo" || opts.Count != 7 {
		t.Fatalf("opts = %#v", opts)
	}
}

func TestEchoJoinsWithQuoting(t *testing.T) {
	host := newTestHost()
	h := NewHandler()
	if err := h.Echo(host, []string{"hello", "two words"}); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(host.out()); got != `hello "two words"` {
		t.Fatalf("got %q", got)
	}
}

func TestFindFiltersMatchingLines(t *testing.T) {
	host := newTestHost()
	host.stdio.In = strings.NewReader("apple\nbanana\ncherry\n")

	h := NewHandler()
	if err := h.Find(host, "an", false, false, ""); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(host.out()); got != "banana" {
		t.Fatalf("got %q", got)
	}
}

func TestFindInvertedMatch(t *testing.T) {
	host := newTestHost()
	host.stdio.In = strings.NewReader("apple\nbanana\ncherry\n")

	h := NewHandler()
	if err := h.Find(host, "an", true, false, ""); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(host.out()), "\n")
	if len(lines) != 2 || lines[0] != "apple" || lines[1] != "cherry" {
		t.Fatalf("lines = %#v", lines)
	}
}

func TestFindCaseInsensitive(t *testing.T) {
	host := newTestHost()
	host.stdio.In = strings.NewReader("APPLE\nbanana\n")

	h := NewHandler()
	if err := h.Find(host, "apple", false, true, ""); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(host.out()); got != "APPLE" {
		t.Fatalf("got %q", got)
	}
}

func TestPromptGetAndSet(t *testing.T) {
	host := newTestHost()
	host.prompt = "> "
	h := NewHandler()

	if err := h.Prompt(host, "$ "); err != nil {
		t.Fatal(err)
	}
	if host.prompt != "$ " {
		t.Fatalf("prompt = %q, want \"$ \"", host.prompt)
	}

	if err := h.Prompt(host, ""); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(host.out()); got != "$" {
		t.Fatalf("got %q", got)
	}
}

func TestHistoryListsEntriesMostRecentFirst(t *testing.T) {
	host := newTestHost()
	// Host.History hands entries back most recent first.
	host.history = []HistoryEntry{
		{Line: "second", ExitCode: 1, When: time.Now()},
		{Line: "first", ExitCode: 0, When: time.Now().Add(-time.Hour)},
	}

	h := NewHandler()
	if err := h.History(host, 2); err != nil {
		t.Fatal(err)
	}
	out := host.out()
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Fatalf("out = %q", out)
	}
	if strings.Index(out, "second") > strings.Index(out, "first") {
		t.Fatalf("expected the most recent entry listed first, out = %q", out)
	}
}

func TestExitReturnsSentinel(t *testing.T) {
	host := newTestHost()
	h := NewHandler()
	err := h.Exit(host)
	if err != ErrExitRequested {
		t.Fatalf("err = %v, want ErrExitRequested", err)
	}
}

func TestMoreDisabledWithoutTerminal(t *testing.T) {
	host := newTestHost()
	host.consoleH = 0
	host.stdio.In = strings.NewReader("a\nb\nc\n")

	h := NewHandler()
	if err := h.More(host); err != nil {
		t.Fatal(err)
	}
	out := host.out()
	if strings.Contains(out, "More") {
		t.Fatalf("expected no pagination prompt with console height 0, got %q", out)
	}
	if !strings.Contains(out, "a") || !strings.Contains(out, "c") {
		t.Fatalf("expected all lines printed, got %q", out)
	}
}

func TestMorePaginatesAndReadsNextKey(t *testing.T) {
	host := newTestHost()
	host.consoleH = 3 // pageSize = 2
	host.nextChar = ' '
	host.stdio.In = strings.NewReader("a\nb\nc\n")

	h := NewHandler()
	if err := h.More(host); err != nil {
		t.Fatal(err)
	}
	out := host.out()
	if !strings.Contains(out, "-- More --") {
		t.Fatalf("expected a pagination prompt, got %q", out)
	}
}

func TestHelpListsCommandsAndOptions(t *testing.T) {
	host := newTestHost()
	opts := &sampleOptions{}
	if err := host.reg.AddHandler(opts); err != nil {
		t.Fatal(err)
	}

	h := NewHandler()
	if err := h.Help(host, ""); err != nil {
		t.Fatal(err)
	}
	out := host.out()
	if !strings.Contains(out, "Options:") || !strings.Contains(out, "greeting") {
		t.Fatalf("out = %q", out)
	}
}

func TestHelpDetailForUnknownNameReportsInvalid(t *testing.T) {
	host := newTestHost()
	h := NewHandler()
	if err := h.Help(host, "nonexistent"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(host.out(), "Invalid") {
		t.Fatalf("out = %q", host.out())
	}
}

func TestRenderJSONIncludesVisibleEntries(t *testing.T) {
	host := newTestHost()
	opts := &sampleOptions{}
	if err := host.reg.AddHandler(opts); err != nil {
		t.Fatal(err)
	}

	data, err := RenderJSON(host.reg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(data, "greeting") || !strings.Contains(data, "count") {
		t.Fatalf("data = %q", data)
	}
}
