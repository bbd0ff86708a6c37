package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseIsCaseInsensitiveWithFallback(t *testing.T) {
	cases := map[string]LogLevel{
		"debug": Debug, "DEBUG": Debug,
		"warn": Warn, "Error": Error,
		"fatal": Fatal, "nonsense": Info, "": Info,
	}
	for input, want := range cases {
		if got := Parse(input); got != want {
			t.Fatalf("Parse(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestLoggerSkipsBelowConfiguredLevel(t *testing.T) {
	l := NewLogger("test", Warn, "", true)
	l.NoColor = true

	buf := &bytes.Buffer{}
	l.writer = buf

	l.Debug("should not appear")
	l.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Fatalf("Debug line leaked through Warn-level logger: %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Fatalf("Warn line missing: %q", out)
	}
}

func TestNamedScopesPrefix(t *testing.T) {
	l := NewLogger("root", Debug, "", true)
	l.NoColor = true
	buf := &bytes.Buffer{}
	l.writer = buf

	child := l.Named("dispatch")
	child.Info("hello")

	if !strings.Contains(buf.String(), "root/dispatch") {
		t.Fatalf("expected scoped name in output, got %q", buf.String())
	}
}

func TestLogLevelStringNames(t *testing.T) {
	cases := map[LogLevel]string{Debug: "DEBUG", Info: "INFO", Warn: "WARN", Error: "ERROR", Fatal: "FATAL"}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Fatalf("%v.String() = %q, want %q", level, got, want)
		}
	}
}
