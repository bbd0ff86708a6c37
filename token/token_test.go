package token

import (
	"reflect"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		`a b c`,
		`a b "c c"`,
		`a b " c "`,
		`a "b""b" c`,
		`a """b""" c`,
	}

	for _, input := range cases {
		line := input
		tokens, err := Parse(&line)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if len(tokens) != 3 {
			t.Fatalf("Parse(%q) = %#v, want 3 tokens", input, tokens)
		}
		if got := Join(tokens); got != input {
			t.Fatalf("Join(Parse(%q)) = %q, want %q", input, got, input)
		}
	}
}

func TestJoinRemovesRedundantQuotes(t *testing.T) {
	line := `a "b" c`
	tokens, err := Parse(&line)
	if err != nil {
		t.Fatal(err)
	}
	if got := Join(tokens); got != "a b c" {
		t.Fatalf("Join = %q, want %q", got, "a b c")
	}
}

func TestParseNilFails(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatal("Parse(nil) should fail")
	}
}

func TestParseUnterminatedQuoteFails(t *testing.T) {
	line := `a "b`
	if _, err := Parse(&line); err == nil {
		t.Fatal("unterminated quote should fail")
	}
}

func TestArgumentListBuild(t *testing.T) {
	cfg := Default()
	tokens := []string{"/Name=Value", "positional", "-flag", "/Name=Other"}
	al := NewArgumentList(cfg, tokens)

	item := al.Get("name")
	if item == nil {
		t.Fatal("expected item for 'name'")
	}
	values := item.Strings()
	if !reflect.DeepEqual(values, []string{"Value", "Other"}) {
		t.Fatalf("values = %#v", values)
	}

	flag := al.Get("flag")
	if flag == nil || flag.First() != nil {
		t.Fatalf("expected bare flag with nil value, got %#v", flag)
	}

	if !reflect.DeepEqual(al.Unnamed, []string{"positional"}) {
		t.Fatalf("unnamed = %#v", al.Unnamed)
	}
}

func TestRemoveSuccessiveOccurrences(t *testing.T) {
	cfg := Default()
	tokens := []string{"/x=1", "/x=2", "other"}

	remaining, value, found := Remove(cfg, tokens, "x")
	if !found || value == nil || *value != "1" {
		t.Fatalf("first remove: value=%v found=%v", value, found)
	}
	remaining, value, found = Remove(cfg, remaining, "x")
	if !found || value == nil || *value != "2" {
		t.Fatalf("second remove: value=%v found=%v", value, found)
	}
	if !reflect.DeepEqual(remaining, []string{"other"}) {
		t.Fatalf("remaining = %#v", remaining)
	}
}

func TestRemoveMatchesEmbeddedWhitespaceExactly(t *testing.T) {
	cfg := Default()
	tokens := []string{"/four ", "/four"}

	_, _, found := Remove(cfg, tokens, "four")
	if !found {
		t.Fatal("expected exact match against 'four'")
	}
	// the remaining token is "/four " (with trailing space), distinct
	// from "four".
}
