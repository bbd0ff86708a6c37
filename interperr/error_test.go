package interperr

import (
	"bytes"
	"encoding/gob"
	"errors"
	"testing"
)

func TestNewStampsCorrelationID(t *testing.T) {
	e := New(ErrUnknownCommand, "no such command")
	if e.ID == "" {
		t.Fatal("expected non-empty correlation ID")
	}
	if !errors.Is(e, ErrUnknownCommand) {
		t.Fatal("expected errors.Is to classify by Kind")
	}
}

func TestErrorMessageIncludesParameterAndLiteral(t *testing.T) {
	e := New(ErrInvalidArgumentValue, "not a number").
		WithParameter("count").
		WithLiteral("abc")

	msg := e.Error()
	if !bytes.Contains([]byte(msg), []byte("count")) || !bytes.Contains([]byte(msg), []byte("abc")) {
		t.Fatalf("Error() = %q, want parameter and literal present", msg)
	}
}

func TestGobRoundTrip(t *testing.T) {
	original := New(ErrMissingRequiredArgument, "name is required").WithParameter("name")

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(original); err != nil {
		t.Fatal(err)
	}

	var decoded Error
	if err := gob.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatal(err)
	}

	if decoded.ID != original.ID || decoded.Message != original.Message || decoded.Parameter != original.Parameter {
		t.Fatalf("decoded = %#v, want fields matching %#v", decoded, *original)
	}
	if !errors.Is(&decoded, ErrMissingRequiredArgument) {
		t.Fatal("decoded error lost its Kind across the gob round trip")
	}
}

func TestGobDecodeUnknownKindFallsBackToUnhandled(t *testing.T) {
	wire := gobError{ID: "x", KindText: "some kind nobody registered", Message: "m"}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(wire); err != nil {
		t.Fatal(err)
	}

	var decoded Error
	if err := decoded.GobDecode(buf.Bytes()); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(&decoded, ErrUnhandled) {
		t.Fatalf("expected fallback to ErrUnhandled, got Kind=%v", decoded.Kind)
	}
}
