package interperr

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/google/uuid"
)

// Error is the core's own exception type (spec §7). Every error the
// dispatcher surfaces to a REPL or batch caller is wrapped in one of
// these so a host can inspect Kind, Parameter/Literal, and a stable
// correlation ID without string-matching a message.
type Error struct {
	ID        string // correlation ID, stamped once at creation
	Kind      error  // one of the sentinels in errors.go
	Message   string
	Parameter string // formal parameter name, when applicable
	Literal   string // offending literal, when applicable (invalid-argument-value)
	Verbose   string // stack-ish detail, only surfaced when the interpreter runs verbose
}

// New stamps a fresh correlation ID and builds an Error of the given
// kind with message.
func New(kind error, message string) *Error {
	return &Error{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
	}
}

// WithParameter sets the formal-parameter name this error names.
func (e *Error) WithParameter(name string) *Error {
	e.Parameter = name
	return e
}

// WithLiteral sets the offending literal this error names.
func (e *Error) WithLiteral(literal string) *Error {
	e.Literal = literal
	return e
}

// WithVerbose attaches extra detail shown only in verbose mode.
func (e *Error) WithVerbose(detail string) *Error {
	e.Verbose = detail
	return e
}

func (e *Error) Error() string {
	if e.Parameter != "" && e.Literal != "" {
		return fmt.Sprintf("%s: %s (parameter %q, value %q)", e.Kind, e.Message, e.Parameter, e.Literal)
	}
	if e.Parameter != "" {
		return fmt.Sprintf("%s: %s (parameter %q)", e.Kind, e.Message, e.Parameter)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap lets errors.Is/errors.As classify this Error by its Kind
// sentinel.
func (e *Error) Unwrap() error {
	return e.Kind
}

// gobError is the wire shape for Error: Kind is stored by its message
// text since error values themselves aren't gob-registrable, and
// reconstructed against the sentinel table on decode.
type gobError struct {
	ID        string
	KindText  string
	Message   string
	Parameter string
	Literal   string
	Verbose   string
}

var kindsByText = map[string]error{
	ErrInvalidInput.Error():            ErrInvalidInput,
	ErrUnknownCommand.Error():          ErrUnknownCommand,
	ErrMissingRequiredArgument.Error(): ErrMissingRequiredArgument,
	ErrInvalidArgumentValue.Error():    ErrInvalidArgumentValue,
	ErrUnknownOption.Error():           ErrUnknownOption,
	ErrApplicationError.Error():        ErrApplicationError,
	ErrUnhandled.Error():               ErrUnhandled,
	ErrConsoleIOUnavailable.Error():    ErrConsoleIOUnavailable,
}

// GobEncode lets *Error round-trip through a binary serializer (spec
// §7 requires the core's exception type to survive this).
func (e *Error) GobEncode() ([]byte, error) {
	kindText := ""
	if e.Kind != nil {
		kindText = e.Kind.Error()
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(gobError{
		ID:        e.ID,
		KindText:  kindText,
		Message:   e.Message,
		Parameter: e.Parameter,
		Literal:   e.Literal,
		Verbose:   e.Verbose,
	}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode is the inverse of GobEncode.
func (e *Error) GobDecode(data []byte) error {
	var wire gobError
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&wire); err != nil {
		return err
	}

	e.ID = wire.ID
	e.Message = wire.Message
	e.Parameter = wire.Parameter
	e.Literal = wire.Literal
	e.Verbose = wire.Verbose
	if kind, ok := kindsByText[wire.KindText]; ok {
		e.Kind = kind
	} else {
		e.Kind = ErrUnhandled
	}
	return nil
}
