// Package registry implements the handler registry and reflection
// binder from spec §4.2: it discovers commands, options, and filters
// from handler instances and produces the uniform Option/Argument/
// Command/Filter entities the dispatcher consumes.
//
// Go's reflect package exposes neither custom attributes nor parameter
// names, so per-member metadata (display name, aliases, description,
// category, default value, an argument's "captures all" marker) is
// recovered through the registration-builder-DSL fallback spec §9
// describes for reflection-poor languages: a handler may optionally
// implement Describer to hand the binder that metadata; fields/methods
// with no corresponding entry fall back to their reflect-derived name
// and type-derived requiredness.
package registry

import (
	"io"
	"reflect"
)

// StdIO is the explicit stream record spec §9's design note recommends
// in place of swapping the process-wide console: each pipeline stage
// (spec §4.6) gets its own StdIO rather than mutating globals.
type StdIO struct {
	Out io.Writer
	Err io.Writer
	In  io.Reader
}

// Interpreter is the minimal surface a command parameter of the
// interpreter's own type can bind to (spec §4.2: "a command parameter
// whose type is the interpreter interface receives the interpreter
// itself and does not consume a token"). Handlers that need to print
// output take an Interpreter parameter and write through StdIO().Out
// rather than os.Stdout directly, so pipeline stages (spec §4.6) can
// redirect them.
type Interpreter interface {
	ExitCode() int
	SetExitCode(code int)

	// StdIO returns the currently active stream record.
	StdIO() StdIO
	// SetStdIO installs io as the active stream record and returns a
	// revert function that restores the previous one; callers must
	// defer revert() so replacement is undone on every exit path,
	// including a panic (spec §5).
	SetStdIO(io StdIO) (revert func())
}

// InterpreterType is the reflect.Type of the Interpreter interface,
// used by the binder to recognize an interpreter-bound parameter.
var InterpreterType = reflect.TypeOf((*Interpreter)(nil)).Elem()

// OptionMeta is metadata a Describer supplies for a struct field that
// should become an Option (spec §4.2 property-attribute precedence:
// an explicit option meta takes precedence over generic display/
// description/category attributes, which this model folds into one).
type OptionMeta struct {
	Name        string
	Aliases     []string
	Description string
	Category    string
	Hidden      bool
	// Default overrides the field's zero value when non-nil.
	Default any
}

// ArgSpec is metadata a Describer supplies for one formal parameter of
// a command method.
type ArgSpec struct {
	Name        string
	Aliases     []string
	Description string
	Hidden      bool
	// Default marks the parameter non-required and supplies the value
	// used when it's absent. A nil Default on a non-pointer/slice type
	// means the parameter is required.
	Default any
	// CapturesAll marks the "all arguments" parameter (spec §4.2/§4.3):
	// it must be typed []string and receives the full raw token vector
	// of the current command invocation.
	CapturesAll bool
}

// CommandMeta is metadata a Describer supplies for a method that
// should become a Command.
type CommandMeta struct {
	Name        string
	Aliases     []string
	Description string
	Category    string
	Hidden      bool
	Args        []ArgSpec // one entry per formal parameter other than the Interpreter one, in declaration order
}

// Describer lets a handler type attach the metadata spec §4.2 sources
// from attributes in the original reflective system. All methods are
// optional in spirit: a handler not implementing Describer simply gets
// reflect-derived names for every member.
type Describer interface {
	// DescribeOption returns metadata for the named exported field, if
	// any. ok=false means "use reflect-derived defaults".
	DescribeOption(fieldName string) (OptionMeta, bool)
	// DescribeCommand returns metadata for the named method, if any.
	DescribeCommand(methodName string) (CommandMeta, bool)
	// IgnoreMember excludes a field or method from discovery entirely
	// (spec §4.2's "ignore marker").
	IgnoreMember(memberName string) bool
	// IsFilter marks methodName as a filter. Only a method matching the
	// filter signature exactly is registered as a Filter; one that is
	// marked but does not match is registered as neither a Filter nor,
	// unless DescribeCommand describes it, a Command. A method matching
	// the signature that DescribeCommand also describes is registered as
	// both (spec §9's open question), whether or not IsFilter marks it.
	IsFilter(methodName string) bool
}

// Option is a named, typed, read/write slot on a handler instance
// (spec §3).
type Option struct {
	Name        string
	Aliases     []string
	Description string
	Category    string
	Hidden      bool
	Type        reflect.Type

	handler reflect.Value // addressable struct value
	field   reflect.StructField
	def     any
}

// Get reads the option's current value by reflection.
func (o *Option) Get() any {
	return o.handler.FieldByIndex(o.field.Index).Interface()
}

// Set writes the option's current value by reflection. value must be
// assignable to o.Type (the coerce package is responsible for getting
// it there).
func (o *Option) Set(value any) {
	o.handler.FieldByIndex(o.field.Index).Set(reflect.ValueOf(value))
}

// Default returns the option's configured default value.
func (o *Option) Default() any {
	return o.def
}

// Argument is a positional-or-named formal parameter of a Command
// (spec §3).
type Argument struct {
	Name        string
	Aliases     []string
	Description string
	Hidden      bool
	Required    bool
	Default     any
	Type        reflect.Type
	Position    int
	CapturesAll bool
	IsInterpreter bool
}

// Command is an executable action bound to a method on a handler
// instance (spec §3).
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Category    string
	Hidden      bool
	Arguments   []Argument

	receiver reflect.Value
	method   reflect.Method
}

// Invoke calls the underlying method with the already-coerced
// arguments, in declaration order. By convention a Command method's
// final (and typically only) return value implements error; Invoke
// returns that value, or nil if the method has no return values.
func (c *Command) Invoke(args []reflect.Value) error {
	full := make([]reflect.Value, 0, len(args)+1)
	full = append(full, c.receiver)
	full = append(full, args...)

	out := c.method.Func.Call(full)
	if len(out) == 0 {
		return nil
	}

	last := out[len(out)-1]
	if last.Kind() != reflect.Interface || last.IsNil() {
		return nil
	}
	err, _ := last.Interface().(error)
	return err
}

// Filter is a pre/around invocation hook (spec §3/§4.5): signature
// (Interpreter, Chain, []string) error.
type Filter struct {
	Name string // method name, for diagnostics; filters aren't addressed by name

	receiver reflect.Value
	method   reflect.Method
}

// Chain is what a Filter receives to continue the chain (spec §3/§4.5).
// A filter that never calls Next suppresses the invocation.
type Chain interface {
	Next(tokens []string) error
}

// ChainType is the reflect.Type of the Chain interface, used by the
// binder to recognize the filter signature's second parameter.
var ChainType = reflect.TypeOf((*Chain)(nil)).Elem()

// ChainFunc adapts a plain function to the Chain interface.
type ChainFunc func(tokens []string) error

func (f ChainFunc) Next(tokens []string) error { return f(tokens) }

// Invoke calls the filter with the given interpreter, chain, and
// remaining tokens, returning its error result (or nil).
func (f *Filter) Invoke(interp Interpreter, next Chain, tokens []string) error {
	out := f.method.Func.Call([]reflect.Value{
		f.receiver,
		reflect.ValueOf(interp),
		reflect.ValueOf(next),
		reflect.ValueOf(tokens),
	})
	if len(out) == 0 || out[0].IsNil() {
		return nil
	}
	return out[0].Interface().(error)
}
