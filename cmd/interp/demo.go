package main

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mwantia/interp/coerce"
	"github.com/mwantia/interp/registry"
)

// Loudness is a Go enum in the sense spec §4.3 means: an int-kind type
// whose values `greet` accepts by name, case-insensitively, the same
// way a native enum parameter would resolve in the original runtime.
// Go attaches no reflectable metadata to iota constants, so its names
// are registered with coerce once below rather than discovered.
type Loudness int

const (
	Quiet Loudness = iota
	Normal
	Loud
)

func (l Loudness) String() string {
	switch l {
	case Quiet:
		return "Quiet"
	case Loud:
		return "Loud"
	default:
		return "Normal"
	}
}

func init() {
	coerce.RegisterEnum(reflect.TypeOf(Normal), map[string]int64{
		"Quiet":  int64(Quiet),
		"Normal": int64(Normal),
		"Loud":   int64(Loud),
	})
}

// Demo is a small sample handler exercising the binder end to end: two
// options, one command, and one filter, in the same "struct with
// exported fields plus pointer-receiver methods" shape any user handler
// follows.
type Demo struct {
	Greeting string
	Shouting bool
}

func (d *Demo) DescribeOption(field string) (registry.OptionMeta, bool) {
	switch field {
	case "Greeting":
		return registry.OptionMeta{
			Name: "greeting", Description: "Word printed before a name by `greet`.",
			Default: "Hello",
		}, true
	case "Shouting":
		return registry.OptionMeta{
			Name: "shouting", Description: "Upper-case the greeting.",
			Default: false,
		}, true
	}
	return registry.OptionMeta{}, false
}

func (d *Demo) DescribeCommand(method string) (registry.CommandMeta, bool) {
	switch method {
	case "Greet":
		return registry.CommandMeta{
			Name: "greet", Description: "Print a greeting for a name.",
			Args: []registry.ArgSpec{
				{Name: "name", Default: "World"},
				{Name: "volume", Description: "Quiet, Normal, or Loud, by name.", Default: Normal},
			},
		}, true
	}
	return registry.CommandMeta{}, false
}

func (d *Demo) IgnoreMember(string) bool { return false }
func (d *Demo) IsFilter(string) bool     { return false }

// Greet is the demo command. The Interpreter parameter is recognized by
// type, not position, and doesn't consume a token; volume resolves a
// name literal such as "loud" against Loudness's registered enum table.
func (d *Demo) Greet(interp registry.Interpreter, name string, volume Loudness) error {
	greeting := d.Greeting
	switch {
	case d.Shouting || volume == Loud:
		greeting = strings.ToUpper(greeting)
	case volume == Quiet:
		greeting = strings.ToLower(greeting)
	}
	fmt.Fprintf(interp.StdIO().Out, "%s, %s!\n", greeting, name)
	return nil
}

// Audit is a Filter: its signature alone (Interpreter, Chain, []string)
// is enough for the binder to recognize it (spec §4.2), no DescribeCommand
// entry needed since it's never invoked directly by name.
func (d *Demo) Audit(interp registry.Interpreter, next registry.Chain, tokens []string) error {
	fmt.Fprintf(interp.StdIO().Err, "audit: %v\n", tokens)
	return next.Next(tokens)
}
