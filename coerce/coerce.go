// Package coerce implements spec §4.3's type coercion: converting the
// string value(s) bound to a formal parameter into its declared Go
// type.
package coerce

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mwantia/interp/interperr"
	"github.com/mwantia/interp/registry"
	"github.com/mwantia/interp/token"
)

var stringSliceType = reflect.TypeOf([]string{})
var timeType = reflect.TypeOf(time.Time{})
var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

var (
	enumMu    sync.RWMutex
	enumNames = map[reflect.Type]map[string]int64{}
)

// RegisterEnum records t's case-insensitive name table so convert can
// resolve a name literal like "Red" for a Go enum (spec §4.3: "for
// enums, case-insensitive name match"). Go attaches no metadata to a
// defined integer type's constants, so unlike a reflective runtime
// there's nothing for the binder to discover on its own; a package
// defining an enum type registers its names once, typically from an
// init(), the same way it would define a String() method for
// fmt.Stringer. t must have an integer kind.
func RegisterEnum(t reflect.Type, names map[string]int64) {
	folded := make(map[string]int64, len(names))
	for name, v := range names {
		folded[strings.ToLower(name)] = v
	}

	enumMu.Lock()
	enumNames[t] = folded
	enumMu.Unlock()
}

func lookupEnumName(target reflect.Type, literal string) (reflect.Value, bool) {
	enumMu.RLock()
	names, ok := enumNames[target]
	enumMu.RUnlock()
	if !ok {
		return reflect.Value{}, false
	}

	n, ok := names[strings.ToLower(literal)]
	if !ok {
		return reflect.Value{}, false
	}

	v := reflect.New(target).Elem()
	switch target.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(uint64(n))
	default:
		v.SetInt(n)
	}
	return v, true
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// Argument converts the Item bound to arg.Name (nil if the argument was
// never bound) into a reflect.Value of arg.Type, applying spec §4.3's
// missing/required/default rules.
func Argument(arg *registry.Argument, item *token.Item) (reflect.Value, error) {
	if arg.Type == stringSliceType && !arg.CapturesAll {
		return coerceStringSlice(arg, item), nil
	}

	if item == nil {
		if arg.Required {
			return reflect.Value{}, interperr.New(interperr.ErrMissingRequiredArgument,
				fmt.Sprintf("the value for %s is required.", arg.Name)).WithParameter(arg.Name)
		}
		return defaultValue(arg), nil
	}

	first := item.First()
	literal := ""
	if first != nil {
		literal = *first
	} else if arg.Type.Kind() == reflect.Bool {
		// a bare `/flag` with no delimiter sets a bool true.
		literal = "true"
	}

	return coerceScalar(arg, literal)
}

func defaultValue(arg *registry.Argument) reflect.Value {
	if arg.Default != nil {
		dv := reflect.ValueOf(arg.Default)
		if dv.Type().AssignableTo(arg.Type) {
			return dv
		}
	}
	return reflect.Zero(arg.Type)
}

func coerceStringSlice(arg *registry.Argument, item *token.Item) reflect.Value {
	if item == nil {
		return defaultValue(arg)
	}
	return reflect.ValueOf(item.Strings())
}

func coerceScalar(arg *registry.Argument, literal string) (reflect.Value, error) {
	t := arg.Type
	isPtr := t.Kind() == reflect.Ptr

	target := t
	if isPtr {
		target = t.Elem()
		if literal == "" {
			return reflect.Zero(t), nil // nullable-of-U, empty/absent -> null
		}
	}

	val, err := convert(target, literal)
	if err != nil {
		return reflect.Value{}, interperr.New(interperr.ErrInvalidArgumentValue,
			fmt.Sprintf("could not convert %q to %s", literal, target)).
			WithParameter(arg.Name).WithLiteral(literal)
	}

	if isPtr {
		ptr := reflect.New(target)
		ptr.Elem().Set(val)
		return ptr, nil
	}
	return val, nil
}

// ConvertLiteral converts a single string literal into target's type.
// It is the scalar half of Argument, exported for the dispatcher's
// top-level option setters (spec §4.4), which bind a string value onto
// an Option's type directly rather than through an Argument/Item pair.
func ConvertLiteral(target reflect.Type, literal string) (reflect.Value, error) {
	if target.Kind() == reflect.Ptr {
		if literal == "" {
			return reflect.Zero(target), nil
		}
		val, err := convert(target.Elem(), literal)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(val)
		return ptr, nil
	}
	return convert(target, literal)
}

func convert(target reflect.Type, literal string) (reflect.Value, error) {
	if target == timeType {
		parsed, err := time.Parse(time.RFC3339, literal)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(parsed), nil
	}

	if reflect.PtrTo(target).Implements(textUnmarshalerType) {
		val := reflect.New(target)
		if err := val.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(literal)); err != nil {
			return reflect.Value{}, err
		}
		return val.Elem(), nil
	}

	if isIntegerKind(target.Kind()) {
		if v, ok := lookupEnumName(target, literal); ok {
			return v, nil
		}
	}

	switch target.Kind() {
	case reflect.String:
		return reflect.ValueOf(literal).Convert(target), nil

	case reflect.Bool:
		b, err := parseBool(literal)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		v := reflect.New(target).Elem()
		v.SetInt(n)
		return v, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(literal, 10, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		v := reflect.New(target).Elem()
		v.SetUint(n)
		return v, nil

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		v := reflect.New(target).Elem()
		v.SetFloat(f)
		return v, nil

	default:
		return reflect.Value{}, fmt.Errorf("coerce: unsupported type %s", target)
	}
}

// parseBool accepts the spec §4.3 word forms true/false, yes/no and 1/0,
// case-insensitively. Other strconv.ParseBool forms such as "t" or "f"
// are rejected.
func parseBool(literal string) (bool, error) {
	switch strings.ToLower(literal) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("coerce: %q is not a boolean", literal)
	}
}
