package registry

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
)

var (
	errType        = reflect.TypeOf((*error)(nil)).Elem()
	stringSliceType = reflect.TypeOf([]string{})
)

// Bind discovers the Options, Commands, and Filters carried by a single
// handler instance (spec §4.2). instance must be a pointer to a struct
// so its Option-backed fields are addressable and its pointer-receiver
// methods are in its method set. Name/alias collisions *within this one
// handler* are rejected (aggregated, so a single Bind call reports every
// collision it finds rather than only the first); collisions *across*
// handlers are a Registry concern (last registration wins, per spec §3).
func Bind(instance any) ([]*Option, []*Command, []*Filter, error) {
	v := reflect.ValueOf(instance)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, nil, nil, fmt.Errorf("registry: handler must be a pointer to a struct, got %T", instance)
	}

	elem := v.Elem()
	t := elem.Type()
	describer, _ := instance.(Describer)

	var result error
	seen := make(map[string]string) // canonical name/alias -> owning member, for collision detection

	claim := func(member string, names []string) {
		for _, n := range names {
			key := canonicalKey(n)
			if owner, exists := seen[key]; exists && owner != member {
				result = multierror.Append(result, fmt.Errorf("registry: name collision on %q between %q and %q", n, owner, member))
				continue
			}
			seen[key] = member
		}
	}

	options := bindOptions(elem, t, describer, claim)
	commands, filters := bindMethods(v, t, describer, claim)

	return options, commands, filters, result
}

func canonicalKey(name string) string {
	return name
}

func bindOptions(elem reflect.Value, t reflect.Type, describer Describer, claim func(string, []string)) []*Option {
	var options []*Option

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if describer != nil && describer.IgnoreMember(field.Name) {
			continue
		}

		meta, hasMeta := OptionMeta{}, false
		if describer != nil {
			meta, hasMeta = describer.DescribeOption(field.Name)
		}

		name := field.Name
		if hasMeta && meta.Name != "" {
			name = meta.Name
		}

		def := reflect.Zero(field.Type).Interface()
		if hasMeta && meta.Default != nil {
			def = meta.Default
		}

		opt := &Option{
			Name:        name,
			Aliases:     metaAliases(hasMeta, meta.Aliases),
			Description: metaString(hasMeta, meta.Description),
			Category:    metaString(hasMeta, meta.Category),
			Hidden:      hasMeta && meta.Hidden,
			Type:        field.Type,
			handler:     elem,
			field:       field,
			def:         def,
		}

		claim(field.Name, append([]string{name}, opt.Aliases...))
		options = append(options, opt)
	}

	return options
}

func bindMethods(v reflect.Value, t reflect.Type, describer Describer, claim func(string, []string)) ([]*Command, []*Filter) {
	var commands []*Command
	var filters []*Filter

	ptrType := v.Type()
	for i := 0; i < ptrType.NumMethod(); i++ {
		method := ptrType.Method(i)
		if describer != nil && describer.IgnoreMember(method.Name) {
			continue
		}
		if describer != nil && isDescriberMethod(method.Name) {
			continue
		}

		meta, hasMeta := CommandMeta{}, false
		if describer != nil {
			meta, hasMeta = describer.DescribeCommand(method.Name)
		}

		isFilterSig := matchesFilterSignature(method.Type)
		isForcedFilter := describer != nil && describer.IsFilter(method.Name)
		isFilter := isFilterSig || isForcedFilter

		if isFilter && matchesFilterSignature(method.Type) {
			filters = append(filters, &Filter{
				Name:     method.Name,
				receiver: v,
				method:   method,
			})
		}

		// A method is a Command whenever it isn't a filter, or when a
		// handler explicitly describes it as one anyway (spec §9's
		// open question on dual command+filter registration).
		if !isFilter || hasMeta {
			cmd := buildCommand(v, method, meta, hasMeta)
			names := append([]string{cmd.Name}, cmd.Aliases...)
			claim(method.Name, names)
			commands = append(commands, cmd)
		}
	}

	return commands, filters
}

// isDescriberMethod reports whether name is one of the Describer
// interface's own methods. A handler that implements Describer
// necessarily exposes these as exported methods on its method set,
// but they are binder plumbing, not user-facing commands or filters,
// so they're excluded from discovery the same way an ignore marker
// would exclude them.
func isDescriberMethod(name string) bool {
	switch name {
	case "DescribeOption", "DescribeCommand", "IgnoreMember", "IsFilter":
		return true
	default:
		return false
	}
}

func matchesFilterSignature(fn reflect.Type) bool {
	// fn includes the receiver as In(0).
	if fn.NumIn() != 4 || fn.NumOut() != 1 {
		return false
	}
	if !fn.Out(0).Implements(errType) {
		return false
	}
	if fn.In(1) != InterpreterType {
		return false
	}
	if fn.In(2) != ChainType {
		return false
	}
	return fn.In(3) == stringSliceType
}

func buildCommand(v reflect.Value, method reflect.Method, meta CommandMeta, hasMeta bool) *Command {
	name := method.Name
	if hasMeta && meta.Name != "" {
		name = meta.Name
	}

	cmd := &Command{
		Name:        name,
		Aliases:     meta.Aliases,
		Description: meta.Description,
		Category:    meta.Category,
		Hidden:      hasMeta && meta.Hidden,
		receiver:    v,
		method:      method,
	}

	fnType := method.Type
	position := 0
	for i := 1; i < fnType.NumIn(); i++ {
		paramType := fnType.In(i)

		if paramType == InterpreterType {
			cmd.Arguments = append(cmd.Arguments, Argument{
				Name:          "interpreter",
				Type:          paramType,
				IsInterpreter: true,
			})
			continue
		}

		var spec ArgSpec
		if position < len(meta.Args) {
			spec = meta.Args[position]
		}
		if spec.Name == "" {
			spec.Name = fmt.Sprintf("arg%d", position)
		}

		arg := Argument{
			Name:        spec.Name,
			Aliases:     spec.Aliases,
			Description: spec.Description,
			Hidden:      spec.Hidden,
			Default:     spec.Default,
			Type:        paramType,
			Position:    position,
			CapturesAll: spec.CapturesAll,
		}
		arg.Required = spec.Default == nil && !isNullableKind(paramType.Kind()) && !spec.CapturesAll

		cmd.Arguments = append(cmd.Arguments, arg)
		position++
	}

	return cmd
}

func isNullableKind(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}

func metaString(hasMeta bool, s string) string {
	if !hasMeta {
		return ""
	}
	return s
}

func metaAliases(hasMeta bool, aliases []string) []string {
	if !hasMeta {
		return nil
	}
	var out []string
	for _, a := range aliases {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
