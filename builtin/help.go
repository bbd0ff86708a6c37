package builtin

import (
	"fmt"
	"sort"
	"strings"

	goccyjson "github.com/goccy/go-json"

	"github.com/mwantia/interp/registry"
	"github.com/mwantia/interp/token"
)

// Help implements spec §6's `help [name]`: with no name it lists every
// visible command and option; with name it prints detailed help for
// that command or option even if hidden (visibility only affects
// listings, never direct help-by-name, per spec §3's invariants).
func (h *Handler) Help(interp registry.Interpreter, name string) error {
	out := interp.StdIO().Out
	host, ok := interp.(Host)
	if !ok {
		fmt.Fprintln(out, "help is unavailable in this context")
		return nil
	}

	reg := host.Registry()
	if name != "" {
		fmt.Fprint(out, renderDetail(reg, host.TokenConfig(), name))
		return nil
	}

	fmt.Fprint(out, RenderPlainText(reg))
	return nil
}

func renderDetail(reg *registry.Registry, cfg *token.Config, name string) string {
	var b strings.Builder

	if cmd, ok := reg.FindCommand(cfg, name); ok {
		fmt.Fprintf(&b, "%s", cmd.Name)
		if len(cmd.Aliases) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(cmd.Aliases, ", "))
		}
		b.WriteByte('\n')
		if cmd.Description != "" {
			fmt.Fprintf(&b, "  %s\n", cmd.Description)
		}
		for _, arg := range cmd.Arguments {
			if arg.IsInterpreter {
				continue
			}
			req := "optional"
			if arg.Required {
				req = "required"
			}
			fmt.Fprintf(&b, "  %-16s %s (%s)\n", arg.Name, arg.Description, req)
		}
		return b.String()
	}

	if opt, ok := reg.FindOption(cfg, name); ok {
		fmt.Fprintf(&b, "%s", opt.Name)
		if len(opt.Aliases) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(opt.Aliases, ", "))
		}
		b.WriteByte('\n')
		if opt.Description != "" {
			fmt.Fprintf(&b, "  %s\n", opt.Description)
		}
		fmt.Fprintf(&b, "  current: %v\n", opt.Get())
		return b.String()
	}

	return fmt.Sprintf("Invalid: no command or option named %q\n", name)
}

// RenderPlainText lists every visible command and option (spec §6).
func RenderPlainText(reg *registry.Registry) string {
	var b strings.Builder

	b.WriteString("Commands:\n")
	for _, cmd := range reg.Commands() {
		if cmd.Hidden {
			continue
		}
		fmt.Fprintf(&b, "  %-16s %s\n", cmd.Name, cmd.Description)
	}

	b.WriteString("Options:\n")
	for _, opt := range reg.Options() {
		if opt.Hidden {
			continue
		}
		fmt.Fprintf(&b, "  %-16s %s\n", opt.Name, opt.Description)
	}

	return b.String()
}

// RenderHTML is the content-only HTML form of help (spec §6): an
// <html> root with one section per command, names upper-cased, no
// styling.
func RenderHTML(reg *registry.Registry) string {
	var b strings.Builder
	b.WriteString("<html><body>\n")

	b.WriteString("<h1>COMMANDS</h1>\n")
	for _, cmd := range reg.Commands() {
		if cmd.Hidden {
			continue
		}
		fmt.Fprintf(&b, "<section><h2>%s</h2><p>%s</p></section>\n",
			strings.ToUpper(cmd.Name), cmd.Description)
	}

	b.WriteString("<h1>OPTIONS</h1>\n")
	for _, opt := range reg.Options() {
		if opt.Hidden {
			continue
		}
		fmt.Fprintf(&b, "<section><h2>%s</h2><p>%s</p></section>\n",
			strings.ToUpper(opt.Name), opt.Description)
	}

	b.WriteString("</body></html>\n")
	return b.String()
}

// jsonCommand/jsonOption are the machine-readable shapes RenderJSON
// emits via goccy/go-json (SPEC_FULL.md's "help --json").
type jsonCommand struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
}

type jsonOption struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
	Default     any      `json:"default"`
}

// RenderJSON emits the same visible commands/options as RenderPlainText,
// sorted by name, as a JSON document.
func RenderJSON(reg *registry.Registry) (string, error) {
	var commands []jsonCommand
	for _, cmd := range reg.Commands() {
		if cmd.Hidden {
			continue
		}
		commands = append(commands, jsonCommand{Name: cmd.Name, Aliases: cmd.Aliases, Description: cmd.Description})
	}
	sort.Slice(commands, func(i, j int) bool { return commands[i].Name < commands[j].Name })

	var options []jsonOption
	for _, opt := range reg.Options() {
		if opt.Hidden {
			continue
		}
		options = append(options, jsonOption{Name: opt.Name, Aliases: opt.Aliases, Description: opt.Description, Default: opt.Default()})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Name < options[j].Name })

	data, err := goccyjson.Marshal(struct {
		Commands []jsonCommand `json:"commands"`
		Options  []jsonOption  `json:"options"`
	}{commands, options})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
