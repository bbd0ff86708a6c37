package registry

import (
	"sync"

	"github.com/tidwall/btree"

	"github.com/mwantia/interp/token"
)

// Registry is the union of every handler registered with an
// interpreter: a name-ordered, concurrency-safe map of Options and
// Commands, plus the ordered list of Filters (spec §3's "lifecycle").
// Commands/options from multiple handlers compose into one namespace;
// on a name/alias collision across handlers, the most recently
// registered handler wins (spec §3).
type Registry struct {
	mu sync.RWMutex

	options  btree.Map[string, *Option]
	commands btree.Map[string, *Command]
	filters  []*Filter

	// optionAliases/commandAliases map every alias (and primary name)
	// to the canonical name, so lookups by alias are O(log n) too.
	optionAliases  btree.Map[string, string]
	commandAliases btree.Map[string, string]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddHandler discovers the handler's Options/Commands/Filters and
// merges them into the registry. It returns the intra-handler
// collision error from Bind, if any, but still performs the merge
// (spec: collisions within a single handler are rejected by Bind;
// cross-handler collisions are resolved last-registration-wins here).
func (r *Registry) AddHandler(instance any) error {
	options, commands, filters, err := Bind(instance)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, opt := range options {
		r.putOption(opt)
	}
	for _, cmd := range commands {
		r.putCommand(cmd)
	}
	r.filters = append(r.filters, filters...)

	return err
}

func (r *Registry) putOption(opt *Option) {
	r.options.Set(opt.Name, opt)
	r.optionAliases.Set(opt.Name, opt.Name)
	for _, alias := range opt.Aliases {
		r.optionAliases.Set(alias, opt.Name)
	}
}

func (r *Registry) putCommand(cmd *Command) {
	r.commands.Set(cmd.Name, cmd)
	r.commandAliases.Set(cmd.Name, cmd.Name)
	for _, alias := range cmd.Aliases {
		r.commandAliases.Set(alias, cmd.Name)
	}
}

// PutBuiltinCommand registers a built-in directly, without going
// through reflection (spec §4.2: each default built-in is implemented
// as though an internal handler). User-defined names always win a
// collision against a built-in, so this is a no-op when name or any
// alias is already taken.
func (r *Registry) PutBuiltinCommand(cmd *Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commandAliases.Get(cmd.Name); exists {
		return
	}
	for _, alias := range cmd.Aliases {
		if _, exists := r.commandAliases.Get(alias); exists {
			return
		}
	}
	r.putCommand(cmd)
}

// Command resolves name (display name or alias) under an exact-match
// lookup; comparer folding, if desired, is the caller's job before
// calling in (the dispatcher normalizes via token.Config first).
func (r *Registry) Command(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical, ok := r.commandAliases.Get(name)
	if !ok {
		return nil, false
	}
	return r.commands.Get(canonical)
}

// Option resolves name (display name or alias).
func (r *Registry) Option(name string) (*Option, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical, ok := r.optionAliases.Get(name)
	if !ok {
		return nil, false
	}
	return r.options.Get(canonical)
}

// FindCommand resolves name (display name or alias) under cfg's
// configured comparer: an exact lookup when cfg is case-sensitive, a
// case-insensitive fold otherwise (spec §3/§5). Every caller that
// resolves a user-typed name — the dispatcher's command resolution, a
// macro's `$(Name)` lookup, a built-in's option argument — should go
// through this (or FindOption) rather than the raw exact-match Command/
// Option lookup, so "get"/"Get" are recognized as the same name outside
// CaseSensitive mode.
func (r *Registry) FindCommand(cfg *token.Config, name string) (*Command, bool) {
	if cfg == nil || cfg.CaseSensitive {
		return r.Command(name)
	}

	for _, cmd := range r.Commands() {
		if cfg.EqualNames(cmd.Name, name) {
			return cmd, true
		}
		for _, alias := range cmd.Aliases {
			if cfg.EqualNames(alias, name) {
				return cmd, true
			}
		}
	}
	return nil, false
}

// FindOption is FindCommand's counterpart for options.
func (r *Registry) FindOption(cfg *token.Config, name string) (*Option, bool) {
	if cfg == nil || cfg.CaseSensitive {
		return r.Option(name)
	}

	for _, opt := range r.Options() {
		if cfg.EqualNames(opt.Name, name) {
			return opt, true
		}
		for _, alias := range opt.Aliases {
			if cfg.EqualNames(alias, name) {
				return opt, true
			}
		}
	}
	return nil, false
}

// Commands returns every registered command in name order.
func (r *Registry) Commands() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Command, 0, r.commands.Len())
	r.commands.Scan(func(_ string, cmd *Command) bool {
		out = append(out, cmd)
		return true
	})
	return out
}

// Options returns every registered option in name order.
func (r *Registry) Options() []*Option {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Option, 0, r.options.Len())
	r.options.Scan(func(_ string, opt *Option) bool {
		out = append(out, opt)
		return true
	})
	return out
}

// Filters returns every registered filter, in registration order.
func (r *Registry) Filters() []*Filter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Filter, len(r.filters))
	copy(out, r.filters)
	return out
}
