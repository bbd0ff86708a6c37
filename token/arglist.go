package token

// ArgumentList is a structured view over a token stream (spec §3): a
// mapping from canonical name to Item, plus an ordered list of unnamed
// (positional) values.
type ArgumentList struct {
	cfg     *Config
	names   []string // canonical keys, in first-appearance order
	items   map[string]*Item
	Unnamed []string
}

// NewArgumentList builds an ArgumentList from a token vector under cfg
// (spec §4.1): a token beginning with a configured prefix character has
// that character stripped, then is split on the first occurrence of any
// delimiter character into name/value (value is nil if no delimiter was
// present); everything else is an unnamed value. A token that becomes
// empty-named after stripping its prefix falls through to unnamed.
func NewArgumentList(cfg *Config, tokens []string) *ArgumentList {
	al := &ArgumentList{
		cfg:   cfg,
		items: make(map[string]*Item),
	}

	for _, tok := range tokens {
		name, value, isNamed := splitToken(cfg, tok)
		if !isNamed {
			al.Unnamed = append(al.Unnamed, tok)
			continue
		}
		al.bind(name, value)
	}

	return al
}

// SplitToken exposes the name/value split spec §4.1 applies when
// building an ArgumentList, for callers (the dispatcher's top-level
// option setters, spec §4.4) that need to inspect a single token
// before deciding whether to consume it.
func SplitToken(cfg *Config, tok string) (name string, value *string, isNamed bool) {
	return splitToken(cfg, tok)
}

func splitToken(cfg *Config, tok string) (name string, value *string, isNamed bool) {
	runes := []rune(tok)
	if len(runes) == 0 || !cfg.isPrefix(runes[0]) {
		return "", nil, false
	}

	rest := runes[1:]
	if len(rest) == 0 {
		return "", nil, false
	}

	idx := cfg.delimiterIndex(rest)
	if idx < 0 {
		return string(rest), nil, true
	}

	n := string(rest[:idx])
	if n == "" {
		return "", nil, false
	}

	v := string(rest[idx+1:])
	return n, &v, true
}

func (al *ArgumentList) bind(name string, value *string) {
	key := al.canonicalKey(name)
	item, ok := al.items[key]
	if !ok {
		item = &Item{Name: name}
		al.items[key] = item
		al.names = append(al.names, key)
	}
	item.add(value)
}

func (al *ArgumentList) canonicalKey(name string) string {
	if al.cfg.CaseSensitive {
		return name
	}
	return foldKey(name)
}

// Get returns the Item bound to name under the configured comparer, or
// nil if name was never bound.
func (al *ArgumentList) Get(name string) *Item {
	return al.items[al.canonicalKey(name)]
}

// Names returns every bound name, in first-appearance order.
func (al *ArgumentList) Names() []string {
	out := make([]string, 0, len(al.names))
	for _, key := range al.names {
		out = append(out, al.items[key].Name)
	}
	return out
}
