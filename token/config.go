package token

import "fmt"

// Config holds the process-wide tokenizer knobs from spec §3/§5:
// the prefix characters that mark a named argument, the delimiter
// characters that separate a name from its value, and the default
// comparer used for name lookups. Per spec §9's design note, hosts are
// encouraged to build one explicitly and thread it through rather than
// relying on a package-level default, though a ready-made Default is
// provided for parity with the source's process-wide behavior.
type Config struct {
	PrefixChars    []rune
	DelimiterChars []rune
	// CaseSensitive controls Item name comparison; false (the spec
	// default) compares names case-insensitively.
	CaseSensitive bool
}

// Default returns the spec-mandated defaults: prefixes '/' and '-',
// delimiters '=' and ':', case-insensitive comparison.
func Default() *Config {
	return &Config{
		PrefixChars:    []rune{'/', '-'},
		DelimiterChars: []rune{'=', ':'},
		CaseSensitive:  false,
	}
}

// Validate enforces the non-empty invariant on both character sets.
func (c *Config) Validate() error {
	if len(c.PrefixChars) == 0 {
		return fmt.Errorf("token: prefix character set must not be empty")
	}
	if len(c.DelimiterChars) == 0 {
		return fmt.Errorf("token: delimiter character set must not be empty")
	}
	return nil
}

func (c *Config) isPrefix(r rune) bool {
	for _, p := range c.PrefixChars {
		if p == r {
			return true
		}
	}
	return false
}

// delimiterIndex returns the rune index of the first delimiter
// character in runes, or -1 if none is present.
func (c *Config) delimiterIndex(runes []rune) int {
	for i, r := range runes {
		for _, d := range c.DelimiterChars {
			if r == d {
				return i
			}
		}
	}
	return -1
}

// EqualNames compares two names per the configured comparer.
func (c *Config) EqualNames(a, b string) bool {
	if c.CaseSensitive {
		return a == b
	}
	return foldEqual(a, b)
}
