package repl

import (
	"fmt"
	"strings"

	"github.com/mwantia/interp/token"
)

// Lookup resolves a macro name to its current string value; ok=false
// means "no such option", which aborts expansion entirely rather than
// silently leaving the placeholder behind.
type Lookup func(name string) (value string, ok bool)

// Expand implements spec §4.7's macro syntax: `$(Name)` is replaced by
// the current value of option Name (quoted per token.Join's rules if it
// contains whitespace), and `$$` is a literal `$` that does not start a
// macro. Because the literal-dollar rule is checked before the
// macro-open rule, `$$(Name)` is a literal `$` followed by the plain
// text `(Name)`, not an expansion — this is what lets a line escape a
// macro it doesn't want evaluated.
func Expand(line string, lookup Lookup) (string, error) {
	runes := []rune(line)
	var out strings.Builder

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '$' && i+1 < len(runes) {
			switch runes[i+1] {
			case '$':
				out.WriteRune('$')
				i++
				continue
			case '(':
				end := indexRuneFrom(runes, ')', i+2)
				if end < 0 {
					out.WriteRune(r)
					continue
				}
				name := string(runes[i+2 : end])
				value, ok := lookup(name)
				if !ok {
					return "", fmt.Errorf("unknown option specified: %s", name)
				}
				out.WriteString(token.Join([]string{value}))
				i = end
				continue
			}
		}

		out.WriteRune(r)
	}

	return out.String(), nil
}

func indexRuneFrom(runes []rune, target rune, from int) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}
