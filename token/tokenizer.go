package token

import (
	"strings"
	"unicode"

	"github.com/mwantia/interp/interperr"
)

// Parse tokenizes a single input line (spec §4.1). Tokens are separated
// by unquoted whitespace; a double-quoted run treats "" as a literal
// embedded quote and ends at the first unescaped quote. Parse(nil)
// fails with ErrInvalidInput, as does an unterminated quoted run.
func Parse(line *string) ([]string, error) {
	if line == nil {
		return nil, interperr.New(interperr.ErrInvalidInput, "input line must not be nil")
	}

	runes := []rune(*line)
	var tokens []string
	var current strings.Builder
	hasCurrent := false
	inQuote := false

	flush := func() {
		if hasCurrent {
			tokens = append(tokens, current.String())
			current.Reset()
			hasCurrent = false
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if inQuote {
			if r == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					current.WriteRune('"')
					i++
					continue
				}
				inQuote = false
				continue
			}
			current.WriteRune(r)
			continue
		}

		if r == '"' {
			inQuote = true
			hasCurrent = true
			continue
		}

		if unicode.IsSpace(r) {
			flush()
			continue
		}

		current.WriteRune(r)
		hasCurrent = true
	}

	if inQuote {
		return nil, interperr.New(interperr.ErrInvalidInput, "unterminated quoted run")
	}

	flush()
	return tokens, nil
}

// ParseString is a convenience wrapper over Parse for callers that
// already know their input is non-nil.
func ParseString(line string) ([]string, error) {
	return Parse(&line)
}
