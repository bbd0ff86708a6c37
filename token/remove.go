package token

// Remove scans tokens linearly for the first token whose stripped name
// equals name under cfg's comparer (spec §4.1's static `Remove` utility).
// On a match it splices that token out of tokens and returns its value
// (nil if the token carried no delimiter) with found=true. Repeated
// calls against the same slice remove successive occurrences. Matching
// is exact, including embedded whitespace inside the name.
func Remove(cfg *Config, tokens []string, name string) (remaining []string, value *string, found bool) {
	for i, tok := range tokens {
		tokName, tokValue, isNamed := splitToken(cfg, tok)
		if !isNamed || !cfg.EqualNames(tokName, name) {
			continue
		}

		out := make([]string, 0, len(tokens)-1)
		out = append(out, tokens[:i]...)
		out = append(out, tokens[i+1:]...)
		return out, tokValue, true
	}

	return tokens, nil, false
}
